package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"molnet-polls/internal/config"
	"molnet-polls/internal/domain/poll"
	"molnet-polls/internal/domain/user"
	"molnet-polls/internal/domain/vote"
	"molnet-polls/internal/platform/database"
)

var base = time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(ctx, db, config.DriverSQLite))
	return db
}

func seedUser(t *testing.T, repo *UserRepo, name string) *user.User {
	t.Helper()
	u := &user.User{Email: name + "@example.com", Username: name, PasswordHash: "x", Role: user.RoleUser, IsActive: true, CreatedAt: base}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func seedPoll(t *testing.T, repo *PollRepo, creator int64, title string, status poll.Status, published *time.Time, choices ...string) (*poll.Poll, []poll.Choice) {
	t.Helper()
	p := &poll.Poll{
		Slug:      title,
		Title:     title,
		CreatorID: creator,
		Status:    status,
		CreatedAt: base,
		UpdatedAt: base,
	}
	p.PublishedAt = published
	cs := make([]poll.Choice, 0, len(choices))
	for _, text := range choices {
		cs = append(cs, poll.Choice{Text: text, CreatorID: creator, CreatedAt: base})
	}
	require.NoError(t, repo.Create(context.Background(), p, cs))
	return p, cs
}

func at(d time.Duration) *time.Time {
	t := base.Add(d)
	return &t
}

func TestUserRepoUniqueness(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	ctx := context.Background()

	alice := seedUser(t, users, "alice")
	assert.NotZero(t, alice.ID)

	err := users.Create(ctx, &user.User{Email: "other@example.com", Username: "alice", PasswordHash: "x", Role: user.RoleUser})
	assert.ErrorIs(t, err, user.ErrUsernameTaken)

	err = users.Create(ctx, &user.User{Email: "alice@example.com", Username: "alice2", PasswordHash: "x", Role: user.RoleUser})
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	got, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.True(t, got.IsActive)

	require.NoError(t, users.Deactivate(ctx, alice.ID))
	got, err = users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, users.UpdateRole(ctx, 999, user.RoleAdmin), sql.ErrNoRows)
}

func TestPollRepoRoundTrip(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	polls := NewPollRepo(db)
	ctx := context.Background()
	owner := seedUser(t, users, "owner")

	p, cs := seedPoll(t, polls, owner.ID, "cats-or-dogs", poll.StatusPublished, at(time.Hour), "cats", "dogs")
	require.Len(t, cs, 2)
	assert.NotZero(t, cs[0].ID)

	got, err := polls.GetBySlug(ctx, "cats-or-dogs")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "owner", got.CreatorName)
	require.NotNil(t, got.PublishedAt)
	assert.True(t, got.PublishedAt.Equal(base.Add(time.Hour)))

	exists, err := polls.SlugExists(ctx, "cats-or-dogs")
	require.NoError(t, err)
	assert.True(t, exists)

	taken, err := polls.TitleExists(ctx, "cats-or-dogs", p.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a poll never conflicts with its own title")

	dup := &poll.Poll{Slug: "other", Title: "cats-or-dogs", CreatorID: owner.ID, Status: poll.StatusDraft, CreatedAt: base, UpdatedAt: base}
	assert.ErrorIs(t, polls.Create(ctx, dup, nil), poll.ErrTitleTaken)

	err = polls.AddChoice(ctx, &poll.Choice{PollID: p.ID, Text: "cats", CreatorID: owner.ID, CreatedAt: base})
	assert.ErrorIs(t, err, poll.ErrChoiceExists)

	got.Status = poll.StatusDraft
	got.PublishedAt = nil
	got.UpdatedAt = base.Add(2 * time.Hour)
	require.NoError(t, polls.SetStatus(ctx, got))
	again, err := polls.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, poll.StatusDraft, again.Status)
	assert.Nil(t, again.PublishedAt)
}

func TestPollListings(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	polls := NewPollRepo(db)
	votes := NewVoteRepo(db)
	ctx := context.Background()
	owner := seedUser(t, users, "owner")
	voter := seedUser(t, users, "voter")

	older, olderChoices := seedPoll(t, polls, owner.ID, "older", poll.StatusPublished, at(time.Hour), "a", "b")
	newer, newerChoices := seedPoll(t, polls, owner.ID, "newer", poll.StatusClosed, at(2*time.Hour), "a")
	draft, _ := seedPoll(t, polls, owner.ID, "draft", poll.StatusDraft, nil, "a")

	recent, err := polls.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, newer.ID, recent[0].ID)
	assert.Equal(t, older.ID, recent[1].ID)

	limited, err := polls.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	mine, err := polls.CreatedBy(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	drafts := poll.StatusDraft
	filtered, err := polls.List(ctx, poll.Filter{Status: &drafts})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, draft.ID, filtered[0].ID)

	searched, err := polls.List(ctx, poll.Filter{Query: "OLD"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, older.ID, searched[0].ID)

	// newer is closed but still answerable from the voter's history.
	_, err = votes.Cast(ctx, vote.CastInput{UserID: voter.ID, PollID: newer.ID, ChoiceID: newerChoices[0].ID, At: base.Add(3 * time.Hour)})
	require.NoError(t, err)
	_, err = votes.Cast(ctx, vote.CastInput{UserID: voter.ID, PollID: older.ID, ChoiceID: olderChoices[1].ID, At: base.Add(4 * time.Hour)})
	require.NoError(t, err)

	answered, err := polls.AnsweredBy(ctx, voter.ID)
	require.NoError(t, err)
	require.Len(t, answered, 2)
	assert.Equal(t, older.ID, answered[0].ID, "most recent vote first")
}

func TestSecondVoteReplacesFirst(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	polls := NewPollRepo(db)
	votes := NewVoteRepo(db)
	ctx := context.Background()
	owner := seedUser(t, users, "owner")
	voter := seedUser(t, users, "voter")
	p, cs := seedPoll(t, polls, owner.ID, "pick", poll.StatusPublished, at(0), "yes", "no")

	first, err := votes.Cast(ctx, vote.CastInput{UserID: voter.ID, PollID: p.ID, ChoiceID: cs[0].ID, At: base.Add(time.Minute)})
	require.NoError(t, err)
	assert.False(t, first.Replaced)

	second, err := votes.Cast(ctx, vote.CastInput{UserID: voter.ID, PollID: p.ID, ChoiceID: cs[1].ID, At: base.Add(2 * time.Minute)})
	require.NoError(t, err)
	assert.True(t, second.Replaced)
	assert.Equal(t, first.Vote.ID, second.Vote.ID)

	list, err := votes.ListByPoll(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, cs[1].ID, list[0].ChoiceID)

	tally, err := polls.ChoicesWithVotes(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tally, 2)
	assert.Equal(t, int64(0), tally[0].Votes)
	assert.Equal(t, int64(1), tally[1].Votes)

	total, err := polls.NumberOfVotes(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	current, err := votes.ForUser(ctx, voter.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, cs[1].ID, current.ChoiceID)
	assert.True(t, current.UpdatedAt.After(current.CreatedAt))
}

func TestCastRejectsForeignChoice(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	polls := NewPollRepo(db)
	votes := NewVoteRepo(db)
	ctx := context.Background()
	owner := seedUser(t, users, "owner")
	a, _ := seedPoll(t, polls, owner.ID, "a", poll.StatusPublished, at(0), "x")
	_, bChoices := seedPoll(t, polls, owner.ID, "b", poll.StatusPublished, at(0), "y")

	_, err := votes.Cast(ctx, vote.CastInput{UserID: owner.ID, PollID: a.ID, ChoiceID: bChoices[0].ID, At: base})
	assert.ErrorIs(t, err, vote.ErrChoiceNotInPoll)

	_, err = votes.Cast(ctx, vote.CastInput{UserID: owner.ID, PollID: a.ID, ChoiceID: 9999, At: base})
	assert.ErrorIs(t, err, vote.ErrChoiceNotInPoll)
}

func TestWriteInIsDeduplicated(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	polls := NewPollRepo(db)
	votes := NewVoteRepo(db)
	ctx := context.Background()
	owner := seedUser(t, users, "owner")
	v1 := seedUser(t, users, "v1")
	v2 := seedUser(t, users, "v2")
	p, _ := seedPoll(t, polls, owner.ID, "lunch", poll.StatusPublished, at(0), "Pizza")

	res, err := votes.Cast(ctx, vote.CastInput{UserID: v1.ID, PollID: p.ID, WriteIn: "Sushi", At: base})
	require.NoError(t, err)
	assert.True(t, res.ChoiceCreated)
	assert.Equal(t, v1.ID, res.Choice.CreatorID)

	res2, err := votes.Cast(ctx, vote.CastInput{UserID: v2.ID, PollID: p.ID, WriteIn: "Sushi", At: base})
	require.NoError(t, err)
	assert.False(t, res2.ChoiceCreated)
	assert.Equal(t, res.Choice.ID, res2.Choice.ID)

	tally, err := polls.ChoicesWithVotes(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tally, 2)
	assert.Equal(t, "Sushi", tally[1].Text)
	assert.Equal(t, int64(2), tally[1].Votes)
}

func TestDeletesCascade(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	polls := NewPollRepo(db)
	votes := NewVoteRepo(db)
	ctx := context.Background()
	owner := seedUser(t, users, "owner")
	p, cs := seedPoll(t, polls, owner.ID, "gone", poll.StatusPublished, at(0), "a", "b")

	_, err := votes.Cast(ctx, vote.CastInput{UserID: owner.ID, PollID: p.ID, ChoiceID: cs[0].ID, At: base})
	require.NoError(t, err)

	require.NoError(t, polls.DeleteChoice(ctx, cs[0].ID))
	total, err := polls.NumberOfVotes(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, total, "deleting a choice removes its votes")

	_, err = votes.Cast(ctx, vote.CastInput{UserID: owner.ID, PollID: p.ID, ChoiceID: cs[1].ID, At: base})
	require.NoError(t, err)
	require.NoError(t, polls.Delete(ctx, p.ID))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM choices`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&n))
	assert.Zero(t, n)

	_, err = polls.GetByID(ctx, p.ID)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.ErrorIs(t, polls.Delete(ctx, p.ID), sql.ErrNoRows)
}
