package sqlrepo

import (
	"context"
	"database/sql"
	"errors"

	"molnet-polls/internal/domain/poll"
	"molnet-polls/internal/domain/vote"
)

const voteColumns = `id, user_id, poll_id, choice_id, created_at, updated_at`

// errCastRace marks a unique violation raised by a concurrent ballot from the
// same voter, or a concurrent write-in of the same text.
var errCastRace = errors.New("concurrent ballot")

type VoteRepo struct {
	db *sql.DB
}

func NewVoteRepo(db *sql.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

func (r *VoteRepo) PollState(ctx context.Context, pollID int64) (vote.PollState, error) {
	var (
		st     vote.PollState
		status string
	)
	err := r.db.QueryRowContext(ctx, `SELECT status, allow_new_choices FROM polls WHERE id = $1`, pollID).
		Scan(&status, &st.AllowNewChoices)
	if err != nil {
		return vote.PollState{}, err
	}
	st.Status = poll.Status(status)
	return st, nil
}

// Cast runs the ballot in one transaction. A race with a concurrent ballot
// from the same voter is retried once, after which the other row is visible.
func (r *VoteRepo) Cast(ctx context.Context, in vote.CastInput) (*vote.CastResult, error) {
	res, err := r.cast(ctx, in)
	if errors.Is(err, errCastRace) {
		res, err = r.cast(ctx, in)
	}
	if errors.Is(err, errCastRace) {
		return nil, poll.ErrChoiceExists
	}
	return res, err
}

func (r *VoteRepo) cast(ctx context.Context, in vote.CastInput) (*vote.CastResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res := &vote.CastResult{}
	if in.WriteIn != "" {
		if err := resolveWriteIn(ctx, tx, in, res); err != nil {
			return nil, err
		}
	} else {
		c := &res.Choice
		err := tx.QueryRowContext(ctx, `SELECT `+choiceColumns+` FROM choices c WHERE c.id = $1`, in.ChoiceID).
			Scan(&c.ID, &c.PollID, &c.Text, &c.CreatorID, &c.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && c.PollID != in.PollID) {
			return nil, vote.ErrChoiceNotInPoll
		}
		if err != nil {
			return nil, err
		}
	}

	v := &res.Vote
	err = tx.QueryRowContext(ctx, `SELECT `+voteColumns+` FROM votes WHERE user_id = $1 AND poll_id = $2`, in.UserID, in.PollID).
		Scan(&v.ID, &v.UserID, &v.PollID, &v.ChoiceID, &v.CreatedAt, &v.UpdatedAt)
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx, `UPDATE votes SET choice_id = $1, updated_at = $2 WHERE id = $3`,
			res.Choice.ID, in.At, v.ID); err != nil {
			return nil, err
		}
		v.ChoiceID = res.Choice.ID
		v.UpdatedAt = in.At
		res.Replaced = true
	case errors.Is(err, sql.ErrNoRows):
		*v = vote.Vote{UserID: in.UserID, PollID: in.PollID, ChoiceID: res.Choice.ID, CreatedAt: in.At, UpdatedAt: in.At}
		err := tx.QueryRowContext(ctx, `
            INSERT INTO votes (user_id, poll_id, choice_id, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING id
        `, v.UserID, v.PollID, v.ChoiceID, v.CreatedAt, v.UpdatedAt).Scan(&v.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, errCastRace
			}
			return nil, err
		}
	default:
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// resolveWriteIn finds the poll's choice with the write-in text or creates it
// with the voter as creator.
func resolveWriteIn(ctx context.Context, tx *sql.Tx, in vote.CastInput, res *vote.CastResult) error {
	c := &res.Choice
	err := tx.QueryRowContext(ctx, `SELECT `+choiceColumns+` FROM choices c WHERE c.poll_id = $1 AND c.text = $2`, in.PollID, in.WriteIn).
		Scan(&c.ID, &c.PollID, &c.Text, &c.CreatorID, &c.CreatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	*c = poll.Choice{PollID: in.PollID, Text: in.WriteIn, CreatorID: in.UserID, CreatedAt: in.At}
	if err := insertChoice(ctx, tx, c); err != nil {
		if errors.Is(err, poll.ErrChoiceExists) {
			return errCastRace
		}
		return err
	}
	res.ChoiceCreated = true
	return nil
}

func (r *VoteRepo) ForUser(ctx context.Context, userID, pollID int64) (*vote.Vote, error) {
	return scanVote(r.db.QueryRowContext(ctx, `SELECT `+voteColumns+` FROM votes WHERE user_id = $1 AND poll_id = $2`, userID, pollID))
}

func (r *VoteRepo) ListByPoll(ctx context.Context, pollID int64) ([]vote.Vote, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+voteColumns+` FROM votes WHERE poll_id = $1 ORDER BY created_at DESC, id DESC`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []vote.Vote{}
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		votes = append(votes, *v)
	}
	return votes, rows.Err()
}

func (r *VoteRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanVote(row scanner) (*vote.Vote, error) {
	v := &vote.Vote{}
	if err := row.Scan(&v.ID, &v.UserID, &v.PollID, &v.ChoiceID, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return v, nil
}
