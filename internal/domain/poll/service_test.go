package poll

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

type memoryPollRepo struct {
	mu           sync.Mutex
	polls        map[int64]*Poll
	choices      map[int64]*Choice
	votes        map[int64]int64
	nextID       int64
	nextChoiceID int64
}

func newMemoryPollRepo() *memoryPollRepo {
	return &memoryPollRepo{
		polls:        make(map[int64]*Poll),
		choices:      make(map[int64]*Choice),
		votes:        make(map[int64]int64),
		nextID:       1,
		nextChoiceID: 1,
	}
}

func (r *memoryPollRepo) Create(ctx context.Context, p *Poll, choices []Choice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	copyPoll := *p
	r.polls[p.ID] = &copyPoll
	for i := range choices {
		choices[i].ID = r.nextChoiceID
		r.nextChoiceID++
		choices[i].PollID = p.ID
		c := choices[i]
		r.choices[c.ID] = &c
	}
	return nil
}

func (r *memoryPollRepo) GetByID(ctx context.Context, id int64) (*Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polls[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copyPoll := *p
	return &copyPoll, nil
}

func (r *memoryPollRepo) GetBySlug(ctx context.Context, slug string) (*Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.polls {
		if p.Slug == slug {
			copyPoll := *p
			return &copyPoll, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryPollRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := r.GetBySlug(ctx, slug)
	return err == nil, nil
}

func (r *memoryPollRepo) TitleExists(ctx context.Context, title string, exceptID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.polls {
		if p.Title == title && p.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryPollRepo) Update(ctx context.Context, p *Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.polls[p.ID]; !ok {
		return sql.ErrNoRows
	}
	copyPoll := *p
	r.polls[p.ID] = &copyPoll
	return nil
}

func (r *memoryPollRepo) SetStatus(ctx context.Context, p *Poll) error {
	return r.Update(ctx, p)
}

func (r *memoryPollRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.polls[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.polls, id)
	for cid, c := range r.choices {
		if c.PollID == id {
			delete(r.choices, cid)
			delete(r.votes, cid)
		}
	}
	return nil
}

func (r *memoryPollRepo) sorted(keep func(*Poll) bool) []Poll {
	res := []Poll{}
	for _, p := range r.polls {
		if keep(p) {
			res = append(res, *p)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res
}

func (r *memoryPollRepo) List(ctx context.Context, f Filter) ([]Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(p *Poll) bool {
		if f.Status != nil && p.Status != *f.Status {
			return false
		}
		return f.Query == "" || strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Query))
	}), nil
}

func (r *memoryPollRepo) Recent(ctx context.Context, limit int) ([]Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := r.sorted(func(p *Poll) bool { return !p.IsDraft() })
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (r *memoryPollRepo) CreatedBy(ctx context.Context, userID int64) ([]Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(p *Poll) bool { return p.CreatorID == userID }), nil
}

func (r *memoryPollRepo) AnsweredBy(ctx context.Context, userID int64) ([]Poll, error) {
	return []Poll{}, nil
}

func (r *memoryPollRepo) ChoicesWithVotes(ctx context.Context, pollID int64) ([]Choice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []Choice{}
	for _, c := range r.choices {
		if c.PollID == pollID {
			cc := *c
			cc.Votes = r.votes[c.ID]
			res = append(res, cc)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *memoryPollRepo) GetChoice(ctx context.Context, id int64) (*Choice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.choices[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cc := *c
	return &cc, nil
}

func (r *memoryPollRepo) ChoiceExists(ctx context.Context, pollID int64, text string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.choices {
		if c.PollID == pollID && c.Text == text {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryPollRepo) AddChoice(ctx context.Context, c *Choice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextChoiceID
	r.nextChoiceID++
	cc := *c
	r.choices[c.ID] = &cc
	return nil
}

func (r *memoryPollRepo) DeleteChoice(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.choices[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.choices, id)
	delete(r.votes, id)
	return nil
}

func (r *memoryPollRepo) NumberOfVotes(ctx context.Context, pollID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for cid, n := range r.votes {
		if c, ok := r.choices[cid]; ok && c.PollID == pollID {
			total += n
		}
	}
	return total, nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestCreateValidatesAndSlugs(t *testing.T) {
	repo := newMemoryPollRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, _, err := svc.Create(ctx, 1, CreateInput{Title: "   "}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected title required, got %v", err)
	}
	if _, _, err := svc.Create(ctx, 1, CreateInput{Title: strings.Repeat("x", MaxTitleLen+1)}); !errors.Is(err, ErrTitleTooLong) {
		t.Fatalf("expected title too long, got %v", err)
	}
	if _, _, err := svc.Create(ctx, 1, CreateInput{Title: "Dupes", Choices: []string{"a", " a "}}); !errors.Is(err, ErrChoiceExists) {
		t.Fatalf("expected duplicate choice error, got %v", err)
	}

	p, choices, err := svc.Create(ctx, 1, CreateInput{Title: "Kittens or kaboodles?", Choices: []string{"Kittens", "Kaboodles"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Status != StatusDraft || p.PublishedAt != nil {
		t.Fatalf("new polls must be drafts, got %s", p.Status)
	}
	if p.Slug != "kittens-or-kaboodles" {
		t.Fatalf("unexpected slug %q", p.Slug)
	}
	if len(choices) != 2 || choices[0].PollID != p.ID || choices[0].CreatorID != 1 {
		t.Fatalf("unexpected choices %+v", choices)
	}

	if _, _, err := svc.Create(ctx, 2, CreateInput{Title: "Kittens or kaboodles?"}); !errors.Is(err, ErrTitleTaken) {
		t.Fatalf("expected title taken, got %v", err)
	}

	second, _, err := svc.Create(ctx, 2, CreateInput{Title: "Kittens or kaboodles!"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.Slug != "kittens-or-kaboodles-2" {
		t.Fatalf("expected suffixed slug, got %q", second.Slug)
	}

	long, _, err := svc.Create(ctx, 2, CreateInput{Title: strings.Repeat("word ", 28)})
	if err != nil {
		t.Fatalf("create long: %v", err)
	}
	if len(long.Slug) > MaxSlugLen || strings.HasSuffix(long.Slug, "-") {
		t.Fatalf("slug not truncated cleanly: %q", long.Slug)
	}
}

func TestTransitionsAreOwnerOnly(t *testing.T) {
	repo := newMemoryPollRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, _, err := svc.Create(ctx, 1, CreateInput{Title: "Lunch?"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Transition(ctx, 2, p.ID, ActionPublish); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}
	if _, err := svc.Transition(ctx, 1, 999, ActionPublish); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Transition(ctx, 1, p.ID, ActionClose); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	got, err := svc.Transition(ctx, 1, p.ID, ActionPublish)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got.Status != StatusPublished || got.PublishedAt == nil {
		t.Fatalf("expected published poll, got %+v", got)
	}
	stored, _ := repo.GetByID(ctx, p.ID)
	if stored.Status != StatusPublished {
		t.Fatalf("status not persisted")
	}

	for _, a := range []Action{ActionClose, ActionReopen, ActionUnpublish} {
		if _, err := svc.Transition(ctx, 1, p.ID, a); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
	}
	stored, _ = repo.GetByID(ctx, p.ID)
	if !stored.IsDraft() || stored.PublishedAt != nil {
		t.Fatalf("expected draft after unpublish, got %+v", stored)
	}
}

func TestDraftVisibility(t *testing.T) {
	repo := newMemoryPollRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, _, _ := svc.Create(ctx, 1, CreateInput{Title: "Secret"})

	if _, err := svc.Get(ctx, p.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("draft must be hidden from others, got %v", err)
	}
	if _, err := svc.Get(ctx, p.ID, 1); err != nil {
		t.Fatalf("owner must see own draft: %v", err)
	}

	published, _ := svc.Transition(ctx, 1, p.ID, ActionPublish)
	at := published.PublishedAt.UTC()
	if _, err := svc.GetByPermalink(ctx, at.Year(), int(at.Month()), at.Day(), "secret", 0); err != nil {
		t.Fatalf("permalink lookup: %v", err)
	}
	if _, err := svc.GetByPermalink(ctx, at.Year()-1, int(at.Month()), at.Day(), "secret", 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong date must not resolve, got %v", err)
	}
}

func TestUpdateAndDeleteAreOwnerOnly(t *testing.T) {
	repo := newMemoryPollRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, _, _ := svc.Create(ctx, 1, CreateInput{Title: "Original"})
	_, _, _ = svc.Create(ctx, 1, CreateInput{Title: "Taken"})

	title := "Hello"
	if _, err := svc.Update(ctx, 2, p.ID, UpdateInput{Title: &title}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}
	stored, _ := repo.GetByID(ctx, p.ID)
	if stored.Title != "Original" {
		t.Fatalf("non-owner update must not apply")
	}

	taken := "Taken"
	if _, err := svc.Update(ctx, 1, p.ID, UpdateInput{Title: &taken}); !errors.Is(err, ErrTitleTaken) {
		t.Fatalf("expected title taken, got %v", err)
	}

	allow := true
	desc := "Hello World"
	updated, err := svc.Update(ctx, 1, p.ID, UpdateInput{Title: &title, Description: &desc, AllowNewChoices: &allow})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Hello" || updated.Description != "Hello World" || !updated.AllowNewChoices {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if updated.Slug != "original" {
		t.Fatalf("slug must not follow title edits, got %q", updated.Slug)
	}

	if err := svc.Delete(ctx, 2, p.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected not owner on delete, got %v", err)
	}
	if err := svc.Delete(ctx, 1, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted poll to be gone, got %v", err)
	}
}

func TestChoicesAndTally(t *testing.T) {
	repo := newMemoryPollRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, choices, _ := svc.Create(ctx, 1, CreateInput{Title: "Colour", Choices: []string{"Red", "Green"}})

	if _, err := svc.AddChoice(ctx, 2, p.ID, "Blue"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}
	if _, err := svc.AddChoice(ctx, 1, p.ID, "Red"); !errors.Is(err, ErrChoiceExists) {
		t.Fatalf("expected choice exists, got %v", err)
	}
	blue, err := svc.AddChoice(ctx, 1, p.ID, " Blue ")
	if err != nil {
		t.Fatalf("add choice: %v", err)
	}
	if blue.Text != "Blue" {
		t.Fatalf("expected trimmed text, got %q", blue.Text)
	}

	repo.votes[choices[0].ID] = 2
	repo.votes[blue.ID] = 1

	d, err := svc.Detail(ctx, p)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if d.NumberOfVotes != 3 || len(d.Choices) != 3 {
		t.Fatalf("unexpected detail %+v", d)
	}
	if d.Choices[0].Votes != 2 || d.Choices[1].Votes != 0 || d.Choices[2].Votes != 1 {
		t.Fatalf("unexpected per-choice votes %+v", d.Choices)
	}

	other, _, _ := svc.Create(ctx, 1, CreateInput{Title: "Other", Choices: []string{"X"}})
	otherChoices, _ := repo.ChoicesWithVotes(ctx, other.ID)
	if err := svc.DeleteChoice(ctx, 1, p.ID, otherChoices[0].ID); !errors.Is(err, ErrChoiceNotFound) {
		t.Fatalf("choice from another poll must not be deletable, got %v", err)
	}
	if err := svc.DeleteChoice(ctx, 1, p.ID, choices[0].ID); err != nil {
		t.Fatalf("delete choice: %v", err)
	}
	total, _ := repo.NumberOfVotes(ctx, p.ID)
	if total != 1 {
		t.Fatalf("votes for a deleted choice must go with it, got %d", total)
	}
}
