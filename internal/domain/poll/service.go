package poll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

var (
	ErrNotFound        = errors.New("poll not found")
	ErrNotOwner        = errors.New("only the poll's creator may change it")
	ErrTitleRequired   = errors.New("title required")
	ErrTitleTooLong    = errors.New("title is too long")
	ErrTitleTaken      = errors.New("a poll with this title already exists")
	ErrChoiceRequired  = errors.New("choice text required")
	ErrChoiceTooLong   = errors.New("choice text is too long")
	ErrChoiceExists    = errors.New("choice already exists for this poll")
	ErrChoiceNotFound  = errors.New("choice not found")
	ErrInvalidStatus   = errors.New("invalid poll status")
	ErrSlugUnavailable = errors.New("could not derive a free slug from the title")
)

const maxSlugAttempts = 50

type CreateInput struct {
	Title           string
	Description     string
	AllowNewChoices bool
	Choices         []string
}

// Detail is a poll together with its tallied choices.
type Detail struct {
	Poll
	Choices       []Choice `json:"choices"`
	NumberOfVotes int64    `json:"number_of_votes"`
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }}
}

func (s *Service) Create(ctx context.Context, creatorID int64, in CreateInput) (*Poll, []Choice, error) {
	title, err := cleanTitle(in.Title)
	if err != nil {
		return nil, nil, err
	}
	taken, err := s.repo.TitleExists(ctx, title, 0)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, ErrTitleTaken
	}

	choices := make([]Choice, 0, len(in.Choices))
	seen := make(map[string]bool, len(in.Choices))
	now := s.now()
	for _, raw := range in.Choices {
		text, err := cleanChoice(raw)
		if err != nil {
			return nil, nil, err
		}
		if seen[text] {
			return nil, nil, fmt.Errorf("%w: %q", ErrChoiceExists, text)
		}
		seen[text] = true
		choices = append(choices, Choice{Text: text, CreatorID: creatorID, CreatedAt: now})
	}

	sl, err := s.freeSlug(ctx, title)
	if err != nil {
		return nil, nil, err
	}

	p := &Poll{
		Slug:            sl,
		Title:           title,
		Description:     strings.TrimSpace(in.Description),
		CreatorID:       creatorID,
		AllowNewChoices: in.AllowNewChoices,
		Status:          StatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, p, choices); err != nil {
		return nil, nil, err
	}
	return p, choices, nil
}

// Get returns a poll visible to viewerID. Drafts are only visible to their creator.
func (s *Service) Get(ctx context.Context, id, viewerID int64) (*Poll, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if p.IsDraft() && p.CreatorID != viewerID {
		return nil, ErrNotFound
	}
	return p, nil
}

// GetByPermalink resolves /archive/{year}/{month}/{day}/{slug}.
func (s *Service) GetByPermalink(ctx context.Context, year, month, day int, sl string, viewerID int64) (*Poll, error) {
	p, err := s.repo.GetBySlug(ctx, sl)
	if err != nil {
		return nil, notFound(err)
	}
	if p.PublishedAt == nil || p.IsDraft() {
		return nil, ErrNotFound
	}
	at := p.PublishedAt.UTC()
	if at.Year() != year || int(at.Month()) != month || at.Day() != day {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) Detail(ctx context.Context, p *Poll) (*Detail, error) {
	choices, err := s.repo.ChoicesWithVotes(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.NumberOfVotes(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if choices == nil {
		choices = []Choice{}
	}
	return &Detail{Poll: *p, Choices: choices, NumberOfVotes: total}, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, in UpdateInput) (*Poll, error) {
	p, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title, err := cleanTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		if title != p.Title {
			taken, err := s.repo.TitleExists(ctx, title, p.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrTitleTaken
			}
		}
		p.Title = title
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.AllowNewChoices != nil {
		p.AllowNewChoices = *in.AllowNewChoices
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return err
	}
	return notFound(s.repo.Delete(ctx, id))
}

// Transition applies a lifecycle action on behalf of the poll's creator.
func (s *Service) Transition(ctx context.Context, actorID, id int64, a Action) (*Poll, error) {
	p, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if err := p.apply(a, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.SetStatus(ctx, p); err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *Service) AddChoice(ctx context.Context, actorID, pollID int64, text string) (*Choice, error) {
	if _, err := s.owned(ctx, actorID, pollID); err != nil {
		return nil, err
	}
	text, err := cleanChoice(text)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.ChoiceExists(ctx, pollID, text)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrChoiceExists
	}

	c := &Choice{PollID: pollID, Text: text, CreatorID: actorID, CreatedAt: s.now()}
	if err := s.repo.AddChoice(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteChoice removes a choice, and with it every vote cast for it.
func (s *Service) DeleteChoice(ctx context.Context, actorID, pollID, choiceID int64) error {
	if _, err := s.owned(ctx, actorID, pollID); err != nil {
		return err
	}
	c, err := s.repo.GetChoice(ctx, choiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrChoiceNotFound
		}
		return err
	}
	if c.PollID != pollID {
		return ErrChoiceNotFound
	}
	return s.repo.DeleteChoice(ctx, choiceID)
}

func (s *Service) Recent(ctx context.Context, limit int) ([]Poll, error) {
	return s.repo.Recent(ctx, limit)
}

func (s *Service) CreatedBy(ctx context.Context, userID int64) ([]Poll, error) {
	return s.repo.CreatedBy(ctx, userID)
}

func (s *Service) AnsweredBy(ctx context.Context, userID int64) ([]Poll, error) {
	return s.repo.AnsweredBy(ctx, userID)
}

// AdminList lists every poll regardless of owner or status.
func (s *Service) AdminList(ctx context.Context, f Filter) ([]Poll, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	f.Query = strings.TrimSpace(f.Query)
	return s.repo.List(ctx, f)
}

func (s *Service) AdminDelete(ctx context.Context, id int64) error {
	return notFound(s.repo.Delete(ctx, id))
}

func (s *Service) AdminDeleteChoice(ctx context.Context, choiceID int64) error {
	err := s.repo.DeleteChoice(ctx, choiceID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrChoiceNotFound
	}
	return err
}

func (s *Service) owned(ctx context.Context, actorID, id int64) (*Poll, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if p.CreatorID != actorID {
		return nil, ErrNotOwner
	}
	return p, nil
}

// freeSlug derives a slug from title, suffixing -2, -3, ... until unused.
func (s *Service) freeSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "poll"
	}
	for i := 1; i <= maxSlugAttempts; i++ {
		candidate := base
		suffix := ""
		if i > 1 {
			suffix = fmt.Sprintf("-%d", i)
		}
		if len(candidate)+len(suffix) > MaxSlugLen {
			candidate = strings.TrimRight(candidate[:MaxSlugLen-len(suffix)], "-")
		}
		candidate += suffix

		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrSlugUnavailable
}

func cleanTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", ErrTitleRequired
	}
	if len([]rune(title)) > MaxTitleLen {
		return "", ErrTitleTooLong
	}
	return title, nil
}

func cleanChoice(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ErrChoiceRequired
	}
	if len([]rune(text)) > MaxChoiceLen {
		return "", ErrChoiceTooLong
	}
	return text, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
