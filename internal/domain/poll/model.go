package poll

import (
	"context"
	"fmt"
	"time"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusClosed    Status = "CLOSED"
)

const (
	MaxTitleLen  = 140
	MaxSlugLen   = 80
	MaxChoiceLen = 255
)

type Poll struct {
	ID              int64      `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CreatorID       int64      `json:"creator_id"`
	CreatorName     string     `json:"creator_name,omitempty"`
	AllowNewChoices bool       `json:"allow_new_choices"`
	Status          Status     `json:"status"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (p *Poll) IsDraft() bool     { return p.Status == StatusDraft }
func (p *Poll) IsPublished() bool { return p.Status != StatusDraft }
func (p *Poll) IsClosed() bool    { return p.Status == StatusClosed }

// Permalink is the date based path of a published poll, or "" for drafts.
func (p *Poll) Permalink() string {
	if p.IsDraft() || p.PublishedAt == nil {
		return ""
	}
	at := p.PublishedAt.UTC()
	return fmt.Sprintf("/archive/%d/%d/%d/%s", at.Year(), int(at.Month()), at.Day(), p.Slug)
}

type Choice struct {
	ID        int64     `json:"id"`
	PollID    int64     `json:"poll_id"`
	Text      string    `json:"text"`
	CreatorID int64     `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
	Votes     int64     `json:"votes"`
}

// Filter narrows the administrative poll listing.
type Filter struct {
	Status *Status
	Query  string
	Limit  int
}

type UpdateInput struct {
	Title           *string
	Description     *string
	AllowNewChoices *bool
}

type Repository interface {
	Create(ctx context.Context, p *Poll, choices []Choice) error
	GetByID(ctx context.Context, id int64) (*Poll, error)
	GetBySlug(ctx context.Context, slug string) (*Poll, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	TitleExists(ctx context.Context, title string, exceptID int64) (bool, error)
	Update(ctx context.Context, p *Poll) error
	SetStatus(ctx context.Context, p *Poll) error
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context, f Filter) ([]Poll, error)
	Recent(ctx context.Context, limit int) ([]Poll, error)
	CreatedBy(ctx context.Context, userID int64) ([]Poll, error)
	AnsweredBy(ctx context.Context, userID int64) ([]Poll, error)

	ChoicesWithVotes(ctx context.Context, pollID int64) ([]Choice, error)
	GetChoice(ctx context.Context, id int64) (*Choice, error)
	ChoiceExists(ctx context.Context, pollID int64, text string) (bool, error)
	AddChoice(ctx context.Context, c *Choice) error
	DeleteChoice(ctx context.Context, id int64) error
	NumberOfVotes(ctx context.Context, pollID int64) (int64, error)
}
