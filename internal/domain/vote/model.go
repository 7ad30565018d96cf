package vote

import (
	"context"
	"time"

	"molnet-polls/internal/domain/poll"
)

type Vote struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PollID    int64     `json:"poll_id"`
	ChoiceID  int64     `json:"choice_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ballot is a cleaned vote submission: either an existing choice or a
// write-in text, never both.
type Ballot struct {
	ChoiceID int64
	WriteIn  string
}

func (b Ballot) IsWriteIn() bool { return b.WriteIn != "" }

// PollState is the part of a poll that decides whether it accepts a ballot.
type PollState struct {
	Status          poll.Status
	AllowNewChoices bool
}

type CastInput struct {
	UserID   int64
	PollID   int64
	ChoiceID int64
	WriteIn  string
	At       time.Time
}

type CastResult struct {
	Vote          Vote        `json:"vote"`
	Choice        poll.Choice `json:"choice"`
	Replaced      bool        `json:"replaced"`
	ChoiceCreated bool        `json:"choice_created"`
}

type Repository interface {
	PollState(ctx context.Context, pollID int64) (PollState, error)
	// Cast resolves the ballot's choice (creating a write-in when needed) and
	// repoints the voter's existing vote on the poll or inserts one, all in a
	// single transaction.
	Cast(ctx context.Context, in CastInput) (*CastResult, error)
	ForUser(ctx context.Context, userID, pollID int64) (*Vote, error)
	ListByPoll(ctx context.Context, pollID int64) ([]Vote, error)
	Delete(ctx context.Context, id int64) error
}
