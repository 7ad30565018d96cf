package vote

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"molnet-polls/internal/domain/poll"
)

var (
	ErrPollNotFound      = errors.New("poll not found")
	ErrPollNotOpen       = errors.New("poll is not open for voting")
	ErrChoiceNotInPoll   = errors.New("choice does not belong to poll")
	ErrWriteInNotAllowed = errors.New("poll does not accept new choices")
	ErrEmptyBallot       = errors.New("ballot has no choice")
	ErrNotFound          = errors.New("vote not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }}
}

// Cast records userID's single vote on pollID. A second ballot on the same
// poll replaces the first.
func (s *Service) Cast(ctx context.Context, userID, pollID int64, b Ballot) (*CastResult, error) {
	b.WriteIn = strings.TrimSpace(b.WriteIn)
	if b.ChoiceID == 0 && b.WriteIn == "" {
		return nil, ErrEmptyBallot
	}

	state, err := s.repo.PollState(ctx, pollID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	if state.Status != poll.StatusPublished {
		return nil, ErrPollNotOpen
	}
	if b.IsWriteIn() {
		if !state.AllowNewChoices {
			return nil, ErrWriteInNotAllowed
		}
		if len([]rune(b.WriteIn)) > poll.MaxChoiceLen {
			return nil, poll.ErrChoiceTooLong
		}
	}

	in := CastInput{UserID: userID, PollID: pollID, At: s.now()}
	if b.IsWriteIn() {
		in.WriteIn = b.WriteIn
	} else {
		in.ChoiceID = b.ChoiceID
	}
	return s.repo.Cast(ctx, in)
}

// Current returns the caller's vote on the poll.
func (s *Service) Current(ctx context.Context, userID, pollID int64) (*Vote, error) {
	v, err := s.repo.ForUser(ctx, userID, pollID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *Service) ListByPoll(ctx context.Context, pollID int64) ([]Vote, error) {
	return s.repo.ListByPoll(ctx, pollID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

type Result struct {
	ChoiceID   int64   `json:"choice_id"`
	Text       string  `json:"text"`
	Votes      int64   `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// Summarize turns tallied choices into results with percentages of total.
func Summarize(choices []poll.Choice, total int64) []Result {
	results := make([]Result, 0, len(choices))
	for _, c := range choices {
		var p float64
		if total > 0 {
			p = float64(c.Votes) * 100.0 / float64(total)
		}
		results = append(results, Result{
			ChoiceID:   c.ID,
			Text:       c.Text,
			Votes:      c.Votes,
			Percentage: p,
		})
	}
	return results
}
