package poll

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Action string

const (
	ActionPublish   Action = "publish"
	ActionClose     Action = "close"
	ActionReopen    Action = "reopen"
	ActionUnpublish Action = "unpublish"
)

var (
	ErrUnknownAction     = errors.New("unknown poll action")
	ErrInvalidTransition = errors.New("transition not allowed from current status")
)

// transitions lists the statuses each action may start from and where it leads.
var transitions = map[Action]struct {
	from []Status
	to   Status
}{
	ActionPublish:   {from: []Status{StatusDraft}, to: StatusPublished},
	ActionClose:     {from: []Status{StatusPublished}, to: StatusClosed},
	ActionReopen:    {from: []Status{StatusClosed}, to: StatusPublished},
	ActionUnpublish: {from: []Status{StatusPublished, StatusClosed}, to: StatusDraft},
}

func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if a == "re-open" {
		a = ActionReopen
	}
	if _, ok := transitions[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}

// Next returns the status the action leads to from s.
func (s Status) Next(a Action) (Status, error) {
	t, ok := transitions[a]
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	for _, from := range t.from {
		if from == s {
			return t.to, nil
		}
	}
	return s, fmt.Errorf("%w: cannot %s a %s poll", ErrInvalidTransition, a, strings.ToLower(string(s)))
}

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusClosed
}

// apply moves p through a and stamps the timestamps the action implies.
// Publishing stamps published_at; reopening keeps the original date so the
// permalink stays stable; unpublishing clears it.
func (p *Poll) apply(a Action, now time.Time) error {
	next, err := p.Status.Next(a)
	if err != nil {
		return err
	}
	switch a {
	case ActionPublish:
		at := now
		p.PublishedAt = &at
	case ActionReopen:
		if p.PublishedAt == nil {
			at := now
			p.PublishedAt = &at
		}
	case ActionUnpublish:
		p.PublishedAt = nil
	}
	p.Status = next
	p.UpdatedAt = now
	return nil
}
