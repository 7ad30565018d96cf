package form

import (
	"strings"

	"molnet-polls/internal/domain/poll"
)

type RegisterForm struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=254"`
	Username string `json:"username" form:"username" validate:"required,alphanum,min=3,max=32"`
	Password string `json:"password" form:"password" validate:"required,min=8,max=72"`
}

func (f *RegisterForm) clean() {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Username = strings.TrimSpace(f.Username)
}

type LoginForm struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (f *LoginForm) clean() {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
}

// PollForm creates a poll, optionally with its first choices.
type PollForm struct {
	Title           string   `json:"title" form:"title" validate:"required,max=140"`
	Description     string   `json:"description" form:"description" validate:"max=10000"`
	AllowNewChoices bool     `json:"allow_new_choices" form:"allow_new_choices"`
	Choices         []string `json:"choices" form:"choices" validate:"omitempty,max=100,unique,dive,required,max=255"`
}

func (f *PollForm) clean() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	for i := range f.Choices {
		f.Choices[i] = strings.TrimSpace(f.Choices[i])
	}
}

func (f *PollForm) Input() poll.CreateInput {
	return poll.CreateInput{
		Title:           f.Title,
		Description:     f.Description,
		AllowNewChoices: f.AllowNewChoices,
		Choices:         f.Choices,
	}
}

// UpdatePollForm edits only the fields that are present.
type UpdatePollForm struct {
	Title           *string `json:"title" form:"title" validate:"omitnil,max=140"`
	Description     *string `json:"description" form:"description" validate:"omitnil,max=10000"`
	AllowNewChoices *bool   `json:"allow_new_choices" form:"allow_new_choices"`
}

func (f *UpdatePollForm) clean() {
	if f.Title != nil {
		t := strings.TrimSpace(*f.Title)
		f.Title = &t
	}
}

func (f *UpdatePollForm) Input() poll.UpdateInput {
	return poll.UpdateInput{
		Title:           f.Title,
		Description:     f.Description,
		AllowNewChoices: f.AllowNewChoices,
	}
}

type ChoiceForm struct {
	Choice string `json:"choice" form:"choice" validate:"required,max=255"`
}

func (f *ChoiceForm) clean() {
	f.Choice = strings.TrimSpace(f.Choice)
}

type StatusForm struct {
	Action string `json:"action" form:"action" validate:"required"`
}

type RoleForm struct {
	Role string `json:"role" form:"role" validate:"required,oneof=user admin"`
}
