package form

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"molnet-polls/internal/domain/poll"
	"molnet-polls/internal/platform/apperr"
)

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestBindPollFormJSON(t *testing.T) {
	var f PollForm
	err := Bind(jsonRequest(`{"title":"  Lunch?  ","allow_new_choices":true,"choices":[" pizza ","sushi"]}`), &f)
	require.NoError(t, err)
	assert.Equal(t, "Lunch?", f.Title)
	assert.True(t, f.AllowNewChoices)
	assert.Equal(t, []string{"pizza", "sushi"}, f.Choices)
}

func TestBindPollFormURLEncoded(t *testing.T) {
	var f PollForm
	err := Bind(formRequest(url.Values{
		"title":             {"Lunch?"},
		"allow_new_choices": {"on"},
		"choices":           {"pizza", "sushi"},
	}), &f)
	require.NoError(t, err)
	assert.True(t, f.AllowNewChoices)
	assert.Len(t, f.Choices, 2)
}

func TestBindReportsFieldErrors(t *testing.T) {
	var f PollForm
	err := Bind(jsonRequest(`{"title":"   ","choices":["a","a",""]}`), &f)

	var appErr *apperr.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode())
	assert.Equal(t, "This field is required.", appErr.Fields["title"])
	assert.Contains(t, appErr.Fields, "choices")
}

func TestBindTitleTooLong(t *testing.T) {
	var f PollForm
	err := Bind(jsonRequest(`{"title":"`+strings.Repeat("x", poll.MaxTitleLen+1)+`"}`), &f)

	var appErr *apperr.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Ensure this value has at most 140 characters.", appErr.Fields["title"])
}

func TestDecodeRejectsBrokenJSON(t *testing.T) {
	var f PollForm
	err := Decode(jsonRequest(`{"title":`), &f)

	var appErr *apperr.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
}

func TestRegisterFormValidation(t *testing.T) {
	var f RegisterForm
	err := Bind(jsonRequest(`{"email":"not-an-email","username":"ab","password":"short"}`), &f)

	var appErr *apperr.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Enter a valid email address.", appErr.Fields["email"])
	assert.Equal(t, "Ensure this value has at least 3 characters.", appErr.Fields["username"])
	assert.Equal(t, "Ensure this value has at least 8 characters.", appErr.Fields["password"])
}

func TestVoteFormDecoding(t *testing.T) {
	var f VoteForm
	require.NoError(t, Decode(jsonRequest(`{"choice": 12}`), &f))
	assert.Equal(t, Selection("12"), f.Choice)

	f = VoteForm{}
	require.NoError(t, Decode(jsonRequest(`{"choice": "OTHER", "other": " Tacos "}`), &f))
	assert.Equal(t, Selection(Other), f.Choice)
	assert.Equal(t, "Tacos", f.Other)

	f = VoteForm{}
	require.NoError(t, Decode(formRequest(url.Values{"choices_0": {"OTHER"}, "choices_1": {"Tacos"}}), &f))
	assert.Equal(t, Selection(Other), f.Choice)
	assert.Equal(t, "Tacos", f.Other)
}

func TestCleanVote(t *testing.T) {
	choices := []poll.Choice{{ID: 1, Text: "Pizza"}, {ID: 2, Text: "Sushi"}}

	tests := []struct {
		name       string
		form       VoteForm
		allowOther bool
		wantID     int64
		wantText   string
		wantField  string
	}{
		{name: "existing choice", form: VoteForm{Choice: "2"}, wantID: 2},
		{name: "other ignored for existing choice", form: VoteForm{Choice: "1", Other: "x"}, allowOther: true, wantID: 1},
		{name: "missing selection", form: VoteForm{}, wantField: "choice"},
		{name: "unknown choice", form: VoteForm{Choice: "9"}, wantField: "choice"},
		{name: "garbage selection", form: VoteForm{Choice: "abc"}, wantField: "choice"},
		{name: "other not allowed", form: VoteForm{Choice: Other, Other: "Tacos"}, wantField: "choice"},
		{name: "other without text", form: VoteForm{Choice: Other, Other: "  "}, allowOther: true, wantField: "other"},
		{name: "other too long", form: VoteForm{Choice: Other, Other: strings.Repeat("x", 256)}, allowOther: true, wantField: "other"},
		{name: "write-in", form: VoteForm{Choice: Other, Other: " Tacos "}, allowOther: true, wantText: "Tacos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ballot, errs := CleanVote(tt.form, choices, tt.allowOther)
			if tt.wantField != "" {
				assert.Contains(t, errs, tt.wantField)
				return
			}
			require.Empty(t, errs)
			assert.Equal(t, tt.wantID, ballot.ChoiceID)
			assert.Equal(t, tt.wantText, ballot.WriteIn)
		})
	}
}
