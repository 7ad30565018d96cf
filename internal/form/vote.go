package form

import (
	"encoding/json"
	"strconv"
	"strings"

	"molnet-polls/internal/domain/poll"
	"molnet-polls/internal/domain/vote"
)

// Other is the selection that picks the write-in text box.
const Other = "OTHER"

// Selection is the first half of the vote field: a choice id or Other. In
// JSON it may be sent as a number or a string.
type Selection string

func (s *Selection) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Selection(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = Selection(n.String())
	return nil
}

// VoteForm is the composite "choice with other" field. Browsers post it as
// choices_0 (the selection) and choices_1 (the write-in text).
type VoteForm struct {
	Choice Selection `json:"choice" form:"choices_0"`
	Other  string    `json:"other" form:"choices_1"`
}

func (f *VoteForm) clean() {
	f.Choice = Selection(strings.TrimSpace(string(f.Choice)))
	f.Other = strings.TrimSpace(f.Other)
}

// CleanVote turns the submitted pair into a ballot for a poll offering
// choices. Other is only a valid selection when allowOther is set, and then
// the write-in text is required.
func CleanVote(f VoteForm, choices []poll.Choice, allowOther bool) (vote.Ballot, Errors) {
	selected := strings.TrimSpace(string(f.Choice))
	if selected == "" {
		return vote.Ballot{}, Errors{"choice": "This field is required."}
	}

	if selected == Other {
		if !allowOther {
			return vote.Ballot{}, Errors{"choice": invalidChoice(selected)}
		}
		other := strings.TrimSpace(f.Other)
		switch {
		case other == "":
			return vote.Ballot{}, Errors{"other": "This field is required."}
		case len([]rune(other)) > poll.MaxChoiceLen:
			return vote.Ballot{}, Errors{"other": "Ensure this value has at most 255 characters."}
		}
		return vote.Ballot{WriteIn: other}, nil
	}

	id, err := strconv.ParseInt(selected, 10, 64)
	if err != nil {
		return vote.Ballot{}, Errors{"choice": invalidChoice(selected)}
	}
	for _, c := range choices {
		if c.ID == id {
			return vote.Ballot{ChoiceID: id}, nil
		}
	}
	return vote.Ballot{}, Errors{"choice": invalidChoice(selected)}
}

func invalidChoice(v string) string {
	return "Select a valid choice. " + v + " is not one of the available choices."
}
