package api

import (
	"database/sql"
	"errors"
	"net/http"

	"molnet-polls/internal/domain/poll"
	"molnet-polls/internal/domain/user"
	"molnet-polls/internal/domain/vote"
	"molnet-polls/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		slogLogger.Error("request failed", "error", err)
	}
	writeJSON(w, appErr.StatusCode(), appErr)
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid_credentials", "invalid credentials", err)
	case errors.Is(err, user.ErrInactiveUser):
		return apperr.Unauthorized("inactive_user", "user is inactive", err)
	case errors.Is(err, user.ErrEmailTaken):
		return apperr.FieldError("email", "A user with that email already exists.", err)
	case errors.Is(err, user.ErrUsernameTaken):
		return apperr.FieldError("username", "A user with that username already exists.", err)
	case errors.Is(err, user.ErrInvalidRole):
		return apperr.FieldError("role", "Select a valid role.", err)
	case errors.Is(err, user.ErrNotFound):
		return apperr.NotFound("user_not_found", "user not found", err)

	case errors.Is(err, poll.ErrNotFound):
		return apperr.NotFound("poll_not_found", "poll not found", err)
	case errors.Is(err, poll.ErrNotOwner):
		return apperr.Forbidden("not_owner", "only the poll's creator may change it", err)
	case errors.Is(err, poll.ErrInvalidTransition):
		return apperr.Conflict("invalid_transition", err.Error(), err)
	case errors.Is(err, poll.ErrUnknownAction):
		return apperr.FieldError("action", "Select one of publish, close, reopen or unpublish.", err)
	case errors.Is(err, poll.ErrInvalidStatus):
		return apperr.BadRequest("invalid_status", "invalid poll status", err)
	case errors.Is(err, poll.ErrTitleRequired):
		return apperr.FieldError("title", "This field is required.", err)
	case errors.Is(err, poll.ErrTitleTooLong):
		return apperr.FieldError("title", "Ensure this value has at most 140 characters.", err)
	case errors.Is(err, poll.ErrTitleTaken):
		return apperr.FieldError("title", "Poll with this title already exists.", err)
	case errors.Is(err, poll.ErrSlugUnavailable):
		return apperr.FieldError("title", "Choose a more distinctive title.", err)
	case errors.Is(err, poll.ErrChoiceNotFound):
		return apperr.NotFound("choice_not_found", "choice not found", err)
	case errors.Is(err, poll.ErrChoiceRequired), errors.Is(err, poll.ErrChoiceTooLong), errors.Is(err, poll.ErrChoiceExists):
		return choiceFieldError("choice", err)

	case errors.Is(err, vote.ErrPollNotFound):
		return apperr.NotFound("poll_not_found", "poll not found", err)
	case errors.Is(err, vote.ErrPollNotOpen):
		return apperr.Conflict("poll_not_open", "poll is not open for voting", err)
	case errors.Is(err, vote.ErrChoiceNotInPoll), errors.Is(err, vote.ErrWriteInNotAllowed):
		return apperr.FieldError("choice", "Select a valid choice.", err)
	case errors.Is(err, vote.ErrEmptyBallot):
		return apperr.FieldError("choice", "This field is required.", err)
	case errors.Is(err, vote.ErrNotFound):
		return apperr.NotFound("vote_not_found", "vote not found", err)

	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not_found", "resource not found", err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}

// choiceFieldError reports a choice text problem against field, which is
// "choices" on the poll form and "choice" everywhere else.
func choiceFieldError(field string, err error) *apperr.AppError {
	switch {
	case errors.Is(err, poll.ErrChoiceRequired):
		return apperr.FieldError(field, "This field is required.", err)
	case errors.Is(err, poll.ErrChoiceTooLong):
		return apperr.FieldError(field, "Ensure this value has at most 255 characters.", err)
	default:
		return apperr.FieldError(field, "Choice with this text already exists for this poll.", err)
	}
}
