package services

import (
	"errors"

	"github.com/yeremiapane/foodiego/models"
	"github.com/yeremiapane/foodiego/utils"
)

// Error kinds surfaced by domain actions. Callers only ever see the message;
// ErrUnauthorized and ErrForbidden intentionally share it.
var (
	ErrInvalidFields      = errors.New("Invalid fields")
	ErrUnauthorized       = errors.New("Unauthorized")
	ErrForbidden          = errors.New("Unauthorized")
	ErrEmailExists        = errors.New("Email already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrNotFound           = errors.New("Not found")
	ErrSomethingWentWrong = errors.New("Something went wrong")
)

// ActionResult is the discriminated outcome of a mutating action:
// exactly one of Success or Error is set.
type ActionResult struct {
	Success string        `json:"success,omitempty"`
	Error   string        `json:"error,omitempty"`
	Order   *models.Order `json:"order,omitempty"`

	kind error
}

func succeeded(message string) ActionResult {
	return ActionResult{Success: message}
}

// failed builds an error result. An empty message falls back to the kind's text.
func failed(kind error, message string) ActionResult {
	if message == "" {
		message = kind.Error()
	}
	return ActionResult{Error: message, kind: kind}
}

// OK reports whether the action succeeded.
func (r ActionResult) OK() bool {
	return r.Error == ""
}

// Kind returns the sentinel error behind a failed result, nil on success.
func (r ActionResult) Kind() error {
	if r.OK() {
		return nil
	}
	if r.kind == nil {
		return ErrSomethingWentWrong
	}
	return r.kind
}

// logActionError records a store failure; the caller gets a generic result.
func logActionError(action string, err error) {
	utils.ErrorLogger.WithError(err).WithField("action", action).Error("action failed")
}
