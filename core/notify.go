package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Notifier is the user-notification sink of a screen.
// Notices are transient and never block the caller.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// Confirmer asks the user for an explicit confirmation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to a Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) { return f(ctx, prompt) }

// AlwaysConfirm is used when the confirmation already happened elsewhere (e.g. in the browser).
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// ReportError translates err into a user-facing message and sends it to n.
// It is the only place where transport errors become user messages.
func ReportError(n Notifier, err error) {
	if err == nil || n == nil {
		return
	}
	n.Error(ErrorMessage(err))
}

// ErrorMessage returns the user-facing message for err.
func ErrorMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		if len(vErr.Fields) == 0 {
			return "Invalid data: " + vErr.Error()
		}
		msgs := make([]string, 0, len(vErr.Fields))
		for _, fe := range vErr.Fields {
			msgs = append(msgs, fe.Error)
		}
		return "Invalid data: " + strings.Join(msgs, "; ")
	}

	if IsNotFound(err) {
		return "The requested record was not found."
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == 0 {
			return "Could not reach the server. Check your connection and try again."
		}
		if apiErr.Message != "" {
			return fmt.Sprintf("Request failed (%d): %s", apiErr.Status, apiErr.Message)
		}
		return fmt.Sprintf("Request failed with status %d.", apiErr.Status)
	}
	return "Something went wrong: " + errors.Cause(err).Error()
}
