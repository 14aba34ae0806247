package core

import (
	"sync"

	"github.com/pkg/errors"
)

// DialogState is the state of an entity dialog.
type DialogState int

const (
	DialogClosed DialogState = iota
	DialogCreating
	DialogEditing
)

func (s DialogState) String() string {
	switch s {
	case DialogCreating:
		return "creating"
	case DialogEditing:
		return "editing"
	default:
		return "closed"
	}
}

// Dialog is the finite-state object behind every create/edit dialog:
// closed | creating | editing(record).
// Every transition starts a new session; work started in an older session must be discarded.
type Dialog[T any] struct {
	mu      sync.RWMutex
	state   DialogState
	record  T
	session uint64
}

func (d *Dialog[T]) transition(state DialogState, rec T) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = state
	d.record = rec
	d.session++
	return d.session
}

// OpenCreate moves the dialog to the creating state.
func (d *Dialog[T]) OpenCreate() uint64 {
	var zero T
	return d.transition(DialogCreating, zero)
}

// OpenEdit moves the dialog to the editing state for rec.
func (d *Dialog[T]) OpenEdit(rec T) uint64 {
	return d.transition(DialogEditing, rec)
}

// Close moves the dialog to the closed state.
func (d *Dialog[T]) Close() {
	var zero T
	d.transition(DialogClosed, zero)
}

func (d *Dialog[T]) State() DialogState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

func (d *Dialog[T]) IsOpen() bool { return d.State() != DialogClosed }

// Record returns the record being edited; ok is false unless the dialog is editing.
func (d *Dialog[T]) Record() (rec T, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.state != DialogEditing {
		return rec, false
	}
	return d.record, true
}

// Current reports whether `session` is still the live session of an open dialog.
func (d *Dialog[T]) Current(session uint64) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state != DialogClosed && d.session == session
}

// Key is a keyboard event delivered to an open dialog.
type Key int

const (
	KeyEnter Key = iota
	KeyCtrlEnter
	KeyMetaEnter
	KeyEscape
)

// IsConfirmChord reports whether k is the modifier+Enter confirm shortcut.
func (k Key) IsConfirmChord() bool { return k == KeyCtrlEnter || k == KeyMetaEnter }

// HandleKey maps a keyboard event onto submit or cancel. Keys are ignored while the dialog is closed.
func (d *Dialog[T]) HandleKey(k Key, submit func() error, cancel func()) error {
	if !d.IsOpen() {
		return nil
	}
	switch {
	case k.IsConfirmChord():
		return submit()
	case k == KeyEscape:
		cancel()
	}
	return nil
}

// FormState holds the field-scoped validation errors and disabled fields of a form.
// It is not safe for concurrent use; forms guard it with their own lock.
type FormState struct {
	errs     []FieldError
	disabled map[string]bool
	loading  bool
}

// Reset clears errors, disabled fields and the loading flag.
func (fs *FormState) Reset() {
	fs.errs = nil
	fs.disabled = nil
	fs.loading = false
}

// SetErrors replaces the field errors with those carried by err (a *ValidationError).
func (fs *FormState) SetErrors(err error) {
	fs.errs = nil
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		fs.errs = append(fs.errs, vErr.Fields...)
	}
}

// SetFieldError sets (or clears, when msg is empty) the error of a single field.
func (fs *FormState) SetFieldError(field, msg string) {
	for i, fe := range fs.errs {
		if fe.Field == field {
			if msg == "" {
				fs.errs = append(fs.errs[:i], fs.errs[i+1:]...)
			} else {
				fs.errs[i].Error = msg
			}
			return
		}
	}
	if msg != "" {
		fs.errs = append(fs.errs, FieldError{Field: field, Error: msg})
	}
}

// Errors returns a copy of the field errors keyed by field.
func (fs *FormState) Errors() map[string]string {
	return ValidationError{Fields: fs.errs}.FieldMap()
}

// Focus returns the first invalid field, or "" when the form is valid.
func (fs *FormState) Focus() string {
	if len(fs.errs) == 0 {
		return ""
	}
	return fs.errs[0].Field
}

func (fs *FormState) Disable(field string) {
	if fs.disabled == nil {
		fs.disabled = make(map[string]bool)
	}
	fs.disabled[field] = true
}

func (fs *FormState) Disabled(field string) bool { return fs.disabled[field] }

func (fs *FormState) SetLoading(loading bool) { fs.loading = loading }

func (fs *FormState) Loading() bool { return fs.loading }
