package subject

import (
	"context"
	"sync"

	"github.com/springreviewer/admin/core"
)

type (
	CreateFunc func(ctx context.Context, v Values) error
	UpdateFunc func(ctx context.Context, sub Subject, v Values) error
)

// Form is the create/edit dialog of a subject.
type Form struct {
	dialog   core.Dialog[Subject]
	deps     core.Deps
	onCreate CreateFunc
	onUpdate UpdateFunc

	mu     sync.Mutex
	values Values
	state  core.FormState
}

func NewForm(deps core.Deps, onCreate CreateFunc, onUpdate UpdateFunc) *Form {
	return &Form{deps: deps, onCreate: onCreate, onUpdate: onUpdate}
}

// Open opens the dialog in edit mode for sub, or in create mode when sub is nil.
func (f *Form) Open(sub *Subject) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Reset()
	if sub == nil {
		f.dialog.OpenCreate()
		f.values = Values{}
		return
	}
	f.dialog.OpenEdit(*sub)
	f.values = Values{Name: sub.Name}
}

func (f *Form) State() core.DialogState { return f.dialog.State() }
func (f *Form) IsOpen() bool            { return f.dialog.IsOpen() }
func (f *Form) Record() (Subject, bool) { return f.dialog.Record() }

// Errors returns the field errors keyed by JSON field name.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Errors()
}

// Focus names the first invalid field.
func (f *Form) Focus() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Focus()
}

func (f *Form) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Loading()
}

func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form) SetName(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Name = s
}

// SetValues replaces every field at once.
func (f *Form) SetValues(v Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = v
}

// Validate runs every field rule and records the failures.
func (f *Form) Validate() (Values, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	vals := f.values
	vals.Clean()
	err := core.ValidateStruct(f.deps.Validate, f.deps.Translator, vals)
	f.state.SetErrors(err)
	return vals, err
}

// Submit validates the form and hands the values to the create or update callback.
// The dialog stays open when the callback fails.
func (f *Form) Submit(ctx context.Context) error {
	if !f.dialog.IsOpen() {
		return core.ErrDialogClosed
	}
	vals, err := f.Validate()
	if err != nil {
		return err
	}

	f.setLoading(true)
	defer f.setLoading(false)
	if sub, editing := f.dialog.Record(); editing {
		err = f.onUpdate(ctx, sub, vals)
	} else {
		err = f.onCreate(ctx, vals)
	}
	if err != nil {
		f.deps.Logger.Error("subject form: submit", err)
	}
	return err
}

func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dialog.Close()
	f.state.Reset()
	f.values = Values{}
}

func (f *Form) HandleKey(ctx context.Context, k core.Key) error {
	return f.dialog.HandleKey(k, func() error { return f.Submit(ctx) }, f.Cancel)
}

func (f *Form) setLoading(loading bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.SetLoading(loading)
}
