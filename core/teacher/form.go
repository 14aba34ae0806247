package teacher

import (
	"context"
	"sync"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/subject"
)

// FieldSubjects is the form field holding the selected subject ids.
const FieldSubjects = "subjectIds"

type (
	// CreateFunc and UpdateFunc receive the selected subject ids.
	// A nil selection means the subject lookup failed and the links must be left untouched.
	CreateFunc func(ctx context.Context, v Values, subjectIDs []int) error
	UpdateFunc func(ctx context.Context, t Teacher, v Values, subjectIDs []int) error
)

// Form is the create/edit dialog of a teacher, with its subject multi-select.
type Form struct {
	dialog      core.Dialog[Teacher]
	deps        core.Deps
	subjectRepo SubjectLister
	onCreate    CreateFunc
	onUpdate    UpdateFunc

	mu         sync.Mutex
	values     Values
	subjectIDs []int
	subjects   []subject.Subject
	state      core.FormState
}

func NewForm(deps core.Deps, subjectRepo SubjectLister, onCreate CreateFunc, onUpdate UpdateFunc) *Form {
	return &Form{
		deps:        deps,
		subjectRepo: subjectRepo,
		onCreate:    onCreate,
		onUpdate:    onUpdate,
	}
}

// Open opens the dialog in edit mode for t (create mode when t is nil) and loads the subject lookup.
// A failed lookup disables the subject field; the dialog is open either way.
func (f *Form) Open(ctx context.Context, t *Teacher) {
	f.mu.Lock()
	f.state.Reset()
	f.subjects = nil
	f.subjectIDs = nil
	var session uint64
	if t == nil {
		session = f.dialog.OpenCreate()
		f.values = Values{}
	} else {
		session = f.dialog.OpenEdit(*t)
		f.values = Values{Surname: t.Surname, Name: t.Name, Patronym: t.Patronym}
	}
	f.state.SetLoading(true)
	f.mu.Unlock()

	subjects, err := f.subjectRepo.QueryAll(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.dialog.Current(session) {
		return
	}
	f.state.SetLoading(false)
	if err != nil {
		f.deps.Logger.Error("teacher form: loading subjects", err)
		f.deps.Notifier.Error("Could not load the subject list.")
		f.state.Disable(FieldSubjects)
		return
	}
	f.subjects = subjects
	f.subjectIDs = []int{}
	if t != nil {
		f.subjectIDs = ResolveSubjectIDs(t.Subjects, subjects)
	}
}

func (f *Form) State() core.DialogState { return f.dialog.State() }
func (f *Form) IsOpen() bool            { return f.dialog.IsOpen() }
func (f *Form) Record() (Teacher, bool) { return f.dialog.Record() }

func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Errors()
}

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

func (f *Form) Disabled(field string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Disabled(field)
}

func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form) SetValues(v Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = v
}

func (f *Form) SetSurname(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Surname = s
}

func (f *Form) SetName(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Name = s
}

func (f *Form) SetPatronym(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Patronym = s
}

// Subjects returns the subject lookup loaded on open.
func (f *Form) Subjects() []subject.Subject {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]subject.Subject(nil), f.subjects...)
}

// SubjectIDs returns the selected subject ids; nil while the subject field is disabled.
func (f *Form) SubjectIDs() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subjectIDs == nil {
		return nil
	}
	return append([]int{}, f.subjectIDs...)
}

// SetSubjectIDs replaces the selection. It is ignored while the subject field is disabled.
func (f *Form) SetSubjectIDs(ids []int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Disabled(FieldSubjects) {
		return
	}
	f.subjectIDs = append([]int{}, ids...)
}

func (f *Form) Validate() (Values, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	vals := f.values
	vals.Clean()
	err := core.ValidateStruct(f.deps.Validate, f.deps.Translator, vals)
	f.state.SetErrors(err)
	return vals, err
}

// Submit validates the form and hands the values and subject selection to the create or update callback.
// The dialog stays open when the callback fails.
func (f *Form) Submit(ctx context.Context) error {
	if !f.dialog.IsOpen() {
		return core.ErrDialogClosed
	}
	vals, err := f.Validate()
	if err != nil {
		return err
	}
	ids := f.SubjectIDs()

	f.setLoading(true)
	defer f.setLoading(false)
	if t, editing := f.dialog.Record(); editing {
		err = f.onUpdate(ctx, t, vals, ids)
	} else {
		err = f.onCreate(ctx, vals, ids)
	}
	if err != nil {
		f.deps.Logger.Error("teacher form: submit", err)
	}
	return err
}

func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dialog.Close()
	f.state.Reset()
	f.values = Values{}
	f.subjectIDs = nil
	f.subjects = nil
}

func (f *Form) HandleKey(ctx context.Context, k core.Key) error {
	return f.dialog.HandleKey(k, func() error { return f.Submit(ctx) }, f.Cancel)
}

func (f *Form) setLoading(loading bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.SetLoading(loading)
}
