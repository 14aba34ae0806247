package review

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/springreviewer/admin/core"
)

// Form fields that depend on a lookup.
const (
	FieldUser    = "userId"
	FieldTeacher = "teacherId"
	FieldSubject = "subjectId"
	FieldGrade   = "grade"
)

var nowFunc = time.Now

type (
	CreateFunc func(ctx context.Context, v Values) error
	UpdateFunc func(ctx context.Context, r Review, v Values) error
)

// Form is the create/edit dialog of a review, with its author, teacher and subject pickers.
type Form struct {
	dialog   core.Dialog[Review]
	deps     core.Deps
	users    UserSource
	teachers TeacherSource
	subjects SubjectSource
	onCreate CreateFunc
	onUpdate UpdateFunc

	mu        sync.Mutex
	values    Values
	gradeText string
	lookups   Lookups
	state     core.FormState
}

func NewForm(deps core.Deps, users UserSource, teachers TeacherSource, subjects SubjectSource, onCreate CreateFunc, onUpdate UpdateFunc) *Form {
	return &Form{
		deps:     deps,
		users:    users,
		teachers: teachers,
		subjects: subjects,
		onCreate: onCreate,
		onUpdate: onUpdate,
	}
}

// Open opens the dialog in edit mode for r (create mode when r is nil) and loads the pickers.
// A record lacking its author or subject id leaves every field cleared and returns core.ErrIncompleteRecord.
func (f *Form) Open(ctx context.Context, r *Review) error {
	f.mu.Lock()
	f.state.Reset()
	f.lookups = Lookups{}
	f.values = Values{}
	f.gradeText = ""

	var (
		session uint64
		openErr error
	)
	switch {
	case r == nil:
		session = f.dialog.OpenCreate()
		f.values.Date = nowFunc().Format(core.DateLayout)
	case !r.HasReferences():
		session = f.dialog.OpenEdit(*r)
		f.deps.Notifier.Error("Could not load the review for editing.")
		f.deps.Logger.Error("review form: incomplete record", map[string]interface{}{"reviewId": r.ID})
		openErr = core.ErrIncompleteRecord
	default:
		session = f.dialog.OpenEdit(*r)
		f.populate(*r)
	}
	f.state.SetLoading(true)
	f.mu.Unlock()

	var lk Lookups
	errs := core.SettleAll(
		ctx,
		func(ctx context.Context) (err error) {
			lk.Users, err = f.users.QueryAll(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			lk.Teachers, err = f.teachers.QueryAll(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			lk.Subjects, err = f.subjects.QueryAll(ctx)
			return err
		},
	)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.dialog.Current(session) {
		return openErr
	}
	f.state.SetLoading(false)
	f.lookups = lk
	for i, field := range []string{FieldUser, FieldTeacher, FieldSubject} {
		if errs[i] != nil {
			f.state.Disable(field)
		}
	}
	if err := core.FirstError(errs); err != nil {
		f.deps.Logger.Error("review form: loading pickers", err)
		f.deps.Notifier.Error("Could not load data for the review form.")
	}
	return openErr
}

func (f *Form) populate(r Review) {
	f.values = Values{
		UserID:    intPtr(*r.AuthorID),
		SubjectID: intPtr(*r.SubjectID),
		Date:      r.Date,
		Grade:     r.Grade,
		Comment:   r.Comment,
	}
	if r.Teacher != nil {
		f.values.TeacherID = intPtr(r.Teacher.ID)
	}
	if r.Grade > 0 {
		f.gradeText = strconv.Itoa(r.Grade)
	}
}

func (f *Form) State() core.DialogState { return f.dialog.State() }
func (f *Form) IsOpen() bool            { return f.dialog.IsOpen() }
func (f *Form) Record() (Review, bool)  { return f.dialog.Record() }

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

func (f *Form) Lookups() Lookups {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookups
}

func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// GradeText is the sanitized content of the grade field.
func (f *Form) GradeText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gradeText
}

// SetValues replaces every field at once; the grade field text follows v.Grade.
func (f *Form) SetValues(v Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = v
	f.gradeText = ""
	if v.Grade > 0 {
		f.gradeText = strconv.Itoa(v.Grade)
	}
}

func (f *Form) SetUserID(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.UserID = intPtr(id)
}

func (f *Form) SetTeacherID(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.TeacherID = intPtr(id)
}

func (f *Form) SetSubjectID(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.SubjectID = intPtr(id)
}

// SetDate sets the review date (YYYY-MM-DD).
func (f *Form) SetDate(date string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Date = date
}

func (f *Form) SetComment(comment string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Comment = comment
}

// SetGradeText strips everything but digits from text and re-validates the grade range.
// It returns the grade error, if any.
func (f *Form) SetGradeText(text string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gradeText, f.values.Grade = SanitizeGrade(text)

	var msg string
	err := core.ValidateStruct(f.deps.Validate, f.deps.Translator, f.values, "Grade")
	if vErr, ok := err.(*core.ValidationError); ok {
		msg = vErr.FieldMap()[FieldGrade]
	}
	f.state.SetFieldError(FieldGrade, msg)
	return msg
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

// Submit validates the form and hands the values to the create or update callback.
// Nothing is sent unless author, teacher and subject are selected. The dialog stays open when the callback fails.
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
	if r, editing := f.dialog.Record(); editing {
		err = f.onUpdate(ctx, r, vals)
	} else {
		err = f.onCreate(ctx, vals)
	}
	if err != nil {
		f.deps.Logger.Error("review form: submit", err)
	}
	return err
}

func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dialog.Close()
	f.state.Reset()
	f.values = Values{}
	f.gradeText = ""
	f.lookups = Lookups{}
}

func (f *Form) HandleKey(ctx context.Context, k core.Key) error {
	return f.dialog.HandleKey(k, func() error { return f.Submit(ctx) }, f.Cancel)
}

func (f *Form) setLoading(loading bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.SetLoading(loading)
}

func intPtr(i int) *int { return &i }
