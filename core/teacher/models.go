package teacher

import (
	"context"
	"strings"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/filter"
	"github.com/springreviewer/admin/core/subject"
)

type (
	// Teacher is a reviewed teacher. Subjects holds subject names as computed by the server.
	Teacher struct {
		ID       int      `json:"id"`
		Surname  string   `json:"surname"`
		Name     string   `json:"name"`
		Patronym string   `json:"patronym,omitempty"`
		Subjects []string `json:"subjects"`
	}

	Values struct {
		Surname  string `json:"surname" validate:"required,notblank,max=50"`
		Name     string `json:"name" validate:"required,notblank,max=50"`
		Patronym string `json:"patronym" validate:"max=50"`
	}

	Filter struct {
		Search    string `json:"search"`
		SubjectID *int   `json:"subjectId"`
	}

	Repository interface {
		QueryAll(ctx context.Context) ([]Teacher, error)
		GetByID(ctx context.Context, id int) (Teacher, error)
		Create(ctx context.Context, v Values) (Teacher, error)
		// Update returns the teacher as stored, with its current subjects.
		Update(ctx context.Context, id int, v Values) (Teacher, error)
		Delete(ctx context.Context, id int) error
	}

	// Linker edits the teacher/subject relation. Only the Reconciler is handed one.
	Linker interface {
		LinkSubject(ctx context.Context, teacherID, subjectID int) error
		UnlinkSubject(ctx context.Context, teacherID, subjectID int) error
	}

	// SubjectLister loads the subject lookup.
	SubjectLister interface {
		QueryAll(ctx context.Context) ([]subject.Subject, error)
	}
)

// FullName joins surname, name and the optional patronym.
func FullName(surname, name, patronym string) string {
	return strings.TrimSpace(strings.Join([]string{surname, name, patronym}, " "))
}

func (t Teacher) FullName() string {
	return FullName(t.Surname, t.Name, t.Patronym)
}

// SubjectsText describes the subjects of t for a list row.
func (t Teacher) SubjectsText() string {
	if len(t.Subjects) == 0 {
		return "No subjects assigned"
	}
	return "Subjects: " + strings.Join(t.Subjects, ", ")
}

func (v *Values) Clean() {
	v.Surname = core.CleanString(v.Surname)
	v.Name = core.CleanString(v.Name)
	v.Patronym = core.CleanString(v.Patronym)
}

func (f Filter) IsEmpty() bool {
	return core.CleanString(f.Search) == "" && f.SubjectID == nil
}

// Apply returns the teachers matching f. The subject filter is resolved to a name through subjects;
// an id missing from subjects puts no constraint on the result.
func (f Filter) Apply(teachers []Teacher, subjects []subject.Subject) []Teacher {
	var subjName string
	if f.SubjectID != nil {
		subjName, _ = SubjectName(*f.SubjectID, subjects)
	}
	return filter.Apply(
		teachers,
		filter.Contains(f.Search, Teacher.FullName),
		filter.Includes(subjName, func(t Teacher) []string { return t.Subjects }),
	)
}
