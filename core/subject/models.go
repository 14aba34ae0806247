package subject

import (
	"context"
	"strings"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/filter"
)

type (
	// Subject is a taught subject. TeacherNames is computed by the server and never edited here.
	Subject struct {
		ID           int      `json:"id"`
		Name         string   `json:"name"`
		TeacherNames []string `json:"teacherNames"`
	}

	Values struct {
		Name string `json:"name" validate:"required,notblank,min=2,max=100"`
	}

	Filter struct {
		Search string `json:"search"`
	}

	Repository interface {
		QueryAll(ctx context.Context) ([]Subject, error)
		GetByID(ctx context.Context, id int) (Subject, error)
		Create(ctx context.Context, v Values) (Subject, error)
		Update(ctx context.Context, id int, v Values) (Subject, error)
		Delete(ctx context.Context, id int) error
	}
)

// TeachersText describes the teachers of sub for a list row.
func (sub Subject) TeachersText() string {
	if len(sub.TeacherNames) == 0 {
		return "No teachers assigned"
	}
	return "Teachers: " + strings.Join(sub.TeacherNames, ", ")
}

func (v *Values) Clean() {
	v.Name = core.CleanString(v.Name)
}

func (f Filter) IsEmpty() bool {
	return core.CleanString(f.Search) == ""
}

func (f Filter) Apply(subjects []Subject) []Subject {
	return filter.Apply(subjects, filter.Contains(f.Search, func(s Subject) string { return s.Name }))
}

// Names returns the names of subjects, in order.
func Names(subjects []Subject) []string {
	names := make([]string, 0, len(subjects))
	for _, sub := range subjects {
		names = append(names, sub.Name)
	}
	return names
}
