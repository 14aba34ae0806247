package review

import (
	"context"
	"fmt"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/filter"
	"github.com/springreviewer/admin/core/subject"
	"github.com/springreviewer/admin/core/teacher"
	"github.com/springreviewer/admin/core/user"
)

type (
	TeacherRef struct {
		ID       int    `json:"id"`
		Surname  string `json:"surname"`
		Name     string `json:"name"`
		Patronym string `json:"patronym,omitempty"`
	}

	// Review is a review as displayed by the server. AuthorID, SubjectID and Teacher
	// may be missing from a payload and are nil then.
	Review struct {
		ID          int         `json:"id"`
		AuthorID    *int        `json:"authorId,omitempty"`
		Author      string      `json:"author"`
		Teacher     *TeacherRef `json:"teacher,omitempty"`
		SubjectID   *int        `json:"subjectId,omitempty"`
		SubjectName string      `json:"subjectName"`
		Date        string      `json:"date"` // YYYY-MM-DD
		Grade       int         `json:"grade"`
		Comment     string      `json:"comment,omitempty"`
	}

	// Values is the create/update body of a review.
	Values struct {
		UserID    *int   `json:"userId" validate:"required"`
		TeacherID *int   `json:"teacherId" validate:"required"`
		SubjectID *int   `json:"subjectId" validate:"required"`
		Date      string `json:"date" validate:"required,datetime=2006-01-02"`
		Grade     int    `json:"grade" validate:"required,min=1,max=10"`
		Comment   string `json:"comment" validate:"max=5000"`
	}

	// Filter narrows a loaded collection by identity; nil fields put no constraint.
	Filter struct {
		AuthorID  *int `json:"authorId"`
		TeacherID *int `json:"teacherId"`
		SubjectID *int `json:"subjectId"`
	}

	// SearchParams are the server-side search criteria; empty fields are not sent.
	SearchParams struct {
		StartDate      string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
		EndDate        string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
		TeacherSurname string `json:"teacherSurname"`
		SubjectName    string `json:"subjectName"`
		MinGrade       *int   `json:"minGrade" validate:"omitempty,min=1,max=10"`
	}

	Repository interface {
		QueryAll(ctx context.Context) ([]Review, error)
		QueryByUser(ctx context.Context, userID int) ([]Review, error)
		QueryByTeacher(ctx context.Context, teacherID int) ([]Review, error)
		GetByID(ctx context.Context, id int) (Review, error)
		Search(ctx context.Context, p SearchParams) ([]Review, error)
		Create(ctx context.Context, v Values) (Review, error)
		Update(ctx context.Context, id int, v Values) (Review, error)
		Delete(ctx context.Context, id int) error
	}

	UserSource interface {
		QueryAll(ctx context.Context) ([]user.User, error)
		GetByID(ctx context.Context, id int) (user.User, error)
	}

	TeacherSource interface {
		QueryAll(ctx context.Context) ([]teacher.Teacher, error)
		GetByID(ctx context.Context, id int) (teacher.Teacher, error)
	}

	SubjectSource interface {
		QueryAll(ctx context.Context) ([]subject.Subject, error)
	}

	// Lookups are the pickers of the review form and filters.
	Lookups struct {
		Users    []user.User       `json:"users"`
		Teachers []teacher.Teacher `json:"teachers"`
		Subjects []subject.Subject `json:"subjects"`
	}
)

func (ref *TeacherRef) FullName() string {
	if ref == nil {
		return ""
	}
	return teacher.FullName(ref.Surname, ref.Name, ref.Patronym)
}

// HasReferences reports whether r carries the author and subject ids its form needs.
func (r Review) HasReferences() bool {
	return r.AuthorID != nil && r.SubjectID != nil
}

func (r Review) teacherID() (int, bool) {
	if r.Teacher == nil {
		return 0, false
	}
	return r.Teacher.ID, true
}

// Display helpers for a review card.

func (r Review) TeacherText() string {
	if r.Teacher == nil {
		return "N/A"
	}
	return r.Teacher.FullName()
}

func (r Review) AuthorText() string  { return orNA(r.Author) }
func (r Review) SubjectText() string { return orNA(r.SubjectName) }
func (r Review) DateText() string    { return core.DisplayDate(r.Date) }
func (r Review) GradeText() string   { return fmt.Sprintf("%d/10", r.Grade) }

func (r Review) CommentText() string {
	if r.Comment == "" {
		return "No comment"
	}
	return r.Comment
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (v *Values) Clean() {
	v.Date = core.CleanString(v.Date)
	v.Comment = core.CleanString(v.Comment)
}

func (f Filter) IsEmpty() bool {
	return f.AuthorID == nil && f.TeacherID == nil && f.SubjectID == nil
}

// Apply returns the reviews matching every set id, in their original order.
func (f Filter) Apply(reviews []Review) []Review {
	return filter.Apply(
		reviews,
		filter.Equals(f.AuthorID, func(r Review) (int, bool) { return deref(r.AuthorID) }),
		filter.Equals(f.TeacherID, Review.teacherID),
		filter.Equals(f.SubjectID, func(r Review) (int, bool) { return deref(r.SubjectID) }),
	)
}

func deref(id *int) (int, bool) {
	if id == nil {
		return 0, false
	}
	return *id, true
}

func (p *SearchParams) Clean() {
	p.StartDate = core.CleanString(p.StartDate)
	p.EndDate = core.CleanString(p.EndDate)
	p.TeacherSurname = core.CleanString(p.TeacherSurname)
	p.SubjectName = core.CleanString(p.SubjectName)
}
