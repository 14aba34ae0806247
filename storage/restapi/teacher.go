package restapi

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/springreviewer/admin/core/teacher"
)

type teacherRepository struct {
	c *Client
}

func NewTeacherRepository(c *Client) teacher.Repository {
	return &teacherRepository{c: c}
}

func (repo *teacherRepository) QueryAll(ctx context.Context) ([]teacher.Teacher, error) {
	teachers := make([]teacher.Teacher, 0)
	err := repo.c.get(ctx, "/teachers", &teachers, nil)
	return teachers, err
}

func (repo *teacherRepository) GetByID(ctx context.Context, teacherID int) (teacher.Teacher, error) {
	var t teacher.Teacher
	err := repo.c.get(ctx, "/teachers/{id}", &t, id(teacherID))
	return t, err
}

func (repo *teacherRepository) Create(ctx context.Context, v teacher.Values) (teacher.Teacher, error) {
	var t teacher.Teacher
	err := repo.c.send(ctx, resty.MethodPost, "/teachers", v, &t, nil)
	return t, err
}

func (repo *teacherRepository) Update(ctx context.Context, teacherID int, v teacher.Values) (teacher.Teacher, error) {
	var t teacher.Teacher
	err := repo.c.send(ctx, resty.MethodPut, "/teachers/{id}", v, &t, id(teacherID))
	return t, err
}

func (repo *teacherRepository) Delete(ctx context.Context, teacherID int) error {
	return repo.c.send(ctx, resty.MethodDelete, "/teachers/{id}", nil, nil, id(teacherID))
}

type teacherSubjectLinker struct {
	c *Client
}

// NewTeacherSubjectLinker returns the link/unlink endpoints of the teacher/subject relation.
func NewTeacherSubjectLinker(c *Client) teacher.Linker {
	return &teacherSubjectLinker{c: c}
}

func linkParams(teacherID, subjectID int) map[string]string {
	return map[string]string{"id": strconv.Itoa(teacherID), "subjectId": strconv.Itoa(subjectID)}
}

func (l *teacherSubjectLinker) LinkSubject(ctx context.Context, teacherID, subjectID int) error {
	return l.c.send(ctx, resty.MethodPost, "/teachers/{id}/subjects/{subjectId}", nil, nil, linkParams(teacherID, subjectID))
}

func (l *teacherSubjectLinker) UnlinkSubject(ctx context.Context, teacherID, subjectID int) error {
	return l.c.send(ctx, resty.MethodDelete, "/teachers/{id}/subjects/{subjectId}", nil, nil, linkParams(teacherID, subjectID))
}
