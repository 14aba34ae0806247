package restapi

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/springreviewer/admin/core/subject"
)

type subjectRepository struct {
	c *Client
}

func NewSubjectRepository(c *Client) subject.Repository {
	return &subjectRepository{c: c}
}

func (repo *subjectRepository) QueryAll(ctx context.Context) ([]subject.Subject, error) {
	subjects := make([]subject.Subject, 0)
	err := repo.c.get(ctx, "/subjects", &subjects, nil)
	return subjects, err
}

func (repo *subjectRepository) GetByID(ctx context.Context, subjectID int) (subject.Subject, error) {
	var sub subject.Subject
	err := repo.c.get(ctx, "/subjects/{id}", &sub, id(subjectID))
	return sub, err
}

func (repo *subjectRepository) Create(ctx context.Context, v subject.Values) (subject.Subject, error) {
	var sub subject.Subject
	err := repo.c.send(ctx, resty.MethodPost, "/subjects", v, &sub, nil)
	return sub, err
}

func (repo *subjectRepository) Update(ctx context.Context, subjectID int, v subject.Values) (subject.Subject, error) {
	var sub subject.Subject
	err := repo.c.send(ctx, resty.MethodPut, "/subjects/{id}", v, &sub, id(subjectID))
	return sub, err
}

func (repo *subjectRepository) Delete(ctx context.Context, subjectID int) error {
	return repo.c.send(ctx, resty.MethodDelete, "/subjects/{id}", nil, nil, id(subjectID))
}
