package restapi

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/springreviewer/admin/core/review"
)

type reviewRepository struct {
	c *Client
}

func NewReviewRepository(c *Client) review.Repository {
	return &reviewRepository{c: c}
}

func (repo *reviewRepository) list(ctx context.Context, url string, pathParams map[string]string) ([]review.Review, error) {
	reviews := make([]review.Review, 0)
	err := repo.c.get(ctx, url, &reviews, pathParams)
	return reviews, err
}

func (repo *reviewRepository) QueryAll(ctx context.Context) ([]review.Review, error) {
	return repo.list(ctx, "/reviews", nil)
}

func (repo *reviewRepository) QueryByUser(ctx context.Context, userID int) ([]review.Review, error) {
	return repo.list(ctx, "/reviews/user/{id}", id(userID))
}

func (repo *reviewRepository) QueryByTeacher(ctx context.Context, teacherID int) ([]review.Review, error) {
	return repo.list(ctx, "/reviews/teacher/{id}", id(teacherID))
}

func (repo *reviewRepository) GetByID(ctx context.Context, reviewID int) (review.Review, error) {
	var r review.Review
	err := repo.c.get(ctx, "/reviews/{id}", &r, id(reviewID))
	return r, err
}

// Search sends only the criteria that are set.
func (repo *reviewRepository) Search(ctx context.Context, p review.SearchParams) ([]review.Review, error) {
	query := make(map[string]string)
	for k, v := range map[string]string{
		"startDate":      p.StartDate,
		"endDate":        p.EndDate,
		"teacherSurname": p.TeacherSurname,
		"subjectName":    p.SubjectName,
	} {
		if v != "" {
			query[k] = v
		}
	}
	if p.MinGrade != nil {
		query["minGrade"] = strconv.Itoa(*p.MinGrade)
	}

	reviews := make([]review.Review, 0)
	req := repo.c.request(ctx).SetQueryParams(query).SetResult(&reviews)
	err := repo.c.execute(req, resty.MethodGet, "/reviews/search")
	return reviews, err
}

func (repo *reviewRepository) Create(ctx context.Context, v review.Values) (review.Review, error) {
	var r review.Review
	err := repo.c.send(ctx, resty.MethodPost, "/reviews", v, &r, nil)
	return r, err
}

func (repo *reviewRepository) Update(ctx context.Context, reviewID int, v review.Values) (review.Review, error) {
	var r review.Review
	err := repo.c.send(ctx, resty.MethodPut, "/reviews/{id}", v, &r, id(reviewID))
	return r, err
}

func (repo *reviewRepository) Delete(ctx context.Context, reviewID int) error {
	return repo.c.send(ctx, resty.MethodDelete, "/reviews/{id}", nil, nil, id(reviewID))
}
