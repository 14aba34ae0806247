package review

import (
	"context"
	"net/http"
	"sync"

	"github.com/springreviewer/admin/core"
)

// RepositoryMock is an in-memory Repository for tests.
// Err, when set, is returned by every call.
type RepositoryMock struct {
	mu       sync.Mutex
	reviews  []Review
	pkCount  int
	Err      error
	Queries  int
	Searches []SearchParams
}

var _ Repository = (*RepositoryMock)(nil)

func NewRepositoryMock(reviews ...Review) *RepositoryMock {
	repo := &RepositoryMock{reviews: append([]Review(nil), reviews...)}
	for _, r := range reviews {
		if r.ID > repo.pkCount {
			repo.pkCount = r.ID
		}
	}
	return repo
}

func (repo *RepositoryMock) notFound() error {
	return &core.APIError{Status: http.StatusNotFound, Message: "review not found"}
}

func (repo *RepositoryMock) query(match func(Review) bool) ([]Review, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.Queries++
	if repo.Err != nil {
		return nil, repo.Err
	}
	reviews := make([]Review, 0, len(repo.reviews))
	for _, r := range repo.reviews {
		if match(r) {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

func (repo *RepositoryMock) QueryAll(context.Context) ([]Review, error) {
	return repo.query(func(Review) bool { return true })
}

func (repo *RepositoryMock) QueryByUser(_ context.Context, userID int) ([]Review, error) {
	return repo.query(func(r Review) bool { return r.AuthorID != nil && *r.AuthorID == userID })
}

func (repo *RepositoryMock) QueryByTeacher(_ context.Context, teacherID int) ([]Review, error) {
	return repo.query(func(r Review) bool { return r.Teacher != nil && r.Teacher.ID == teacherID })
}

func (repo *RepositoryMock) Search(_ context.Context, p SearchParams) ([]Review, error) {
	repo.mu.Lock()
	repo.Searches = append(repo.Searches, p)
	repo.mu.Unlock()
	return repo.query(func(r Review) bool {
		return (p.MinGrade == nil || r.Grade >= *p.MinGrade) &&
			(p.SubjectName == "" || r.SubjectName == p.SubjectName)
	})
}

func (repo *RepositoryMock) GetByID(_ context.Context, id int) (Review, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return Review{}, repo.Err
	}
	for _, r := range repo.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return Review{}, repo.notFound()
}

func (repo *RepositoryMock) Create(_ context.Context, v Values) (Review, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return Review{}, repo.Err
	}
	repo.pkCount++
	r := fromValues(repo.pkCount, v)
	repo.reviews = append(repo.reviews, r)
	return r, nil
}

func (repo *RepositoryMock) Update(_ context.Context, id int, v Values) (Review, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return Review{}, repo.Err
	}
	for i, r := range repo.reviews {
		if r.ID == id {
			repo.reviews[i] = fromValues(id, v)
			return repo.reviews[i], nil
		}
	}
	return Review{}, repo.notFound()
}

func (repo *RepositoryMock) Delete(_ context.Context, id int) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return repo.Err
	}
	for i, r := range repo.reviews {
		if r.ID == id {
			repo.reviews = append(repo.reviews[:i], repo.reviews[i+1:]...)
			return nil
		}
	}
	return repo.notFound()
}

func fromValues(id int, v Values) Review {
	r := Review{
		ID:        id,
		AuthorID:  v.UserID,
		SubjectID: v.SubjectID,
		Date:      v.Date,
		Grade:     v.Grade,
		Comment:   v.Comment,
	}
	if v.TeacherID != nil {
		r.Teacher = &TeacherRef{ID: *v.TeacherID}
	}
	return r
}
