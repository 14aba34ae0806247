package subject

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
	subjects []Subject
	pkCount  int
	Err      error
	Queries  int
}

var _ Repository = (*RepositoryMock)(nil)

func NewRepositoryMock(subjects ...Subject) *RepositoryMock {
	repo := &RepositoryMock{subjects: append([]Subject(nil), subjects...)}
	for _, sub := range subjects {
		if sub.ID > repo.pkCount {
			repo.pkCount = sub.ID
		}
	}
	return repo
}

func (repo *RepositoryMock) notFound() error {
	return &core.APIError{Status: http.StatusNotFound, Message: "subject not found"}
}

func (repo *RepositoryMock) QueryAll(context.Context) ([]Subject, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.Queries++
	if repo.Err != nil {
		return nil, repo.Err
	}
	return append([]Subject(nil), repo.subjects...), nil
}

func (repo *RepositoryMock) GetByID(_ context.Context, id int) (Subject, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return Subject{}, repo.Err
	}
	for _, sub := range repo.subjects {
		if sub.ID == id {
			return sub, nil
		}
	}
	return Subject{}, repo.notFound()
}

func (repo *RepositoryMock) Create(_ context.Context, v Values) (Subject, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return Subject{}, repo.Err
	}
	repo.pkCount++
	sub := Subject{ID: repo.pkCount, Name: v.Name, TeacherNames: []string{}}
	repo.subjects = append(repo.subjects, sub)
	return sub, nil
}

func (repo *RepositoryMock) Update(_ context.Context, id int, v Values) (Subject, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return Subject{}, repo.Err
	}
	for i, sub := range repo.subjects {
		if sub.ID == id {
			repo.subjects[i].Name = v.Name
			return repo.subjects[i], nil
		}
	}
	return Subject{}, repo.notFound()
}

func (repo *RepositoryMock) Delete(_ context.Context, id int) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return repo.Err
	}
	for i, sub := range repo.subjects {
		if sub.ID == id {
			repo.subjects = append(repo.subjects[:i], repo.subjects[i+1:]...)
			return nil
		}
	}
	return repo.notFound()
}
