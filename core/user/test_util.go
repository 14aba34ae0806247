package user

import (
	"context"
	"net/http"
	"sync"

	"github.com/springreviewer/admin/core"
)

// RepositoryMock is an in-memory Repository for tests.
// Err, when set, is returned by every call.
type RepositoryMock struct {
	mu      sync.Mutex
	users   []User
	pkCount int
	Err     error
	Queries int
}

var _ Repository = (*RepositoryMock)(nil)

func NewRepositoryMock(users ...User) *RepositoryMock {
	repo := &RepositoryMock{users: append([]User(nil), users...)}
	for _, usr := range users {
		if usr.ID > repo.pkCount {
			repo.pkCount = usr.ID
		}
	}
	return repo
}

func (repo *RepositoryMock) notFound() error {
	return &core.APIError{Status: http.StatusNotFound, Message: "user not found"}
}

func (repo *RepositoryMock) QueryAll(context.Context) ([]User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.Queries++
	if repo.Err != nil {
		return nil, repo.Err
	}
	return append([]User(nil), repo.users...), nil
}

func (repo *RepositoryMock) GetByID(_ context.Context, id int) (User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return User{}, repo.Err
	}
	for _, usr := range repo.users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return User{}, repo.notFound()
}

func (repo *RepositoryMock) GetByUsername(_ context.Context, username string) (User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return User{}, repo.Err
	}
	for _, usr := range repo.users {
		if usr.Username == username {
			return usr, nil
		}
	}
	return User{}, repo.notFound()
}

func (repo *RepositoryMock) Create(_ context.Context, v Values) (User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return User{}, repo.Err
	}
	repo.pkCount++
	usr := User{ID: repo.pkCount, Username: v.Username}
	repo.users = append(repo.users, usr)
	return usr, nil
}

func (repo *RepositoryMock) Update(_ context.Context, id int, v Values) (User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return User{}, repo.Err
	}
	for i, usr := range repo.users {
		if usr.ID == id {
			repo.users[i].Username = v.Username
			return repo.users[i], nil
		}
	}
	return User{}, repo.notFound()
}

func (repo *RepositoryMock) Delete(_ context.Context, id int) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return repo.Err
	}
	for i, usr := range repo.users {
		if usr.ID == id {
			repo.users = append(repo.users[:i], repo.users[i+1:]...)
			return nil
		}
	}
	return repo.notFound()
}
