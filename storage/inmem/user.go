package inmemdb

import (
	"context"
	"net/http"
	"strings"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (row *userRow) display() user.User {
	return user.User{ID: row.id, Username: row.username}
}

func (repo *userRepository) usernameTaken(username string, excludedID int) bool {
	for _, row := range repo.db.users {
		if row.id != excludedID && row.username == username {
			return true
		}
	}
	return false
}

func (repo *userRepository) QueryAll(_ context.Context) ([]user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	users := make([]user.User, 0, len(repo.db.users))
	for _, id := range sortedIDs(repo.db.users) {
		users = append(users, repo.db.users[id].display())
	}
	return users, nil
}

func (repo *userRepository) GetByID(_ context.Context, id int) (user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if row, ok := repo.db.users[id]; ok {
		return row.display(), nil
	}
	return user.User{}, notFound("User", id)
}

func (repo *userRepository) GetByUsername(_ context.Context, username string) (user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, row := range repo.db.users {
		if row.username == username {
			return row.display(), nil
		}
	}
	return user.User{}, &core.APIError{Status: http.StatusNotFound, Message: "User not found with username: " + username}
}

func (repo *userRepository) Create(_ context.Context, v user.Values) (user.User, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	username := strings.TrimSpace(v.Username)
	if repo.usernameTaken(username, 0) {
		return user.User{}, conflict("Username already exists: %s", username)
	}
	row := &userRow{id: repo.db.nextID(), username: username}
	repo.db.users[row.id] = row
	return row.display(), nil
}

func (repo *userRepository) Update(_ context.Context, id int, v user.Values) (user.User, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	row, ok := repo.db.users[id]
	if !ok {
		return user.User{}, notFound("User", id)
	}
	username := strings.TrimSpace(v.Username)
	if repo.usernameTaken(username, id) {
		return user.User{}, conflict("Username already exists: %s", username)
	}
	row.username = username
	return row.display(), nil
}

// Delete removes the user and the reviews they wrote.
func (repo *userRepository) Delete(_ context.Context, id int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.users[id]; !ok {
		return notFound("User", id)
	}
	delete(repo.db.users, id)
	repo.db.deleteReviewsWhere(func(r *reviewRow) bool { return r.userID == id })
	return nil
}
