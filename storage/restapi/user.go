package restapi

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/springreviewer/admin/core/user"
)

type userRepository struct {
	c *Client
}

func NewUserRepository(c *Client) user.Repository {
	return &userRepository{c: c}
}

func (repo *userRepository) QueryAll(ctx context.Context) ([]user.User, error) {
	users := make([]user.User, 0)
	err := repo.c.get(ctx, "/users", &users, nil)
	return users, err
}

func (repo *userRepository) GetByID(ctx context.Context, userID int) (user.User, error) {
	var usr user.User
	err := repo.c.get(ctx, "/users/{id}", &usr, id(userID))
	return usr, err
}

func (repo *userRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	var usr user.User
	err := repo.c.get(ctx, "/users/username/{username}", &usr, map[string]string{"username": username})
	return usr, err
}

func (repo *userRepository) Create(ctx context.Context, v user.Values) (user.User, error) {
	var usr user.User
	err := repo.c.send(ctx, resty.MethodPost, "/users", v, &usr, nil)
	return usr, err
}

func (repo *userRepository) Update(ctx context.Context, userID int, v user.Values) (user.User, error) {
	var usr user.User
	err := repo.c.send(ctx, resty.MethodPut, "/users/{id}", v, &usr, id(userID))
	return usr, err
}

func (repo *userRepository) Delete(ctx context.Context, userID int) error {
	return repo.c.send(ctx, resty.MethodDelete, "/users/{id}", nil, nil, id(userID))
}
