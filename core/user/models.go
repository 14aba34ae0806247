package user

import (
	"context"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/filter"
)

type (
	User struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
	}

	// Values are the editable fields of a user.
	Values struct {
		Username string `json:"username" validate:"required,notblank,min=3,max=50"`
	}

	Filter struct {
		Search string `json:"search"`
	}

	Repository interface {
		QueryAll(ctx context.Context) ([]User, error)
		GetByID(ctx context.Context, id int) (User, error)
		GetByUsername(ctx context.Context, username string) (User, error)
		Create(ctx context.Context, v Values) (User, error)
		Update(ctx context.Context, id int, v Values) (User, error)
		Delete(ctx context.Context, id int) error
	}
)

func (v *Values) Clean() {
	v.Username = core.CleanString(v.Username)
}

func (f Filter) IsEmpty() bool {
	return core.CleanString(f.Search) == ""
}

// Apply returns the users matching f, in their original order.
func (f Filter) Apply(users []User) []User {
	return filter.Apply(users, filter.Contains(f.Search, func(u User) string { return u.Username }))
}
