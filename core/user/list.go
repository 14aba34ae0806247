package user

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
)

// ListController owns the users screen: the authoritative collection, its filtered view and the dialog.
type ListController struct {
	repo Repository
	deps core.Deps
	form *Form

	mu        sync.RWMutex
	all       []User
	displayed []User
	filter    Filter
	loading   bool
}

func NewListController(repo Repository, deps core.Deps) *ListController {
	c := &ListController{repo: repo, deps: deps}
	c.form = NewForm(deps, c.create, c.update)
	return c
}

func (c *ListController) Form() *Form { return c.form }

// Load clears the filter and replaces the collection with a fresh fetch.
func (c *ListController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.filter = Filter{}
	c.mu.Unlock()

	users, err := c.repo.QueryAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		core.ReportError(c.deps.Notifier, err)
		if core.IsNotFound(err) {
			c.all, c.displayed = []User{}, []User{}
		}
		return errors.Wrap(err, "loading users")
	}
	c.all = users
	c.displayed = c.filter.Apply(users)
	return nil
}

func (c *ListController) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
	c.displayed = f.Apply(c.all)
}

func (c *ListController) Filter() Filter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

func (c *ListController) All() []User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]User(nil), c.all...)
}

func (c *ListController) Displayed() []User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]User(nil), c.displayed...)
}

func (c *ListController) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// EmptyText is shown when nothing is displayed.
func (c *ListController) EmptyText() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.filter.IsEmpty() {
		return "No users match the search."
	}
	return "No users yet."
}

// Add opens the dialog in create mode.
func (c *ListController) Add() *Form {
	c.form.Open(nil)
	return c.form
}

// Edit opens the dialog in edit mode for usr.
func (c *ListController) Edit(usr User) *Form {
	c.form.Open(&usr)
	return c.form
}

// Delete removes usr once the confirmer agrees, then reloads the collection.
func (c *ListController) Delete(ctx context.Context, usr User, confirmer core.Confirmer) (bool, error) {
	ok, err := confirmer.Confirm(ctx, fmt.Sprintf("Delete user %q?", usr.Username))
	if err != nil || !ok {
		return false, err
	}
	if err := c.repo.Delete(ctx, usr.ID); err != nil {
		core.ReportError(c.deps.Notifier, err)
		return false, errors.Wrapf(err, "deleting user %d", usr.ID)
	}
	c.deps.Notifier.Success("User deleted")
	_ = c.Load(ctx)
	return true, nil
}

func (c *ListController) create(ctx context.Context, v Values) error {
	if _, err := c.repo.Create(ctx, v); err != nil {
		core.ReportError(c.deps.Notifier, err)
		return errors.Wrap(err, "creating user")
	}
	c.deps.Notifier.Success("User created")
	c.form.Cancel()
	_ = c.Load(ctx)
	return nil
}

func (c *ListController) update(ctx context.Context, usr User, v Values) error {
	if _, err := c.repo.Update(ctx, usr.ID, v); err != nil {
		core.ReportError(c.deps.Notifier, err)
		return errors.Wrapf(err, "updating user %d", usr.ID)
	}
	c.deps.Notifier.Success("User updated")
	c.form.Cancel()
	_ = c.Load(ctx)
	return nil
}
