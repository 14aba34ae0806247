package subject

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
)

// ListController owns the subjects screen: the authoritative collection, its filtered view and the dialog.
type ListController struct {
	repo Repository
	deps core.Deps
	form *Form

	mu        sync.RWMutex
	all       []Subject
	displayed []Subject
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

	subjects, err := c.repo.QueryAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		core.ReportError(c.deps.Notifier, err)
		if core.IsNotFound(err) {
			c.all, c.displayed = []Subject{}, []Subject{}
		}
		return errors.Wrap(err, "loading subjects")
	}
	c.all = subjects
	c.displayed = c.filter.Apply(subjects)
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

func (c *ListController) All() []Subject {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Subject(nil), c.all...)
}

func (c *ListController) Displayed() []Subject {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Subject(nil), c.displayed...)
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
		return "No subjects match the search."
	}
	return "No subjects yet."
}

// Add opens the dialog in create mode.
func (c *ListController) Add() *Form {
	c.form.Open(nil)
	return c.form
}

// Edit opens the dialog in edit mode for sub.
func (c *ListController) Edit(sub Subject) *Form {
	c.form.Open(&sub)
	return c.form
}

// Delete removes sub once the confirmer agrees, then reloads the collection.
func (c *ListController) Delete(ctx context.Context, sub Subject, confirmer core.Confirmer) (bool, error) {
	ok, err := confirmer.Confirm(ctx, fmt.Sprintf("Delete subject %q?", sub.Name))
	if err != nil || !ok {
		return false, err
	}
	if err := c.repo.Delete(ctx, sub.ID); err != nil {
		core.ReportError(c.deps.Notifier, err)
		return false, errors.Wrapf(err, "deleting subject %d", sub.ID)
	}
	c.deps.Notifier.Success("Subject deleted")
	_ = c.Load(ctx)
	return true, nil
}

func (c *ListController) create(ctx context.Context, v Values) error {
	if _, err := c.repo.Create(ctx, v); err != nil {
		core.ReportError(c.deps.Notifier, err)
		return errors.Wrap(err, "creating subject")
	}
	c.deps.Notifier.Success("Subject created")
	c.form.Cancel()
	_ = c.Load(ctx)
	return nil
}

func (c *ListController) update(ctx context.Context, sub Subject, v Values) error {
	if _, err := c.repo.Update(ctx, sub.ID, v); err != nil {
		core.ReportError(c.deps.Notifier, err)
		return errors.Wrapf(err, "updating subject %d", sub.ID)
	}
	c.deps.Notifier.Success("Subject updated")
	c.form.Cancel()
	_ = c.Load(ctx)
	return nil
}
