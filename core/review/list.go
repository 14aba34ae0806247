package review

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
)

// ListController owns a review list in one of its scopes: all reviews, by user, by teacher or a search.
type ListController struct {
	repo     Repository
	users    UserSource
	teachers TeacherSource
	subjects SubjectSource
	deps     core.Deps
	form     *Form

	mu             sync.RWMutex
	scope          Scope
	seq            uint64
	all            []Review
	displayed      []Review
	filter         Filter
	label          Label
	loading        bool
	loadingFilters bool
	lookups        Lookups
}

func NewListController(repo Repository, users UserSource, teachers TeacherSource, subjects SubjectSource, deps core.Deps) *ListController {
	c := &ListController{
		repo:     repo,
		users:    users,
		teachers: teachers,
		subjects: subjects,
		deps:     deps,
		scope:    ScopeAll,
	}
	c.form = NewForm(deps, users, teachers, subjects, c.create, c.update)
	return c
}

func (c *ListController) Form() *Form { return c.form }

// Load switches the list to scope s: it clears the label and filters, fetches the reviews,
// resolves the scope label and, for all reviews, the filter lookups not loaded yet.
// Results of a load superseded by a newer one are dropped.
func (c *ListController) Load(ctx context.Context, s Scope) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.scope = s
	c.loading = true
	c.label = Label{}
	c.filter = Filter{}
	c.mu.Unlock()

	reviews, err := c.fetch(ctx, s)
	if err != nil {
		c.mu.Lock()
		if seq != c.seq {
			c.mu.Unlock()
			return nil
		}
		c.loading = false
		if core.IsNotFound(err) {
			c.all, c.displayed = []Review{}, []Review{}
			if s.Kind == KindUser || s.Kind == KindTeacher {
				c.label = notFoundLabel(s, "not found or has no reviews")
			}
		}
		c.mu.Unlock()
		core.ReportError(c.deps.Notifier, err)
		return errors.Wrapf(err, "loading reviews (%s)", s)
	}

	label := c.resolveLabel(ctx, s, reviews)
	SortByTeacher(reviews)
	if s.Kind == KindAll {
		c.loadFilterLookups(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return nil
	}
	c.loading = false
	c.label = label
	c.all = reviews
	c.displayed = c.filter.Apply(reviews)
	return nil
}

// Reload re-runs the current scope.
func (c *ListController) Reload(ctx context.Context) error {
	return c.Load(ctx, c.Scope())
}

func (c *ListController) fetch(ctx context.Context, s Scope) ([]Review, error) {
	switch s.Kind {
	case KindUser:
		return c.repo.QueryByUser(ctx, s.ID)
	case KindTeacher:
		return c.repo.QueryByTeacher(ctx, s.ID)
	case KindSearch:
		p := SearchParams{}
		if s.Params != nil {
			p = *s.Params
		}
		p.Clean()
		if err := core.ValidateStruct(c.deps.Validate, c.deps.Translator, p); err != nil {
			return nil, err
		}
		return c.repo.Search(ctx, p)
	default:
		return c.repo.QueryAll(ctx)
	}
}

// resolveLabel prefers the name embedded in the first review and falls back to a lookup by id.
func (c *ListController) resolveLabel(ctx context.Context, s Scope, reviews []Review) Label {
	switch s.Kind {
	case KindUser:
		if len(reviews) > 0 && reviews[0].Author != "" {
			return resolvedLabel(reviews[0].Author)
		}
		usr, err := c.users.GetByID(ctx, s.ID)
		if err != nil {
			return c.lookupFailed(s, err)
		}
		return resolvedLabel(usr.Username)
	case KindTeacher:
		if len(reviews) > 0 && reviews[0].Teacher != nil {
			return resolvedLabel(reviews[0].Teacher.FullName())
		}
		t, err := c.teachers.GetByID(ctx, s.ID)
		if err != nil {
			return c.lookupFailed(s, err)
		}
		return resolvedLabel(t.FullName())
	default:
		return resolvedLabel("")
	}
}

func (c *ListController) lookupFailed(s Scope, err error) Label {
	c.deps.Logger.Warn(fmt.Sprintf("review list: resolving %s label", s), err)
	if core.IsNotFound(err) {
		return notFoundLabel(s, "not found")
	}
	return fallbackLabel(s)
}

// loadFilterLookups fetches the filter pickers that are still empty.
func (c *ListController) loadFilterLookups(ctx context.Context) {
	c.mu.Lock()
	lk := c.lookups
	if len(lk.Users) > 0 && len(lk.Teachers) > 0 && len(lk.Subjects) > 0 {
		c.mu.Unlock()
		return
	}
	c.loadingFilters = true
	c.mu.Unlock()

	calls := make([]func(context.Context) error, 0, 3)
	if len(lk.Users) == 0 {
		calls = append(calls, func(ctx context.Context) (err error) {
			lk.Users, err = c.users.QueryAll(ctx)
			return err
		})
	}
	if len(lk.Teachers) == 0 {
		calls = append(calls, func(ctx context.Context) (err error) {
			lk.Teachers, err = c.teachers.QueryAll(ctx)
			return err
		})
	}
	if len(lk.Subjects) == 0 {
		calls = append(calls, func(ctx context.Context) (err error) {
			lk.Subjects, err = c.subjects.QueryAll(ctx)
			return err
		})
	}
	err := core.FirstError(core.SettleAll(ctx, calls...))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadingFilters = false
	c.lookups = lk
	if err != nil {
		c.deps.Logger.Error("review list: loading filter data", err)
		c.deps.Notifier.Error("Could not load filter data.")
	}
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

func (c *ListController) Scope() Scope {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scope
}

func (c *ListController) Label() Label {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.label
}

// Title is the heading of the list in its current scope.
func (c *ListController) Title() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.label.Title(c.scope)
}

func (c *ListController) All() []Review {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Review(nil), c.all...)
}

func (c *ListController) Displayed() []Review {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Review(nil), c.displayed...)
}

// FilterLookups returns the pickers of the all-reviews filters.
func (c *ListController) FilterLookups() Lookups {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookups
}

func (c *ListController) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *ListController) LoadingFilters() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadingFilters
}

func (c *ListController) EmptyText() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch {
	case !c.filter.IsEmpty():
		return "No reviews match the filters."
	case c.scope.Kind == KindAll:
		return "No reviews yet."
	default:
		return "No reviews found for this record."
	}
}

// Add opens the dialog in create mode.
func (c *ListController) Add(ctx context.Context) *Form {
	_ = c.form.Open(ctx, nil)
	return c.form
}

// Edit opens the dialog for r, refusing records without author or subject ids.
func (c *ListController) Edit(ctx context.Context, r Review) (*Form, error) {
	if !r.HasReferences() {
		c.deps.Notifier.Error("Not enough data to edit this review.")
		return nil, core.ErrIncompleteRecord
	}
	if err := c.form.Open(ctx, &r); err != nil {
		return nil, err
	}
	return c.form, nil
}

// Delete removes r once the confirmer agrees, then reloads the list.
func (c *ListController) Delete(ctx context.Context, r Review, confirmer core.Confirmer) (bool, error) {
	prompt := fmt.Sprintf("Delete the review of %s by %s from %s?", r.TeacherText(), r.AuthorText(), r.DateText())
	ok, err := confirmer.Confirm(ctx, prompt)
	if err != nil || !ok {
		return false, err
	}
	if err := c.repo.Delete(ctx, r.ID); err != nil {
		core.ReportError(c.deps.Notifier, err)
		return false, errors.Wrapf(err, "deleting review %d", r.ID)
	}
	c.deps.Notifier.Success("Review deleted")
	_ = c.Reload(ctx)
	return true, nil
}

func (c *ListController) create(ctx context.Context, v Values) error {
	if _, err := c.repo.Create(ctx, v); err != nil {
		core.ReportError(c.deps.Notifier, err)
		return errors.Wrap(err, "creating review")
	}
	c.deps.Notifier.Success("Review created")
	c.form.Cancel()
	_ = c.Reload(ctx)
	return nil
}

func (c *ListController) update(ctx context.Context, r Review, v Values) error {
	if _, err := c.repo.Update(ctx, r.ID, v); err != nil {
		core.ReportError(c.deps.Notifier, err)
		return errors.Wrapf(err, "updating review %d", r.ID)
	}
	c.deps.Notifier.Success("Review updated")
	c.form.Cancel()
	_ = c.Reload(ctx)
	return nil
}
