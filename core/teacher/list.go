package teacher

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/subject"
)

// ListController owns the teachers screen and the subject lookup used by its filter and by reconciliation.
type ListController struct {
	repo        Repository
	subjectRepo SubjectLister
	reconciler  *Reconciler
	deps        core.Deps
	form        *Form

	mu        sync.RWMutex
	all       []Teacher
	displayed []Teacher
	subjects  []subject.Subject
	filter    Filter
	loading   bool
}

func NewListController(repo Repository, subjectRepo SubjectLister, linker Linker, deps core.Deps) *ListController {
	c := &ListController{
		repo:        repo,
		subjectRepo: subjectRepo,
		reconciler:  NewReconciler(linker),
		deps:        deps,
	}
	c.form = NewForm(deps, subjectRepo, c.create, c.update)
	return c
}

func (c *ListController) Form() *Form { return c.form }

// Load clears the filters and fetches teachers and subjects together.
// A failed subject fetch keeps the teachers and only reports itself.
func (c *ListController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.filter = Filter{}
	c.mu.Unlock()

	var (
		teachers []Teacher
		subjects []subject.Subject
	)
	errs := core.SettleAll(
		ctx,
		func(ctx context.Context) (err error) {
			teachers, err = c.repo.QueryAll(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			subjects, err = c.subjectRepo.QueryAll(ctx)
			return err
		},
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err := errs[1]; err != nil {
		c.deps.Logger.Error("teacher list: loading subjects", err)
		c.deps.Notifier.Error("Could not load subjects for the filter.")
	} else {
		c.subjects = subjects
	}
	if err := errs[0]; err != nil {
		core.ReportError(c.deps.Notifier, err)
		if core.IsNotFound(err) {
			c.all, c.displayed = []Teacher{}, []Teacher{}
		}
		return errors.Wrap(err, "loading teachers")
	}
	c.all = teachers
	c.displayed = c.filter.Apply(teachers, c.subjects)
	return nil
}

func (c *ListController) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
	c.displayed = f.Apply(c.all, c.subjects)
}

func (c *ListController) Filter() Filter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

func (c *ListController) All() []Teacher {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Teacher(nil), c.all...)
}

func (c *ListController) Displayed() []Teacher {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Teacher(nil), c.displayed...)
}

// Subjects returns the subject lookup of the filter.
func (c *ListController) Subjects() []subject.Subject {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]subject.Subject(nil), c.subjects...)
}

func (c *ListController) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *ListController) EmptyText() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.filter.IsEmpty() {
		return "No teachers match the filters."
	}
	return "No teachers yet."
}

// Add opens the dialog in create mode.
func (c *ListController) Add(ctx context.Context) *Form {
	c.form.Open(ctx, nil)
	return c.form
}

// Edit opens the dialog in edit mode for t.
func (c *ListController) Edit(ctx context.Context, t Teacher) *Form {
	c.form.Open(ctx, &t)
	return c.form
}

// Delete removes t once the confirmer agrees, then reloads the collection.
func (c *ListController) Delete(ctx context.Context, t Teacher, confirmer core.Confirmer) (bool, error) {
	ok, err := confirmer.Confirm(ctx, fmt.Sprintf("Delete teacher %q?", t.FullName()))
	if err != nil || !ok {
		return false, err
	}
	if err := c.repo.Delete(ctx, t.ID); err != nil {
		core.ReportError(c.deps.Notifier, err)
		return false, errors.Wrapf(err, "deleting teacher %d", t.ID)
	}
	c.deps.Notifier.Success("Teacher deleted")
	_ = c.Load(ctx)
	return true, nil
}

func (c *ListController) create(ctx context.Context, v Values, subjectIDs []int) error {
	t, err := c.repo.Create(ctx, v)
	if err != nil {
		core.ReportError(c.deps.Notifier, err)
		return errors.Wrap(err, "creating teacher")
	}
	c.deps.Notifier.Success("Teacher created")
	if len(subjectIDs) > 0 {
		c.reconcile(ctx, t.ID, subjectIDs, nil)
	}
	c.form.Cancel()
	_ = c.Load(ctx)
	return nil
}

func (c *ListController) update(ctx context.Context, t Teacher, v Values, subjectIDs []int) error {
	updated, err := c.repo.Update(ctx, t.ID, v)
	if err != nil {
		core.ReportError(c.deps.Notifier, err)
		return errors.Wrapf(err, "updating teacher %d", t.ID)
	}
	c.deps.Notifier.Success("Teacher updated")
	if subjectIDs != nil {
		c.reconcile(ctx, t.ID, subjectIDs, updated.Subjects)
	}
	c.form.Cancel()
	_ = c.Load(ctx)
	return nil
}

// reconcile reports a partial failure once and carries on.
func (c *ListController) reconcile(ctx context.Context, teacherID int, desired []int, currentNames []string) {
	subjects := c.form.Subjects()
	if len(subjects) == 0 {
		subjects = c.Subjects()
	}
	if err := c.reconciler.Reconcile(ctx, teacherID, desired, currentNames, subjects); err != nil {
		c.deps.Logger.Error("teacher list: reconciling subjects", err)
		c.deps.Notifier.Error("Could not update all subject links.")
	}
}
