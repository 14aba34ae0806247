package teacher

import (
	"context"
	"fmt"
	"strings"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/subject"
)

// Diff returns the ids to link (desired - current) and to unlink (current - desired).
// Both results keep the order of their source and hold no duplicates.
func Diff(desired, current []int) (toAdd, toRemove []int) {
	return difference(desired, current), difference(current, desired)
}

func difference(a, b []int) []int {
	exclude := make(map[int]bool, len(b)+len(a))
	for _, id := range b {
		exclude[id] = true
	}
	out := make([]int, 0)
	for _, id := range a {
		if !exclude[id] {
			out = append(out, id)
			exclude[id] = true
		}
	}
	return out
}

// LinkOp is a single change to the teacher/subject relation.
type LinkOp struct {
	SubjectID int
	Unlink    bool
}

func (op LinkOp) String() string {
	if op.Unlink {
		return fmt.Sprintf("unlink(%d)", op.SubjectID)
	}
	return fmt.Sprintf("link(%d)", op.SubjectID)
}

// BatchError aggregates the failed operations of one reconciliation.
// Operations that succeeded are not rolled back.
type BatchError struct {
	TeacherID int
	Total     int
	Failed    []LinkOp
	Errs      []error
}

func (err *BatchError) Error() string {
	msgs := make([]string, 0, len(err.Failed))
	for i, op := range err.Failed {
		msgs = append(msgs, op.String()+": "+err.Errs[i].Error())
	}
	return fmt.Sprintf(
		"teacher %d: %d of %d subject link operations failed: %s",
		err.TeacherID, len(err.Failed), err.Total, strings.Join(msgs, "; "),
	)
}

// Reconciler moves a teacher's subject links from their current to a desired set.
type Reconciler struct {
	linker Linker
}

func NewReconciler(linker Linker) *Reconciler {
	return &Reconciler{linker: linker}
}

// Plan resolves currentNames through subjects and returns the operations needed to reach desired.
func Plan(desired []int, currentNames []string, subjects []subject.Subject) []LinkOp {
	toAdd, toRemove := Diff(desired, ResolveSubjectIDs(currentNames, subjects))
	ops := make([]LinkOp, 0, len(toAdd)+len(toRemove))
	for _, id := range toAdd {
		ops = append(ops, LinkOp{SubjectID: id})
	}
	for _, id := range toRemove {
		ops = append(ops, LinkOp{SubjectID: id, Unlink: true})
	}
	return ops
}

// Reconcile issues every link and unlink call concurrently and waits for all of them.
// It returns a *BatchError when any call failed.
func (r *Reconciler) Reconcile(ctx context.Context, teacherID int, desired []int, currentNames []string, subjects []subject.Subject) error {
	ops := Plan(desired, currentNames, subjects)
	if len(ops) == 0 {
		return nil
	}

	calls := make([]func(context.Context) error, 0, len(ops))
	for _, op := range ops {
		op := op
		calls = append(calls, func(ctx context.Context) error {
			if op.Unlink {
				return r.linker.UnlinkSubject(ctx, teacherID, op.SubjectID)
			}
			return r.linker.LinkSubject(ctx, teacherID, op.SubjectID)
		})
	}

	var batchErr *BatchError
	for i, err := range core.SettleAll(ctx, calls...) {
		if err == nil {
			continue
		}
		if batchErr == nil {
			batchErr = &BatchError{TeacherID: teacherID, Total: len(ops)}
		}
		batchErr.Failed = append(batchErr.Failed, ops[i])
		batchErr.Errs = append(batchErr.Errs, err)
	}
	if batchErr != nil {
		return batchErr
	}
	return nil
}
