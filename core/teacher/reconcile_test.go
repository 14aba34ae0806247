package teacher

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/springreviewer/admin/core/subject"
)

var testSubjects = []subject.Subject{
	{ID: 1, Name: "Math"},
	{ID: 2, Name: "Art"},
	{ID: 3, Name: "Physics"},
}

func TestResolveSubjectIDs(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []int
	}{
		{name: "none", names: nil, want: []int{}},
		{name: "all known", names: []string{"Art", "Math"}, want: []int{2, 1}},
		{name: "unknown dropped", names: []string{"Math", "History", "Physics"}, want: []int{1, 3}},
		{name: "names are exact", names: []string{"math"}, want: []int{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveSubjectIDs(tc.names, testSubjects))
		})
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name       string
		desired    []int
		current    []int
		wantAdd    []int
		wantRemove []int
	}{
		{name: "no change", desired: []int{1, 2}, current: []int{2, 1}, wantAdd: []int{}, wantRemove: []int{}},
		{name: "from nothing", desired: []int{3, 1}, current: nil, wantAdd: []int{3, 1}, wantRemove: []int{}},
		{name: "to nothing", desired: []int{}, current: []int{1, 2}, wantAdd: []int{}, wantRemove: []int{1, 2}},
		{name: "swap", desired: []int{2, 3}, current: []int{1, 2}, wantAdd: []int{3}, wantRemove: []int{1}},
		{name: "duplicates", desired: []int{4, 4, 2}, current: []int{5, 5}, wantAdd: []int{4, 2}, wantRemove: []int{5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			toAdd, toRemove := Diff(tc.desired, tc.current)
			assert.Equal(t, tc.wantAdd, toAdd)
			assert.Equal(t, tc.wantRemove, toRemove)
		})
	}
}

func TestReconciler_Reconcile(t *testing.T) {
	t.Run("minimal operations", func(t *testing.T) {
		linker := &LinkerMock{}
		err := NewReconciler(linker).Reconcile(context.Background(), 7, []int{2, 3}, []string{"Math", "Art"}, testSubjects)
		require.NoError(t, err)
		assert.ElementsMatch(t, []LinkOp{{SubjectID: 3}, {SubjectID: 1, Unlink: true}}, linker.Ops())
	})

	t.Run("nothing to do", func(t *testing.T) {
		linker := &LinkerMock{}
		err := NewReconciler(linker).Reconcile(context.Background(), 7, []int{1}, []string{"Math", "Gone"}, testSubjects)
		require.NoError(t, err)
		assert.Empty(t, linker.Ops())
	})

	t.Run("partial failure is aggregated", func(t *testing.T) {
		boom := errors.New("boom")
		linker := &LinkerMock{Fail: map[int]error{1: boom, 3: boom}}
		err := NewReconciler(linker).Reconcile(context.Background(), 7, []int{2, 3}, []string{"Math"}, testSubjects)

		var batchErr *BatchError
		require.True(t, errors.As(err, &batchErr))
		assert.Equal(t, 7, batchErr.TeacherID)
		assert.Equal(t, 3, batchErr.Total)
		assert.ElementsMatch(t, []LinkOp{{SubjectID: 3}, {SubjectID: 1, Unlink: true}}, batchErr.Failed)
		assert.Len(t, batchErr.Errs, 2)
		// every call is attempted
		assert.ElementsMatch(t, []LinkOp{{SubjectID: 2}, {SubjectID: 3}, {SubjectID: 1, Unlink: true}}, linker.Ops())
		assert.Contains(t, err.Error(), "2 of 3 subject link operations failed")
	})
}
