package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	ID       int
	Name     string
	OwnerID  *int
	Subjects []string
}

func ownerOf(it item) (int, bool) {
	if it.OwnerID == nil {
		return 0, false
	}
	return *it.OwnerID, true
}

func nameOf(it item) string       { return it.Name }
func subjectsOf(it item) []string { return it.Subjects }

func TestApply(t *testing.T) {
	items := []item{
		{ID: 1, Name: "Ivanov Ivan", OwnerID: IntPtr(1), Subjects: []string{"Math"}},
		{ID: 2, Name: "Petrova Anna", OwnerID: IntPtr(2), Subjects: []string{"Art", "Math"}},
		{ID: 3, Name: "Sidorov Oleg", Subjects: nil},
		{ID: 4, Name: "ivanova maria", OwnerID: IntPtr(1), Subjects: []string{"Physics"}},
	}

	tests := []struct {
		name    string
		preds   []Predicate[item]
		wantIDs []int
	}{
		{name: "no predicates", wantIDs: []int{1, 2, 3, 4}},
		{name: "nil predicates", preds: []Predicate[item]{nil, Contains("  ", nameOf), Equals(nil, ownerOf), Includes("", subjectsOf)}, wantIDs: []int{1, 2, 3, 4}},
		{name: "contains is case-insensitive", preds: []Predicate[item]{Contains("IVANOV", nameOf)}, wantIDs: []int{1, 4}},
		{name: "equals is exact", preds: []Predicate[item]{Equals(IntPtr(1), ownerOf)}, wantIDs: []int{1, 4}},
		{name: "missing reference never matches", preds: []Predicate[item]{Equals(IntPtr(0), ownerOf)}, wantIDs: []int{}},
		{name: "includes", preds: []Predicate[item]{Includes("Math", subjectsOf)}, wantIDs: []int{1, 2}},
		{name: "and", preds: []Predicate[item]{Contains("iva", nameOf), Includes("Physics", subjectsOf)}, wantIDs: []int{4}},
		{name: "no match", preds: []Predicate[item]{Contains("lol", nameOf)}, wantIDs: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(items, tt.preds...)
			ids := make([]int, 0, len(got))
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestApply_SubsetAndIdempotent(t *testing.T) {
	items := []item{
		{ID: 1, Name: "a", OwnerID: IntPtr(1)},
		{ID: 2, Name: "ab", OwnerID: IntPtr(2)},
		{ID: 3, Name: "abc"},
	}
	needles := []string{"", "a", "B", "abc", "zzz"}
	owners := []*int{nil, IntPtr(1), IntPtr(2), IntPtr(3)}

	for _, needle := range needles {
		for _, owner := range owners {
			preds := []Predicate[item]{Contains(needle, nameOf), Equals(owner, ownerOf)}
			first := Apply(items, preds...)
			second := Apply(items, preds...)
			assert.Equal(t, first, second, "needle=%q", needle)
			assert.Subset(t, items, first, "needle=%q", needle)
		}
	}
	// the input is never touched
	assert.Equal(t, []int{1, 2, 3}, []int{items[0].ID, items[1].ID, items[2].ID})
}
