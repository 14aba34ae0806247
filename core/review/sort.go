package review

import (
	"sort"
	"strings"
)

// SortByTeacher orders reviews by teacher surname, then teacher name, ignoring case.
// Reviews without a teacher sort as empty names; ties keep their original order.
func SortByTeacher(reviews []Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		ki, kj := sortKey(reviews[i]), sortKey(reviews[j])
		if ki[0] != kj[0] {
			return ki[0] < kj[0]
		}
		return ki[1] < kj[1]
	})
}

func sortKey(r Review) [2]string {
	if r.Teacher == nil {
		return [2]string{}
	}
	return [2]string{strings.ToLower(r.Teacher.Surname), strings.ToLower(r.Teacher.Name)}
}
