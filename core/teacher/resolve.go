package teacher

import (
	"github.com/springreviewer/admin/core/subject"
)

// ResolveSubjectIDs maps subject names to their ids through subjects, keeping the order of names.
// Names without a matching subject are dropped.
func ResolveSubjectIDs(names []string, subjects []subject.Subject) []int {
	byName := make(map[string]int, len(subjects))
	for _, sub := range subjects {
		if _, ok := byName[sub.Name]; !ok {
			byName[sub.Name] = sub.ID
		}
	}
	ids := make([]int, 0, len(names))
	for _, name := range names {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// SubjectName returns the name of the subject with the given id.
func SubjectName(id int, subjects []subject.Subject) (string, bool) {
	for _, sub := range subjects {
		if sub.ID == id {
			return sub.Name, true
		}
	}
	return "", false
}
