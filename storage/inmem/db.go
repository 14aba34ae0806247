// Package inmemdb is an in-memory server of record. It keeps the relational rows and
// renders the same display projections as the upstream API.
package inmemdb

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/springreviewer/admin/core"
)

type (
	userRow struct {
		id       int
		username string
	}

	subjectRow struct {
		id   int
		name string
	}

	teacherRow struct {
		id         int
		surname    string
		name       string
		patronym   string
		subjectIDs []int // link order
	}

	reviewRow struct {
		id        int
		userID    int
		teacherID int
		subjectID int
		date      string
		grade     int
		comment   string
	}

	// DB guards every table with one lock; projections read across tables.
	DB struct {
		mu       sync.RWMutex
		pkCount  int
		users    map[int]*userRow
		subjects map[int]*subjectRow
		teachers map[int]*teacherRow
		reviews  map[int]*reviewRow
	}
)

func Open() *DB {
	return &DB{
		users:    make(map[int]*userRow),
		subjects: make(map[int]*subjectRow),
		teachers: make(map[int]*teacherRow),
		reviews:  make(map[int]*reviewRow),
	}
}

func (db *DB) nextID() int {
	db.pkCount++
	return db.pkCount
}

func notFound(resource string, id int) error {
	return &core.APIError{Status: http.StatusNotFound, Message: fmt.Sprintf("%s not found with id: %d", resource, id)}
}

func badRequest(format string, args ...interface{}) error {
	return &core.APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &core.APIError{Status: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

// sortedIDs returns the keys of m in ascending order.
func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// deleteReviewsWhere removes every review matching pred. Callers hold the write lock.
func (db *DB) deleteReviewsWhere(pred func(r *reviewRow) bool) {
	for id, r := range db.reviews {
		if pred(r) {
			delete(db.reviews, id)
		}
	}
}
