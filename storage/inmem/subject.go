package inmemdb

import (
	"context"
	"strings"

	"github.com/springreviewer/admin/core/subject"
	"github.com/springreviewer/admin/core/teacher"
)

type subjectRepository struct {
	db *DB
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *DB) subject.Repository {
	return &subjectRepository{db: db}
}

// displaySubject renders row with the full names of the teachers linked to it. Callers hold a lock.
func (db *DB) displaySubject(row *subjectRow) subject.Subject {
	names := make([]string, 0)
	for _, id := range sortedIDs(db.teachers) {
		t := db.teachers[id]
		if t.teaches(row.id) {
			names = append(names, teacher.FullName(t.surname, t.name, t.patronym))
		}
	}
	return subject.Subject{ID: row.id, Name: row.name, TeacherNames: names}
}

func (repo *subjectRepository) QueryAll(_ context.Context) ([]subject.Subject, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	subjects := make([]subject.Subject, 0, len(repo.db.subjects))
	for _, id := range sortedIDs(repo.db.subjects) {
		subjects = append(subjects, repo.db.displaySubject(repo.db.subjects[id]))
	}
	return subjects, nil
}

func (repo *subjectRepository) GetByID(_ context.Context, id int) (subject.Subject, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if row, ok := repo.db.subjects[id]; ok {
		return repo.db.displaySubject(row), nil
	}
	return subject.Subject{}, notFound("Subject", id)
}

func (repo *subjectRepository) Create(_ context.Context, v subject.Values) (subject.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	row := &subjectRow{id: repo.db.nextID(), name: strings.TrimSpace(v.Name)}
	repo.db.subjects[row.id] = row
	return repo.db.displaySubject(row), nil
}

func (repo *subjectRepository) Update(_ context.Context, id int, v subject.Values) (subject.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	row, ok := repo.db.subjects[id]
	if !ok {
		return subject.Subject{}, notFound("Subject", id)
	}
	row.name = strings.TrimSpace(v.Name)
	return repo.db.displaySubject(row), nil
}

// Delete unlinks the subject from its teachers and removes its reviews.
func (repo *subjectRepository) Delete(_ context.Context, id int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if id <= 0 {
		return badRequest("Subject ID must be a positive number")
	}
	if _, ok := repo.db.subjects[id]; !ok {
		return notFound("Subject", id)
	}
	for _, t := range repo.db.teachers {
		t.unlink(id)
	}
	repo.db.deleteReviewsWhere(func(r *reviewRow) bool { return r.subjectID == id })
	delete(repo.db.subjects, id)
	return nil
}
