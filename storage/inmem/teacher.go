package inmemdb

import (
	"context"
	"strings"

	"github.com/springreviewer/admin/core/teacher"
)

type teacherRepository struct {
	db *DB
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db}
}

func (row *teacherRow) teaches(subjectID int) bool {
	for _, id := range row.subjectIDs {
		if id == subjectID {
			return true
		}
	}
	return false
}

// unlink reports whether subjectID was linked.
func (row *teacherRow) unlink(subjectID int) bool {
	for i, id := range row.subjectIDs {
		if id == subjectID {
			row.subjectIDs = append(row.subjectIDs[:i:i], row.subjectIDs[i+1:]...)
			return true
		}
	}
	return false
}

// displayTeacher renders row with the names of its subjects. Callers hold a lock.
func (db *DB) displayTeacher(row *teacherRow) teacher.Teacher {
	names := make([]string, 0, len(row.subjectIDs))
	for _, id := range row.subjectIDs {
		if sub, ok := db.subjects[id]; ok {
			names = append(names, sub.name)
		}
	}
	return teacher.Teacher{ID: row.id, Surname: row.surname, Name: row.name, Patronym: row.patronym, Subjects: names}
}

func (repo *teacherRepository) QueryAll(_ context.Context) ([]teacher.Teacher, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	teachers := make([]teacher.Teacher, 0, len(repo.db.teachers))
	for _, id := range sortedIDs(repo.db.teachers) {
		teachers = append(teachers, repo.db.displayTeacher(repo.db.teachers[id]))
	}
	return teachers, nil
}

func (repo *teacherRepository) GetByID(_ context.Context, id int) (teacher.Teacher, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if row, ok := repo.db.teachers[id]; ok {
		return repo.db.displayTeacher(row), nil
	}
	return teacher.Teacher{}, notFound("Teacher", id)
}

func (repo *teacherRepository) Create(_ context.Context, v teacher.Values) (teacher.Teacher, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	row := &teacherRow{id: repo.db.nextID()}
	setTeacherValues(row, v)
	repo.db.teachers[row.id] = row
	return repo.db.displayTeacher(row), nil
}

func (repo *teacherRepository) Update(_ context.Context, id int, v teacher.Values) (teacher.Teacher, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	row, ok := repo.db.teachers[id]
	if !ok {
		return teacher.Teacher{}, notFound("Teacher", id)
	}
	setTeacherValues(row, v)
	return repo.db.displayTeacher(row), nil
}

func setTeacherValues(row *teacherRow, v teacher.Values) {
	row.surname = strings.TrimSpace(v.Surname)
	row.name = strings.TrimSpace(v.Name)
	row.patronym = strings.TrimSpace(v.Patronym)
}

// Delete removes the teacher and the reviews written about them.
func (repo *teacherRepository) Delete(_ context.Context, id int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.teachers[id]; !ok {
		return notFound("Teacher", id)
	}
	delete(repo.db.teachers, id)
	repo.db.deleteReviewsWhere(func(r *reviewRow) bool { return r.teacherID == id })
	return nil
}

type teacherSubjectLinker struct {
	db *DB
}

var _ teacher.Linker = (*teacherSubjectLinker)(nil) // interface compliance check

func NewTeacherSubjectLinker(db *DB) teacher.Linker {
	return &teacherSubjectLinker{db: db}
}

func (l *teacherSubjectLinker) lookup(teacherID, subjectID int) (*teacherRow, error) {
	row, ok := l.db.teachers[teacherID]
	if !ok {
		return nil, notFound("Teacher", teacherID)
	}
	if _, ok = l.db.subjects[subjectID]; !ok {
		return nil, notFound("Subject", subjectID)
	}
	return row, nil
}

// LinkSubject is a no-op when the teacher already teaches the subject.
func (l *teacherSubjectLinker) LinkSubject(_ context.Context, teacherID, subjectID int) error {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()

	row, err := l.lookup(teacherID, subjectID)
	if err != nil {
		return err
	}
	if !row.teaches(subjectID) {
		row.subjectIDs = append(row.subjectIDs, subjectID)
	}
	return nil
}

func (l *teacherSubjectLinker) UnlinkSubject(_ context.Context, teacherID, subjectID int) error {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()

	row, err := l.lookup(teacherID, subjectID)
	if err != nil {
		return err
	}
	if !row.unlink(subjectID) {
		return badRequest("Teacher %d does not teach subject %d", teacherID, subjectID)
	}
	return nil
}
