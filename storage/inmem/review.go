package inmemdb

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/review"
)

var nowFunc = time.Now

type reviewRepository struct {
	db *DB
}

var _ review.Repository = (*reviewRepository)(nil) // interface compliance check

func NewReviewRepository(db *DB) review.Repository {
	return &reviewRepository{db: db}
}

// displayReview renders row with its author, teacher and subject name. Callers hold a lock.
func (db *DB) displayReview(row *reviewRow) review.Review {
	r := review.Review{ID: row.id, Date: row.date, Grade: row.grade, Comment: row.comment}
	if usr, ok := db.users[row.userID]; ok {
		id := usr.id
		r.AuthorID, r.Author = &id, usr.username
	}
	if t, ok := db.teachers[row.teacherID]; ok {
		r.Teacher = &review.TeacherRef{ID: t.id, Surname: t.surname, Name: t.name, Patronym: t.patronym}
	}
	if sub, ok := db.subjects[row.subjectID]; ok {
		id := sub.id
		r.SubjectID, r.SubjectName = &id, sub.name
	}
	return r
}

func (repo *reviewRepository) query(pred func(r *reviewRow) bool) []review.Review {
	reviews := make([]review.Review, 0)
	for _, id := range sortedIDs(repo.db.reviews) {
		if row := repo.db.reviews[id]; pred(row) {
			reviews = append(reviews, repo.db.displayReview(row))
		}
	}
	return reviews
}

func noReviews(msg string) error {
	return &core.APIError{Status: http.StatusNotFound, Message: msg}
}

func (repo *reviewRepository) QueryAll(_ context.Context) ([]review.Review, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.query(func(*reviewRow) bool { return true }), nil
}

// QueryByUser fails with 404 when the user has no reviews.
func (repo *reviewRepository) QueryByUser(_ context.Context, userID int) ([]review.Review, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	reviews := repo.query(func(r *reviewRow) bool { return r.userID == userID })
	if len(reviews) == 0 {
		return nil, noReviews(fmt.Sprintf("No reviews found for user ID: %d", userID))
	}
	return reviews, nil
}

// QueryByTeacher fails with 404 when the teacher has no reviews.
func (repo *reviewRepository) QueryByTeacher(_ context.Context, teacherID int) ([]review.Review, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	reviews := repo.query(func(r *reviewRow) bool { return r.teacherID == teacherID })
	if len(reviews) == 0 {
		return nil, noReviews(fmt.Sprintf("No reviews found for teacher ID: %d", teacherID))
	}
	return reviews, nil
}

func (repo *reviewRepository) GetByID(_ context.Context, id int) (review.Review, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if row, ok := repo.db.reviews[id]; ok {
		return repo.db.displayReview(row), nil
	}
	return review.Review{}, notFound("Review", id)
}

// Search matches every criterion that is set: an inclusive date range, the exact teacher
// surname and subject name (case-insensitive) and a minimum grade.
func (repo *reviewRepository) Search(_ context.Context, p review.SearchParams) ([]review.Review, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	reviews := repo.query(func(r *reviewRow) bool {
		if p.StartDate != "" && r.date < p.StartDate {
			return false
		}
		if p.EndDate != "" && r.date > p.EndDate {
			return false
		}
		if p.TeacherSurname != "" {
			t, ok := repo.db.teachers[r.teacherID]
			if !ok || !strings.EqualFold(t.surname, p.TeacherSurname) {
				return false
			}
		}
		if p.SubjectName != "" {
			sub, ok := repo.db.subjects[r.subjectID]
			if !ok || !strings.EqualFold(sub.name, p.SubjectName) {
				return false
			}
		}
		return p.MinGrade == nil || r.grade >= *p.MinGrade
	})
	if len(reviews) == 0 {
		return nil, noReviews("No reviews found matching the specified criteria.")
	}
	return reviews, nil
}

func (repo *reviewRepository) Create(_ context.Context, v review.Values) (review.Review, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if v.UserID == nil || v.TeacherID == nil || v.SubjectID == nil {
		return review.Review{}, badRequest("userId, teacherId and subjectId are required")
	}
	if _, ok := repo.db.users[*v.UserID]; !ok {
		return review.Review{}, notFound("User", *v.UserID)
	}
	t, ok := repo.db.teachers[*v.TeacherID]
	if !ok {
		return review.Review{}, notFound("Teacher", *v.TeacherID)
	}
	if _, ok = repo.db.subjects[*v.SubjectID]; !ok {
		return review.Review{}, notFound("Subject", *v.SubjectID)
	}
	if !t.teaches(*v.SubjectID) {
		return review.Review{}, badRequest("Teacher %d does not teach subject %d", t.id, *v.SubjectID)
	}

	row := &reviewRow{
		id:        repo.db.nextID(),
		userID:    *v.UserID,
		teacherID: *v.TeacherID,
		subjectID: *v.SubjectID,
		date:      v.Date,
		grade:     v.Grade,
		comment:   v.Comment,
	}
	if row.date == "" {
		row.date = nowFunc().Format(core.DateLayout)
	}
	repo.db.reviews[row.id] = row
	return repo.db.displayReview(row), nil
}

// Update changes the date, grade and comment only; the references are fixed at creation.
func (repo *reviewRepository) Update(_ context.Context, id int, v review.Values) (review.Review, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	row, ok := repo.db.reviews[id]
	if !ok {
		return review.Review{}, notFound("Review", id)
	}
	if v.Date != "" {
		row.date = v.Date
	}
	if v.Grade != 0 {
		row.grade = v.Grade
	}
	row.comment = v.Comment
	return repo.db.displayReview(row), nil
}

func (repo *reviewRepository) Delete(_ context.Context, id int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.reviews[id]; !ok {
		return notFound("Review", id)
	}
	delete(repo.db.reviews, id)
	return nil
}
