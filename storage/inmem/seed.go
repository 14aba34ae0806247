package inmemdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core/review"
	"github.com/springreviewer/admin/core/subject"
	"github.com/springreviewer/admin/core/teacher"
	"github.com/springreviewer/admin/core/user"
)

// Seed fills db with a small demo data set.
func Seed(ctx context.Context, db *DB) error {
	users, subjects, teachers := NewUserRepository(db), NewSubjectRepository(db), NewTeacherRepository(db)
	linker, reviews := NewTeacherSubjectLinker(db), NewReviewRepository(db)

	alice, err := users.Create(ctx, user.Values{Username: "alice"})
	if err != nil {
		return errors.Wrap(err, "seeding users")
	}
	if _, err = users.Create(ctx, user.Values{Username: "bob"}); err != nil {
		return errors.Wrap(err, "seeding users")
	}

	subjectIDs := make(map[string]int)
	for _, name := range []string{"Math", "Art", "Physics"} {
		sub, err := subjects.Create(ctx, subject.Values{Name: name})
		if err != nil {
			return errors.Wrap(err, "seeding subjects")
		}
		subjectIDs[name] = sub.ID
	}

	ivanov, err := teachers.Create(ctx, teacher.Values{Surname: "Ivanov", Name: "Ivan", Patronym: "Ivanovich"})
	if err != nil {
		return errors.Wrap(err, "seeding teachers")
	}
	petrova, err := teachers.Create(ctx, teacher.Values{Surname: "petrova", Name: "Anna"})
	if err != nil {
		return errors.Wrap(err, "seeding teachers")
	}
	links := []struct {
		teacherID int
		subject   string
	}{
		{ivanov.ID, "Math"}, {ivanov.ID, "Physics"}, {petrova.ID, "Art"},
	}
	for _, l := range links {
		if err = linker.LinkSubject(ctx, l.teacherID, subjectIDs[l.subject]); err != nil {
			return errors.Wrap(err, "seeding teacher subjects")
		}
	}

	math, art := subjectIDs["Math"], subjectIDs["Art"]
	for _, v := range []review.Values{
		{UserID: &alice.ID, TeacherID: &ivanov.ID, SubjectID: &math, Date: "2024-02-12", Grade: 9, Comment: "Clear explanations."},
		{UserID: &alice.ID, TeacherID: &petrova.ID, SubjectID: &art, Date: "2024-03-04", Grade: 6},
	} {
		if _, err = reviews.Create(ctx, v); err != nil {
			return errors.Wrap(err, "seeding reviews")
		}
	}
	return nil
}
