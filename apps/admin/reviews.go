package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/review"
)

func (cli *commandLine) runReviews(ctx context.Context, action string, args []string) error {
	c := review.NewListController(cli.reviews, cli.users, cli.teachers, cli.subjects, cli.deps)
	cmd := cli.flagSet("reviews " + action)

	switch action {
	case "list":
		userID := cmd.Int("user", 0, "Only the reviews written by this user ID.")
		uname := cmd.String("username", "", "Only the reviews written by this username.")
		teacherID := cmd.Int("teacher", 0, "Only the reviews of this teacher ID.")
		byAuthor := cmd.Int("filter-author", 0, "Narrow the loaded reviews to this author ID.")
		byTeacher := cmd.Int("filter-teacher", 0, "Narrow the loaded reviews to this teacher ID.")
		bySubject := cmd.Int("filter-subject", 0, "Narrow the loaded reviews to this subject ID.")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}

		scope := review.ScopeAll
		switch {
		case *uname != "":
			usr, err := cli.users.GetByUsername(ctx, core.CleanString(*uname))
			if err != nil {
				return errors.Wrapf(err, "finding user %q", *uname)
			}
			scope = review.ScopeUser(usr.ID)
		case *userID > 0:
			scope = review.ScopeUser(*userID)
		case *teacherID > 0:
			scope = review.ScopeTeacher(*teacherID)
		}
		if err := c.Load(ctx, scope); err != nil && !core.IsNotFound(err) {
			return err
		}
		c.SetFilter(review.Filter{AuthorID: optID(*byAuthor), TeacherID: optID(*byTeacher), SubjectID: optID(*bySubject)})
		cli.printReviews(c)
		return nil

	case "search":
		from := cmd.String("from", "", "Earliest review date (YYYY-MM-DD).")
		to := cmd.String("to", "", "Latest review date (YYYY-MM-DD).")
		surname := cmd.String("surname", "", "Teacher surname (case-insensitive).")
		subjectName := cmd.String("subject", "", "Subject name (case-insensitive).")
		minGrade := cmd.Int("min", 0, "Minimum grade (1-10).")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}
		p := review.SearchParams{StartDate: *from, EndDate: *to, TeacherSurname: *surname, SubjectName: *subjectName}
		if visited(cmd)["min"] {
			p.MinGrade = minGrade
		}
		if err := c.Load(ctx, review.ScopeSearch(p)); err != nil && !core.IsNotFound(err) {
			return cli.formErrors(err)
		}
		cli.printReviews(c)
		return nil

	case "add", "edit":
		id := cmd.Int("id", 0, "The ID of the review to edit.")
		userID := cmd.Int("user", 0, "The author's user ID.")
		teacherID := cmd.Int("teacher", 0, "The reviewed teacher's ID.")
		subjectID := cmd.Int("subject", 0, "The subject ID; the teacher must teach it.")
		date := cmd.String("date", "", "The review date (YYYY-MM-DD); today by default.")
		grade := cmd.String("grade", "", "The grade, from 1 to 10.")
		comment := cmd.String("comment", "", "An optional comment.")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}

		var form *review.Form
		if action == "edit" {
			if _, err := requireID(cmd, *id); err != nil {
				return err
			}
			r, err := cli.reviews.GetByID(ctx, *id)
			if err != nil {
				return errors.Wrapf(err, "finding review %d", *id)
			}
			if form, err = c.Edit(ctx, r); err != nil {
				return err
			}
		} else {
			form = c.Add(ctx)
		}

		set := visited(cmd)
		if set["user"] {
			form.SetUserID(*userID)
		}
		if set["teacher"] {
			form.SetTeacherID(*teacherID)
		}
		if set["subject"] {
			form.SetSubjectID(*subjectID)
		}
		if set["date"] {
			form.SetDate(*date)
		}
		if set["comment"] {
			form.SetComment(*comment)
		}
		if set["grade"] {
			if msg := form.SetGradeText(*grade); msg != "" {
				fmt.Fprintf(cli.out, "  %s: %s\n", review.FieldGrade, msg)
			}
		}
		return cli.formErrors(form.Submit(ctx))

	case "delete":
		id := cmd.Int("id", 0, "The ID of the review to delete.")
		yes := cmd.Bool("yes", false, "Do not ask for a confirmation.")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}
		r, err := cli.review(ctx, cmd, *id)
		if err != nil {
			return err
		}
		return cli.deleted(c.Delete(ctx, r, cli.confirmer(*yes)))

	default:
		return cli.unknownAction("reviews", action)
	}
}

func (cli *commandLine) review(ctx context.Context, cmd *flag.FlagSet, id int) (review.Review, error) {
	if _, err := requireID(cmd, id); err != nil {
		return review.Review{}, err
	}
	r, err := cli.reviews.GetByID(ctx, id)
	return r, errors.Wrapf(err, "finding review %d", id)
}

func (cli *commandLine) printReviews(c *review.ListController) {
	fmt.Fprintln(cli.out, c.Title())
	rows := make([][]string, 0)
	for _, r := range c.Displayed() {
		rows = append(rows, []string{
			strconv.Itoa(r.ID), r.TeacherText(), r.AuthorText(), r.SubjectText(), r.DateText(), r.GradeText(), r.CommentText(),
		})
	}
	cli.table(c.EmptyText(), []string{"ID", "TEACHER", "AUTHOR", "SUBJECT", "DATE", "GRADE", "COMMENT"}, rows)
}

func optID(id int) *int {
	if id <= 0 {
		return nil
	}
	return &id
}
