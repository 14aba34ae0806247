package main

import (
	"context"
	"flag"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/springreviewer/admin/core/subject"
	"github.com/springreviewer/admin/core/teacher"
	"github.com/springreviewer/admin/core/user"
)

// Users

func (cli *commandLine) runUsers(ctx context.Context, action string, args []string) error {
	c := user.NewListController(cli.users, cli.deps)
	cmd := cli.flagSet("users " + action)

	switch action {
	case "list":
		search := cmd.String("search", "", "Case-insensitive part of the username.")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}
		if err := c.Load(ctx); err != nil {
			return err
		}
		c.SetFilter(user.Filter{Search: *search})
		rows := make([][]string, 0)
		for _, usr := range c.Displayed() {
			rows = append(rows, []string{strconv.Itoa(usr.ID), usr.Username})
		}
		cli.table(c.EmptyText(), []string{"ID", "USERNAME"}, rows)
		return nil

	case "add", "edit":
		id := cmd.Int("id", 0, "The ID of the user to edit.")
		uname := cmd.String("username", "", "The username.")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}
		form := c.Add()
		if action == "edit" {
			usr, err := cli.user(ctx, cmd, *id)
			if err != nil {
				return err
			}
			form = c.Edit(usr)
		}
		if action == "add" || visited(cmd)["username"] {
			form.SetUsername(*uname)
		}
		return cli.formErrors(form.Submit(ctx))

	case "delete":
		id := cmd.Int("id", 0, "The ID of the user to delete.")
		yes := cmd.Bool("yes", false, "Do not ask for a confirmation.")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}
		usr, err := cli.user(ctx, cmd, *id)
		if err != nil {
			return err
		}
		return cli.deleted(c.Delete(ctx, usr, cli.confirmer(*yes)))

	default:
		return cli.unknownAction("users", action)
	}
}

func (cli *commandLine) user(ctx context.Context, cmd *flag.FlagSet, id int) (user.User, error) {
	if _, err := requireID(cmd, id); err != nil {
		return user.User{}, err
	}
	usr, err := cli.users.GetByID(ctx, id)
	return usr, errors.Wrapf(err, "finding user %d", id)
}

// Subjects

func (cli *commandLine) runSubjects(ctx context.Context, action string, args []string) error {
	c := subject.NewListController(cli.subjects, cli.deps)
	cmd := cli.flagSet("subjects " + action)

	switch action {
	case "list":
		search := cmd.String("search", "", "Case-insensitive part of the subject name.")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}
		if err := c.Load(ctx); err != nil {
			return err
		}
		c.SetFilter(subject.Filter{Search: *search})
		rows := make([][]string, 0)
		for _, sub := range c.Displayed() {
			rows = append(rows, []string{strconv.Itoa(sub.ID), sub.Name, sub.TeachersText()})
		}
		cli.table(c.EmptyText(), []string{"ID", "NAME", "TEACHERS"}, rows)
		return nil

	case "add", "edit":
		id := cmd.Int("id", 0, "The ID of the subject to edit.")
		name := cmd.String("name", "", "The subject name.")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}
		form := c.Add()
		if action == "edit" {
			sub, err := cli.subject(ctx, cmd, *id)
			if err != nil {
				return err
			}
			form = c.Edit(sub)
		}
		if action == "add" || visited(cmd)["name"] {
			form.SetName(*name)
		}
		return cli.formErrors(form.Submit(ctx))

	case "delete":
		id := cmd.Int("id", 0, "The ID of the subject to delete.")
		yes := cmd.Bool("yes", false, "Do not ask for a confirmation.")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}
		sub, err := cli.subject(ctx, cmd, *id)
		if err != nil {
			return err
		}
		return cli.deleted(c.Delete(ctx, sub, cli.confirmer(*yes)))

	default:
		return cli.unknownAction("subjects", action)
	}
}

func (cli *commandLine) subject(ctx context.Context, cmd *flag.FlagSet, id int) (subject.Subject, error) {
	if _, err := requireID(cmd, id); err != nil {
		return subject.Subject{}, err
	}
	sub, err := cli.subjects.GetByID(ctx, id)
	return sub, errors.Wrapf(err, "finding subject %d", id)
}

// Teachers

func (cli *commandLine) runTeachers(ctx context.Context, action string, args []string) error {
	c := teacher.NewListController(cli.teachers, cli.subjects, cli.linker, cli.deps)
	cmd := cli.flagSet("teachers " + action)

	switch action {
	case "list":
		search := cmd.String("search", "", "Case-insensitive part of the full name.")
		subjectName := cmd.String("subject", "", "Only teachers of this subject.")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}
		if err := c.Load(ctx); err != nil {
			return err
		}
		f := teacher.Filter{Search: *search}
		if *subjectName != "" {
			ids, err := resolveSubjects([]string{*subjectName}, c.Subjects())
			if err != nil {
				return err
			}
			f.SubjectID = &ids[0]
		}
		c.SetFilter(f)
		rows := make([][]string, 0)
		for _, t := range c.Displayed() {
			rows = append(rows, []string{strconv.Itoa(t.ID), t.FullName(), t.SubjectsText()})
		}
		cli.table(c.EmptyText(), []string{"ID", "NAME", "SUBJECTS"}, rows)
		return nil

	case "add", "edit":
		id := cmd.Int("id", 0, "The ID of the teacher to edit.")
		surname := cmd.String("surname", "", "The surname.")
		name := cmd.String("name", "", "The first name.")
		patronym := cmd.String("patronym", "", "The patronym (optional).")
		subjects := cmd.String("subjects", "", "Comma separated names of the subjects taught.")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}
		var form *teacher.Form
		if action == "edit" {
			t, err := cli.teacher(ctx, cmd, *id)
			if err != nil {
				return err
			}
			form = c.Edit(ctx, t)
		} else {
			form = c.Add(ctx)
		}

		set := visited(cmd)
		v := form.Values()
		if set["surname"] {
			v.Surname = *surname
		}
		if set["name"] {
			v.Name = *name
		}
		if set["patronym"] {
			v.Patronym = *patronym
		}
		form.SetValues(v)
		if set["subjects"] {
			ids, err := resolveSubjects(splitNames(*subjects), form.Subjects())
			if err != nil {
				return err
			}
			form.SetSubjectIDs(ids)
		}
		return cli.formErrors(form.Submit(ctx))

	case "delete":
		id := cmd.Int("id", 0, "The ID of the teacher to delete.")
		yes := cmd.Bool("yes", false, "Do not ask for a confirmation.")
		if err := cli.parse(cmd, args); err != nil {
			return err
		}
		t, err := cli.teacher(ctx, cmd, *id)
		if err != nil {
			return err
		}
		return cli.deleted(c.Delete(ctx, t, cli.confirmer(*yes)))

	default:
		return cli.unknownAction("teachers", action)
	}
}

func (cli *commandLine) teacher(ctx context.Context, cmd *flag.FlagSet, id int) (teacher.Teacher, error) {
	if _, err := requireID(cmd, id); err != nil {
		return teacher.Teacher{}, err
	}
	t, err := cli.teachers.GetByID(ctx, id)
	return t, errors.Wrapf(err, "finding teacher %d", id)
}

func splitNames(s string) []string {
	names := make([]string, 0)
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// resolveSubjects maps names (case-insensitively) to subject ids.
// An unknown name fails with the closest known subject name as a suggestion.
func resolveSubjects(names []string, subjects []subject.Subject) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		found := false
		for _, sub := range subjects {
			if strings.EqualFold(sub.Name, name) {
				ids, found = append(ids, sub.ID), true
				break
			}
		}
		if found {
			continue
		}
		if s := suggestSubject(name, subjects); s != "" {
			return nil, errors.Errorf("unknown subject %q (did you mean %q?)", name, s)
		}
		return nil, errors.Errorf("unknown subject %q", name)
	}
	return ids, nil
}

func suggestSubject(name string, subjects []subject.Subject) string {
	best, bestRatio := "", 0.6
	m := difflib.NewMatcher(strings.Split(strings.ToLower(name), ""), nil)
	for _, sub := range subjects {
		m.SetSeq2(strings.Split(strings.ToLower(sub.Name), ""))
		if r := m.Ratio(); r >= bestRatio {
			best, bestRatio = sub.Name, r
		}
	}
	return best
}
