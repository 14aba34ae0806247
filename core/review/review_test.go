package review

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/filter"
	"github.com/springreviewer/admin/core/subject"
	"github.com/springreviewer/admin/core/teacher"
	"github.com/springreviewer/admin/core/user"
	logsvc "github.com/springreviewer/admin/services/logger"
	"github.com/springreviewer/admin/services/notify"
)

type fixture struct {
	deps     core.Deps
	buf      *notify.Buffer
	repo     *RepositoryMock
	users    *user.RepositoryMock
	teachers *teacher.RepositoryMock
	subjects *subject.RepositoryMock
}

func newFixture(reviews ...Review) *fixture {
	buf := notify.NewBuffer()
	return &fixture{
		deps: core.NewDeps(buf, logsvc.NewLoggerMock()),
		buf:  buf,
		repo: NewRepositoryMock(reviews...),
		users: user.NewRepositoryMock(
			user.User{ID: 1, Username: "alice"},
			user.User{ID: 2, Username: "bob"},
		),
		teachers: teacher.NewRepositoryMock(
			teacher.Teacher{ID: 10, Surname: "Borisov", Name: "Oleg"},
			teacher.Teacher{ID: 11, Surname: "antonova", Name: "Anna", Patronym: "Ivanovna"},
		),
		subjects: subject.NewRepositoryMock(
			subject.Subject{ID: 100, Name: "Math"},
			subject.Subject{ID: 101, Name: "Art"},
		),
	}
}

func (fx *fixture) list() *ListController {
	return NewListController(fx.repo, fx.users, fx.teachers, fx.subjects, fx.deps)
}

func sampleReviews() []Review {
	return []Review{
		{ID: 1, AuthorID: filter.IntPtr(1), Author: "alice", Teacher: &TeacherRef{ID: 10, Surname: "B", Name: "Oleg"},
			SubjectID: filter.IntPtr(100), SubjectName: "Math", Date: "2024-03-05", Grade: 8},
		{ID: 2, AuthorID: filter.IntPtr(2), Author: "bob", Teacher: &TeacherRef{ID: 11, Surname: "a", Name: "Anna"},
			SubjectID: filter.IntPtr(101), SubjectName: "Art", Date: "2024-03-06", Grade: 4},
		{ID: 3, AuthorID: filter.IntPtr(1), Author: "alice", Teacher: &TeacherRef{ID: 11, Surname: "a", Name: "Anna"},
			SubjectID: filter.IntPtr(100), SubjectName: "Math", Date: "2024-03-07", Grade: 10},
	}
}

func reviewIDs(reviews []Review) []int {
	ids := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestSortByTeacher(t *testing.T) {
	reviews := []Review{
		{ID: 1, Teacher: &TeacherRef{Surname: "B", Name: "x"}},
		{ID: 2, Teacher: &TeacherRef{Surname: "a", Name: "Zed"}},
		{ID: 3},
		{ID: 4, Teacher: &TeacherRef{Surname: "A", Name: "bob"}},
		{ID: 5, Teacher: &TeacherRef{Surname: "a", Name: "zed"}},
	}
	SortByTeacher(reviews)
	assert.Equal(t, []int{3, 4, 2, 5, 1}, reviewIDs(reviews))
}

func TestSanitizeGrade(t *testing.T) {
	tests := []struct {
		input      string
		wantDigits string
		wantGrade  int
	}{
		{input: "7a2", wantDigits: "72", wantGrade: 72},
		{input: "9", wantDigits: "9", wantGrade: 9},
		{input: " 1,0 ", wantDigits: "10", wantGrade: 10},
		{input: "abc", wantDigits: "", wantGrade: 0},
		{input: "٣", wantDigits: "", wantGrade: 0},
		{input: "99999999999999999999999", wantDigits: "99999999999999999999999", wantGrade: math.MaxInt32},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			digits, grade := SanitizeGrade(tc.input)
			assert.Equal(t, tc.wantDigits, digits)
			assert.Equal(t, tc.wantGrade, grade)
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	reviews := append(sampleReviews(), Review{ID: 4, Grade: 5})

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []int
	}{
		{name: "none", filter: Filter{}, wantIDs: []int{1, 2, 3, 4}},
		{name: "author", filter: Filter{AuthorID: filter.IntPtr(1)}, wantIDs: []int{1, 3}},
		{name: "teacher", filter: Filter{TeacherID: filter.IntPtr(11)}, wantIDs: []int{2, 3}},
		{name: "subject", filter: Filter{SubjectID: filter.IntPtr(101)}, wantIDs: []int{2}},
		{name: "combined", filter: Filter{AuthorID: filter.IntPtr(1), TeacherID: filter.IntPtr(11)}, wantIDs: []int{3}},
		{name: "no match", filter: Filter{AuthorID: filter.IntPtr(2), SubjectID: filter.IntPtr(100)}, wantIDs: []int{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.filter.Apply(reviews)
			assert.Equal(t, tc.wantIDs, reviewIDs(got))
			assert.Equal(t, got, tc.filter.Apply(reviews))
		})
	}
}

func TestReview_Display(t *testing.T) {
	r := sampleReviews()[0]
	assert.Equal(t, "05.03.2024", r.DateText())
	assert.Equal(t, "B Oleg", r.TeacherText())
	assert.Equal(t, "8/10", r.GradeText())
	assert.Equal(t, "No comment", r.CommentText())

	empty := Review{}
	assert.Equal(t, "N/A", empty.DateText())
	assert.Equal(t, "N/A", empty.TeacherText())
	assert.Equal(t, "N/A", empty.AuthorText())
	assert.Equal(t, "N/A", empty.SubjectText())
}

func TestForm_OpenCreate(t *testing.T) {
	nowFunc = func() time.Time { return time.Date(2024, 9, 1, 23, 30, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	fx := newFixture()
	form := NewForm(fx.deps, fx.users, fx.teachers, fx.subjects, nil, nil)
	require.NoError(t, form.Open(context.Background(), nil))

	assert.Equal(t, core.DialogCreating, form.State())
	assert.Equal(t, Values{Date: "2024-09-01"}, form.Values())
	lk := form.Lookups()
	assert.Len(t, lk.Users, 2)
	assert.Len(t, lk.Teachers, 2)
	assert.Len(t, lk.Subjects, 2)
	assert.False(t, form.Loading())
}

func TestForm_OpenEdit(t *testing.T) {
	t.Run("populates every field", func(t *testing.T) {
		fx := newFixture()
		form := NewForm(fx.deps, fx.users, fx.teachers, fx.subjects, nil, nil)
		r := sampleReviews()[0]
		r.Comment = "good"
		require.NoError(t, form.Open(context.Background(), &r))

		assert.Equal(t, Values{
			UserID:    filter.IntPtr(1),
			TeacherID: filter.IntPtr(10),
			SubjectID: filter.IntPtr(100),
			Date:      "2024-03-05",
			Grade:     8,
			Comment:   "good",
		}, form.Values())
		assert.Equal(t, "8", form.GradeText())
	})

	t.Run("missing author id clears the form", func(t *testing.T) {
		fx := newFixture()
		form := NewForm(fx.deps, fx.users, fx.teachers, fx.subjects, nil, nil)
		form.Open(context.Background(), nil)

		r := sampleReviews()[1]
		r.AuthorID = nil
		err := form.Open(context.Background(), &r)
		assert.Equal(t, core.ErrIncompleteRecord, err)
		assert.Equal(t, Values{}, form.Values())
		assert.Equal(t, "", form.GradeText())
		assert.Equal(t, []string{"Could not load the review for editing."}, fx.buf.Messages(notify.LevelError))
	})

	t.Run("failed lookup disables its field only", func(t *testing.T) {
		fx := newFixture()
		fx.teachers.Err = &core.APIError{Status: http.StatusInternalServerError}
		form := NewForm(fx.deps, fx.users, fx.teachers, fx.subjects, nil, nil)
		require.NoError(t, form.Open(context.Background(), nil))

		assert.True(t, form.IsOpen())
		assert.True(t, form.Disabled(FieldTeacher))
		assert.False(t, form.Disabled(FieldUser))
		assert.False(t, form.Disabled(FieldSubject))
		assert.Len(t, form.Lookups().Users, 2)
		assert.Len(t, form.Lookups().Subjects, 2)
		assert.Equal(t, []string{"Could not load data for the review form."}, fx.buf.Messages(notify.LevelError))
	})
}

func TestForm_SetGradeText(t *testing.T) {
	fx := newFixture()
	form := NewForm(fx.deps, fx.users, fx.teachers, fx.subjects, nil, nil)
	require.NoError(t, form.Open(context.Background(), nil))

	tests := []struct {
		input   string
		want    string
		wantErr string
	}{
		{input: "7a2", want: "72", wantErr: "grade must be 10 or less"},
		{input: "9", want: "9"},
		{input: "", want: "", wantErr: "grade is required"},
		{input: "0", want: "0", wantErr: "grade is required"},
		{input: "10", want: "10"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.wantErr, form.SetGradeText(tc.input))
			assert.Equal(t, tc.want, form.GradeText())
			if tc.wantErr == "" {
				assert.NotContains(t, form.Errors(), FieldGrade)
			} else {
				assert.Equal(t, tc.wantErr, form.Errors()[FieldGrade])
			}
		})
	}
}

func TestForm_Submit(t *testing.T) {
	fx := newFixture()
	var sent []Values
	form := NewForm(fx.deps, fx.users, fx.teachers, fx.subjects,
		func(_ context.Context, v Values) error {
			sent = append(sent, v)
			return nil
		}, nil)
	require.NoError(t, form.Open(context.Background(), nil))

	form.SetGradeText("9")
	err := form.Submit(context.Background())
	require.Error(t, err)
	assert.Empty(t, sent, "nothing is sent without author, teacher and subject")
	assert.Equal(t, FieldUser, form.Focus())
	assert.Equal(t, map[string]string{
		FieldUser:    "userId is required",
		FieldTeacher: "teacherId is required",
		FieldSubject: "subjectId is required",
	}, form.Errors())

	form.SetUserID(1)
	form.SetTeacherID(10)
	form.SetSubjectID(100)
	form.SetComment("  fine  ")
	require.NoError(t, form.Submit(context.Background()))
	require.Len(t, sent, 1)
	assert.Equal(t, "fine", sent[0].Comment)
	assert.Equal(t, 9, sent[0].Grade)
}

func TestListController_LoadAll(t *testing.T) {
	fx := newFixture(sampleReviews()...)
	ctrl := fx.list()
	assert.Equal(t, LabelPending, ctrl.Label().State)

	require.NoError(t, ctrl.Load(context.Background(), ScopeAll))
	assert.Equal(t, []int{2, 3, 1}, reviewIDs(ctrl.Displayed()), "sorted by teacher, case-insensitive")
	assert.Equal(t, "All reviews", ctrl.Title())
	lk := ctrl.FilterLookups()
	assert.Len(t, lk.Users, 2)
	assert.Len(t, lk.Teachers, 2)
	assert.Len(t, lk.Subjects, 2)

	ctrl.SetFilter(Filter{AuthorID: filter.IntPtr(1)})
	assert.Equal(t, []int{3, 1}, reviewIDs(ctrl.Displayed()))
	assert.Equal(t, 1, fx.repo.Queries, "filters never re-fetch")

	// lookups are loaded once
	fx.users.Err = &core.APIError{Status: http.StatusInternalServerError}
	require.NoError(t, ctrl.Reload(context.Background()))
	assert.Equal(t, Filter{}, ctrl.Filter())
	assert.Empty(t, fx.buf.Messages(notify.LevelError))
}

func TestListController_LoadScoped(t *testing.T) {
	tests := []struct {
		name      string
		scope     Scope
		setup     func(fx *fixture)
		wantIDs   []int
		wantLabel Label
		wantTitle string
	}{
		{
			name:      "user, embedded name",
			scope:     ScopeUser(1),
			wantIDs:   []int{3, 1},
			wantLabel: Label{State: LabelResolved, Text: "alice"},
			wantTitle: "Reviews by user: alice",
		},
		{
			name:  "user without reviews, lookup by id",
			scope: ScopeUser(2),
			setup: func(fx *fixture) {
				fx.repo = NewRepositoryMock(sampleReviews()[0])
			},
			wantIDs:   []int{},
			wantLabel: Label{State: LabelResolved, Text: "bob"},
			wantTitle: "Reviews by user: bob",
		},
		{
			name:      "user confirmed absent",
			scope:     ScopeUser(42),
			wantIDs:   []int{},
			wantLabel: Label{State: LabelNotFound, Text: "User ID: 42 (not found)"},
			wantTitle: "Reviews by user: User ID: 42 (not found)",
		},
		{
			name:  "user lookup failure",
			scope: ScopeUser(42),
			setup: func(fx *fixture) {
				fx.users.Err = &core.APIError{Status: http.StatusBadGateway}
			},
			wantIDs:   []int{},
			wantLabel: Label{State: LabelFallback, Text: "ID: 42"},
			wantTitle: "Reviews by user: ID: 42",
		},
		{
			name:      "teacher, embedded name",
			scope:     ScopeTeacher(11),
			wantIDs:   []int{2, 3},
			wantLabel: Label{State: LabelResolved, Text: "a Anna"},
			wantTitle: "Reviews of teacher: a Anna",
		},
		{
			name:      "teacher without reviews",
			scope:     ScopeTeacher(11),
			setup:     func(fx *fixture) { fx.repo = NewRepositoryMock() },
			wantIDs:   []int{},
			wantLabel: Label{State: LabelResolved, Text: "antonova Anna Ivanovna"},
			wantTitle: "Reviews of teacher: antonova Anna Ivanovna",
		},
		{
			name:  "list request not found",
			scope: ScopeTeacher(99),
			setup: func(fx *fixture) {
				fx.repo.Err = &core.APIError{Status: http.StatusNotFound}
			},
			wantIDs:   []int{},
			wantLabel: Label{State: LabelNotFound, Text: "Teacher ID: 99 (not found or has no reviews)"},
			wantTitle: "Reviews of teacher: Teacher ID: 99 (not found or has no reviews)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFixture(sampleReviews()...)
			if tc.setup != nil {
				tc.setup(fx)
			}
			ctrl := fx.list()
			_ = ctrl.Load(context.Background(), tc.scope)

			assert.Equal(t, tc.wantIDs, reviewIDs(ctrl.Displayed()))
			assert.Equal(t, tc.wantLabel, ctrl.Label())
			assert.Equal(t, tc.wantTitle, ctrl.Title())
			assert.Empty(t, ctrl.FilterLookups().Users, "scoped lists never load filter lookups")
		})
	}
}

// supersedingRepository starts a newer load while the by-user fetch is in flight, then fails it.
type supersedingRepository struct {
	*RepositoryMock
	ctrl *ListController
}

func (repo *supersedingRepository) QueryByUser(ctx context.Context, _ int) ([]Review, error) {
	if err := repo.ctrl.Load(ctx, ScopeAll); err != nil {
		return nil, err
	}
	return nil, &core.APIError{Status: http.StatusBadGateway, Message: "upstream down"}
}

func TestListController_LoadSuperseded(t *testing.T) {
	fx := newFixture(sampleReviews()...)
	repo := &supersedingRepository{RepositoryMock: fx.repo}
	ctrl := NewListController(repo, fx.users, fx.teachers, fx.subjects, fx.deps)
	repo.ctrl = ctrl

	require.NoError(t, ctrl.Load(context.Background(), ScopeUser(1)))
	assert.Equal(t, ScopeAll, ctrl.Scope())
	assert.Equal(t, []int{2, 3, 1}, reviewIDs(ctrl.Displayed()))
	assert.Equal(t, LabelResolved, ctrl.Label().State)
	assert.Empty(t, fx.buf.Messages(notify.LevelError), "a superseded failure is not reported")
}

func TestLabel_JSON(t *testing.T) {
	tests := []struct {
		name  string
		label Label
		want  string
	}{
		{"pending", Label{}, `{"state":"pending","text":""}`},
		{"resolved", Label{State: LabelResolved, Text: "alice"}, `{"state":"resolved","text":"alice"}`},
		{"not found", Label{State: LabelNotFound, Text: "User ID: 2 (not found)"}, `{"state":"not_found","text":"User ID: 2 (not found)"}`},
		{"fallback", Label{State: LabelFallback, Text: "ID: 7"}, `{"state":"fallback","text":"ID: 7"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.label)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(b))

			var got Label
			require.NoError(t, json.Unmarshal(b, &got))
			assert.Equal(t, tc.label, got)
		})
	}

	var l Label
	assert.Error(t, json.Unmarshal([]byte(`{"state":"missing","text":""}`), &l))
}

func TestListController_Search(t *testing.T) {
	fx := newFixture(sampleReviews()...)
	ctrl := fx.list()

	require.NoError(t, ctrl.Load(context.Background(), ScopeSearch(SearchParams{SubjectName: " Math ", MinGrade: filter.IntPtr(9)})))
	assert.Equal(t, []int{3}, reviewIDs(ctrl.Displayed()))
	assert.Equal(t, "Search results", ctrl.Title())
	assert.Equal(t, "Math", fx.repo.Searches[0].SubjectName)

	err := ctrl.Load(context.Background(), ScopeSearch(SearchParams{StartDate: "01/02/2024"}))
	require.Error(t, err)
	assert.Len(t, fx.repo.Searches, 1, "invalid criteria are never sent")
	assert.Equal(t, []string{"Invalid data: startDate does not match the 2006-01-02 format"}, fx.buf.Messages(notify.LevelError))
}

func TestListController_Edit(t *testing.T) {
	fx := newFixture(sampleReviews()...)
	ctrl := fx.list()
	require.NoError(t, ctrl.Load(context.Background(), ScopeAll))

	r := sampleReviews()[0]
	r.SubjectID = nil
	form, err := ctrl.Edit(context.Background(), r)
	assert.Nil(t, form)
	assert.Equal(t, core.ErrIncompleteRecord, err)
	assert.False(t, ctrl.Form().IsOpen())
	assert.Equal(t, []string{"Not enough data to edit this review."}, fx.buf.Messages(notify.LevelError))

	form, err = ctrl.Edit(context.Background(), sampleReviews()[0])
	require.NoError(t, err)
	form.SetGradeText("3")
	require.NoError(t, form.Submit(context.Background()))
	assert.False(t, form.IsOpen())
	assert.Equal(t, []string{"Review updated"}, fx.buf.Messages(notify.LevelSuccess))

	updated, err := fx.repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Grade)
}

func TestListController_Delete(t *testing.T) {
	fx := newFixture(sampleReviews()...)
	ctrl := fx.list()
	require.NoError(t, ctrl.Load(context.Background(), ScopeUser(1)))
	ctrl.SetFilter(Filter{SubjectID: filter.IntPtr(100)})

	var prompt string
	deleted, err := ctrl.Delete(context.Background(), sampleReviews()[2], core.ConfirmFunc(
		func(_ context.Context, p string) (bool, error) {
			prompt = p
			return true, nil
		}))
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, "Delete the review of a Anna by alice from 07.03.2024?", prompt)

	// the list shows exactly what the server returned after the delete
	assert.Equal(t, 2, fx.repo.Queries)
	assert.Equal(t, []int{1}, reviewIDs(ctrl.All()))
	assert.Equal(t, Filter{}, ctrl.Filter())
	assert.Equal(t, ScopeUser(1), ctrl.Scope())
}
