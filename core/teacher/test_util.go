package teacher

import (
	"context"
	"net/http"
	"sync"

	"github.com/springreviewer/admin/core"
)

// RepositoryMock is an in-memory Repository for tests.
// Err, when set, is returned by every call.
type RepositoryMock struct {
	mu       sync.Mutex
	teachers []Teacher
	pkCount  int
	Err      error
	Queries  int
}

var _ Repository = (*RepositoryMock)(nil)

func NewRepositoryMock(teachers ...Teacher) *RepositoryMock {
	repo := &RepositoryMock{teachers: append([]Teacher(nil), teachers...)}
	for _, t := range teachers {
		if t.ID > repo.pkCount {
			repo.pkCount = t.ID
		}
	}
	return repo
}

func (repo *RepositoryMock) notFound() error {
	return &core.APIError{Status: http.StatusNotFound, Message: "teacher not found"}
}

func (repo *RepositoryMock) QueryAll(context.Context) ([]Teacher, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.Queries++
	if repo.Err != nil {
		return nil, repo.Err
	}
	return append([]Teacher(nil), repo.teachers...), nil
}

func (repo *RepositoryMock) GetByID(_ context.Context, id int) (Teacher, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return Teacher{}, repo.Err
	}
	for _, t := range repo.teachers {
		if t.ID == id {
			return t, nil
		}
	}
	return Teacher{}, repo.notFound()
}

func (repo *RepositoryMock) Create(_ context.Context, v Values) (Teacher, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return Teacher{}, repo.Err
	}
	repo.pkCount++
	t := Teacher{ID: repo.pkCount, Surname: v.Surname, Name: v.Name, Patronym: v.Patronym, Subjects: []string{}}
	repo.teachers = append(repo.teachers, t)
	return t, nil
}

func (repo *RepositoryMock) Update(_ context.Context, id int, v Values) (Teacher, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return Teacher{}, repo.Err
	}
	for i, t := range repo.teachers {
		if t.ID == id {
			repo.teachers[i].Surname = v.Surname
			repo.teachers[i].Name = v.Name
			repo.teachers[i].Patronym = v.Patronym
			return repo.teachers[i], nil
		}
	}
	return Teacher{}, repo.notFound()
}

func (repo *RepositoryMock) Delete(_ context.Context, id int) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return repo.Err
	}
	for i, t := range repo.teachers {
		if t.ID == id {
			repo.teachers = append(repo.teachers[:i], repo.teachers[i+1:]...)
			return nil
		}
	}
	return repo.notFound()
}

// LinkerMock records link operations. Calls for subject ids in Fail return the mapped error.
type LinkerMock struct {
	mu   sync.Mutex
	ops  []LinkOp
	Fail map[int]error
}

var _ Linker = (*LinkerMock)(nil)

func (l *LinkerMock) record(op LinkOp) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
	return l.Fail[op.SubjectID]
}

func (l *LinkerMock) LinkSubject(_ context.Context, _, subjectID int) error {
	return l.record(LinkOp{SubjectID: subjectID})
}

func (l *LinkerMock) UnlinkSubject(_ context.Context, _, subjectID int) error {
	return l.record(LinkOp{SubjectID: subjectID, Unlink: true})
}

// Ops returns the recorded operations in call order.
func (l *LinkerMock) Ops() []LinkOp {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LinkOp(nil), l.ops...)
}
