package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrprojector/jobboard/internal/core/domain"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memStore
	sink      *recordingSink
	resumes   *ResumeService
	vacancies *VacancyService
	responses *ResponseService

	itDept, salesDept       int64
	alice, bob              *domain.User // applicants
	manager, peer, outsider *domain.User // peer shares manager's department, outsider does not
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	sink := &recordingSink{}
	log := zerolog.Nop()

	f := &fixture{
		store:     store,
		sink:      sink,
		resumes:   NewResumeService(store, memResumes{store}, memSkills{store}, sink, log),
		vacancies: NewVacancyService(store, memVacancies{store}, memUsers{store}, sink, log),
		responses: NewResponseService(store, memVacancies{store}, memResumes{store}, memResponses{store}, memUsers{store}, log),
	}
	f.resumes.engine.now = func() time.Time { return fixedNow }
	f.vacancies.engine.now = func() time.Time { return fixedNow }

	ctx := context.Background()
	it := &domain.Department{Name: "IT"}
	sales := &domain.Department{Name: "Sales"}
	_ = memDepartments{store}.Create(ctx, it)
	_ = memDepartments{store}.Create(ctx, sales)
	f.itDept, f.salesDept = it.ID, sales.ID

	f.alice = f.addUser(t, "alice@example.com", domain.RoleApplicant, it.ID)
	f.bob = f.addUser(t, "bob@example.com", domain.RoleApplicant, sales.ID)
	f.manager = f.addUser(t, "m1@example.com", domain.RoleManager, it.ID)
	f.peer = f.addUser(t, "m2@example.com", domain.RoleManager, it.ID)
	f.outsider = f.addUser(t, "m3@example.com", domain.RoleManager, sales.ID)
	return f
}

func (f *fixture) addUser(t *testing.T, email string, role domain.Role, departmentID int64) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, FirstName: "First", LastName: "Last", Role: role, DepartmentID: departmentID}
	if err := (memUsers{f.store}).Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func (f *fixture) draftResume(t *testing.T, owner *domain.User, skills ...string) *domain.Resume {
	t.Helper()
	r, err := f.resumes.Create(context.Background(), owner.ID, domain.ResumeContent{
		CurrentPosition: "Developer",
		DesiredPosition: "Senior developer",
		Experience:      3,
		Bio:             "bio",
		Skills:          skills,
	})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}
	return r
}

func (f *fixture) publishedResume(t *testing.T, owner *domain.User) *domain.Resume {
	t.Helper()
	r := f.draftResume(t, owner, "go")
	r, err := f.resumes.Publish(context.Background(), owner.ID, r.ID)
	if err != nil {
		t.Fatalf("publish resume: %v", err)
	}
	return r
}

func (f *fixture) draftVacancy(t *testing.T, creator *domain.User) *domain.Vacancy {
	t.Helper()
	exp := 2
	v, err := f.vacancies.Create(context.Background(), creator.ID, domain.VacancyContent{
		Position:    "Backend engineer",
		Experience:  &exp,
		Description: "Go services",
	})
	if err != nil {
		t.Fatalf("create vacancy: %v", err)
	}
	return v
}

func (f *fixture) publishedVacancy(t *testing.T, creator *domain.User) *domain.Vacancy {
	t.Helper()
	v := f.draftVacancy(t, creator)
	v, err := f.vacancies.Publish(context.Background(), creator.ID, v.ID)
	if err != nil {
		t.Fatalf("publish vacancy: %v", err)
	}
	return v
}

func strp(s string) *string { return &s }
func intp(v int) *int       { return &v }
