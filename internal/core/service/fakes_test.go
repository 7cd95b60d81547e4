package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/pagination"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory store
//
// memStore stands in for the relational store. Transactions are serialized
// by txMu, which is coarser than a row lock but gives the same outcome for a
// single contended row. A failing transaction restores the snapshot taken
// when it began.
// ---------------------------------------------------------------------------

type memData struct {
	nextID      int64
	users       map[int64]*domain.User
	departments map[int64]*domain.Department
	skills      map[string]struct{}
	resumes     map[int64]*domain.Resume
	vacancies   map[int64]*domain.Vacancy
	responses   map[int64]*domain.VacancyResponse
}

type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data memData

	commits   int
	rollbacks int
}

func newMemStore() *memStore {
	return &memStore{data: memData{
		users:       make(map[int64]*domain.User),
		departments: make(map[int64]*domain.Department),
		skills:      make(map[string]struct{}),
		resumes:     make(map[int64]*domain.Resume),
		vacancies:   make(map[int64]*domain.Vacancy),
		responses:   make(map[int64]*domain.VacancyResponse),
	}}
}

func (s *memStore) id() int64 {
	s.data.nextID++
	return s.data.nextID
}

func (s *memStore) snapshot() memData {
	d := memData{
		nextID:      s.data.nextID,
		users:       make(map[int64]*domain.User, len(s.data.users)),
		departments: make(map[int64]*domain.Department, len(s.data.departments)),
		skills:      make(map[string]struct{}, len(s.data.skills)),
		resumes:     make(map[int64]*domain.Resume, len(s.data.resumes)),
		vacancies:   make(map[int64]*domain.Vacancy, len(s.data.vacancies)),
		responses:   make(map[int64]*domain.VacancyResponse, len(s.data.responses)),
	}
	for k, v := range s.data.users {
		d.users[k] = cloneUser(v)
	}
	for k, v := range s.data.departments {
		dep := *v
		d.departments[k] = &dep
	}
	for k := range s.data.skills {
		d.skills[k] = struct{}{}
	}
	for k, v := range s.data.resumes {
		d.resumes[k] = cloneResume(v)
	}
	for k, v := range s.data.vacancies {
		d.vacancies[k] = cloneVacancy(v)
	}
	for k, v := range s.data.responses {
		r := *v
		d.responses[k] = &r
	}
	return d
}

// WithinTx implements ports.Transactor.
func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	before := s.snapshot()
	s.mu.Unlock()

	err := fn(ctx)
	if err == nil {
		err = ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.data = before
		s.rollbacks++
		return err
	}
	s.commits++
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Department != nil {
		dep := *u.Department
		c.Department = &dep
	}
	return &c
}

func cloneResume(r *domain.Resume) *domain.Resume {
	c := *r
	c.Skills = append([]string(nil), r.Skills...)
	if r.PublishedAt != nil {
		t := *r.PublishedAt
		c.PublishedAt = &t
	}
	c.Owner = nil
	return &c
}

func cloneVacancy(v *domain.Vacancy) *domain.Vacancy {
	c := *v
	if v.Experience != nil {
		e := *v.Experience
		c.Experience = &e
	}
	if v.PublishedAt != nil {
		t := *v.PublishedAt
		c.PublishedAt = &t
	}
	c.Creator = nil
	return &c
}

func (s *memStore) withOwner(r *domain.Resume) *domain.Resume {
	c := cloneResume(r)
	c.Owner = s.userWithDepartment(r.OwnerID)
	return c
}

func (s *memStore) withCreator(v *domain.Vacancy) *domain.Vacancy {
	c := cloneVacancy(v)
	c.Creator = s.userWithDepartment(v.CreatorID)
	return c
}

func (s *memStore) userWithDepartment(id int64) *domain.User {
	u := cloneUser(s.data.users[id])
	if u != nil {
		if d, ok := s.data.departments[u.DepartmentID]; ok {
			dep := *d
			u.Department = &dep
		}
	}
	return u
}

func (s *memStore) departmentOf(userID int64) int64 {
	if u, ok := s.data.users[userID]; ok {
		return u.DepartmentID
	}
	return 0
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func inIDs(ids []int64, id int64) bool {
	if len(ids) == 0 {
		return true
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func inStates(states []domain.State, s domain.State) bool {
	if len(states) == 0 {
		return true
	}
	for _, v := range states {
		if v == s {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Repositories
// ---------------------------------------------------------------------------

type memUsers struct{ s *memStore }

var _ ports.UserRepository = memUsers{}

func (r memUsers) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.users {
		if existing.Email == u.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	u.ID = r.s.id()
	r.s.data.users[u.ID] = cloneUser(u)
	return nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if u.Email == email {
			return r.s.userWithDepartment(u.ID), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[id]; !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.s.userWithDepartment(id), nil
}

func (r memUsers) ListApplicants(f ports.ApplicantFilter) pagination.Query[*domain.User] {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []*domain.User
	for id, u := range r.s.data.users {
		if u.Role != domain.RoleApplicant || !inIDs(f.DepartmentIDs, u.DepartmentID) {
			continue
		}
		if f.Email != "" && !containsFold(u.Email, f.Email) {
			continue
		}
		if f.FullName != "" && !containsFold(u.FullName(), f.FullName) {
			continue
		}
		rows = append(rows, r.s.userWithDepartment(id))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return pagination.SliceQuery[*domain.User]{Rows: rows}
}

type memDepartments struct{ s *memStore }

var _ ports.DepartmentRepository = memDepartments{}

func (r memDepartments) Create(_ context.Context, d *domain.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.ID = r.s.id()
	c := *d
	r.s.data.departments[d.ID] = &c
	return nil
}

func (r memDepartments) FindByID(_ context.Context, id int64) (*domain.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.data.departments[id]
	if !ok {
		return nil, domain.ErrDepartmentNotFound
	}
	c := *d
	return &c, nil
}

func (r memDepartments) List(context.Context) ([]domain.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Department, 0, len(r.s.data.departments))
	for _, d := range r.s.data.departments {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memSkills struct{ s *memStore }

var _ ports.SkillRepository = memSkills{}

func (r memSkills) Intern(_ context.Context, names []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range names {
		r.s.data.skills[n] = struct{}{}
	}
	return nil
}

type memResumes struct{ s *memStore }

var _ ports.ResumeRepository = memResumes{}

func (r memResumes) Create(_ context.Context, res *domain.Resume) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res.ID = r.s.id()
	r.s.data.resumes[res.ID] = cloneResume(res)
	return nil
}

func (r memResumes) find(ownerID, id int64) (*domain.Resume, error) {
	res, ok := r.s.data.resumes[id]
	if !ok || res.OwnerID != ownerID {
		return nil, domain.ErrResumeNotFound
	}
	return r.s.withOwner(res), nil
}

func (r memResumes) Lock(_ context.Context, ownerID, id int64) (*domain.Resume, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.find(ownerID, id)
}

func (r memResumes) FindByOwner(_ context.Context, ownerID, id int64) (*domain.Resume, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.find(ownerID, id)
}

func (r memResumes) SaveLifecycle(_ context.Context, res *domain.Resume) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.data.resumes[res.ID]
	stored.State = res.State
	if res.PublishedAt != nil {
		t := *res.PublishedAt
		stored.PublishedAt = &t
	} else {
		stored.PublishedAt = nil
	}
	return nil
}

func (r memResumes) SaveContent(_ context.Context, res *domain.Resume) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.data.resumes[res.ID]
	stored.CurrentPosition = res.CurrentPosition
	stored.DesiredPosition = res.DesiredPosition
	stored.Experience = res.Experience
	stored.Bio = res.Bio
	stored.Skills = append([]string(nil), res.Skills...)
	return nil
}

func (r memResumes) ListByOwner(_ context.Context, ownerID int64, f ports.ResumeOwnerFilter) ([]*domain.Resume, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Resume
	for id, res := range r.s.data.resumes {
		if res.OwnerID == ownerID && inStates(f.States, res.State) && inIDs(f.IDs, id) {
			out = append(out, r.s.withOwner(res))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memResumes) ListPublished(f ports.ResumeFilter) pagination.Query[*domain.Resume] {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []*domain.Resume
	for _, res := range r.s.data.resumes {
		if res.State != domain.StatePublished || !inIDs(f.DepartmentIDs, r.s.departmentOf(res.OwnerID)) {
			continue
		}
		if f.ExperienceGTE != nil && res.Experience < *f.ExperienceGTE {
			continue
		}
		if f.CurrentPosition != "" && !containsFold(res.CurrentPosition, f.CurrentPosition) {
			continue
		}
		rows = append(rows, r.s.withOwner(res))
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].PublishedAt.Equal(*rows[j].PublishedAt) {
			return rows[i].PublishedAt.After(*rows[j].PublishedAt)
		}
		return rows[i].ID > rows[j].ID
	})
	return pagination.SliceQuery[*domain.Resume]{Rows: rows}
}

type memVacancies struct{ s *memStore }

var _ ports.VacancyRepository = memVacancies{}

func (r memVacancies) Create(_ context.Context, v *domain.Vacancy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v.ID = r.s.id()
	r.s.data.vacancies[v.ID] = cloneVacancy(v)
	return nil
}

func (r memVacancies) Lock(_ context.Context, creatorID, id int64) (*domain.Vacancy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.data.vacancies[id]
	if !ok || v.CreatorID != creatorID {
		return nil, domain.ErrVacancyNotFound
	}
	return r.s.withCreator(v), nil
}

func (r memVacancies) SaveLifecycle(_ context.Context, v *domain.Vacancy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.data.vacancies[v.ID]
	stored.State = v.State
	if v.PublishedAt != nil {
		t := *v.PublishedAt
		stored.PublishedAt = &t
	} else {
		stored.PublishedAt = nil
	}
	return nil
}

func (r memVacancies) SaveContent(_ context.Context, v *domain.Vacancy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.data.vacancies[v.ID]
	stored.Position = v.Position
	stored.Description = v.Description
	stored.Experience = nil
	if v.Experience != nil {
		e := *v.Experience
		stored.Experience = &e
	}
	return nil
}

func (r memVacancies) FindInDepartment(_ context.Context, departmentID, id int64) (*domain.Vacancy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.data.vacancies[id]
	if !ok || r.s.departmentOf(v.CreatorID) != departmentID {
		return nil, domain.ErrVacancyNotFound
	}
	return r.s.withCreator(v), nil
}

func (r memVacancies) FindPublished(_ context.Context, id int64) (*domain.Vacancy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.data.vacancies[id]
	if !ok || v.State != domain.StatePublished {
		return nil, domain.ErrVacancyNotFound
	}
	return r.s.withCreator(v), nil
}

func (r memVacancies) list(match func(v *domain.Vacancy) bool, f ports.VacancyFilter) pagination.Query[*domain.Vacancy] {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []*domain.Vacancy
	for _, v := range r.s.data.vacancies {
		if !match(v) || !inStates(f.States, v.State) {
			continue
		}
		if f.Position != "" && !containsFold(v.Position, f.Position) {
			continue
		}
		if !inIDs(f.DepartmentIDs, r.s.departmentOf(v.CreatorID)) {
			continue
		}
		rows = append(rows, r.s.withCreator(v))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return pagination.SliceQuery[*domain.Vacancy]{Rows: rows}
}

func (r memVacancies) ListInDepartment(departmentID int64, f ports.VacancyFilter) pagination.Query[*domain.Vacancy] {
	return r.list(func(v *domain.Vacancy) bool { return r.s.departmentOf(v.CreatorID) == departmentID }, f)
}

func (r memVacancies) ListPublished(f ports.VacancyFilter) pagination.Query[*domain.Vacancy] {
	return r.list(func(v *domain.Vacancy) bool { return v.State == domain.StatePublished }, f)
}

type memResponses struct{ s *memStore }

var _ ports.VacancyResponseRepository = memResponses{}

func (r memResponses) Create(_ context.Context, resp *domain.VacancyResponse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.responses {
		if existing.VacancyID == resp.VacancyID && existing.ResumeID == resp.ResumeID {
			return domain.ErrVacancyResponseAlreadyExists
		}
	}
	resp.ID = r.s.id()
	stored := *resp
	stored.Vacancy, stored.Resume = nil, nil
	r.s.data.responses[resp.ID] = &stored
	return nil
}

func (r memResponses) Exists(_ context.Context, vacancyID, resumeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.responses {
		if existing.VacancyID == vacancyID && existing.ResumeID == resumeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memResponses) ListInDepartment(departmentID int64) pagination.Query[*domain.VacancyResponse] {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []*domain.VacancyResponse
	for _, resp := range r.s.data.responses {
		v := r.s.data.vacancies[resp.VacancyID]
		if r.s.departmentOf(v.CreatorID) != departmentID {
			continue
		}
		c := *resp
		c.Vacancy = r.s.withCreator(v)
		c.Resume = r.s.withOwner(r.s.data.resumes[resp.ResumeID])
		rows = append(rows, &c)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return pagination.SliceQuery[*domain.VacancyResponse]{Rows: rows}
}

// ---------------------------------------------------------------------------
// Audit sink
// ---------------------------------------------------------------------------

type recordingSink struct {
	mu     sync.Mutex
	events []domain.LifecycleEvent
}

func (s *recordingSink) Enqueue(e domain.LifecycleEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) actions() []domain.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Action, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Action)
	}
	return out
}
