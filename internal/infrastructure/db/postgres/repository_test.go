package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// sqlRecorder collects every statement gorm builds, with its arguments
// inlined.
type sqlRecorder struct {
	stmts []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.stmts = append(r.stmts, sql)
}

// find returns the first statement containing fragment.
func (r *sqlRecorder) find(t *testing.T, fragment string) string {
	t.Helper()
	for _, s := range r.stmts {
		if strings.Contains(s, fragment) {
			return s
		}
	}
	t.Fatalf("no statement contains %q; got %v", fragment, r.stmts)
	return ""
}

// dryRunDB builds statements without executing them. The pool is opened
// lazily and never pinged, so no server is needed.
func dryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(pgdriver.Open("host=localhost user=jobboard dbname=jobboard sslmode=disable"), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 rec,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db, rec
}

// failCreates makes every insert on db fail with err before it reaches the
// driver.
func failCreates(t *testing.T, db *gorm.DB, failure error) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("jobboard:fail_create", func(tx *gorm.DB) {
		_ = tx.AddError(failure)
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
}

func assertContains(t *testing.T, sql string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(sql, f) {
			t.Errorf("expected %q in\n%s", f, sql)
		}
	}
}

func intp(v int) *int { return &v }

// ---------------------------------------------------------------------------
// Row locks
// ---------------------------------------------------------------------------

func TestResumeRepository_LockSelectsForUpdateByOwner(t *testing.T) {
	db, rec := dryRunDB(t)

	if _, err := NewResumeRepository(db).Lock(context.Background(), 3, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	locked := rec.find(t, `FROM "resumes"`)
	assertContains(t, locked, "id = 7 AND owner_id = 3", "FOR UPDATE")

	skills := rec.find(t, "resume_skills")
	if strings.Contains(skills, "FOR UPDATE") {
		t.Fatalf("skill lookup must not lock: %s", skills)
	}
}

func TestResumeRepository_FindByOwnerDoesNotLock(t *testing.T) {
	db, rec := dryRunDB(t)

	if _, err := NewResumeRepository(db).FindByOwner(context.Background(), 3, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql := rec.find(t, `FROM "resumes"`); strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("plain read took a row lock: %s", sql)
	}
}

func TestVacancyRepository_LockSelectsForUpdateByCreator(t *testing.T) {
	db, rec := dryRunDB(t)

	if _, err := NewVacancyRepository(db).Lock(context.Background(), 5, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	locked := rec.find(t, `FROM "vacancies"`)
	assertContains(t, locked, "id = 11 AND creator_id = 5", "FOR UPDATE")

	creator := rec.find(t, `FROM "users"`)
	if strings.Contains(creator, "FOR UPDATE") {
		t.Fatalf("creator lookup must not lock: %s", creator)
	}
}

func TestLock_JoinsTheContextTransaction(t *testing.T) {
	db, rec := dryRunDB(t)
	tx := db.Session(&gorm.Session{})
	ctx := context.WithValue(context.Background(), txKey{}, tx)

	if _, err := NewVacancyRepository(db).Lock(ctx, 5, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertContains(t, rec.find(t, `FROM "vacancies"`), "FOR UPDATE")
}

// ---------------------------------------------------------------------------
// List filters
// ---------------------------------------------------------------------------

func TestResumeRepository_ListPublishedFilters(t *testing.T) {
	db, rec := dryRunDB(t)

	q := NewResumeRepository(db).ListPublished(ports.ResumeFilter{
		FullName:        "Petrova Anna",
		DepartmentIDs:   []int64{4, 7},
		CurrentPosition: "50%",
		DesiredPosition: "team_lead",
		ExperienceGTE:   intp(3),
	})
	if _, err := q.Fetch(context.Background(), 0, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertContains(t, rec.find(t, `FROM "resumes"`),
		"JOIN users AS owners ON owners.id = resumes.owner_id",
		"resumes.state = 'PUBLISHED'",
		"to_tsvector('simple', owners.last_name || ' ' || owners.first_name || ' ' || owners.patronymic)",
		"@@ plainto_tsquery('simple', 'Petrova Anna')",
		"owners.department_id IN (4,7)",
		`resumes.current_position ILIKE '%50\%%'`,
		`resumes.desired_position ILIKE '%team\_lead%'`,
		"resumes.experience >= 3",
	)
}

func TestResumeRepository_ListPublishedWithoutFilters(t *testing.T) {
	db, rec := dryRunDB(t)

	if _, err := NewResumeRepository(db).ListPublished(ports.ResumeFilter{}).Fetch(context.Background(), 0, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sql := rec.find(t, `FROM "resumes"`)
	for _, absent := range []string{"ILIKE", "plainto_tsquery", " IN ("} {
		if strings.Contains(sql, absent) {
			t.Errorf("unexpected %q in %s", absent, sql)
		}
	}
}

func TestVacancyRepository_PublishedDatesCompareInUTC(t *testing.T) {
	db, rec := dryRunDB(t)

	msk := time.FixedZone("MSK", 3*60*60)
	from := time.Date(2024, 3, 1, 1, 0, 0, 0, msk)   // 2024-02-29 in UTC
	to := time.Date(2024, 3, 31, 23, 30, 0, 0, msk) // 2024-03-31 in UTC

	q := NewVacancyRepository(db).ListPublished(ports.VacancyFilter{
		PublishedGTE: &from,
		PublishedLTE: &to,
	})
	if _, err := q.Fetch(context.Background(), 0, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertContains(t, rec.find(t, `FROM "vacancies"`),
		"CAST(vacancies.published_at AT TIME ZONE 'UTC' AS DATE) >= CAST('2024-02-29' AS DATE)",
		"CAST(vacancies.published_at AT TIME ZONE 'UTC' AS DATE) <= CAST('2024-03-31' AS DATE)",
	)
}

func TestVacancyRepository_ListPublishedFilters(t *testing.T) {
	db, rec := dryRunDB(t)

	q := NewVacancyRepository(db).ListPublished(ports.VacancyFilter{
		States:        []domain.State{domain.StateDraft},
		DepartmentIDs: []int64{2},
		Position:      "Go_Dev",
		ExperienceGTE: intp(1),
		ExperienceLTE: intp(5),
	})
	if _, err := q.Fetch(context.Background(), 0, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sql := rec.find(t, `FROM "vacancies"`)
	assertContains(t, sql,
		"JOIN users AS creators ON creators.id = vacancies.creator_id",
		"vacancies.state = 'PUBLISHED'",
		"creators.department_id IN (2)",
		`vacancies.position ILIKE '%Go\_Dev%'`,
		"vacancies.experience >= 1",
		"vacancies.experience <= 5",
	)
	if strings.Contains(sql, "'DRAFT'") {
		t.Fatalf("applicant list must ignore the state filter: %s", sql)
	}
}

func TestVacancyRepository_ListInDepartmentFilters(t *testing.T) {
	db, rec := dryRunDB(t)

	q := NewVacancyRepository(db).ListInDepartment(9, ports.VacancyFilter{
		States:        []domain.State{domain.StateDraft, domain.StateHidden},
		DepartmentIDs: []int64{2},
	})
	if _, err := q.Fetch(context.Background(), 0, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sql := rec.find(t, `FROM "vacancies"`)
	assertContains(t, sql,
		"creators.department_id = 9",
		"vacancies.state IN ('DRAFT','HIDDEN')",
		"ORDER BY vacancies.id DESC",
	)
	if strings.Contains(sql, "IN (2)") {
		t.Fatalf("manager list is scoped to its own department only: %s", sql)
	}
}

func TestUserRepository_ListApplicantsFilters(t *testing.T) {
	db, rec := dryRunDB(t)

	q := NewUserRepository(db).ListApplicants(ports.ApplicantFilter{
		Email:         "o'brien",
		FullName:      "Ivanov",
		DepartmentIDs: []int64{1, 3},
	})
	if _, err := q.Fetch(context.Background(), 0, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertContains(t, rec.find(t, `FROM "users"`),
		"users.role = 'APPLICANT'",
		"users.email ILIKE '%o''brien%'",
		"to_tsvector('simple', users.last_name",
		"plainto_tsquery('simple', 'Ivanov')",
		"users.department_id IN (1,3)",
		"ORDER BY users.id DESC",
	)
}

// ---------------------------------------------------------------------------
// Skills
// ---------------------------------------------------------------------------

func TestLinkSkills_ReplacesSetInCallerOrder(t *testing.T) {
	db, rec := dryRunDB(t)

	if err := linkSkills(context.Background(), db, 9, []string{"sql", "go"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.stmts) != 2 {
		t.Fatalf("expected delete and insert, got %v", rec.stmts)
	}
	assertContains(t, rec.stmts[0], `DELETE FROM "resume_skills"`, "resume_id = 9")
	assertContains(t, rec.stmts[1],
		"INSERT INTO resume_skills (resume_id, skill_id, position)",
		`array_position('{"sql","go"}'::text[], skills.name)`,
		`skills.name = ANY('{"sql","go"}'::text[])`,
	)
}

func TestLinkSkills_EmptySetOnlyUnlinks(t *testing.T) {
	db, rec := dryRunDB(t)

	if err := linkSkills(context.Background(), db, 9, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.stmts) != 1 || !strings.HasPrefix(rec.stmts[0], "DELETE") {
		t.Fatalf("expected a single delete, got %v", rec.stmts)
	}
}

func TestLoadSkills_OrdersByLinkPosition(t *testing.T) {
	db, rec := dryRunDB(t)

	if _, err := loadSkills(context.Background(), db, []int64{1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertContains(t, rec.find(t, "resume_skills"),
		"resume_skills.resume_id IN (1,2)",
		"ORDER BY resume_skills.resume_id,resume_skills.position",
	)
}

func TestSkillRepository_InternIgnoresKnownNames(t *testing.T) {
	db, rec := dryRunDB(t)

	if err := NewSkillRepository(db).Intern(context.Background(), []string{"go", "sql"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertContains(t, rec.find(t, `INSERT INTO "skills"`), "ON CONFLICT (\"name\") DO NOTHING")
}

// ---------------------------------------------------------------------------
// Unique violations
// ---------------------------------------------------------------------------

func TestCreate_DuplicateKeyMapsToDomainError(t *testing.T) {
	cases := []struct {
		name   string
		create func(db *gorm.DB) error
		want   error
	}{
		{
			name: "user",
			create: func(db *gorm.DB) error {
				return NewUserRepository(db).Create(context.Background(), &domain.User{
					Email: "anna@example.com",
					Role:  domain.RoleApplicant,
				})
			},
			want: domain.ErrUserAlreadyExists,
		},
		{
			name: "department",
			create: func(db *gorm.DB) error {
				return NewDepartmentRepository(db).Create(context.Background(), &domain.Department{Name: "IT"})
			},
			want: ErrDepartmentExists,
		},
		{
			name: "vacancy response",
			create: func(db *gorm.DB) error {
				return NewVacancyResponseRepository(db).Create(context.Background(), &domain.VacancyResponse{
					VacancyID: 1,
					ResumeID:  2,
				})
			},
			want: domain.ErrVacancyResponseAlreadyExists,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, _ := dryRunDB(t)
			failCreates(t, db, gorm.ErrDuplicatedKey)

			if err := tc.create(db); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreate_OtherErrorsAreWrapped(t *testing.T) {
	db, _ := dryRunDB(t)
	boom := errors.New("connection reset")
	failCreates(t, db, boom)

	err := NewUserRepository(db).Create(context.Background(), &domain.User{Email: "anna@example.com"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
	if errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Fatal("non-unique failure reported as duplicate")
	}
}
