package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hrprojector/jobboard/internal/core/domain"
)

func TestResponseService_Respond(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.publishedVacancy(t, f.manager)
	r := f.publishedResume(t, f.alice)

	resp, err := f.responses.Respond(ctx, f.alice.ID, v.ID, r.ID, strp("hello"))
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if resp.ID == 0 || resp.VacancyID != v.ID || resp.ResumeID != r.ID || *resp.ApplicantMessage != "hello" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Vacancy == nil || resp.Resume == nil {
		t.Fatalf("response must carry vacancy and resume")
	}
}

func TestResponseService_DraftVacancyIsNotFound(t *testing.T) {
	f := newFixture(t)
	v := f.draftVacancy(t, f.manager)
	r := f.publishedResume(t, f.alice)

	_, err := f.responses.Respond(context.Background(), f.alice.ID, v.ID, r.ID, nil)
	if !errors.Is(err, domain.ErrVacancyNotFound) {
		t.Fatalf("expected ErrVacancyNotFound, got %v", err)
	}
	if errors.Is(err, domain.ErrVacancyWrongState) {
		t.Fatalf("a draft vacancy must not be reported as wrong state")
	}
}

func TestResponseService_ErrorPrecedence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draftVacancy := f.draftVacancy(t, f.manager)
	liveVacancy := f.publishedVacancy(t, f.manager)
	draftResume := f.draftResume(t, f.alice)
	bobsResume := f.publishedResume(t, f.bob)

	cases := []struct {
		name      string
		vacancyID int64
		resumeID  int64
		want      error
	}{
		{"draft vacancy beats foreign resume", draftVacancy.ID, bobsResume.ID, domain.ErrVacancyNotFound},
		{"missing vacancy beats draft resume", 9999, draftResume.ID, domain.ErrVacancyNotFound},
		{"foreign resume", liveVacancy.ID, bobsResume.ID, domain.ErrResumeNotFound},
		{"missing resume", liveVacancy.ID, 9999, domain.ErrResumeNotFound},
		{"draft resume", liveVacancy.ID, draftResume.ID, domain.ErrResumeWrongState},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.responses.Respond(ctx, f.alice.ID, tc.vacancyID, tc.resumeID, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestResponseService_DuplicateIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.publishedVacancy(t, f.manager)
	r := f.publishedResume(t, f.alice)

	if _, err := f.responses.Respond(ctx, f.alice.ID, v.ID, r.ID, nil); err != nil {
		t.Fatalf("first respond: %v", err)
	}
	if _, err := f.responses.Respond(ctx, f.alice.ID, v.ID, r.ID, strp("again")); !errors.Is(err, domain.ErrVacancyResponseAlreadyExists) {
		t.Fatalf("expected ErrVacancyResponseAlreadyExists, got %v", err)
	}
	if n := len(f.store.data.responses); n != 1 {
		t.Fatalf("expected exactly one response row, got %d", n)
	}
}

func TestResponseService_ListForManager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.publishedVacancy(t, f.peer)
	theirs := f.publishedVacancy(t, f.outsider)
	r := f.publishedResume(t, f.alice)
	if _, err := f.responses.Respond(ctx, f.alice.ID, mine.ID, r.ID, nil); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if _, err := f.responses.Respond(ctx, f.alice.ID, theirs.ID, r.ID, nil); err != nil {
		t.Fatalf("respond: %v", err)
	}

	q, err := f.responses.ListForManager(ctx, f.manager.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	rows, _ := q.Fetch(ctx, 0, 10)
	if len(rows) != 1 || rows[0].VacancyID != mine.ID {
		t.Fatalf("expected only the department's response, got %d rows", len(rows))
	}
	if rows[0].Resume == nil || rows[0].Resume.Owner == nil || rows[0].Resume.Owner.ID != f.alice.ID {
		t.Fatalf("response must expose the applicant")
	}
}
