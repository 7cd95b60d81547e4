package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hrprojector/jobboard/internal/core/domain"
)

func TestLifecycle_ConcurrentPublishHasOneWinner(t *testing.T) {
	f := newFixture(t)
	r := f.draftResume(t, f.alice)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		wrong     int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.resumes.Publish(context.Background(), f.alice.ID, r.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrResumeWrongState):
				wrong++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || wrong != callers-1 {
		t.Fatalf("expected 1 winner and %d wrong-state failures, got %d and %d", callers-1, succeeded, wrong)
	}
}

func TestLifecycle_FailedEditRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.draftResume(t, f.alice, "go")
	boom := errors.New("disk full")

	_, err := f.resumes.engine.edit(ctx, f.alice.ID, r.ID, func(ctx context.Context, res *domain.Resume) error {
		res.Bio = "half written"
		if err := f.resumes.skills.Intern(ctx, []string{"cobol"}); err != nil {
			return err
		}
		if err := f.resumes.resumes.SaveContent(ctx, res); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}

	got, _ := f.resumes.Get(ctx, f.alice.ID, r.ID)
	if got.Bio != "bio" {
		t.Fatalf("partial write survived rollback: bio=%q", got.Bio)
	}
	if _, ok := f.store.data.skills["cobol"]; ok {
		t.Fatalf("interned skill survived rollback")
	}
	if f.store.rollbacks == 0 {
		t.Fatalf("expected a rollback")
	}
}

func TestLifecycle_CancelledRequestRollsBack(t *testing.T) {
	f := newFixture(t)
	r := f.draftResume(t, f.alice)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := f.resumes.engine.edit(ctx, f.alice.ID, r.ID, func(_ context.Context, res *domain.Resume) error {
		res.Bio = "never committed"
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	got, _ := f.resumes.Get(context.Background(), f.alice.ID, r.ID)
	if got.Bio != "bio" {
		t.Fatalf("cancelled update persisted: bio=%q", got.Bio)
	}
}

func TestLifecycle_StatesOnlyMoveForward(t *testing.T) {
	order := map[domain.State]int{domain.StateDraft: 0, domain.StatePublished: 1, domain.StateHidden: 2}

	f := newFixture(t)
	ctx := context.Background()
	r := f.draftResume(t, f.alice)

	ops := []func() (*domain.Resume, error){
		func() (*domain.Resume, error) { return f.resumes.Hide(ctx, f.alice.ID, r.ID) },
		func() (*domain.Resume, error) { return f.resumes.Update(ctx, f.alice.ID, r.ID, domain.ResumeUpdate{Bio: strp("b")}) },
		func() (*domain.Resume, error) { return f.resumes.Publish(ctx, f.alice.ID, r.ID) },
		func() (*domain.Resume, error) { return f.resumes.Update(ctx, f.alice.ID, r.ID, domain.ResumeUpdate{Bio: strp("c")}) },
		func() (*domain.Resume, error) { return f.resumes.Publish(ctx, f.alice.ID, r.ID) },
		func() (*domain.Resume, error) { return f.resumes.Hide(ctx, f.alice.ID, r.ID) },
		func() (*domain.Resume, error) { return f.resumes.Publish(ctx, f.alice.ID, r.ID) },
		func() (*domain.Resume, error) { return f.resumes.Update(ctx, f.alice.ID, r.ID, domain.ResumeUpdate{Bio: strp("d")}) },
	}

	prev := domain.StateDraft
	for i, op := range ops {
		_, _ = op()
		got, err := f.resumes.Get(ctx, f.alice.ID, r.ID)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if order[got.State] < order[prev] || order[got.State]-order[prev] > 1 {
			t.Fatalf("step %d: illegal move %s -> %s", i, prev, got.State)
		}
		prev = got.State
	}
	if prev != domain.StateHidden {
		t.Fatalf("expected to end HIDDEN, got %s", prev)
	}
}
