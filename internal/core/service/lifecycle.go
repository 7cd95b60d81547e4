package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// lifecycleEngine drives publish, hide and edit for any publishable resource.
// Each operation locks the row inside a transaction, so concurrent transitions
// on the same row are serialized by the store and exactly one of them wins.
type lifecycleEngine[R domain.Publishable] struct {
	tx       ports.Transactor
	repo     ports.LockingRepository[R]
	resource domain.Resource
	audit    ports.AuditSink
	now      func() time.Time
	log      zerolog.Logger
}

func newLifecycleEngine[R domain.Publishable](
	tx ports.Transactor,
	repo ports.LockingRepository[R],
	resource domain.Resource,
	audit ports.AuditSink,
	log zerolog.Logger,
) *lifecycleEngine[R] {
	if audit == nil {
		audit = nopSink{}
	}
	return &lifecycleEngine[R]{
		tx:       tx,
		repo:     repo,
		resource: resource,
		audit:    audit,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log.With().Str("resource", resource.Name).Logger(),
	}
}

func (e *lifecycleEngine[R]) publish(ctx context.Context, actorID, id int64) (R, error) {
	return e.transition(ctx, actorID, id, domain.ActionPublish, func(l *domain.Lifecycle) error {
		return l.Publish(e.now())
	})
}

func (e *lifecycleEngine[R]) hide(ctx context.Context, actorID, id int64) (R, error) {
	return e.transition(ctx, actorID, id, domain.ActionHide, func(l *domain.Lifecycle) error {
		return l.Hide()
	})
}

// edit applies a partial update to a DRAFT row. apply runs inside the
// transaction and may touch other repositories through ctx.
func (e *lifecycleEngine[R]) edit(ctx context.Context, actorID, id int64, apply func(ctx context.Context, r R) error) (R, error) {
	var out R
	err := e.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := e.repo.Lock(ctx, actorID, id)
		if err != nil {
			return err
		}
		if err := r.LifecycleState().EnsureEditable(); err != nil {
			return e.stateError(err)
		}
		if err := apply(ctx, r); err != nil {
			return err
		}
		if err := e.repo.SaveContent(ctx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		var zero R
		return zero, fmt.Errorf("update %s: %w", e.resource.Name, err)
	}

	e.record(out, domain.ActionUpdate, domain.StateDraft, actorID)
	return out, nil
}

func (e *lifecycleEngine[R]) transition(
	ctx context.Context,
	actorID, id int64,
	action domain.Action,
	step func(l *domain.Lifecycle) error,
) (R, error) {
	var (
		out  R
		from domain.State
	)
	err := e.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := e.repo.Lock(ctx, actorID, id)
		if err != nil {
			return err
		}
		l := r.LifecycleState()
		from = l.State
		if err := step(l); err != nil {
			return e.stateError(err)
		}
		if err := e.repo.SaveLifecycle(ctx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		var zero R
		return zero, fmt.Errorf("%s %s: %w", action, e.resource.Name, err)
	}

	e.record(out, action, from, actorID)
	return out, nil
}

// created records the creation of a row; it is called after commit.
func (e *lifecycleEngine[R]) created(r R, actorID int64) {
	e.record(r, domain.ActionCreate, "", actorID)
}

func (e *lifecycleEngine[R]) record(r R, action domain.Action, from domain.State, actorID int64) {
	event := domain.LifecycleEvent{
		Resource:   e.resource.Name,
		ResourceID: r.ResourceID(),
		Action:     action,
		From:       from,
		To:         r.LifecycleState().State,
		ActorID:    actorID,
		OccurredAt: e.now(),
	}
	e.audit.Enqueue(event)
	e.log.Info().
		Int64("id", event.ResourceID).
		Str("action", string(action)).
		Str("from", string(from)).
		Str("to", string(event.To)).
		Int64("actor_id", actorID).
		Msg("lifecycle change")
}

func (e *lifecycleEngine[R]) stateError(err error) error {
	if errors.Is(err, domain.ErrWrongState) {
		return e.resource.WrongState
	}
	return err
}

type nopSink struct{}

func (nopSink) Enqueue(domain.LifecycleEvent) {}
