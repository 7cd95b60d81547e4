package domain

import (
	"strconv"
	"time"
)

// LifecycleEvent is an audit record of a committed lifecycle change.
type LifecycleEvent struct {
	Resource   string
	ResourceID int64
	Action     Action
	From       State
	To         State
	ActorID    int64
	OccurredAt time.Time
}

// Key groups events of one aggregate; events sharing a key keep their order.
func (e LifecycleEvent) Key() string {
	return e.Resource + ":" + strconv.FormatInt(e.ResourceID, 10)
}
