package flow

import (
	"time"
)

// HoldThreshold is how long a press must be held before a history record is
// deleted. Releasing earlier cancels with no effect.
const HoldThreshold = 1500 * time.Millisecond

type holdTimer interface {
	Stop() bool
}

type timerFactory func(d time.Duration, fn func()) holdTimer

func defaultTimerFactory(d time.Duration, fn func()) holdTimer {
	return time.AfterFunc(d, fn)
}

type pendingHold struct {
	id    int64
	timer holdTimer
}

// BeginHold arms the press-and-hold deletion timer for a history record. At
// most one deletion is pending at a time; arming while one is pending is a
// no-op.
func (c *Controller) BeginHold(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage != StageHistory || c.hold != nil {
		return
	}
	hold := &pendingHold{id: id}
	hold.timer = c.newTimer(HoldThreshold, func() { c.completeHold(id) })
	c.hold = hold
}

// CancelHold releases the press before the threshold. Cancelling with nothing
// pending is a no-op.
func (c *Controller) CancelHold() {
	c.releaseHold()
}

func (c *Controller) releaseHold() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hold == nil {
		return
	}
	c.hold.timer.Stop()
	c.hold = nil
}

// completeHold fires once the threshold elapses: the record is deleted and
// the list refreshed exactly once. A store fault leaves the list unchanged
// until the next refresh.
func (c *Controller) completeHold(id int64) {
	c.mu.Lock()
	if c.hold == nil || c.hold.id != id {
		c.mu.Unlock()
		return
	}
	c.hold = nil
	c.mu.Unlock()

	if err := c.store.DeleteByID(id); err != nil {
		c.logger.Error("failed to delete history record", "id", id, "error", err)
		return
	}
	c.RefreshHistory()
}
