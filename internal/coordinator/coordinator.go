package coordinator

import (
	"errors"
	"log"
	"sync"
	"time"

	"mensa/internal/schedule"
)

// Refreshing once per hour is enough for a daily menu.
const DefaultInterval = time.Hour

// Data is the cached resolution for today and the next school day,
// consumed by the sensor surface.
type Data struct {
	Today      *schedule.DayInfo
	Next       *schedule.DayInfo // nil when the bounded scan found nothing
	TotalWeeks int
	UpdatedAt  time.Time
}

// Coordinator periodically recomputes today/next from the current
// snapshot and caches the result. Every configuration change triggers
// an immediate refresh on top of the hourly tick.
type Coordinator struct {
	source schedule.SnapshotSource
	now    func() time.Time

	mu   sync.RWMutex
	data *Data
}

func New(source schedule.SnapshotSource) *Coordinator {
	return &Coordinator{source: source, now: time.Now}
}

// Data returns the latest cached resolution, nil before the first
// refresh or while the canteen is not configured.
func (c *Coordinator) Data() *Data {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

func (c *Coordinator) Refresh() {
	snap := c.source.Snapshot()
	if snap == nil {
		c.mu.Lock()
		c.data = nil
		c.mu.Unlock()
		return
	}

	today := c.now()

	data := &Data{
		TotalWeeks: snap.TotalWeeks(today),
		UpdatedAt:  today,
	}

	info, err := schedule.ResolveDay(snap, today)
	if err != nil {
		log.Printf("coordinator refresh failed for today: %v", err)
		return
	}
	data.Today = info

	next, err := schedule.ResolveNext(snap, today)
	if err != nil {
		if !errors.Is(err, schedule.ErrNoValidDay) {
			log.Printf("coordinator refresh failed for next day: %v", err)
			return
		}
		log.Println("coordinator: no upcoming school day found")
	} else {
		data.Next = next
	}

	c.mu.Lock()
	c.data = data
	c.mu.Unlock()
}

// Run refreshes forever at the given interval. Meant to be started as
// a goroutine from main.
func (c *Coordinator) Run(interval time.Duration) {
	log.Println("menu coordinator started")
	for {
		c.Refresh()
		time.Sleep(interval)
	}
}
