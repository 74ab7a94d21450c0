package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/mrlokans/readingroom/internal/tasks"
	"github.com/robfig/cron/v3"
)

// Enqueuer stores a task for background processing.
type Enqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// ConsolidateScheduler periodically enqueues library consolidation tasks.
// The work itself runs on the task queue so a slow run never blocks cron.
type ConsolidateScheduler struct {
	queue    Enqueuer
	schedule string
	enabled  bool

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	lastTask  string
}

// NewConsolidateScheduler creates a new scheduler instance
func NewConsolidateScheduler(queue Enqueuer, schedule string, enabled bool) *ConsolidateScheduler {
	return &ConsolidateScheduler{
		queue:    queue,
		schedule: schedule,
		enabled:  enabled,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler if it is enabled. Cancelling ctx stops it.
func (s *ConsolidateScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.enabled {
		log.Printf("Consolidation scheduler: disabled")
		return nil
	}

	if s.queue == nil {
		log.Printf("Consolidation scheduler: task queue not configured, skipping")
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.enqueue)
	if err != nil {
		return fmt.Errorf("failed to schedule consolidation job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := GetNextRunTime(s.schedule, time.Now())
	log.Printf("Consolidation scheduler: started with schedule '%s' (%s). Next run: %v",
		s.schedule, GetCronDescription(s.schedule), nextRun)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running enqueue to finish.
func (s *ConsolidateScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	// enqueue takes the lock, so wait for it outside.
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)

	log.Printf("Consolidation scheduler: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *ConsolidateScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// LastTaskID returns the ID of the most recently scheduled task.
func (s *ConsolidateScheduler) LastTaskID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTask
}

// NextRun returns when the next consolidation will be enqueued.
func (s *ConsolidateScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if entry.ID == 0 {
		return nil
	}
	next := entry.Next
	if next.IsZero() {
		// cron fills Next once its run loop has started.
		computed, err := GetNextRunTime(s.schedule, time.Now())
		if err != nil {
			return nil
		}
		next = computed
	}
	return &next
}

func (s *ConsolidateScheduler) enqueue() {
	id, err := s.queue.Enqueue(tasks.ConsolidateLibraryTask{Trigger: tasks.TriggerSchedule})
	if err != nil {
		log.Printf("Consolidation scheduler: failed to enqueue task: %v", err)
		return
	}

	s.mu.Lock()
	s.lastTask = id
	s.mu.Unlock()

	log.Printf("Consolidation scheduler: enqueued task %s", id)
}
