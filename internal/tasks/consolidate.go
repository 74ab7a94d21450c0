package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/mrlokans/readingroom/internal/consolidate"
)

// ConsolidateLibraryQueue is the queue name and the task type exposed over HTTP.
const ConsolidateLibraryQueue = "consolidate_library"

// Trigger values recorded on consolidation tasks.
const (
	TriggerManual   = "manual"
	TriggerSchedule = "schedule"
)

// ConsolidateLibraryTask rebuilds the catalog and books tree from the
// configured source directory.
type ConsolidateLibraryTask struct {
	Trigger string `json:"trigger"`
}

// Config returns the queue configuration for consolidation tasks.
func (t ConsolidateLibraryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ConsolidateLibraryQueue,
		MaxAttempts: 1,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// Runner performs a consolidation run.
type Runner interface {
	Run(ctx context.Context) (*consolidate.Result, error)
}

// ConsolidateLibraryProcessor creates a processor function for ConsolidateLibraryTask.
func ConsolidateLibraryProcessor(runner Runner) backlite.QueueProcessor[ConsolidateLibraryTask] {
	return func(ctx context.Context, task ConsolidateLibraryTask) error {
		if runner == nil {
			return fmt.Errorf("consolidation not configured")
		}

		start := time.Now()
		result, err := runner.Run(ctx)
		if err != nil {
			return fmt.Errorf("consolidate library: %w", err)
		}

		log.Printf("[TASK] Consolidation %s (%s) finished in %v: %d kept, %d removed",
			result.RunID, task.Trigger, time.Since(start).Round(time.Millisecond),
			result.Stats.Kept, result.Stats.Removed)
		return nil
	}
}

// NewConsolidateLibraryQueue creates a backlite queue for consolidation tasks.
func NewConsolidateLibraryQueue(runner Runner) backlite.Queue {
	return backlite.NewQueue(ConsolidateLibraryProcessor(runner))
}

// TaskType describes a task that can be triggered manually.
type TaskType struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// Types lists the manually triggerable task types.
func Types() []TaskType {
	return []TaskType{
		{
			Type:        ConsolidateLibraryQueue,
			Description: "Rebuild the catalog and books tree from the source directory",
			Queue:       ConsolidateLibraryQueue,
		},
	}
}

// NewTask builds a task for the given type, reporting false for unknown types.
func NewTask(taskType, trigger string) (backlite.Task, bool) {
	switch taskType {
	case ConsolidateLibraryQueue:
		return ConsolidateLibraryTask{Trigger: trigger}, true
	default:
		return nil, false
	}
}
