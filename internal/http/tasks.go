package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/mrlokans/readingroom/internal/tasks"
)

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// ScheduleReporter exposes the state of the periodic consolidation.
type ScheduleReporter interface {
	IsRunning() bool
	NextRun() *time.Time
	LastTaskID() string
}

// ScheduleStatus is the schedule section of GET /api/tasks/types.
type ScheduleStatus struct {
	Running    bool       `json:"running"`
	NextRun    *time.Time `json:"next_run,omitempty"`
	LastTaskID string     `json:"last_task_id,omitempty"`
}

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue    TaskQueue
	schedule ScheduleReporter
}

// NewTasksController creates a new TasksController. schedule may be nil.
func NewTasksController(queue TaskQueue, schedule ScheduleReporter) *TasksController {
	return &TasksController{queue: queue, schedule: schedule}
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	response := gin.H{
		"task_types": tasks.Types(),
	}
	if tc.schedule != nil {
		response["schedule"] = ScheduleStatus{
			Running:    tc.schedule.IsRunning(),
			NextRun:    tc.schedule.NextRun(),
			LastTaskID: tc.schedule.LastTaskID(),
		}
	}
	c.JSON(http.StatusOK, response)
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTask handles POST /api/tasks/:type/run
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	task, ok := tasks.NewTask(taskType, tasks.TriggerManual)
	if !ok {
		respondBadRequest(c, "unknown task type: "+taskType)
		return
	}

	id, err := tc.queue.Enqueue(task)
	if err != nil {
		respondInternalError(c, err, "enqueue "+taskType)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task_id": id,
		"type":    taskType,
		"message": "task enqueued",
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
