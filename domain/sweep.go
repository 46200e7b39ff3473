package domain

import "time"

// OverdueTask is the snapshot of an overdue task taken at scan time.
type OverdueTask struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	UserID      string    `json:"userId"`
}

// SweepResult summarizes one notification sweep. It is never persisted.
type SweepResult struct {
	RunID            string        `json:"runId"`
	StartedAt        time.Time     `json:"startedAt"`
	FinishedAt       time.Time     `json:"finishedAt"`
	Success          bool          `json:"success"`
	OverdueTasks     []OverdueTask `json:"overdueTasks"`
	EmailsSent       int           `json:"emailsSent"`
	EmailsDelivered  int           `json:"emailsDelivered"`
	OwnersUnresolved int           `json:"ownersUnresolved"`
	SkippedTasks     int           `json:"skippedTasks"`
	Suppressed       int           `json:"suppressed"`
}

// NotifyPolicy decides whether an overdue task is re-notified on every run.
type NotifyPolicy string

const (
	NotifyEveryRun NotifyPolicy = "every_run"
	NotifyOnce     NotifyPolicy = "once"
)

func (p NotifyPolicy) Valid() bool {
	return p == NotifyEveryRun || p == NotifyOnce
}
