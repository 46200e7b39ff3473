package notify

import (
	"fmt"

	"github.com/fastygo/tasknotify/domain"
)

const OverdueSubject = "Task Overdue Notification"

// OverdueMessage renders the subject and plain-text body for an overdue task.
func OverdueMessage(task domain.OverdueTask) (subject, body string) {
	body = fmt.Sprintf(
		"Your task %q is overdue!\n\nDue Date: %s\nDescription: %s\n\nPlease login to your account to update the task status.\n",
		task.Title,
		task.DueDate.UTC().Format("2006-01-02"),
		task.Description,
	)
	return OverdueSubject, body
}
