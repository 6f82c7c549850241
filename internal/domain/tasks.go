package domain

import "context"

// Task names understood by the background dispatcher.
const (
	TaskSendConfirmationEmail = "send_confirmation_email"
	TaskStoreFeaturedSpeaker  = "store_featured_speaker"
)

// Task parameter names.
const (
	TaskParamEmail         = "email"
	TaskParamDisplayName   = "display_name"
	TaskParamConference    = "conference_info"
	TaskParamSpeakerKey    = "speaker_key"
	TaskParamConferenceKey = "conference_key"
)

// Task is a unit of deferred work. Tasks run after the request that enqueued them has returned.
type Task struct {
	Name   string
	Params map[string]string
}

// TaskQueue accepts tasks for asynchronous execution.
type TaskQueue interface {
	Enqueue(ctx context.Context, t Task) error
}

// TaskHandler executes a task. A returned error makes the dispatcher retry the task.
type TaskHandler func(ctx context.Context, t Task) error
