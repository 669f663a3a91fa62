package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded       EventType = "login_succeeded"
	EventLoginFailed          EventType = "login_failed"
	EventLogout               EventType = "logout"
	EventJobRoleCreated       EventType = "job_role_created"
	EventJobRoleDeleted       EventType = "job_role_deleted"
	EventApplicationSubmitted EventType = "application_submitted"
)

// Actor encapsulates who performed the action.
type Actor struct {
	UserID int    `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Event represents a front-end action worth auditing.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// JobRolePayload identifies the job role an action touched.
type JobRolePayload struct {
	JobRoleID int    `json:"job_role_id"`
	RoleName  string `json:"role_name,omitempty"`
}

// ApplicationPayload describes a forwarded application.
type ApplicationPayload struct {
	JobRoleID int    `json:"job_role_id"`
	FileName  string `json:"file_name"`
	SizeBytes int64  `json:"size_bytes"`
}
