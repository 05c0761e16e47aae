package constants

// Session and context keys
const (
	SessionCookieName = "taskflow_session"
	ContextKeyUserID  = "user_id"
	ContextKeyTask    = "task"
)

// Flash message categories
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Dashboard limits
const (
	RecentTaskLimit   = 5
	UpcomingTaskLimit = 5
)

// Pagination for the JSON task list
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
