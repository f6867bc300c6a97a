package eventlog

// JSON payload field keys
const (
	PayloadKeyUserID = "user_id"
)

// DefaultRetentionDays is how long audit events are kept before cleanup.
const DefaultRetentionDays = 90

// Log messages - service events
const (
	LogMsgPayloadNotLoggable = "Event payload not loggable, skipping"
	LogMsgFailedToLogEvent   = "Failed to log event to database"
	LogMsgEventLogged        = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)
