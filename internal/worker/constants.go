package worker

// Log messages for rollover worker operations
const (
	LogMsgRolloverStandby       = "Rollover standby"
	LogMsgRolloverScheduled     = "Rollover scheduled"
	LogMsgRolloverStarting      = "Daily rollover starting"
	LogMsgRolloverCompleted     = "Daily rollover completed"
	LogMsgRolloverPublishFailed = "Failed to publish rollover event"
	LogMsgRolloverJobFailed     = "Rollover maintenance job failed"
	LogMsgContentWarmed         = "Daily content warmed"
)
