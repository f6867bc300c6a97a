package database

import "time"

// Connection Pool Constants
const (
	// DefaultMinConnections keeps a couple of warm connections so the first
	// requests after an idle period do not pay the connect cost.
	DefaultMinConnections = 2

	// PingTimeout bounds the startup connectivity check.
	PingTimeout = 5 * time.Second
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
)

// Log Messages
const (
	LogMsgConnectedToDatabase = "Connected to the database"
)
