package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/surgearcade/portal/internal/domain"
)

// wrapQueryError wraps a driver error for callers, tagging infrastructure
// failures with domain.ErrPersistenceUnavailable so the HTTP layer answers
// 503 instead of a generic 500.
func wrapQueryError(msg string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", msg, domain.ErrPersistenceUnavailable, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// isUnavailable reports whether err is a connectivity or server-availability
// failure rather than a statement-level error.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception. 57P0x: server shutting down or
		// refusing connections. 53300: too many connections.
		return strings.HasPrefix(pgErr.Code, "08") ||
			strings.HasPrefix(pgErr.Code, "57P") ||
			pgErr.Code == "53300"
	}

	return false
}
