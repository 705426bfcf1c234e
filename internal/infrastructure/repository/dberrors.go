package repository

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	apperrors "fixdesk/internal/shared/errors"
)

// Driver error shapes this layer understands. MySQL reports numbered errors
// with the constraint in quotes; SQLite (used by the test suite) reports
// "<KIND> constraint failed: table.column".
var (
	mysqlDuplicateKeyRe = regexp.MustCompile(`for key '([^']+)'`)
	sqliteUniqueRe      = regexp.MustCompile(`UNIQUE constraint failed: ([\w.]+)`)
)

// translateError maps a GORM/driver error onto the data-access taxonomy.
// Already-translated errors pass through untouched.
func translateError(entity string, err error) error {
	if err == nil {
		return nil
	}
	if de := apperrors.AsDataError(err); de != nil {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFound(entity, entity+" not found", err)
	}

	msg := err.Error()
	switch {
	case isUniqueViolation(msg):
		e := apperrors.NewUniqueViolation(entity, "duplicate value for unique column", err)
		if constraint := extractConstraint(msg); constraint != "" {
			e = e.WithConstraint(constraint)
		}
		return e
	case isForeignKeyViolation(msg):
		return apperrors.NewForeignKeyViolation(entity, "operation violates a foreign key reference", err)
	case isConnectionError(err, msg):
		return apperrors.NewConnection("storage unreachable", err)
	default:
		return apperrors.NewInternal("database operation failed", err)
	}
}

func isUniqueViolation(msg string) bool {
	return strings.Contains(msg, "Duplicate entry") || // MySQL 1062
		strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key") // PostgreSQL wording
}

func isForeignKeyViolation(msg string) bool {
	return strings.Contains(msg, "foreign key constraint fails") || // MySQL 1451/1452
		strings.Contains(msg, "FOREIGN KEY constraint failed") // SQLite
}

func isConnectionError(err error, msg string) bool {
	return errors.Is(err, driver.ErrBadConn) ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "invalid connection") ||
		strings.Contains(msg, "broken pipe")
}

// extractConstraint pulls the offending column or key name out of a driver
// message, normalized to the bare column where possible.
func extractConstraint(msg string) string {
	if m := sqliteUniqueRe.FindStringSubmatch(msg); m != nil {
		// "customers.phone" -> "phone"
		if i := strings.LastIndex(m[1], "."); i >= 0 {
			return m[1][i+1:]
		}
		return m[1]
	}
	if m := mysqlDuplicateKeyRe.FindStringSubmatch(msg); m != nil {
		// "customers.uni_customers_phone" -> "uni_customers_phone"
		if i := strings.LastIndex(m[1], "."); i >= 0 {
			return m[1][i+1:]
		}
		return m[1]
	}
	return ""
}
