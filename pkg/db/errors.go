package db

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	pkgerrors "github.com/angelmondragon/vendas-backend/pkg/errors"
)

const (
	sqlStateIntegrityClass  = "23"
	sqlStateConnectionClass = "08"
)

// ClassifyError wraps a storage error with the matching error code. Errors that
// already carry a code are returned unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	switch {
	case IsConstraintViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeConstraint, err, "constraint violation")
	case IsConnectionError(err):
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "database error")
	}
}

// IsConstraintViolation reports whether err was raised by a unique, foreign
// key, not-null or check constraint, on either supported driver.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	if code := sqlState(err); code != "" {
		return strings.HasPrefix(code, sqlStateIntegrityClass)
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "violates") && strings.Contains(msg, "constraint")
}

// IsConnectionError reports whether err means the database could not be
// reached or the connection was lost.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if code := sqlState(err); code != "" {
		return strings.HasPrefix(code, sqlStateConnectionClass)
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "unable to open database file") ||
		strings.Contains(msg, "no such host")
}

func sqlState(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
