package services

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// Codes for a transaction that lost a race against another one. The
// transaction has been rolled back and can be resubmitted as a whole.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"

	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

// retryableTxError turns serialization failures and deadlocks into a
// ConflictError. Other errors are returned unchanged.
func retryableTxError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected:
			return &ConflictError{Reason: "concurrent checkout, please retry", Err: err}
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlLockWaitTimeout, mysqlDeadlock:
			return &ConflictError{Reason: "concurrent checkout, please retry", Err: err}
		}
	}

	return err
}
