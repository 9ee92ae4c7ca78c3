package httperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// BusinessError is a terminal, caller-facing failure. Values are comparable,
// so errors.Is matches a wrapped BusinessError against its sentinel.
type BusinessError struct {
	Code    string
	Status  int
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Status: http.StatusUnprocessableEntity, Message: code}
}

func NotFoundError(code, message string) BusinessError {
	return BusinessError{Code: code, Status: http.StatusNotFound, Message: message}
}

func UnprocessableError(code, message string) BusinessError {
	return BusinessError{Code: code, Status: http.StatusUnprocessableEntity, Message: message}
}

func ConflictError(code, message string) BusinessError {
	return BusinessError{Code: code, Status: http.StatusConflict, Message: message}
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}

const pgExclusionViolation = "23P01"

// IsExclusionConflict reports a PostgreSQL exclusion constraint violation,
// raised when an overlapping active appointment slips past the row lock.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}
