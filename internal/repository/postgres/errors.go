package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
