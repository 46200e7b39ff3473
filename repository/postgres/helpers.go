package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func wrapQueryErr(op string, err error) error {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return fmt.Errorf("postgres %s: %w", op, err)
}
