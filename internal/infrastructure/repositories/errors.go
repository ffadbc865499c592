package repositories

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const pqUniqueViolation = "23505"

// translateError maps lib/pq unique violations onto gorm.ErrDuplicatedKey.
// GORM's own translator only understands pgx errors.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("%w: %s", gorm.ErrDuplicatedKey, pqErr.Message)
	}
	return err
}
