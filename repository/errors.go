// Package repository wraps the gorm connection with typed collections for every entity.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when the row changed since the caller loaded it.
	ErrConflict = errors.New("record was modified by another user")
	// ErrReferenced is returned when a foreign key blocks the write.
	ErrReferenced = errors.New("record is referenced by other records")
)

const (
	pgForeignKeyViolation     = "23503"
	mysqlRowIsReferenced      = 1451
	mysqlNoReferencedRow      = 1452
	sqliteForeignKeyFailedMsg = "FOREIGN KEY constraint failed"
)

// translate maps driver and gorm errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isForeignKeyViolation(err):
		return errors.Join(ErrReferenced, err)
	default:
		return err
	}
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlRowIsReferenced || myErr.Number == mysqlNoReferencedRow
	}
	return strings.Contains(err.Error(), sqliteForeignKeyFailedMsg)
}
