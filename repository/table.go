package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gameclub/models"
)

// entity is satisfied by pointers to models that embed models.Record.
type entity[M any] interface {
	*M
	Base() *models.Record
}

// Table is the CRUD collection shared by every versioned entity.
type Table[M any, PM entity[M]] struct {
	db      *gorm.DB
	order   string
	preload preloader
}

func newTable[M any, PM entity[M]](conn *gorm.DB, order string, preload preloader) Table[M, PM] {
	return Table[M, PM]{db: conn, order: order, preload: preload}
}

// List returns every row with the requested associations.
func (t *Table[M, PM]) List(ctx context.Context, inc Include) ([]M, error) {
	var rows []M
	q := t.preload(t.db.WithContext(ctx), inc)
	if err := q.Order(t.order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Get loads one row or returns ErrNotFound.
func (t *Table[M, PM]) Get(ctx context.Context, id uint, inc Include) (*M, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	row := new(M)
	if err := t.preload(t.db.WithContext(ctx), inc).First(row, id).Error; err != nil {
		return nil, translate(err)
	}
	return row, nil
}

func (t *Table[M, PM]) Exists(ctx context.Context, id uint) (bool, error) {
	return exists[M](t.db.WithContext(ctx), id)
}

func (t *Table[M, PM]) Create(ctx context.Context, m PM) error {
	return insert[M, PM](t.db.WithContext(ctx), m)
}

// Update writes every scalar column when the stored version still matches m's.
func (t *Table[M, PM]) Update(ctx context.Context, m PM) error {
	return update[M, PM](t.db.WithContext(ctx), m)
}

// Delete removes the row and reports whether it existed.
func (t *Table[M, PM]) Delete(ctx context.Context, id uint) (bool, error) {
	return remove[M](t.db.WithContext(ctx), id)
}

func exists[M any](q *gorm.DB, id uint) (bool, error) {
	var n int64
	if err := q.Model(new(M)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func insert[M any, PM entity[M]](tx *gorm.DB, m PM) error {
	rec := m.Base()
	rec.ID = 0
	rec.Version = 1
	return translate(tx.Omit(clause.Associations).Create(m).Error)
}

func update[M any, PM entity[M]](tx *gorm.DB, m PM) error {
	rec := m.Base()
	if rec.ID == 0 {
		return ErrNotFound
	}
	loaded := rec.Version
	rec.Version = loaded + 1

	res := tx.Model(m).
		Where("version = ?", loaded).
		Select("*").
		Omit("id", clause.Associations).
		Updates(m)
	if res.Error != nil {
		rec.Version = loaded
		return translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	rec.Version = loaded
	found, err := exists[M](tx, rec.ID)
	if err != nil {
		return fmt.Errorf("recheck after stale update: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return ErrConflict
}

func remove[M any](tx *gorm.DB, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	res := tx.Delete(new(M), id)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}
