package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gameclub/models"
)

type Reviews struct {
	db *gorm.DB
}

func (r *Reviews) Create(ctx context.Context, review *models.GameReview) error {
	review.ID = 0
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error)
}

func (r *Reviews) Get(ctx context.Context, id uint) (*models.GameReview, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var review models.GameReview
	if err := r.db.WithContext(ctx).Preload("Game").Preload("Player").First(&review, id).Error; err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (r *Reviews) Delete(ctx context.Context, id uint) (bool, error) {
	return remove[models.GameReview](r.db.WithContext(ctx), id)
}

type Achievements struct {
	db *gorm.DB
}

func (r *Achievements) Create(ctx context.Context, a *models.Achievement) error {
	a.ID = 0
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error)
}

func (r *Achievements) Get(ctx context.Context, id uint) (*models.Achievement, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var a models.Achievement
	if err := r.db.WithContext(ctx).Preload("Player").First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *Achievements) Delete(ctx context.Context, id uint) (bool, error) {
	return remove[models.Achievement](r.db.WithContext(ctx), id)
}
