package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// LessonPlanRepo is durable storage for finalized lesson plans.
type LessonPlanRepo interface {
	// Create persists the plan and its activities in one transaction.
	// On return the plan's ID is populated.
	Create(ctx context.Context, plan *LessonPlan) error

	// Get loads the user's plan with activities ordered by order_index.
	Get(ctx context.Context, id int64, userID string) (*LessonPlan, error)

	// List returns all of the user's plans, newest first.
	List(ctx context.Context, userID string) ([]LessonPlan, error)

	// Delete removes the user's plan; activities cascade.
	Delete(ctx context.Context, id int64, userID string) error
}

type lessonPlanRepo struct {
	db *gorm.DB
}

func (r *lessonPlanRepo) Create(ctx context.Context, plan *LessonPlan) error {
	// gorm inserts the associated activities inside the same transaction,
	// so a failed activity insert rolls back the plan row too.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(plan).Error
	})
}

func (r *lessonPlanRepo) Get(ctx context.Context, id int64, userID string) (*LessonPlan, error) {
	var plan LessonPlan
	err := r.db.WithContext(ctx).
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&plan, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *lessonPlanRepo) List(ctx context.Context, userID string) ([]LessonPlan, error) {
	var plans []LessonPlan
	err := r.db.WithContext(ctx).
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

func (r *lessonPlanRepo) Delete(ctx context.Context, id int64, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&LessonPlan{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		// SQLite builds may run without foreign-key enforcement, so clear
		// the activities explicitly rather than relying on the cascade.
		return tx.Where("lesson_plan_id = ?", id).Delete(&LessonPlanActivity{}).Error
	})
}
