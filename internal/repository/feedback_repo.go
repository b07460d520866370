package repository

import (
	"context"

	"shesafe/internal/domain"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// FeedbackView is a feedback row with its author's display name.
type FeedbackView struct {
	domain.Feedback
	UserName string `json:"user_name"`
}

func (r *FeedbackRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Feedback{}).
		Where("booking_id = ?", bookingID).
		Count(&cnt).Error
	return cnt > 0, err
}

// CreateAndApplyRating inserts the feedback and folds its overall rating into the vendor's
// running (sum, count) pair in the same transaction. The average is computed from the
// pre-update column values, so concurrent writers cannot lose an increment.
func (r *FeedbackRepository) CreateAndApplyRating(ctx context.Context, f *domain.Feedback) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(f).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.Vendor{}).
			Where("id = ?", f.VendorID).
			Updates(map[string]any{
				"rating_sum":     gorm.Expr("rating_sum + ?", f.OverallRating),
				"review_count":   gorm.Expr("review_count + 1"),
				"average_rating": gorm.Expr("(rating_sum + ?) / (review_count + 1)", f.OverallRating),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *FeedbackRepository) ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]FeedbackView, error) {
	var out []FeedbackView
	err := r.db.WithContext(ctx).
		Table("feedbacks").
		Select("feedbacks.*, users.name AS user_name").
		Joins("JOIN users ON users.id = feedbacks.user_id").
		Where("feedbacks.vendor_id = ?", vendorID).
		Order("feedbacks.created_at DESC, feedbacks.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&out).Error
	return out, err
}

func (r *FeedbackRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Feedback{}).Count(&cnt).Error
	return cnt, err
}
