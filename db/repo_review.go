package db

import (
	"context"
	"errors"
	"time"

	"Gin_postgres_redis_rent_marketplace/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAlreadyReviewed = errors.New("order already reviewed")
var ErrOrderNotApproved = errors.New("order is not approved")
var ErrRentalNotFinished = errors.New("rental period not finished")
var ErrNotBorrower = errors.New("not the order borrower")

func (r *Repo) HasProductReview(ctx context.Context, orderID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.ProductReview{}).
		Where("order_id = ?", orderID).Count(&n).Error
	return n > 0, err
}

func (r *Repo) HasUserReview(ctx context.Context, orderID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.UserReview{}).
		Where("order_id = ?", orderID).Count(&n).Error
	return n > 0, err
}

// CreateProductReview 借用人评物品：原子操作 = 锁住订单 → 校验资格 → 查重 → 插入。
// order_id 唯一索引兜底并发下的重复写。
func (r *Repo) CreateProductReview(ctx context.Context, orderID, reviewerID string, rating int, comment, image string) (*models.ProductReview, error) {
	var rev *models.ProductReview
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", orderID).Error; err != nil {
			return err
		}
		if o.BorrowerID != reviewerID {
			return ErrNotBorrower
		}
		if o.Status != models.OrderApproved {
			return ErrOrderNotApproved
		}
		var n int64
		if err := tx.Model(&models.ProductReview{}).
			Where("order_id = ?", o.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyReviewed
		}
		rev = &models.ProductReview{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			ItemID:     o.ItemID,
			ReviewerID: reviewerID,
			Rating:     rating,
			Comment:    comment,
			Image:      image,
		}
		return tx.Create(rev).Error
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// CreateUserReview 物主评借用人：要求租期已结束
func (r *Repo) CreateUserReview(ctx context.Context, orderID, reviewerID string, rating int, comment string, today time.Time) (*models.UserReview, error) {
	var rev *models.UserReview
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", orderID).Error; err != nil {
			return err
		}
		var it models.Item
		if err := tx.First(&it, "id = ?", o.ItemID).Error; err != nil {
			return err
		}
		if it.OwnerID != reviewerID {
			return ErrNotOwner
		}
		if !models.UserReviewOpen(&o, today) {
			return ErrRentalNotFinished
		}
		var n int64
		if err := tx.Model(&models.UserReview{}).
			Where("order_id = ?", o.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyReviewed
		}
		rev = &models.UserReview{
			ID:             uuid.NewString(),
			OrderID:        o.ID,
			ReviewedUserID: o.BorrowerID,
			ReviewerID:     reviewerID,
			Rating:         rating,
			Comment:        comment,
		}
		return tx.Create(rev).Error
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

func (r *Repo) ListProductReviews(ctx context.Context, itemID string) ([]models.ProductReview, error) {
	var revs []models.ProductReview
	err := r.DB.WithContext(ctx).Where("item_id = ?", itemID).
		Order("created_at DESC").Find(&revs).Error
	return revs, err
}

// AvgUserRating 借用人的平均分，没被评过返回 nil
func (r *Repo) AvgUserRating(ctx context.Context, userID string) (*float64, error) {
	var avg *float64
	err := r.DB.WithContext(ctx).Model(&models.UserReview{}).
		Select("AVG(rating)").
		Where("reviewed_user_id = ?", userID).
		Scan(&avg).Error
	return avg, err
}
