package db

import (
	"context"
	"errors"

	"Gin_postgres_redis_rent_marketplace/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPayoutNotPending = errors.New("payout is not pending")
var ErrInsufficientBalance = errors.New("insufficient balance")
var ErrInvalidAmount = errors.New("amount must be positive")

// CreatePayout 提现申请，不能超过当前余额
func (r *Repo) CreatePayout(ctx context.Context, userID, upiID string, amountCents int64) (*models.Payout, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	u, err := r.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if amountCents > u.BalanceCents {
		return nil, ErrInsufficientBalance
	}
	p := &models.Payout{
		ID:          uuid.NewString(),
		UserID:      userID,
		UpiID:       upiID,
		AmountCents: amountCents,
		Status:      models.PayoutPending,
	}
	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ApprovePayout 审批扣款：锁住用户行 → pending 前置条件 → 扣余额。
// 余额不够直接拒绝，不允许扣成负数。
func (r *Repo) ApprovePayout(ctx context.Context, payoutID string) (*models.Payout, error) {
	var p models.Payout
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "id = ?", payoutID).Error; err != nil {
			return err
		}
		var u models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&u, "id = ?", p.UserID).Error; err != nil {
			return err
		}
		if u.BalanceCents < p.AmountCents {
			return ErrInsufficientBalance
		}
		res := tx.Model(&models.Payout{}).
			Where("id = ? AND status = ?", p.ID, models.PayoutPending).
			Update("status", models.PayoutApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPayoutNotPending
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", u.ID).
			Update("balance_cents", gorm.Expr("balance_cents - ?", p.AmountCents)).Error; err != nil {
			return err
		}
		p.Status = models.PayoutApproved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ListPendingPayouts(ctx context.Context) ([]models.Payout, error) {
	var ps []models.Payout
	err := r.DB.WithContext(ctx).Where("status = ?", models.PayoutPending).
		Order("created_at ASC").Find(&ps).Error
	return ps, err
}

func (r *Repo) ListPayoutsByUser(ctx context.Context, userID string) ([]models.Payout, error) {
	var ps []models.Payout
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&ps).Error
	return ps, err
}
