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

var ErrInvalidDateRange = errors.New("end date must be after start date")
var ErrOrderNotPending = errors.New("order is not pending")
var ErrNotOwner = errors.New("not the item owner")

// CreateOrder 下单即 pending，金额按天数 × 日租金。
// 这里不做占用检查，审批才是闸口。
func (r *Repo) CreateOrder(ctx context.Context, borrowerID, itemID string, start, end time.Time) (*models.Order, error) {
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}
	it, err := r.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	o := &models.Order{
		ID:          uuid.NewString(),
		ItemID:      it.ID,
		BorrowerID:  borrowerID,
		StartDate:   start,
		EndDate:     end,
		AmountCents: models.OrderAmountCents(start, end, it.RatePerDayCents),
		Status:      models.OrderPending,
	}
	if err := r.DB.WithContext(ctx).Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

// ApproveOrder 审批：原子操作 = 锁住订单 → 校验物主 → pending 前置条件 → 入账。
// 状态条件放在 UPDATE 里，重复审批不会二次加钱。
func (r *Repo) ApproveOrder(ctx context.Context, orderID, callerID string) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", orderID).Error; err != nil {
			return err
		}
		var it models.Item
		if err := tx.First(&it, "id = ?", o.ItemID).Error; err != nil {
			return err
		}
		if it.OwnerID != callerID {
			return ErrNotOwner
		}
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", o.ID, models.OrderPending).
			Update("status", models.OrderApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotPending
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", it.OwnerID).
			Update("balance_cents", gorm.Expr("balance_cents + ?", o.AmountCents)).Error; err != nil {
			return err
		}
		o.Status = models.OrderApproved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// DeclineOrder 拒单：同样的 pending 前置条件，不动余额
func (r *Repo) DeclineOrder(ctx context.Context, orderID, callerID string) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", orderID).Error; err != nil {
			return err
		}
		var it models.Item
		if err := tx.First(&it, "id = ?", o.ItemID).Error; err != nil {
			return err
		}
		if it.OwnerID != callerID {
			return ErrNotOwner
		}
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", o.ID, models.OrderPending).
			Update("status", models.OrderDeclined)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotPending
		}
		o.Status = models.OrderDeclined
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) FindOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := r.DB.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// BorrowerOrderRow 我的订单页：订单 + 物品 + 是否还能评价
type BorrowerOrderRow struct {
	Order     models.Order `json:"order"`
	Item      models.Item  `json:"item"`
	CanReview bool         `json:"canReview"`
}

func (r *Repo) ListBorrowerOrders(ctx context.Context, borrowerID string) ([]BorrowerOrderRow, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	rows := make([]BorrowerOrderRow, 0, len(orders))
	for _, o := range orders {
		it, err := r.FindItemByID(ctx, o.ItemID)
		if err != nil {
			return nil, err
		}
		reviewed, err := r.HasProductReview(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, BorrowerOrderRow{
			Order:     o,
			Item:      *it,
			CanReview: models.CanReviewProduct(&o, borrowerID) && !reviewed,
		})
	}
	return rows, nil
}

// DashboardRow 物主面板：一条租借请求 + 借用人画像
type DashboardRow struct {
	Order          models.Order `json:"order"`
	Item           models.Item  `json:"item"`
	BorrowerID     string       `json:"borrowerId"`
	BorrowerName   string       `json:"borrowerName"`
	BorrowerEmail  string       `json:"borrowerEmail"`
	BorrowerRating *float64     `json:"borrowerRating,omitempty"`
	CanReviewUser  bool         `json:"canReviewUser"`
}

type DashboardResult struct {
	Requests      []DashboardRow `json:"requests"`
	EarningsCents int64          `json:"earningsCents"`
}

// OwnerDashboard 自己物品上的全部订单 + 已审批订单的累计收入
func (r *Repo) OwnerDashboard(ctx context.Context, ownerID string, today time.Time) (*DashboardResult, error) {
	items, err := r.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Item, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		byID[it.ID] = it
		ids = append(ids, it.ID)
	}

	res := &DashboardResult{Requests: []DashboardRow{}}
	if len(ids) == 0 {
		return res, nil
	}

	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("item_id IN ?", ids).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	for _, o := range orders {
		borrower, err := r.FindUserByID(ctx, o.BorrowerID)
		if err != nil {
			return nil, err
		}
		rating, err := r.AvgUserRating(ctx, borrower.ID)
		if err != nil {
			return nil, err
		}
		reviewed, err := r.HasUserReview(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		if o.Status == models.OrderApproved {
			res.EarningsCents += o.AmountCents
		}
		res.Requests = append(res.Requests, DashboardRow{
			Order:          o,
			Item:           byID[o.ItemID],
			BorrowerID:     borrower.ID,
			BorrowerName:   borrower.FullName,
			BorrowerEmail:  borrower.Email,
			BorrowerRating: rating,
			CanReviewUser:  models.UserReviewOpen(&o, today) && !reviewed,
		})
	}
	return res, nil
}
