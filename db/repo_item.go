package db

import (
	"context"
	"time"

	"Gin_postgres_redis_rent_marketplace/models"
)

// Items

func (r *Repo) CreateItem(ctx context.Context, it *models.Item) error {
	return r.DB.WithContext(ctx).Create(it).Error
}

func (r *Repo) FindItemByID(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *Repo) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *Repo) ListItemsByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC").Find(&items).Error
	return items, err
}

// ActiveOrders 该物品当前占库存的订单：已审批且还没到期
func (r *Repo) ActiveOrders(ctx context.Context, itemID string, today time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Where("item_id = ? AND status = ? AND end_date >= ?", itemID, models.OrderApproved, today).
		Find(&orders).Error
	return orders, err
}

// ItemWithAvailability 列表/详情用的快照
type ItemWithAvailability struct {
	Item          models.Item `json:"item"`
	Available     int         `json:"available"`
	NextAvailable *time.Time  `json:"nextAvailable,omitempty"`
}

func (r *Repo) ItemAvailability(ctx context.Context, it *models.Item, today time.Time) (*ItemWithAvailability, error) {
	active, err := r.ActiveOrders(ctx, it.ID, today)
	if err != nil {
		return nil, err
	}
	avail, next := models.Availability(it.TotalQuantity, active, today)
	return &ItemWithAvailability{Item: *it, Available: avail, NextAvailable: next}, nil
}

// ListItemsWithAvailability 首页商品墙
func (r *Repo) ListItemsWithAvailability(ctx context.Context, today time.Time) ([]ItemWithAvailability, error) {
	items, err := r.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]ItemWithAvailability, 0, len(items))
	for i := range items {
		row, err := r.ItemAvailability(ctx, &items[i], today)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}
	return rows, nil
}
