// models/item_order.go
package models

import "time"

const OrderTable = "bm_orders"
const ItemTable = "bm_items"

// Order 状态：pending -> approved / declined（终态）
const (
	OrderPending  = "pending"
	OrderApproved = "approved"
	OrderDeclined = "declined"
)

type Item struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     string `gorm:"type:uuid;index;not null" json:"ownerId"`
	Name        string `gorm:"size:120;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	RatePerDayCents int64 `gorm:"not null" json:"ratePerDayCents"`

	// 同款可互换的件数
	TotalQuantity int `gorm:"not null;default:1" json:"totalQuantity"`

	// 只存文件名，上传由外部处理
	Image string `gorm:"size:200" json:"image,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Order struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID     string `gorm:"type:uuid;index;not null" json:"itemId"`
	BorrowerID string `gorm:"type:uuid;index;not null" json:"borrowerId"`

	StartDate time.Time `gorm:"type:date;not null" json:"startDate"`
	EndDate   time.Time `gorm:"type:date;not null" json:"endDate"`

	AmountCents int64  `gorm:"not null" json:"amountCents"`
	Status      string `gorm:"size:50;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Item) TableName() string  { return ItemTable }
func (Order) TableName() string { return OrderTable }

// Active 该订单是否占用一件库存：已审批且租期还没结束
func (o *Order) Active(today time.Time) bool {
	return o.Status == OrderApproved && !o.EndDate.Before(today)
}

// RentalDays 租期天数，按日期差计（end 需晚于 start）
func RentalDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// OrderAmountCents 金额 = 天数 × 日租金（整数分）
func OrderAmountCents(start, end time.Time, ratePerDayCents int64) int64 {
	return int64(RentalDays(start, end)) * ratePerDayCents
}

// Availability 粗粒度库存：总件数减去当前活跃订单数。
// 不做区间重叠检测，审批才是真正的闸口。
// 无货时返回最早归还日。
func Availability(totalQuantity int, active []Order, today time.Time) (available int, nextAvailable *time.Time) {
	n := 0
	var next *time.Time
	for i := range active {
		o := &active[i]
		if !o.Active(today) {
			continue
		}
		n++
		if next == nil || o.EndDate.Before(*next) {
			d := o.EndDate
			next = &d
		}
	}
	available = totalQuantity - n
	if available <= 0 && next != nil {
		nextAvailable = next
	}
	return available, nextAvailable
}
