package models

import "time"

const PayoutTable = "bm_payouts"

const (
	PayoutPending  = "pending"
	PayoutApproved = "approved"
)

// Payout 提现申请，审批时从余额扣款
type Payout struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;index;not null" json:"userId"`

	UpiID       string `gorm:"size:120" json:"upiId"`
	AmountCents int64  `gorm:"not null" json:"amountCents"`
	Status      string `gorm:"size:50;not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Payout) TableName() string { return PayoutTable }
