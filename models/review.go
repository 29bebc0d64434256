package models

import "time"

const ProductReviewTable = "bm_product_reviews"
const UserReviewTable = "bm_user_reviews"

// ProductReview 借用人对物品的评价，每单最多一条（order_id 唯一索引兜底）
type ProductReview struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    string `gorm:"type:uuid;uniqueIndex;not null" json:"orderId"`
	ItemID     string `gorm:"type:uuid;index;not null" json:"itemId"`
	ReviewerID string `gorm:"type:uuid;not null" json:"reviewerId"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`
	Image   string `gorm:"size:200" json:"image,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// UserReview 物主对借用人的评价，每单最多一条
type UserReview struct {
	ID             string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID        string `gorm:"type:uuid;uniqueIndex;not null" json:"orderId"`
	ReviewedUserID string `gorm:"type:uuid;index;not null" json:"reviewedUserId"`
	ReviewerID     string `gorm:"type:uuid;not null" json:"reviewerId"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"createdAt"`
}

func (ProductReview) TableName() string { return ProductReviewTable }
func (UserReview) TableName() string    { return UserReviewTable }

// ValidRating 评分范围 1-5
func ValidRating(r int) bool { return r >= 1 && r <= 5 }

// CanReviewProduct 借用人只能评已审批的订单，时间上不限制（审批后即可评）
func CanReviewProduct(o *Order, userID string) bool {
	return o.BorrowerID == userID && o.Status == OrderApproved
}

// UserReviewOpen 物主评借用人要等租期真正结束
func UserReviewOpen(o *Order, today time.Time) bool {
	return o.Status == OrderApproved && o.EndDate.Before(today)
}
