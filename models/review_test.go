package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanReviewProduct(t *testing.T) {
	o := Order{BorrowerID: "u1", Status: OrderPending}
	assert.False(t, CanReviewProduct(&o, "u1"), "pending order is not reviewable")

	o.Status = OrderApproved
	assert.True(t, CanReviewProduct(&o, "u1"))
	assert.False(t, CanReviewProduct(&o, "u2"), "only the borrower may review")

	o.Status = OrderDeclined
	assert.False(t, CanReviewProduct(&o, "u1"))
}

func TestUserReviewOpen(t *testing.T) {
	today := date(2024, 3, 10)

	o := Order{Status: OrderApproved, EndDate: date(2024, 3, 10)}
	assert.False(t, UserReviewOpen(&o, today), "rental period not finished on end date")

	o.EndDate = date(2024, 3, 9)
	assert.True(t, UserReviewOpen(&o, today))

	o.Status = OrderPending
	assert.False(t, UserReviewOpen(&o, today))
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
	assert.False(t, ValidRating(-1))
}
