package db

import (
	"context"
	"os"
	"testing"
	"time"

	"Gin_postgres_redis_rent_marketplace/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 集成测试要一个真实 Postgres，没配环境变量就跳过
func setupTestRepo(t *testing.T) *Repo {
	_ = godotenv.Load("../.env")

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	tables := []string{
		models.UserReviewTable,
		models.ProductReviewTable,
		models.PayoutTable,
		models.OrderTable,
		models.ItemTable,
		"bm_ban_log",
		models.UserTable,
	}
	for _, tbl := range tables {
		require.NoError(t, gdb.Exec("TRUNCATE TABLE "+tbl+" CASCADE").Error)
	}
	return NewRepo(gdb)
}

func seedUser(t *testing.T, r *Repo, email string) *models.User {
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "x",
		Verified:     true,
	}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func seedItem(t *testing.T, r *Repo, ownerID string, rateCents int64, qty int) *models.Item {
	it := &models.Item{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Name:            "power drill",
		RatePerDayCents: rateCents,
		TotalQuantity:   qty,
	}
	require.NoError(t, r.CreateItem(context.Background(), it))
	return it
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApproveOrderCreditsOnce(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	owner := seedUser(t, r, "owner@example.com")
	borrower := seedUser(t, r, "borrower@example.com")
	it := seedItem(t, r, owner.ID, 10000, 1)

	o, err := r.CreateOrder(ctx, borrower.ID, it.ID, day(2024, 1, 1), day(2024, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, int64(40000), o.AmountCents)

	_, err = r.ApproveOrder(ctx, o.ID, owner.ID)
	require.NoError(t, err)

	// 重复审批必须失败，余额只加一次
	_, err = r.ApproveOrder(ctx, o.ID, owner.ID)
	assert.ErrorIs(t, err, ErrOrderNotPending)

	got, err := r.FindUserByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), got.BalanceCents)
}

func TestApproveOrderOwnerOnly(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	owner := seedUser(t, r, "owner@example.com")
	borrower := seedUser(t, r, "borrower@example.com")
	it := seedItem(t, r, owner.ID, 500, 1)

	o, err := r.CreateOrder(ctx, borrower.ID, it.ID, day(2024, 1, 1), day(2024, 1, 2))
	require.NoError(t, err)

	_, err = r.ApproveOrder(ctx, o.ID, borrower.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestDeclineOrderNoBalanceEffect(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	owner := seedUser(t, r, "owner@example.com")
	borrower := seedUser(t, r, "borrower@example.com")
	it := seedItem(t, r, owner.ID, 500, 1)

	o, err := r.CreateOrder(ctx, borrower.ID, it.ID, day(2024, 1, 1), day(2024, 1, 2))
	require.NoError(t, err)

	_, err = r.DeclineOrder(ctx, o.ID, owner.ID)
	require.NoError(t, err)

	// 终态之后不能再批
	_, err = r.ApproveOrder(ctx, o.ID, owner.ID)
	assert.ErrorIs(t, err, ErrOrderNotPending)

	got, err := r.FindUserByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.BalanceCents)
}

func TestCreateOrderRejectsBadRange(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	owner := seedUser(t, r, "owner@example.com")
	borrower := seedUser(t, r, "borrower@example.com")
	it := seedItem(t, r, owner.ID, 500, 1)

	_, err := r.CreateOrder(ctx, borrower.ID, it.ID, day(2024, 1, 5), day(2024, 1, 5))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = r.CreateOrder(ctx, borrower.ID, it.ID, day(2024, 1, 5), day(2024, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestProductReviewOncePerOrder(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	owner := seedUser(t, r, "owner@example.com")
	borrower := seedUser(t, r, "borrower@example.com")
	it := seedItem(t, r, owner.ID, 500, 1)

	o, err := r.CreateOrder(ctx, borrower.ID, it.ID, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)

	// pending 不能评
	_, err = r.CreateProductReview(ctx, o.ID, borrower.ID, 5, "great", "")
	assert.ErrorIs(t, err, ErrOrderNotApproved)

	_, err = r.ApproveOrder(ctx, o.ID, owner.ID)
	require.NoError(t, err)

	_, err = r.CreateProductReview(ctx, o.ID, borrower.ID, 5, "great", "")
	require.NoError(t, err)

	_, err = r.CreateProductReview(ctx, o.ID, borrower.ID, 4, "again", "")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestUserReviewWaitsForRentalEnd(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	owner := seedUser(t, r, "owner@example.com")
	borrower := seedUser(t, r, "borrower@example.com")
	it := seedItem(t, r, owner.ID, 500, 1)

	o, err := r.CreateOrder(ctx, borrower.ID, it.ID, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)
	_, err = r.ApproveOrder(ctx, o.ID, owner.ID)
	require.NoError(t, err)

	// 租期还没结束
	_, err = r.CreateUserReview(ctx, o.ID, owner.ID, 5, "careful borrower", day(2024, 1, 3))
	assert.ErrorIs(t, err, ErrRentalNotFinished)

	rev, err := r.CreateUserReview(ctx, o.ID, owner.ID, 5, "careful borrower", day(2024, 1, 4))
	require.NoError(t, err)
	assert.Equal(t, borrower.ID, rev.ReviewedUserID)

	_, err = r.CreateUserReview(ctx, o.ID, owner.ID, 4, "again", day(2024, 1, 4))
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestPayoutApprovalDebitsOnce(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	owner := seedUser(t, r, "owner@example.com")
	borrower := seedUser(t, r, "borrower@example.com")
	it := seedItem(t, r, owner.ID, 10000, 1)

	o, err := r.CreateOrder(ctx, borrower.ID, it.ID, day(2024, 1, 1), day(2024, 1, 5))
	require.NoError(t, err)
	_, err = r.ApproveOrder(ctx, o.ID, owner.ID)
	require.NoError(t, err)

	// 超过余额的提现直接拒
	_, err = r.CreatePayout(ctx, owner.ID, "owner@upi", 50000)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	p, err := r.CreatePayout(ctx, owner.ID, "owner@upi", 30000)
	require.NoError(t, err)

	_, err = r.ApprovePayout(ctx, p.ID)
	require.NoError(t, err)

	_, err = r.ApprovePayout(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPayoutNotPending)

	got, err := r.FindUserByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), got.BalanceCents)
}

func TestItemAvailabilitySnapshot(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	owner := seedUser(t, r, "owner@example.com")
	borrower := seedUser(t, r, "borrower@example.com")
	it := seedItem(t, r, owner.ID, 10000, 1)

	o, err := r.CreateOrder(ctx, borrower.ID, it.ID, day(2024, 1, 1), day(2024, 1, 5))
	require.NoError(t, err)
	_, err = r.ApproveOrder(ctx, o.ID, owner.ID)
	require.NoError(t, err)

	row, err := r.ItemAvailability(ctx, it, day(2024, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, 0, row.Available)
	require.NotNil(t, row.NextAvailable)
	assert.Equal(t, day(2024, 1, 5), row.NextAvailable.UTC())
}
