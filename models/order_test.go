package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOrderAmountCents(t *testing.T) {
	// 4 天 × 100.00 = 400.00
	assert.Equal(t, int64(40000), OrderAmountCents(date(2024, 1, 1), date(2024, 1, 5), 10000))

	// 跨月
	assert.Equal(t, int64(3*2500), OrderAmountCents(date(2024, 1, 30), date(2024, 2, 2), 2500))

	// 跨年
	assert.Equal(t, int64(3*999), OrderAmountCents(date(2023, 12, 30), date(2024, 1, 2), 999))

	// 闰年二月
	assert.Equal(t, int64(2*100), OrderAmountCents(date(2024, 2, 28), date(2024, 3, 1), 100))

	assert.Equal(t, 1, RentalDays(date(2024, 6, 1), date(2024, 6, 2)))
}

func TestAvailabilityAllBooked(t *testing.T) {
	today := date(2024, 1, 3)
	active := []Order{
		{Status: OrderApproved, EndDate: date(2024, 1, 5)},
	}

	avail, next := Availability(1, active, today)
	assert.Equal(t, 0, avail)
	require.NotNil(t, next)
	assert.Equal(t, date(2024, 1, 5), *next)
}

func TestAvailabilityNextIsEarliestReturn(t *testing.T) {
	today := date(2024, 1, 3)
	active := []Order{
		{Status: OrderApproved, EndDate: date(2024, 1, 9)},
		{Status: OrderApproved, EndDate: date(2024, 1, 5)},
		{Status: OrderApproved, EndDate: date(2024, 1, 7)},
	}

	avail, next := Availability(3, active, today)
	assert.Equal(t, 0, avail)
	require.NotNil(t, next)
	assert.Equal(t, date(2024, 1, 5), *next)
}

func TestAvailabilityIgnoresExpiredAndNonApproved(t *testing.T) {
	today := date(2024, 1, 10)
	orders := []Order{
		{Status: OrderApproved, EndDate: date(2024, 1, 5)}, // 已到期
		{Status: OrderPending, EndDate: date(2024, 1, 20)},
		{Status: OrderDeclined, EndDate: date(2024, 1, 20)},
	}

	avail, next := Availability(2, orders, today)
	assert.Equal(t, 2, avail)
	assert.Nil(t, next)
}

func TestAvailabilityEndDateTodayStillActive(t *testing.T) {
	// 归还日当天仍算占用（end_date >= today）
	today := date(2024, 1, 5)
	orders := []Order{
		{Status: OrderApproved, EndDate: date(2024, 1, 5)},
	}

	avail, next := Availability(1, orders, today)
	assert.Equal(t, 0, avail)
	require.NotNil(t, next)
	assert.Equal(t, today, *next)
}

func TestAvailabilityPartial(t *testing.T) {
	today := date(2024, 1, 1)
	orders := []Order{
		{Status: OrderApproved, EndDate: date(2024, 1, 9)},
	}

	avail, next := Availability(3, orders, today)
	assert.Equal(t, 2, avail)
	// 还有货就不用报最早归还日
	assert.Nil(t, next)
}
