package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBanExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	expired := User{IsBanned: true, BanUntil: &past}
	assert.True(t, expired.BanExpired(now))

	running := User{IsBanned: true, BanUntil: &future}
	assert.False(t, running.BanExpired(now))

	// ban_until 为空 = 永久，不自动解除
	indefinite := User{IsBanned: true}
	assert.False(t, indefinite.BanExpired(now))

	notBanned := User{IsBanned: false, BanUntil: &past}
	assert.False(t, notBanned.BanExpired(now))
}

func TestBanMessage(t *testing.T) {
	until := time.Date(2024, 7, 15, 9, 30, 0, 0, time.UTC)
	u := User{IsBanned: true, BanReason: "spam listings", BanUntil: &until}

	msg := u.BanMessage()
	assert.Contains(t, msg, "15 Jul 2024 09:30")
	assert.Contains(t, msg, "spam listings")

	forever := User{IsBanned: true, BanReason: "fraud"}
	assert.Contains(t, forever.BanMessage(), "indefinitely")
	assert.Contains(t, forever.BanMessage(), "fraud")
}
