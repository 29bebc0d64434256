package models

import (
	"fmt"
	"time"
)

const UserTable = "bm_users"

// User 余额用整数分存储，避免 float 漂移
type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:200;not null" json:"-"`
	Verified     bool   `gorm:"not null;default:false" json:"verified"`

	FullName string `gorm:"size:120" json:"fullName"`
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"type:text" json:"address"`

	// 首次登录先补全资料
	FirstLogin bool `gorm:"not null;default:true" json:"firstLogin"`

	BalanceCents int64 `gorm:"not null;default:0" json:"balanceCents"`

	IsAdmin bool `gorm:"not null;default:false" json:"-"`

	IsBanned  bool       `gorm:"not null;default:false" json:"isBanned"`
	BanReason string     `gorm:"type:text" json:"banReason,omitempty"`
	BanUntil  *time.Time `json:"banUntil,omitempty"`

	LastLoginAt *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LastSeenAt  *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`
	LoginCount  int64      `gorm:"not null;default:0" json:"loginCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }

// BanExpired 到期的封禁在下次登录时自动解除；ban_until 为空 = 永久
func (u *User) BanExpired(now time.Time) bool {
	return u.IsBanned && u.BanUntil != nil && now.After(*u.BanUntil)
}

// BanMessage 登录被拒时展示给用户的原因（带到期时间，若有）
func (u *User) BanMessage() string {
	if u.BanUntil == nil {
		return fmt.Sprintf("you are banned indefinitely. Reason: %s", u.BanReason)
	}
	return fmt.Sprintf("you are banned until %s. Reason: %s",
		u.BanUntil.Format("02 Jan 2006 15:04"), u.BanReason)
}

// BanLog 记录管理员封禁操作的审计信息
type BanLog struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID      string    `gorm:"type:uuid" json:"actorId"`
	TargetUserID string    `gorm:"type:uuid;index" json:"targetUserId"`
	Reason       string    `gorm:"type:text" json:"reason"`
	Days         int       `json:"days"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (BanLog) TableName() string { return "bm_ban_log" }
