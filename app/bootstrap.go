// app/bootstrap.go
package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"Gin_postgres_redis_rent_marketplace/db"
	"Gin_postgres_redis_rent_marketplace/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BootstrapAdmin 首个管理员从环境变量建，不在代码里写死账号密码
func BootstrapAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	email := strings.ToLower(cfg.AdminEmail)

	if _, err := repo.FindUserByEmail(ctx, email); err == nil {
		return // 已存在，跳过
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("bootstrap admin lookup failed: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bootstrap admin hash failed: %v", err)
		return
	}
	admin := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Verified:     true,
		FirstLogin:   false,
		IsAdmin:      true,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		log.Printf("bootstrap admin create failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] created admin account %s", email)
}
