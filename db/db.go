package db

import (
	"Gin_postgres_redis_rent_marketplace/models"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	err = Migrate(DB)
	if err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Order{},
		&models.Payout{},
		&models.ProductReview{},
		&models.UserReview{},
		&models.BanLog{},
	); err != nil {
		return err
	}

	// 每单最多一条商品评价 / 一条用户评价由 order_id 唯一索引兜底
	// （AutoMigrate 按模型 tag 建），这里补可用性查询用的部分索引：
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_active_by_item
	  ON %s (item_id, end_date)
	  WHERE status = 'approved';
	`, models.OrderTable, models.OrderTable)).Error; err != nil {
		return err
	}

	return nil
}
