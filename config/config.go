package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv 读取 .env（不存在时直接用进程环境变量）
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, falling back to process env")
	}
}
