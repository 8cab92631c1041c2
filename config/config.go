package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	BotToken  string  `envconfig:"BOT_TOKEN" required:"true"`
	AdminIDs  []int64 `envconfig:"ADMIN_IDS" required:"true"`
	DataDir   string  `envconfig:"DATA_DIR" default:"data"`
	BackupDir string  `envconfig:"BACKUP_DIR" default:"backups"`
	Currency  string  `envconfig:"CURRENCY" default:"VNĐ"`
}

var AppCfg AppConfig

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, relying on environment variables")
	}

	if err := envconfig.Process("", &AppCfg); err != nil {
		log.Fatalf("Critical environment variables are missing: %v. Bot will exit.", err)
	}
	if len(AppCfg.AdminIDs) == 0 {
		log.Fatal("ADMIN_IDS is empty. Bot will exit.")
	}
}
