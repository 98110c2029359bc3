package main

import (
	"moneyvault/internal/config" // Configuration
	"moneyvault/internal/kv"     // Key-value store drivers

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Creates the vault_entries key/value table for the MySQL driver.
func main() {
	cfg := config.LoadConfig()

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := kv.Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed.")
}
