package kv

import (
	"errors"

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Upsert clause support
)

// Entry is one persisted key/value pair.
type Entry struct {
	Key   string `gorm:"primaryKey;size:191"`
	Value string `gorm:"type:longtext"`
}

// TableName pins the table name regardless of gorm pluralization.
func (Entry) TableName() string { return "vault_entries" }

// Gorm is a Store backed by a single key/value table in MySQL.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate creates or updates the vault_entries table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Entry{})
}

func (g *Gorm) Get(key string) (string, error) {
	var e Entry
	if err := g.db.First(&e, "`key` = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return e.Value, nil
}

func (g *Gorm) Set(key, value string) error {
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Entry{Key: key, Value: value}).Error
}

func (g *Gorm) Delete(key string) error {
	return g.db.Delete(&Entry{}, "`key` = ?", key).Error
}

func (g *Gorm) Clear() error {
	return g.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Entry{}).Error
}
