package store

import (
	"context"
	"errors"
	"time"

	"github.com/BinLe1988/reply-assist/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore 基于state_entries表的存储
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry models.StateEntry
	err := s.db.WithContext(ctx).Where(&models.StateEntry{Key: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(entry.Value), true, nil
}

func (s *GormStore) Put(ctx context.Context, key string, value []byte) error {
	entry := models.StateEntry{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where(&models.StateEntry{Key: key}).Delete(&models.StateEntry{}).Error
}
