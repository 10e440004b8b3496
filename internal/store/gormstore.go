package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ProfileRecord is the persisted shape of one cache entry.
type ProfileRecord struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     []byte `gorm:"column:value"`
	UpdatedAt time.Time
}

func (ProfileRecord) TableName() string {
	return "profile_cache"
}

// GormStore keeps profile records in the application database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec ProfileRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.Value, nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	rec := ProfileRecord{Key: key, Value: value}
	return s.db.WithContext(ctx).Save(&rec).Error
}

func (s *GormStore) Clear(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&ProfileRecord{}).Error
}
