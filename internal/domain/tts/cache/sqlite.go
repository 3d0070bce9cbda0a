package cache

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	platformerrors "interview-server-go/internal/platform/errors"
)

// Entry is the persisted cache row. Payload stays opaque bytes.
type Entry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Payload   []byte
	ExpiresAt time.Time `gorm:"index"`
}

// TableName keeps the table under the tts namespace.
func (Entry) TableName() string {
	return "tts_cache_entries"
}

type sqliteStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSQLite builds a persistent cache on an existing gorm handle. Unlike the
// redis and memory drivers this one survives restarts, which makes it useful
// for single-node deployments that still want warm narration audio.
func NewSQLite(db *gorm.DB) (Store, error) {
	if db == nil {
		return nil, platformerrors.New(platformerrors.KindConfig, "cache:sqlite", "database handle required")
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "cache:sqlite", "migrate cache table", err)
	}
	return &sqliteStore{db: db, now: time.Now}, nil
}

func (s *sqliteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry Entry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if s.now().After(entry.ExpiresAt) {
		_ = s.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
		return nil, false, nil
	}
	return entry.Payload, true, nil
}

func (s *sqliteStore) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	entry := Entry{
		Key:       key,
		Payload:   payload,
		ExpiresAt: s.now().Add(ttl),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).Error
}

func (s *sqliteStore) Len(ctx context.Context) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Entry{}).
		Where("expires_at > ?", s.now()).
		Count(&count).Error
	return int(count), err
}

func (s *sqliteStore) Backend() string {
	return DriverSQLite
}

func (s *sqliteStore) Close() error {
	return nil
}
