package store

import (
	"context"
	"encoding/json"

	"membership-app/internal/domain/users"
)

// Store persists serialized profile records under opaque keys. Backends must
// return (nil, nil) for absent keys; corruption handling happens above, in
// LoadUser.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
}

// Key returns the storage key for a provider subject.
func Key(sub string) string {
	return "profile:" + sub
}

// LoadUser reads a cached profile. Absent, unreadable, or corrupt records
// all degrade to the anonymous user; the cache is advisory and must never
// block a page.
func LoadUser(ctx context.Context, s Store, key string) users.User {
	data, err := s.Get(ctx, key)
	if err != nil || data == nil {
		return users.Anonymous
	}
	return users.FromJSON(data)
}

// SaveUser writes a profile record.
func SaveUser(ctx context.Context, s Store, key string, u users.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}
