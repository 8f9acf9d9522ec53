// Package tokenstore holds the admin client's durable storage: the bearer tokens
// and the persisted session slice that survive process restarts.
package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/genielabs/genie-admin/config"
	"github.com/genielabs/genie-admin/internal"
)

var log = internal.GetLogger()

const (
	AccessTokenKey  = "admin_access_token"
	RefreshTokenKey = "admin_refresh_token"
	SessionKey      = "admin-session"
)

var ErrUnknownStorageType = errors.New("unknown storage type")

// Storage is a small string key/value store. Implementations must be safe for
// concurrent use. Get reports ok=false for a missing key rather than an error.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// New builds the Storage selected by cfg.Storage.Type.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Type {
	case config.StorageTypeMemory:
		return NewMemoryStorage(), nil
	case config.StorageTypeFile, "":
		return NewFileStorage(cfg.Storage.FilePath), nil
	case config.StorageTypeRedis:
		return NewRedisStorageFromConfig(cfg.Storage.Redis), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStorageType, cfg.Storage.Type)
}
