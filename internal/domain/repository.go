package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// BarcodeLookupClient resolves a normalized barcode into a scanned product record
type BarcodeLookupClient interface {
	Lookup(ctx context.Context, barcode string) (*ScannedRecord, error)
}
