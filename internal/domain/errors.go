package domain

import "errors"

var (
	// ErrProductNotFound is returned when the barcode provider has no record for a code
	ErrProductNotFound = errors.New("product not found")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrLookupFailure is returned when the barcode provider request fails
	ErrLookupFailure = errors.New("barcode lookup failed")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
