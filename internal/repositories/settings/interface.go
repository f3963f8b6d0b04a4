// Package settings persists standalone key-value blobs outside the three
// record families: the remote endpoint address, the shared secret, the
// device identifier and the quarterly target reported by the remote.
package settings

import "context"

// Well-known keys.
const (
	KeyAPIURL          = "api_url"
	KeyAPIToken        = "api_token"
	KeyDeviceID        = "device_id"
	KeyQuarterlyTarget = "quarterly_target"
)

type Repository interface {
	// Get returns nil (no error) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
}
