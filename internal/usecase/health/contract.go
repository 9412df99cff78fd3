package health

import "context"

// StoragePinger checks storage connectivity.
type StoragePinger interface {
	Ping(ctx context.Context) error
}
