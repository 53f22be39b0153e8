package ports

import "context"

type SnapshotStorePort interface {
	// Save overwrites the durable snapshot document.
	Save(ctx context.Context, doc []byte) error

	// Load:
	//   found = true,  err = nil -> doc is the latest saved document
	//   found = false, err = nil -> nothing persisted yet (cold start)
	//   found = false, err != nil -> backend error
	Load(ctx context.Context) (doc []byte, found bool, err error)
}
