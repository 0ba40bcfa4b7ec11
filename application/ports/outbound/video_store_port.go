package outbound

import "context"

// VideoStorePort keeps a copy of a finished video after the response is
// served. Failures are logged by callers, never surfaced to the client.
type VideoStorePort interface {
	Store(ctx context.Context, name string, videoFileName string) (string, error)
}
