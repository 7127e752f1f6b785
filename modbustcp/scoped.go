package modbustcp

import (
	"context"
)

// WithClient creates a Client for the device at address, runs fn with it, and
// guarantees the client is closed exactly once on every exit path, including
// a panic inside fn.
//
// It returns the construction error if the client could not be created, and
// the error returned by fn otherwise.
func WithClient(ctx context.Context, address string, fn func(*Client) error, opts ...ClientOption) error {
	client, err := NewClient(ctx, address, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	return fn(client)
}
