package worker

import (
	"context"
)

// Worker is the interface every background worker implements.
type Worker interface {
	// Start runs the worker loop until Stop is called or ctx is done.
	Start(ctx context.Context) error

	// Stop signals the worker to finish.
	Stop() error

	// Name returns the worker's name.
	Name() string
}
