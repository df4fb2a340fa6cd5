// Package delivery defines the contract every transport entrypoint fulfills.
package delivery

import "context"

// Delivery is a long-running transport endpoint, started by the application
// at boot and stopped through its lifecycle hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
