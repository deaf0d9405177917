package gpu

import "context"

// Prober reports the accelerators visible to the server.
type Prober interface {
	Status(ctx context.Context) Status
}
