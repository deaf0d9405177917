package executor

import "context"

// Executor runs external commands. Implementations must honor ctx
// cancellation and include the command's stderr in returned errors.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	LookPath(name string) (string, error)
}
