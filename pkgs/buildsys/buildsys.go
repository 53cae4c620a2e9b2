package buildsys

import "context"

// BuildSystem captures the configure/build/install cycle shared by the
// runtime-library builders (Autotools-style make, CMake with Ninja).
// Every step runs inside BuildDir and blocks until the tool exits.
type BuildSystem interface {
	// Env sets a variable for every step, on top of the runner's environment.
	Env(key, val string)

	// Lifecycle.
	Configure(ctx context.Context, args ...string) error
	Build(ctx context.Context, args ...string) error
	Install(ctx context.Context, args ...string) error

	// Where the steps run.
	BuildDir() string
}
