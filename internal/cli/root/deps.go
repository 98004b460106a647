package root

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dshills/selmark/internal/config/loader"
)

// Dependencies provides the process surroundings for command handlers.
type Dependencies struct {
	Version string

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// IsTerminal reports whether r is an interactive terminal.
	IsTerminal func(r io.Reader) bool

	// Env feeds the environment configuration layer; nil disables it.
	Env *loader.EnvLoader

	// FS reads the --config file; nil uses the OS file system.
	FS loader.FileSystem
}

// DefaultDependencies returns dependencies wired to the running process.
func DefaultDependencies(version string) Dependencies {
	return Dependencies{
		Version:    version,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		IsTerminal: isTerminal,
		Env:        loader.NewEnvLoader(),
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
