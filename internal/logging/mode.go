package logging

type Mode uint8

const (
	ModeCLI Mode = iota + 1
	ModeWatch
)

// ModeForCommand picks the logging mode for a subcommand name.
func ModeForCommand(name string) Mode {
	if name == "watch" {
		return ModeWatch
	}
	return ModeCLI
}

func (m Mode) String() string {
	switch m {
	case ModeWatch:
		return "watch"
	default:
		return "cli"
	}
}
