package tubesort

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Solve color-sort tube puzzles"
	MsgSolveShort      = "Find the shortest solution of a puzzle"
	MsgRecognizeShort  = "Read a puzzle from a screenshot"
	MsgCheckShort      = "Replay a list of moves on a puzzle"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrRenderer   = "failed to set up output: %w"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file (default $XDG_CONFIG_HOME/tubesort/config.toml)"
	MsgFlagFormat    = "Output format: terminal, text or json"
	MsgFlagColor     = "Color output: auto, always or never"
	MsgFlagCapacity  = "Tube capacity, overrides the puzzle file and configuration"
	MsgFlagMaxStates = "Stop after this many distinct states (0 = no limit)"
	MsgFlagTimeout   = "Stop searching after this long (0 = no limit)"
	MsgFlagNoCache   = "Do not read or store cached solutions"
	MsgFlagAnnotate  = "Write the screenshot with detected tubes outlined to this PNG"
	MsgFlagSVG       = "Write a diagram of the puzzle and its solution to this SVG"
	MsgFlagOutput    = "Puzzle file format to write: yaml, toml or json"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/solve-long.txt
	msgSolveLongRaw string
	MsgSolveLong    = strings.TrimSpace(msgSolveLongRaw)

	//go:embed msgs/solve-example.txt
	msgSolveExampleRaw string
	MsgSolveExample    = strings.TrimRight(msgSolveExampleRaw, "\n")

	//go:embed msgs/recognize-long.txt
	msgRecognizeLongRaw string
	MsgRecognizeLong    = strings.TrimSpace(msgRecognizeLongRaw)

	//go:embed msgs/recognize-example.txt
	msgRecognizeExampleRaw string
	MsgRecognizeExample    = strings.TrimRight(msgRecognizeExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/check-example.txt
	msgCheckExampleRaw string
	MsgCheckExample    = strings.TrimRight(msgCheckExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
