package tubesort

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/arthur-debert/tubesort/internal/version"
	"github.com/arthur-debert/tubesort/pkg/cobrax/topics"
	"github.com/arthur-debert/tubesort/pkg/commands"
	"github.com/arthur-debert/tubesort/pkg/config"
	"github.com/arthur-debert/tubesort/pkg/logging"
	"github.com/arthur-debert/tubesort/pkg/puzzlefile"
	"github.com/arthur-debert/tubesort/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "tubesort",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand given
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().String("config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().String("format", "", MsgFlagFormat)
	rootCmd.PersistentFlags().String("color", "", MsgFlagColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newRecognizeCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	helpTopics, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		_, err = topics.InitializeWithOptions(rootCmd, helpTopics, topics.Options{
			Extensions: []string{".md"},
			Render:     topics.Markdown(os.Stdout, ui.ColorAuto, 0),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// loadConfig reads the configuration, applying the global flags that were set
func loadConfig(cmd *cobra.Command, overrides map[string]interface{}) (*config.Config, error) {
	flags := cmd.Root().PersistentFlags()
	configFile, _ := flags.GetString("config")

	if overrides == nil {
		overrides = make(map[string]interface{})
	}
	for flag, key := range map[string]string{"format": "output.format", "color": "output.color"} {
		if flags.Changed(flag) {
			value, _ := flags.GetString(flag)
			overrides[key] = value
		}
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) (ui.Renderer, error) {
	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf(MsgErrRenderer, err)
	}
	color, err := ui.ParseColorMode(cfg.Output.Color)
	if err != nil {
		return nil, fmt.Errorf(MsgErrRenderer, err)
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout(), color)
	if err != nil {
		return nil, fmt.Errorf(MsgErrRenderer, err)
	}
	return renderer, nil
}

func newSolveCmd() *cobra.Command {
	var (
		capacity  int
		maxStates int
		timeout   time.Duration
		noCache   bool
		annotate  string
		svgPath   string
	)

	cmd := &cobra.Command{
		Use:     "solve <puzzle-file|screenshot>",
		Short:   MsgSolveShort,
		Long:    MsgSolveLong,
		Example: MsgSolveExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, cfg)
			if err != nil {
				return err
			}

			log.Info().
				Str("path", args[0]).
				Int("capacity", capacity).
				Msg("Solving puzzle")

			result, err := commands.Solve(cmd.Context(), commands.SolveOptions{
				Path:         args[0],
				Config:       cfg,
				Capacity:     capacity,
				MaxStates:    maxStates,
				Timeout:      timeout,
				NoCache:      noCache,
				AnnotatePath: annotate,
				SVGPath:      svgPath,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result.Report)
		},
	}

	cmd.Flags().IntVarP(&capacity, "capacity", "c", 0, MsgFlagCapacity)
	cmd.Flags().IntVar(&maxStates, "max-states", 0, MsgFlagMaxStates)
	cmd.Flags().DurationVar(&timeout, "timeout", 0, MsgFlagTimeout)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, MsgFlagNoCache)
	cmd.Flags().StringVar(&annotate, "annotate", "", MsgFlagAnnotate)
	cmd.Flags().StringVar(&svgPath, "svg", "", MsgFlagSVG)

	return cmd
}

func newRecognizeCmd() *cobra.Command {
	var (
		capacity int
		output   string
		annotate string
	)

	cmd := &cobra.Command{
		Use:     "recognize <screenshot>",
		Short:   MsgRecognizeShort,
		Long:    MsgRecognizeLong,
		Example: MsgRecognizeExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			result, err := commands.Recognize(commands.RecognizeOptions{
				Path:         args[0],
				Format:       strings.ToLower(output),
				Capacity:     capacity,
				AnnotatePath: annotate,
				Config:       cfg,
			})
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(result.Data)
			return err
		},
	}

	cmd.Flags().IntVarP(&capacity, "capacity", "c", 0, MsgFlagCapacity)
	cmd.Flags().StringVarP(&output, "output", "o", puzzlefile.FormatYAML, MsgFlagOutput)
	cmd.Flags().StringVar(&annotate, "annotate", "", MsgFlagAnnotate)

	return cmd
}

func newCheckCmd() *cobra.Command {
	var capacity int

	cmd := &cobra.Command{
		Use:     "check <puzzle-file|screenshot> <moves>...",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, cfg)
			if err != nil {
				return err
			}

			result, err := commands.Check(commands.CheckOptions{
				Path:     args[0],
				Moves:    strings.Join(args[1:], " "),
				Capacity: capacity,
				Config:   cfg,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result.Report)
		},
	}

	cmd.Flags().IntVarP(&capacity, "capacity", "c", 0, MsgFlagCapacity)

	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Name() == "help" {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
