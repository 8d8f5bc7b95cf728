package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/marks/internal/commands"
	"github.com/colonyops/marks/internal/core/config"
	"github.com/colonyops/marks/internal/core/logging"
	"github.com/colonyops/marks/internal/core/styles"
	"github.com/colonyops/marks/internal/core/terminal"
	"github.com/colonyops/marks/internal/marks"
	"github.com/colonyops/marks/internal/printer"
	"github.com/colonyops/marks/internal/tui/popup"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		marksApp  = &marks.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "marks",
		Usage:     "Jump between bookmarked directories",
		UsageText: "marks [global options] command [command options]",
		Description: `Marks binds single-character keys to directories.

Run 'marks add' in a directory and press a key to bookmark it. Later,
'cd "$(marks pick)"' opens the overlay and jumps to whichever bookmark you
press.`,
		Version: build(),
		Flags:   commands.GlobalFlags(flags),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Always log to a file; the overlay owns the terminal.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogFile()
			}

			logger, closer, err := logging.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			// The overlay draws on stderr so stdout stays clean for pick.
			host := popup.NewTeaHost(os.Stdin, os.Stderr, logging.Component("popup"))
			term := terminal.NewConsole(os.Stderr)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*marksApp = *marks.NewApp(cfg, host, term, logging.Component("marks"))

			return printer.NewContext(ctx, printer.New(c.Root().Writer, c.Root().ErrWriter)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewPickCmd(flags, marksApp).Register(app)
	app = commands.NewAddCmd(flags, marksApp).Register(app)
	app = commands.NewLsCmd(flags, marksApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = commands.NewShellCmd(flags).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
