package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	initcmd "github.com/colonyops/marks/internal/commands/init"
)

type ShellCmd struct {
	flags *Flags

	// flags
	name string
}

// NewShellCmd creates a new shell command
func NewShellCmd(flags *Flags) *ShellCmd {
	return &ShellCmd{flags: flags}
}

// Register adds the shell command to the application
func (cmd *ShellCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "shell",
		Usage:     "Print shell integration",
		UsageText: "marks shell [--name NAME] [zsh|bash|fish]",
		Description: `Prints a shell function that runs 'marks pick' and changes into the chosen
directory. The shell defaults to $SHELL.

Add it to your shell startup file, for example:

  eval "$(marks shell zsh)"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Usage:       "name of the generated function",
				Value:       "m",
				Destination: &cmd.name,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShellCmd) run(_ context.Context, c *cli.Command) error {
	var shell initcmd.Shell
	if arg := c.Args().First(); arg != "" {
		s, err := initcmd.ParseShell(arg)
		if err != nil {
			return err
		}
		shell = s
	} else {
		info, err := initcmd.DetectShell()
		if err != nil {
			return fmt.Errorf("detect shell: %w", err)
		}
		shell = info.Name
	}

	_, err := fmt.Fprint(c.Root().Writer, shell.Function(cmd.name))
	return err
}
