package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/premiummedi/labreport/pkg/runtime/terminal/commands"
	"github.com/premiummedi/labreport/pkg/runtime/terminal/export"
	"github.com/premiummedi/labreport/pkg/services/report"
	"github.com/premiummedi/labreport/pkg/store/patientdb"
)

// CLI represents the command-line interface
type CLI struct {
	service  *report.Service
	store    *patientdb.Store
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Service *report.Service
	Store   *patientdb.Store
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		service:  opts.Service,
		store:    opts.Store,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labreport",
		Short: "Clinic lab report tool",
	}

	cmd.AddCommand(commands.NewRenderCmd(cli.service))
	cmd.AddCommand(commands.NewRecordsCmd(cli.store, cli.reporter))

	return cmd
}
