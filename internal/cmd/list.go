package cmd

import (
	"context"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	listTimeout = 10 * time.Second
)

type listCommand struct {
	cmd   *cobra.Command
	limit int
}

func newListCommand() *listCommand {
	listCommand := &listCommand{}
	listCommand.cmd = &cobra.Command{
		Use:   "list",
		Short: "List the recorded visits, newest first",
		RunE:  listCommand.run,
		Args:  cobra.NoArgs,
	}

	listCommand.cmd.Flags().IntVarP(&listCommand.limit, "limit", "n", 0, "Show at most this many visits (default zero to show all)")

	return listCommand
}

func (c *listCommand) run(cmd *cobra.Command, args []string) error {
	visits, err := globalConfig.OpenStore()
	if err != nil {
		return err
	}
	defer visits.Close()

	ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
	defer cancel()

	times, err := visits.Range(ctx)
	if err != nil {
		return err
	}

	if c.limit > 0 && len(times) > c.limit {
		times = times[:c.limit]
	}

	out := cmd.OutOrStdout()

	table := NewTable()
	table.Styled = isTerminal(out)
	table.AddRow([]string{"#", "Visited"})
	for i, visited := range times {
		table.AddRow([]string{strconv.Itoa(i + 1), visited})
	}
	table.Print(out)

	return nil
}

// Private

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
