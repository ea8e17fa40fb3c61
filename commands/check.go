package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	checkCmdUse   = "check <records-file>"
	checkCmdShort = "Load the records and report the repairs made"
)

func (c *commandeer) newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   checkCmdUse,
		Short: checkCmdShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, report, err := c.loadSite(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, w := range report.Warnings {
				fmt.Fprintf(out, "WARN %s\n", w)
			}
			fmt.Fprintf(out, "%d pages, %d stale, %d warnings\n", s.Len(), s.Tracker().Len(), len(report.Warnings))
			return nil
		},
	}
}
