package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wanli28/ConnectionKit/common/herrors"
	"github.com/wanli28/ConnectionKit/sitelib"
)

const (
	indexCmdUse   = "index <records-file> <path>"
	indexCmdShort = "Print the index of a collection"

	archiveFlag  = "archive"
	archiveUsage = "print the monthly archive instead of the index"
)

// ErrNotCollection is returned when the index of a plain page is asked for.
var ErrNotCollection = errors.New("page is not a collection")

func (c *commandeer) newIndexCommand() *cobra.Command {
	var archive bool

	cmd := &cobra.Command{
		Use:   indexCmdUse,
		Short: indexCmdShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.loadSite(cmd, args[0])
			if err != nil {
				return err
			}

			p, found := s.GetPage(args[1])
			if !found {
				return fmt.Errorf("page %q: %w", args[1], herrors.ErrNotFound)
			}
			if !p.IsCollection() {
				return fmt.Errorf("page %q: %w", args[1], ErrNotCollection)
			}

			if archive {
				printArchive(cmd.OutOrStdout(), p.Index())
				return nil
			}
			printIndex(cmd.OutOrStdout(), p.Index())
			return nil
		},
	}

	cmd.Flags().BoolVar(&archive, archiveFlag, false, archiveUsage)

	return cmd
}

func printIndex(w io.Writer, v *sitelib.IndexView) {
	fmt.Fprintf(w, "%s (%s, %s)\n", v.Page().TitleText(), v.SortMode(), v.SummaryType())
	for _, item := range v.SortedChildrenInIndex() {
		fmt.Fprintf(w, "  %s %s\n", item.Path(), item.TitleText())
		if summary := v.ItemSummary(item); summary.Text != "" {
			fmt.Fprintf(w, "    %s\n", summary.Text)
		}
	}
	if v.FeedEligible() {
		fmt.Fprintln(w, "feed: yes")
	}
}

func printArchive(w io.Writer, v *sitelib.IndexView) {
	for _, group := range v.ArchiveGroups() {
		fmt.Fprintf(w, "%s\n", group.Key)
		for _, item := range group.Pages {
			fmt.Fprintf(w, "  %s %s\n", item.Path(), item.TitleText())
		}
	}
}
