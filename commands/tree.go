package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/disiqueira/gotree/v3"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wanli28/ConnectionKit/sitelib"
)

const (
	treeCmdUse   = "tree <records-file>"
	treeCmdShort = "Print the page tree in sort order"
	staleMarker  = " *"
)

func (c *commandeer) newTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   treeCmdUse,
		Short: treeCmdShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.loadSite(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderTree(s, isTerminal(out)))
			return nil
		},
	}
}

// renderTree draws the site below its root, children in sort order. Stale
// markers are highlighted if colored is set.
func renderTree(s *sitelib.Site, colored bool) string {
	marker := staleColor(colored).Sprint(staleMarker)
	root := s.Root()
	tree := gotree.New(treeLabel(root, marker))
	addTreeChildren(tree, root, marker)
	return tree.Print()
}

func addTreeChildren(tree gotree.Tree, p *sitelib.Page, marker string) {
	for _, child := range p.SortedChildren() {
		addTreeChildren(tree.Add(treeLabel(child, marker)), child, marker)
	}
}

func treeLabel(p *sitelib.Page, marker string) string {
	label := fmt.Sprintf("%s (%s)", p.TitleText(), p.Path())
	if p.Draft() {
		label += " [draft]"
	}
	if p.IsStale() {
		label += marker
	}
	return label
}

// staleColor returns the color of stale markers. It ignores color.NoColor
// so that the caller decides from the output it writes to.
func staleColor(enabled bool) *color.Color {
	c := color.New(color.FgYellow)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
