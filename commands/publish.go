package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wanli28/ConnectionKit/helpers"
	"github.com/wanli28/ConnectionKit/minifiers"
	"github.com/wanli28/ConnectionKit/parser"
	"github.com/wanli28/ConnectionKit/parser/metadecoders"
	"github.com/wanli28/ConnectionKit/publisher"
	"github.com/wanli28/ConnectionKit/sitefs"
	"github.com/wanli28/ConnectionKit/sitelib"
)

const (
	publishCmdUse   = "publish <records-file>"
	publishCmdShort = "Regenerate the stale pages"

	destFlag     = "destination"
	destUsage    = "directory to write the page artifacts to"
	workersFlag  = "workers"
	workersUsage = "concurrent regenerations (default from publish.workers)"
	saveFlag     = "save"
	saveUsage    = "write the records back with the published pages cleared"
	minifyFlag   = "minify"
	minifyUsage  = "minify the HTML in the artifacts (default minify.minifyOutput)"

	defaultPublishDir = "public"
)

func (c *commandeer) newPublishCommand() *cobra.Command {
	var (
		dest    string
		workers int
		save    bool
		minify  bool
	)

	cmd := &cobra.Command{
		Use:   publishCmdUse,
		Short: publishCmdShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers > 0 {
				c.flagCfg.Set("publish.workers", workers)
			}
			if minify {
				c.flagCfg.Set("minify.minifyOutput", true)
			}
			s, _, err := c.loadSite(cmd, args[0])
			if err != nil {
				return err
			}

			sfs, err := sitefs.NewFrom(c.fs, "", dest)
			if err != nil {
				return err
			}

			regen := publisher.FileRegenerator{Fs: sfs.PublishDir, Dir: "/", Bodies: c.content}
			minifier, err := minifiers.New(s.Cfg)
			if err != nil {
				return err
			}
			if minifier.MinifyOutput() {
				regen.Minifier = minifier
			}

			p, err := publisher.New(publisher.Config{
				Site:        s,
				Regenerator: regen,
			})
			if err != nil {
				return err
			}

			result, publishErr := p.Publish(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%d regenerated, %d failed, %d stale\n",
				len(result.Regenerated), len(result.Failed), s.Tracker().Len())

			if save {
				if err := saveRecords(sfs.Source, args[0], s.Records()); err != nil {
					return err
				}
			}
			return publishErr
		},
	}

	cmd.Flags().StringVarP(&dest, destFlag, "d", defaultPublishDir, destUsage)
	cmd.Flags().IntVar(&workers, workersFlag, 0, workersUsage)
	cmd.Flags().BoolVar(&save, saveFlag, false, saveUsage)
	cmd.Flags().BoolVar(&minify, minifyFlag, false, minifyUsage)

	return cmd
}

// saveRecords writes records back in the format of filename.
func saveRecords(fs afero.Fs, filename string, records sitelib.SiteRecords) error {
	format := metadecoders.FormatFromString(filename)
	if format == "" {
		return fmt.Errorf("save records %q: unsupported format", filename)
	}
	f, err := helpers.OpenFileForWriting(fs, filename)
	if err != nil {
		return fmt.Errorf("save records %q: %w", filename, err)
	}
	defer f.Close()

	if err := parser.InterfaceToConfig(records, format, f); err != nil {
		return fmt.Errorf("save records %q: %w", filename, err)
	}
	return nil
}
