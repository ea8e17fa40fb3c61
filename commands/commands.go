// Package commands implements the sitetree command line.
package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/wanli28/ConnectionKit/common/loggers"
	"github.com/wanli28/ConnectionKit/config"
	"github.com/wanli28/ConnectionKit/deps"
	"github.com/wanli28/ConnectionKit/markup"
	"github.com/wanli28/ConnectionKit/markup/markup_config"
	"github.com/wanli28/ConnectionKit/parser/metadecoders"
	"github.com/wanli28/ConnectionKit/sitelib"
)

const (
	rootCmdUse   = "sitetree"
	rootCmdShort = "Inspect and publish a site content tree"

	configFlag  = "config"
	configUsage = "site config file (TOML)"
	quietFlag   = "quiet"
	quietUsage  = "only log errors"

	contentDirFlag  = "contentDir"
	contentDirUsage = "directory of the Markdown page bodies (default markup.contentDir, next to the records)"
)

// commandeer carries the state shared by all sub commands.
type commandeer struct {
	fs         afero.Fs
	cfgFile    string
	contentDir string
	quiet      bool

	// Settings given as flags, layered over the config file.
	flagCfg config.Provider

	// Page bodies of the last loaded site.
	content *markup.ContentProvider
}

// NewRootCommand creates the sitetree command with all sub commands. All
// file access goes through fs.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	c := &commandeer{fs: fs, flagCfg: config.New()}

	rootCmd := &cobra.Command{
		Use:   rootCmdUse,
		Short: rootCmdShort,
		Long: `sitetree loads a site from its TOML records and works on the page tree.

Commands:
  tree      Print the page tree in sort order, stale pages marked with *
  index     Print the index of a collection
  check     Load the records and report the repairs made
  publish   Regenerate the stale pages`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&c.cfgFile, configFlag, "", configUsage)
	rootCmd.PersistentFlags().BoolVarP(&c.quiet, quietFlag, "q", false, quietUsage)
	rootCmd.PersistentFlags().StringVar(&c.contentDir, contentDirFlag, "", contentDirUsage)

	rootCmd.AddCommand(
		c.newTreeCommand(),
		c.newIndexCommand(),
		c.newCheckCommand(),
		c.newPublishCommand(),
	)

	return rootCmd
}

func (c *commandeer) logger(w io.Writer) loggers.Logger {
	threshold := jww.LevelWarn
	if c.quiet {
		threshold = jww.LevelError
	}
	return loggers.NewBasicLoggerForWriter(threshold, w)
}

// loadSite reads the records in filename and builds the site from them.
func (c *commandeer) loadSite(cmd *cobra.Command, filename string) (*sitelib.Site, sitelib.LoadReport, error) {
	fileCfg, err := config.LoadConfig(c.fs, c.cfgFile)
	if err != nil {
		return nil, sitelib.LoadReport{}, err
	}
	if c.contentDir != "" {
		c.flagCfg.Set("markup.contentDir", c.contentDir)
	}
	cfg := config.NewCompositeConfig(fileCfg, c.flagCfg)

	var records sitelib.SiteRecords
	if err := metadecoders.Default.UnmarshalFileTo(c.fs, filename, &records); err != nil {
		return nil, sitelib.LoadReport{}, fmt.Errorf("read records %q: %w", filename, err)
	}

	markupCfg, err := markup_config.Decode(cfg)
	if err != nil {
		return nil, sitelib.LoadReport{}, err
	}
	if !filepath.IsAbs(markupCfg.ContentDir) {
		markupCfg.ContentDir = filepath.Join(filepath.Dir(filename), markupCfg.ContentDir)
	}

	log := c.logger(cmd.ErrOrStderr())
	c.content = markup.NewContentProvider(c.fs, markupCfg, log)
	s, report, err := sitelib.Load(records, sitelib.SiteCfg{
		DepsCfg: deps.DepsCfg{
			Logger: log,
			Cfg:    cfg,
		},
		Content: c.content,
	})
	if err != nil {
		return nil, report, fmt.Errorf("load %q: %w", filename, err)
	}

	return s, report, nil
}
