package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/japaniel/alifba/pkg/config"
	"github.com/japaniel/alifba/pkg/content"
	"github.com/japaniel/alifba/pkg/db"
	"github.com/japaniel/alifba/pkg/logger"
	"github.com/japaniel/alifba/pkg/lookup"
	"github.com/japaniel/alifba/pkg/segment"
	"github.com/japaniel/alifba/pkg/shaping"
	"github.com/japaniel/alifba/pkg/vocabulary"
)

// app carries what the commands share: flags, configuration and lazily
// opened resources.
type app struct {
	configPath  string
	dbPath      string
	contentPath string
	logMode     string

	cfg  *config.Config
	log  *logger.Logger
	conn *sql.DB
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "alifba",
		Short:         "Arabic letter segmentation and question packs",
		Long:          "Segments Arabic words into catalog letters, builds minigame question packs and counts the letters of web articles.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: embedded defaults)")
	root.PersistentFlags().StringVarP(&a.dbPath, "db", "d", "", "SQLite database path (default: $ALIFBA_DB or config)")
	root.PersistentFlags().StringVar(&a.contentPath, "content", "", "Content pack file or directory (default: $ALIFBA_CONTENT or config)")
	root.PersistentFlags().StringVar(&a.logMode, "log", "", "Log mode: dev, prod or quiet")

	root.AddCommand(
		newImportCmd(a),
		newSegmentCmd(a),
		newLettersCmd(a),
		newPacksCmd(a),
		newValidateCmd(a),
		newAnalyzeCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}
	if a.contentPath != "" {
		cfg.Content.Path = a.contentPath
	}
	if a.logMode != "" {
		cfg.Logging.Mode = a.logMode
	}
	log, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) close() {
	if a.conn != nil {
		a.conn.Close()
		a.conn = nil
	}
	if a.log != nil {
		a.log.Sync()
	}
}

func (a *app) db() (*sql.DB, error) {
	if a.conn != nil {
		return a.conn, nil
	}
	conn, err := db.Open(a.cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", a.cfg.Database.Path, err)
	}
	a.log.Debug("database ready", "path", a.cfg.Database.Path)
	a.conn = conn
	return conn, nil
}

// pack loads the configured content pack, downloading it first when a URL
// is configured. Without a usable file the content imported into the
// database is used.
func (a *app) pack(ctx context.Context) (*content.Pack, error) {
	path := a.cfg.Content.Path
	if path != "" {
		err := content.NewDownloader(a.log).EnsureContent(ctx, path, a.cfg.Content.URL)
		if err == nil {
			return content.Load(path)
		}
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			return nil, err
		}
		a.log.Debug("content pack unavailable, reading database", "path", path, "err", err)
	}
	conn, err := a.db()
	if err != nil {
		return nil, err
	}
	p, err := content.FromDB(conn)
	if err != nil {
		return nil, fmt.Errorf("no content pack at %q and none imported: %w", path, err)
	}
	return p, nil
}

// index builds the catalog and its vocabulary index with the configured
// segmentation.
func (a *app) index(p *content.Pack) (*vocabulary.Index, error) {
	cat, err := p.Catalog()
	if err != nil {
		return nil, err
	}
	seg := a.cfg.Segmentation
	var shapeOpts []shaping.Option
	segOpts := []segment.Option{
		segment.WithCollapseSymbols(seg.CollapseSymbols...),
		segment.WithLogger(a.log.With("component", "segment")),
	}
	if seg.LamID != "" {
		shapeOpts = append(shapeOpts, shaping.WithLamID(seg.LamID))
		segOpts = append(segOpts, segment.WithLamID(seg.LamID))
	}
	segOpts = append(segOpts, segment.WithShaper(shaping.New(cat, shapeOpts...)))
	segmenter := segment.New(cat, lookup.NewResolver(cat), segOpts...)
	return vocabulary.New(cat, segmenter, a.log.With("component", "vocabulary")), nil
}
