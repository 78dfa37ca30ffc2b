package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/sflink/internal/config"
	"github.com/vvka-141/sflink/internal/db"
	"github.com/vvka-141/sflink/internal/formprinter"
	"github.com/vvka-141/sflink/internal/i18n"
	"github.com/vvka-141/sflink/internal/jobs"
	"github.com/vvka-141/sflink/internal/logging"
	"github.com/vvka-141/sflink/internal/resolver"
	"github.com/vvka-141/sflink/internal/store"
	"github.com/vvka-141/sflink/internal/title"
	"github.com/vvka-141/sflink/internal/ui"
	"github.com/vvka-141/sflink/pkg/sflink"
)

// app holds what a command needs once configuration is loaded. Database and
// broker connections are opened on demand and released by Close.
type app struct {
	cfg       *config.Config
	logger    sflink.Logger
	localizer *i18n.Localizer
	titles    *title.Resolver

	dsn     string
	conn    *db.PoolAdapter
	store   *store.Store
	closers []func()
}

// loadConfig reads sflink.yaml. Without --config a missing ./sflink.yaml means
// defaults; an explicit path must exist.
func loadConfig(path string) (*config.Config, error) {
	_ = godotenv.Load()

	if path == "" {
		cfg, err := config.Load(".")
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.Default(), nil
		}
		return cfg, err
	}

	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("%s: %w: %w", path, err, sflink.ErrInvalidConfig)
	}
	return cfg, err
}

// newApp loads configuration and builds the title machinery. It does not connect.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(globalFlags.configPath)
	if err != nil {
		return nil, err
	}

	logger := logging.NewWriterLogger(cmd.ErrOrStderr(), globalFlags.verbose)

	loc, err := i18n.New(cfg.Wiki.Language,
		i18n.WithNamespaceNames(cfg.Wiki.Namespaces),
		i18n.WithBlankNamespaceLabel(cfg.Wiki.BlankNamespaceLabel),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		localizer: loc,
		titles:    title.NewResolver(loc, loc.Language(), cfg.CapitalLinksEnabled()),
	}, nil
}

// connect opens the wiki database.
func (a *app) connect(ctx context.Context) error {
	if a.conn != nil {
		return nil
	}

	dsn, err := db.ResolveDSN(globalFlags.connection, a.cfg.Connection.DSN, os.LookupEnv)
	if err != nil {
		return err
	}
	a.logger.Verbose("Connecting to %s", db.Describe(dsn))

	pool, err := db.NewStandardConnector(dsn, a.logger).Connect(ctx)
	if err != nil {
		return err
	}

	a.dsn = dsn
	a.conn = db.NewPoolAdapter(pool)
	a.store = store.New(a.conn)
	a.closers = append(a.closers, a.conn.Close)
	return nil
}

// service connects and wires the resolvers. When the semantic property tables
// are missing the service is built without a property store.
func (a *app) service(ctx context.Context) (*resolver.Service, error) {
	if err := a.connect(ctx); err != nil {
		return nil, err
	}

	var props sflink.PropertyStore
	installed, err := store.SemanticStoreInstalled(ctx, a.conn)
	if err != nil {
		return nil, err
	}
	if installed {
		props = a.store
	} else {
		a.logger.Verbose("No semantic property tables in %s", db.Describe(a.dsn))
	}

	queue, err := a.jobQueue(ctx)
	if err != nil {
		return nil, err
	}

	return resolver.NewService(resolver.Deps{
		Store:        props,
		Categories:   a.store,
		Pages:        a.store,
		Queue:        queue,
		Printer:      formprinter.New(),
		Titles:       a.titles,
		Localizer:    a.localizer,
		Logger:       a.logger,
		FormEditPath: a.cfg.Wiki.FormEditPath,
		ArticlePath:  a.cfg.Wiki.ArticlePath,
	}), nil
}

func (a *app) jobQueue(ctx context.Context) (sflink.JobQueue, error) {
	if a.cfg.Jobs.Backend != config.BackendNATS {
		return a.store, nil
	}

	a.logger.Verbose("Publishing jobs to %s on %s", a.cfg.Jobs.Subject, a.cfg.Jobs.NATSURL)
	js, closeNATS, err := jobs.Connect(ctx, a.cfg.Jobs.NATSURL, a.cfg.Jobs.Subject)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeNATS)
	return jobs.NewJetStreamQueue(js, a.cfg.Jobs.Subject, a.logger), nil
}

// report logs a missing property store the way the wiki reports it and passes
// err through.
func (a *app) report(err error) error {
	if errors.Is(err, sflink.ErrPropertyStoreUnavailable) {
		a.logger.Error("%v", err)
	}
	return err
}

// Close releases connections in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func resultOutput(cmd *cobra.Command) *ui.Output {
	return ui.NewOutput(cmd.OutOrStdout(), styled(cmd.OutOrStdout()))
}

func noticeOutput(cmd *cobra.Command) *ui.Output {
	return ui.NewOutput(cmd.ErrOrStderr(), styled(cmd.ErrOrStderr()))
}

// styled is true only for the real terminal streams.
func styled(w io.Writer) bool {
	return (w == os.Stdout || w == os.Stderr) && ui.IsInteractive()
}
