// Package cli implements the interactive terminal application used by field
// operators: record management, device settings and sync triggers.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/fieldtrack/internal/config"
	"github.com/dmitrijs2005/fieldtrack/internal/filex"
	"github.com/dmitrijs2005/fieldtrack/internal/gateway"
	"github.com/dmitrijs2005/fieldtrack/internal/logging"
	"github.com/dmitrijs2005/fieldtrack/internal/services"
	"github.com/dmitrijs2005/fieldtrack/internal/store"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	db     *sql.DB

	entities    *services.EntityService
	collections *services.CollectionService
	details     *services.DetailService
	settings    *services.SettingsService
	dashboard   *services.DashboardService
	sync        *services.SyncService

	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	db, err := store.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app := &App{
		config:      c,
		db:          db,
		entities:    services.NewEntityService(db),
		collections: services.NewCollectionService(db),
		details:     services.NewDetailService(db),
		settings:    services.NewSettingsService(db),
		dashboard:   services.NewDashboardService(db),
		reader:      bufio.NewReader(os.Stdin),
	}
	app.sync = services.NewSyncService(db, app.dialGateway, logger)

	return app, nil
}

// dialGateway builds a gateway client from the operator-entered settings,
// so a changed endpoint or token takes effect on the next sync.
func (a *App) dialGateway(ctx context.Context) (gateway.Client, error) {
	apiURL, apiToken, err := a.settings.Endpoint(ctx)
	if err != nil {
		return nil, err
	}
	device, err := a.settings.DeviceID(ctx)
	if err != nil {
		return nil, err
	}
	return gateway.NewHTTPClient(apiURL, apiToken, device, a.config.RequestTimeout)
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	// The REPL and the prompt helpers read stdin through the same buffered
	// reader; see runREPL.
	runREPL(ctx, a, a.reader)
}

func (a *App) Close() {
	_ = a.db.Close()
}
