// Package wire provides dependency injection for the aerobridge application.
// It creates singleton infrastructure with lazy initialization; workflow
// sessions are created per call.
package wire

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	cliadapter "github.com/example/aerobridge/internal/adapters/cli"
	"github.com/example/aerobridge/internal/adapters/clock"
	"github.com/example/aerobridge/internal/adapters/filesystem"
	"github.com/example/aerobridge/internal/adapters/sqlite"
	"github.com/example/aerobridge/internal/app"
	"github.com/example/aerobridge/internal/config"
	"github.com/example/aerobridge/internal/db"
	"github.com/example/aerobridge/internal/observability"
	"github.com/example/aerobridge/internal/ports/primary"
	"github.com/example/aerobridge/internal/ports/secondary"
)

// ErrJournalDisabled is returned when journal access is requested with
// journaling turned off.
var ErrJournalDisabled = errors.New("session journal is disabled")

var (
	cfg = config.DefaultConfig()

	logger      *slog.Logger
	observer    observability.Observer
	systemClock secondary.Clock
	database    *sql.DB
	journalRepo secondary.JournalRepository
	executor    *app.DefaultEffectExecutor
	interval    = app.DefaultStepInterval

	once    sync.Once
	initErr error
)

// Configure sets the configuration used to build the singletons. It must be
// called before any other function in this package.
func Configure(c *config.Config) {
	cfg = c
}

// Config returns the active configuration.
func Config() *config.Config {
	return cfg
}

// initServices initializes shared infrastructure.
// This is called once via sync.Once.
func initServices() {
	logger, initErr = observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if initErr != nil {
		return
	}
	slog.SetDefault(logger)
	observer = observability.NewSlogObserver(logger)
	systemClock = clock.New()

	interval, initErr = cfg.Interval()
	if initErr != nil {
		return
	}

	if cfg.JournalOn() {
		path := cfg.JournalPath
		if path == "" {
			path, initErr = db.DefaultPath()
			if initErr != nil {
				return
			}
		}
		database, initErr = db.Open(path)
		if initErr != nil {
			initErr = fmt.Errorf("failed to open journal %s: %w", path, initErr)
			return
		}
		journalRepo = sqlite.NewJournalRepository(database)
	}

	executor = app.NewEffectExecutor(journalRepo, observer, systemClock)
}

func ensure() error {
	once.Do(initServices)
	return initErr
}

// Logger returns the configured structured logger.
func Logger() (*slog.Logger, error) {
	if err := ensure(); err != nil {
		return nil, err
	}
	return logger, nil
}

// MissionSource returns the configured mission loader: the mission file when
// set, otherwise the embedded sample.
func MissionSource() secondary.MissionSource {
	if cfg.MissionFile == "" {
		return filesystem.NewEmbeddedMissionLoader()
	}
	return filesystem.NewFileMissionLoader(cfg.MissionFile)
}

// WorkflowService loads the mission context and opens a new journaled
// workflow session. Each call creates an independent session with its own
// sequencer.
func WorkflowService(ctx context.Context) (*app.WorkflowServiceImpl, error) {
	if err := ensure(); err != nil {
		return nil, err
	}
	return newWorkflowService(ctx, executor)
}

// BrowseService opens a session that is never journaled, for read-only
// commands that only list or show recommendations.
func BrowseService(ctx context.Context) (*app.WorkflowServiceImpl, error) {
	if err := ensure(); err != nil {
		return nil, err
	}
	return newWorkflowService(ctx, app.NewEffectExecutor(nil, observer, systemClock))
}

func newWorkflowService(ctx context.Context, exec app.EffectExecutor) (*app.WorkflowServiceImpl, error) {
	source := MissionSource()
	mission, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Validation events reach the log and the journal.
	seqObserver := observability.NewMultiObserver(observer, app.NewJournalObserver(exec))
	sequencer, err := app.NewSequencer(interval, systemClock, seqObserver)
	if err != nil {
		return nil, err
	}

	return app.NewWorkflowService(ctx, mission, sequencer, exec, observer, systemClock, app.WorkflowOptions{
		MissionSource: source.Name(),
		Operator:      cfg.Operator,
	})
}

// JournalService returns a JournalService over the configured journal.
func JournalService() (primary.JournalService, error) {
	if err := ensure(); err != nil {
		return nil, err
	}
	if journalRepo == nil {
		return nil, ErrJournalDisabled
	}
	return app.NewJournalService(journalRepo), nil
}

// WorkflowAdapter returns a new WorkflowAdapter for svc writing to out.
// Each call creates a new adapter (adapters are stateless translators).
func WorkflowAdapter(svc primary.WorkflowService, out io.Writer) *cliadapter.WorkflowAdapter {
	return cliadapter.NewWorkflowAdapter(svc, out)
}

// JournalAdapter returns a new JournalAdapter writing to out.
func JournalAdapter(out io.Writer) (*cliadapter.JournalAdapter, error) {
	svc, err := JournalService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewJournalAdapter(svc, out), nil
}

// Shutdown releases the journal database and drops the singletons, so the
// next call re-initializes from the configuration set by Configure.
func Shutdown() error {
	var err error
	if database != nil {
		err = database.Close()
	}
	database = nil
	journalRepo = nil
	executor = nil
	once = sync.Once{}
	initErr = nil
	return err
}
