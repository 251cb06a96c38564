package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/resonance/internal/catalog"
	"github.com/desertthunder/resonance/internal/repositories"
	"github.com/desertthunder/resonance/internal/services"
	"github.com/desertthunder/resonance/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer

	db       *sql.DB
	store    *repositories.CredentialStore
	spotify  *services.SpotifyService
	provider *catalog.Provider
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer

	// DB overrides lazy database opening, used by tests.
	DB *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		db:     opts.DB,
	}
}

// SetLogger replaces the runner's logger (used when the TUI owns the terminal).
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Store opens the database on first use, runs migrations and returns the
// credential store. Subsequent calls reuse the connection.
func (r *Runner) Store() (*repositories.CredentialStore, error) {
	if r.store != nil {
		return r.store, nil
	}

	if r.db == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return nil, err
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
		r.db = db
	}

	if err := shared.RunMigrations(r.db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	r.store = repositories.NewCredentialStore(r.db)
	return r.store, nil
}

// Spotify returns the Spotify client over the credential store.
func (r *Runner) Spotify() (*services.SpotifyService, error) {
	if r.spotify != nil {
		return r.spotify, nil
	}

	store, err := r.Store()
	if err != nil {
		return nil, err
	}

	r.spotify = services.NewSpotifyService(store, r.config.Credentials.Spotify.RedirectURI)
	return r.spotify, nil
}

// Provider returns the unified catalog provider.
func (r *Runner) Provider() (*catalog.Provider, error) {
	if r.provider != nil {
		return r.provider, nil
	}

	store, err := r.Store()
	if err != nil {
		return nil, err
	}

	spotify, err := r.Spotify()
	if err != nil {
		return nil, err
	}

	r.provider = catalog.NewProvider(store, spotify, catalog.NewLocalCatalog(), r.logger)
	return r.provider, nil
}

// Close releases the database connection if one was opened.
func (r *Runner) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
