package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/careerkey/portal/internal/client/api"
	"github.com/careerkey/portal/internal/client/config"
	"github.com/careerkey/portal/internal/client/repositories/attestations"
	"github.com/careerkey/portal/internal/client/repositories/metadata"
	"github.com/careerkey/portal/internal/client/services"
	"github.com/careerkey/portal/internal/client/session"
	"github.com/careerkey/portal/internal/client/store"
	"github.com/careerkey/portal/internal/logging"
)

// App wires the portal together: the local store, the API client with its
// transparent token refresh, the session store and the command handlers.
type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	session   *session.Store
	register  registerAPI
	verifier  *services.Verifier
	dashboard *services.Dashboard
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := store.Open(ctx, c.DataFile)
	if err != nil {
		log.Error(ctx, "error opening local store", "error", err)
		return nil, err
	}

	slot := session.NewTokenSlot(metadata.NewSQLiteRepository(db), log)

	apiClient, err := api.New(c.BaseURL, slot, c.RequestTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sessionStore := session.NewStore(apiClient, slot, log)
	apiClient.OnAuthExpired(sessionStore.HandleExpired)

	app := &App{
		config:    c,
		log:       log,
		db:        db,
		session:   sessionStore,
		register:  apiClient,
		verifier:  services.NewVerifier(apiClient, log),
		dashboard: services.NewDashboard(attestations.NewSQLiteRepository(db), log),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}

	// The session-expired hint prints once per expiry, not once per queued
	// request that lost the refresh race.
	sessionStore.OnExpired(func() {
		fmt.Fprintln(app.out, "Your session has expired. Please log in again.")
	})

	return app, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run restores a persisted session if one exists, then hands control to
// the command loop until EOF or an exit command.
func (a *App) Run(ctx context.Context) {
	a.session.CheckAuth(ctx)

	fmt.Fprintln(a.out, "Welcome to the CareerKey portal (type 'help' for commands)")
	if user := a.session.User(); user != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", user.Email)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	user := a.session.User()
	if user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", user.Email)
}
