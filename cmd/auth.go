package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/resonance/internal/server"
	"github.com/desertthunder/resonance/internal/services"
	"github.com/desertthunder/resonance/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthConnect saves client credentials and runs the OAuth2 authorization flow.
//
// Credentials come from flags first, then the config file, then whatever was
// stored by a previous connect.
func (r *Runner) AuthConnect(ctx context.Context, cmd *cli.Command) error {
	store, err := r.Store()
	if err != nil {
		return err
	}

	clientID := cmd.String("id")
	clientSecret := cmd.String("secret")

	if clientID == "" {
		clientID = r.config.Credentials.Spotify.ClientID
	}
	if clientSecret == "" {
		clientSecret = r.config.Credentials.Spotify.ClientSecret
	}

	if clientID == "" || clientSecret == "" {
		stored, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load stored credentials: %w", err)
		}
		if clientID == "" {
			clientID = stored.ClientID
		}
		if clientSecret == "" {
			clientSecret = stored.ClientSecret
		}
	}

	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("%w: pass --id and --secret or set them in config.toml", shared.ErrMissingCredentials)
	}

	if err := store.Save(clientID, clientSecret); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	spotify, err := r.Spotify()
	if err != nil {
		return err
	}

	if err := r.doOAuth(spotify); err != nil {
		return err
	}

	r.writePlainln("✓ Spotify connected")
	r.writePlain("You can now use: resonance search <query>\n")
	return nil
}

// AuthStatus checks the connection by fetching the user profile.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	spotify, err := r.Spotify()
	if err != nil {
		return err
	}

	profile, err := spotify.Profile(ctx)
	switch {
	case errors.Is(err, shared.ErrNotAuthenticated):
		r.writePlain("✗ Not connected. Run: resonance auth connect\n")
		return nil
	case errors.Is(err, shared.ErrTokenExpired):
		r.writePlain("✗ Session expired. Run: resonance auth connect\n")
		return nil
	case err != nil:
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	r.writePlain("✓ Connected as %s", profile.DisplayName)
	if profile.Email != "" {
		r.writePlain(" (%s)", profile.Email)
	}
	r.writePlain("\n")
	if profile.Product != "" {
		r.writePlain("  Plan: %s\n", profile.Product)
	}
	return nil
}

// AuthDisconnect clears all stored credentials and tokens.
func (r *Runner) AuthDisconnect(ctx context.Context, cmd *cli.Command) error {
	store, err := r.Store()
	if err != nil {
		return err
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	r.writePlain("✓ Disconnected. Stored credentials and tokens removed.\n")
	return nil
}

// doOAuth executes the authorization flow with a local callback server.
func (r *Runner) doOAuth(spotify *services.SpotifyService) error {
	authURL, err := spotify.AuthURL()
	if err != nil {
		return fmt.Errorf("failed to build authorization URL: %w", err)
	}

	oauthHandler := server.NewOAuthHandler(spotify)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}

	return nil
}
