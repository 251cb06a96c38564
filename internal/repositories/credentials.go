package repositories

import (
	"database/sql"
	"fmt"
)

// Setting keys for the Spotify credential slots.
//
// These are the only keys the store writes; there is no schema versioning
// beyond the settings table migration.
const (
	KeyClientID     = "spotify_client_id"
	KeyClientSecret = "spotify_client_secret"
	KeyAccessToken  = "spotify_access_token"
	KeyRefreshToken = "spotify_refresh_token"
	KeyAuthState    = "spotify_auth_state"
)

// Credentials holds the Spotify client credential pair.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// CredentialStore persists Spotify credentials and tokens in the settings table.
//
// The store is the single owner of the credential lifecycle: saved on
// connect, token slots written on exchange, and cleared together on
// disconnect. Constructors take the store explicitly rather than reaching
// for ambient state so tests can substitute an in-memory database.
type CredentialStore struct {
	db *sql.DB
}

// NewCredentialStore creates a new [CredentialStore] with the given database connection.
func NewCredentialStore(db *sql.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Save persists the client ID and secret, overwriting any prior values.
func (s *CredentialStore) Save(clientID, clientSecret string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for key, value := range map[string]string{
		KeyClientID:     clientID,
		KeyClientSecret: clientSecret,
	} {
		if err := upsert(tx, key, value); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// Load returns the stored client ID and secret, both possibly empty.
func (s *CredentialStore) Load() (Credentials, error) {
	clientID, err := s.get(KeyClientID)
	if err != nil {
		return Credentials{}, err
	}

	clientSecret, err := s.get(KeyClientSecret)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{ClientID: clientID, ClientSecret: clientSecret}, nil
}

// SetTokens persists the access token, and the refresh token only when
// non-empty (token refreshes don't always return a new refresh token).
func (s *CredentialStore) SetTokens(accessToken, refreshToken string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := upsert(tx, KeyAccessToken, accessToken); err != nil {
		tx.Rollback()
		return err
	}

	if refreshToken != "" {
		if err := upsert(tx, KeyRefreshToken, refreshToken); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// AccessToken returns the stored access token, possibly empty.
func (s *CredentialStore) AccessToken() (string, error) {
	return s.get(KeyAccessToken)
}

// HasAccessToken reports whether an access token is stored.
//
// Used as the "is connected" signal throughout the player.
func (s *CredentialStore) HasAccessToken() bool {
	token, err := s.get(KeyAccessToken)
	return err == nil && token != ""
}

// SetAuthState persists the OAuth anti-forgery state nonce.
func (s *CredentialStore) SetAuthState(state string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := upsert(tx, KeyAuthState, state); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// AuthState returns the stored OAuth state nonce, possibly empty.
func (s *CredentialStore) AuthState() (string, error) {
	return s.get(KeyAuthState)
}

// Clear removes client ID, client secret, access token, refresh token and
// auth state as one unit. No partial-clear state is observable.
func (s *CredentialStore) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `DELETE FROM settings WHERE key IN (?, ?, ?, ?, ?)`
	if _, err := tx.Exec(query, KeyClientID, KeyClientSecret, KeyAccessToken, KeyRefreshToken, KeyAuthState); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	return tx.Commit()
}

func (s *CredentialStore) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting %s: %w", key, err)
	}
	return value, nil
}

func upsert(tx *sql.Tx, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := tx.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}
