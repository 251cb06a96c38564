package repositories

import (
	"testing"

	tu "github.com/desertthunder/resonance/internal/testing"
)

func TestCredentialStore(t *testing.T) {
	t.Run("Save And Load", func(t *testing.T) {
		store := NewCredentialStore(tu.MustOpenDB(t))

		if err := store.Save("client_id_1", "client_secret_1"); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		creds, err := store.Load()
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if creds.ClientID != "client_id_1" || creds.ClientSecret != "client_secret_1" {
			t.Errorf("unexpected credentials: %+v", creds)
		}

		t.Run("Overwrite", func(t *testing.T) {
			if err := store.Save("client_id_2", "client_secret_2"); err != nil {
				t.Fatalf("failed to overwrite: %v", err)
			}

			creds, err := store.Load()
			if err != nil {
				t.Fatalf("failed to load: %v", err)
			}
			if creds.ClientID != "client_id_2" {
				t.Errorf("expected overwritten client id, got %s", creds.ClientID)
			}
		})
	})

	t.Run("Load Empty Store", func(t *testing.T) {
		store := NewCredentialStore(tu.MustOpenDB(t))

		creds, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error on empty store, got %v", err)
		}
		if creds.ClientID != "" || creds.ClientSecret != "" {
			t.Errorf("expected empty credentials, got %+v", creds)
		}
	})

	t.Run("SetTokens", func(t *testing.T) {
		store := NewCredentialStore(tu.MustOpenDB(t))

		if store.HasAccessToken() {
			t.Error("expected no access token initially")
		}

		if err := store.SetTokens("access_1", "refresh_1"); err != nil {
			t.Fatalf("failed to set tokens: %v", err)
		}

		if !store.HasAccessToken() {
			t.Error("expected access token after SetTokens")
		}

		token, err := store.AccessToken()
		if err != nil {
			t.Fatalf("failed to read access token: %v", err)
		}
		if token != "access_1" {
			t.Errorf("expected access_1, got %s", token)
		}

		t.Run("Empty Refresh Preserves Previous", func(t *testing.T) {
			if err := store.SetTokens("access_2", ""); err != nil {
				t.Fatalf("failed to set tokens: %v", err)
			}

			token, err := store.AccessToken()
			if err != nil {
				t.Fatalf("failed to read access token: %v", err)
			}
			if token != "access_2" {
				t.Errorf("expected access token replaced, got %s", token)
			}

			refresh, err := store.get(KeyRefreshToken)
			if err != nil {
				t.Fatalf("failed to read refresh token: %v", err)
			}
			if refresh != "refresh_1" {
				t.Errorf("expected refresh token preserved, got %s", refresh)
			}
		})
	})

	t.Run("AuthState", func(t *testing.T) {
		store := NewCredentialStore(tu.MustOpenDB(t))

		state, err := store.AuthState()
		if err != nil {
			t.Fatalf("expected no error on missing state, got %v", err)
		}
		if state != "" {
			t.Errorf("expected empty state, got %s", state)
		}

		if err := store.SetAuthState("nonce_1"); err != nil {
			t.Fatalf("failed to set state: %v", err)
		}

		state, err = store.AuthState()
		if err != nil {
			t.Fatalf("failed to read state: %v", err)
		}
		if state != "nonce_1" {
			t.Errorf("expected nonce_1, got %s", state)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		store := NewCredentialStore(tu.MustOpenDB(t))

		if err := store.Save("client_id", "client_secret"); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		if err := store.SetTokens("access", "refresh"); err != nil {
			t.Fatalf("failed to set tokens: %v", err)
		}
		if err := store.SetAuthState("nonce"); err != nil {
			t.Fatalf("failed to set state: %v", err)
		}

		if err := store.Clear(); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}

		if store.HasAccessToken() {
			t.Error("expected no access token after clear")
		}

		creds, err := store.Load()
		if err != nil {
			t.Fatalf("failed to load after clear: %v", err)
		}
		if creds.ClientID != "" || creds.ClientSecret != "" {
			t.Errorf("expected credentials removed, got %+v", creds)
		}

		state, err := store.AuthState()
		if err != nil {
			t.Fatalf("failed to read state after clear: %v", err)
		}
		if state != "" {
			t.Errorf("expected state removed, got %s", state)
		}

		t.Run("Idempotent", func(t *testing.T) {
			if err := store.Clear(); err != nil {
				t.Errorf("expected second clear to succeed, got %v", err)
			}
		})
	})
}
