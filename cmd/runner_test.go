package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/resonance/internal/models"
	"github.com/desertthunder/resonance/internal/shared"
	tu "github.com/desertthunder/resonance/internal/testing"
	"github.com/urfave/cli/v3"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: shared.DefaultConfig(),
		Output: output,
		DB:     tu.MustOpenDB(t),
	})
	return runner, output
}

func runCommand(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "resonance",
		Commands: runner.register(),
	}
	return app.Run(context.Background(), append([]string{"resonance"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("Store", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		store, err := runner.Store()
		if err != nil {
			t.Fatalf("failed to build store: %v", err)
		}

		again, err := runner.Store()
		if err != nil {
			t.Fatalf("failed on second call: %v", err)
		}
		if store != again {
			t.Error("expected store to be reused")
		}
	})

	t.Run("Provider", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		provider, err := runner.Provider()
		if err != nil {
			t.Fatalf("failed to build provider: %v", err)
		}
		if provider.Connected() {
			t.Error("expected disconnected provider on a fresh database")
		}
	})

	t.Run("register", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		commands := runner.register()
		if len(commands) != 7 {
			t.Errorf("expected 7 top-level commands, got %d", len(commands))
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("pretty", func(t *testing.T) {
			runner, output := newTestRunner(t)

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if !strings.Contains(output.String(), "\n  \"key\"") {
				t.Errorf("expected indented JSON, got: %s", output.String())
			}
		})

		t.Run("compact", func(t *testing.T) {
			runner, output := newTestRunner(t)

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if strings.TrimSpace(output.String()) != `{"key":"value"}` {
				t.Errorf("expected compact JSON, got: %s", output.String())
			}
		})

		t.Run("write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON("data", false); err == nil {
				t.Error("expected error on write failure")
			}
		})
	})

	t.Run("Popular Command", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := runCommand(t, runner, "popular"); err != nil {
			t.Fatalf("popular failed: %v", err)
		}

		if !strings.Contains(output.String(), "Neon Dreams") {
			t.Errorf("expected built-in catalog output, got: %s", output.String())
		}
	})

	t.Run("Search Command", func(t *testing.T) {
		t.Run("Local Fallback", func(t *testing.T) {
			runner, output := newTestRunner(t)

			if err := runCommand(t, runner, "search", "Neon"); err != nil {
				t.Fatalf("search failed: %v", err)
			}

			if !strings.Contains(output.String(), "Found 3 results") {
				t.Errorf("expected 3 local matches, got: %s", output.String())
			}
		})

		t.Run("Missing Query", func(t *testing.T) {
			runner, _ := newTestRunner(t)

			if err := runCommand(t, runner, "search"); err == nil {
				t.Error("expected error for missing query")
			}
		})

		t.Run("JSON Output", func(t *testing.T) {
			runner, output := newTestRunner(t)

			if err := runCommand(t, runner, "search", "--json", "Gravity"); err != nil {
				t.Fatalf("search failed: %v", err)
			}

			var results models.SearchResults
			if err := json.Unmarshal(output.Bytes(), &results); err != nil {
				t.Fatalf("expected valid JSON, got %v: %s", err, output.String())
			}
			if len(results.Tracks) != 1 || results.Tracks[0].Title != "Gravity Well" {
				t.Errorf("unexpected results: %+v", results)
			}
		})
	})

	t.Run("Recommend Command", func(t *testing.T) {
		t.Run("Known Track", func(t *testing.T) {
			runner, output := newTestRunner(t)

			if err := runCommand(t, runner, "recommend", "--id", "1"); err != nil {
				t.Fatalf("recommend failed: %v", err)
			}

			if !strings.Contains(output.String(), "Because you listened to") {
				t.Errorf("expected recommendation header, got: %s", output.String())
			}
		})

		t.Run("Unknown Track", func(t *testing.T) {
			runner, _ := newTestRunner(t)

			if err := runCommand(t, runner, "recommend", "--id", "999"); err == nil {
				t.Error("expected error for unknown track")
			}
		})
	})

	t.Run("Auth Commands", func(t *testing.T) {
		t.Run("Status Disconnected", func(t *testing.T) {
			runner, output := newTestRunner(t)

			if err := runCommand(t, runner, "auth", "status"); err != nil {
				t.Fatalf("auth status failed: %v", err)
			}

			if !strings.Contains(output.String(), "Not connected") {
				t.Errorf("expected not-connected message, got: %s", output.String())
			}
		})

		t.Run("Disconnect", func(t *testing.T) {
			runner, output := newTestRunner(t)

			store, err := runner.Store()
			if err != nil {
				t.Fatalf("failed to build store: %v", err)
			}
			if err := store.SetTokens("token", "refresh"); err != nil {
				t.Fatalf("failed to seed tokens: %v", err)
			}

			if err := runCommand(t, runner, "auth", "disconnect"); err != nil {
				t.Fatalf("auth disconnect failed: %v", err)
			}

			if store.HasAccessToken() {
				t.Error("expected tokens cleared")
			}
			if !strings.Contains(output.String(), "Disconnected") {
				t.Errorf("expected confirmation, got: %s", output.String())
			}
		})

		t.Run("Connect Without Credentials", func(t *testing.T) {
			runner, _ := newTestRunner(t)
			runner.config.Credentials.Spotify.ClientID = ""
			runner.config.Credentials.Spotify.ClientSecret = ""

			err := runCommand(t, runner, "auth", "connect")
			if err == nil {
				t.Fatal("expected error without credentials")
			}
		})
	})

	t.Run("Playlists Command Disconnected", func(t *testing.T) {
		runner, output := newTestRunner(t)

		if err := runCommand(t, runner, "playlists"); err != nil {
			t.Fatalf("playlists failed: %v", err)
		}

		if !strings.Contains(output.String(), "Not connected") {
			t.Errorf("expected not-connected message, got: %s", output.String())
		}
	})
}
