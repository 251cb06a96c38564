package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/resonance/internal/player"
	"github.com/desertthunder/resonance/internal/shared"
	"github.com/desertthunder/resonance/internal/ui"
	"github.com/urfave/cli/v3"
)

// Play launches the interactive player TUI.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering.
	// Must happen before the provider is built so fallback warnings land
	// in the file, not the terminal.
	fileLogger, err := shared.NewFileLogger("./tmp/resonance-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	provider, err := r.Provider()
	if err != nil {
		return err
	}

	notifier := ui.NewStatusNotifier()
	controller := player.NewController(player.ControllerOpts{
		Notifier: notifier,
		Volume:   r.config.Player.Volume,
	})
	defer controller.Close()

	model := ui.NewModel(ctx, provider, controller, notifier)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running player: %w", err)
	}

	return nil
}
