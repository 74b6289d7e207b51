package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/robalobadob/develordle/internal/engine"
	"github.com/robalobadob/develordle/internal/feedback"
	"github.com/robalobadob/develordle/internal/game"
	"github.com/robalobadob/develordle/internal/telemetry"
	"github.com/robalobadob/develordle/internal/tui"
)

func newPlayCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Play a game in the terminal.

Type letters to fill the row, Backspace to delete, Enter to submit.
The mouse works on the on-screen keyboard. Ctrl+N starts a new game,
Esc quits.

Logs would corrupt the screen, so they are discarded unless LOG_FILE is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.play(cmd)
		},
	}
}

func (a *app) play(cmd *cobra.Command) error {
	out := a.cfg.LogFile
	if out == "" {
		out = "discard"
	}
	log, closer, err := telemetry.NewLogger(telemetry.LogOptions{Level: a.cfg.LogLevel, Format: a.cfg.LogFormat, Output: out})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	vocab, err := a.vocabulary(log)
	if err != nil {
		return err
	}
	opts := []engine.Option{
		engine.WithLogger(log),
		engine.WithSequencer(feedback.NewSequencer(a.cfg.RevealDelay)),
	}
	if a.cfg.StrictWords {
		opts = append(opts, engine.WithSessionOptions(game.RequireKnownWords(vocab)))
	}
	eng := engine.New(a.picker(vocab), opts...)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	log.Info().Str("mode", a.cfg.TargetMode).Msg("terminal game started")
	return tui.New(screen, eng, tui.Options{NoticeTTL: a.cfg.NoticeTTL, Logger: log}).Run(cmd.Context())
}
