package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/develordle/internal/daily"
	"github.com/robalobadob/develordle/internal/httpserver"
	"github.com/robalobadob/develordle/internal/store"
	"github.com/robalobadob/develordle/internal/telemetry"
)

const sweepInterval = time.Minute

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Host games over HTTP",
		Long: `Serve the JSON game API.

POST /game/new starts a game and returns a bearer token for it. Guesses go
to /game/{id}/guess (whole words) or /game/{id}/input (one key at a time).
Each submission returns its reveal events with the delay at which a client
should show them. Idle games are dropped after SESSION_TTL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd)
		},
	}
}

func (a *app) serve(cmd *cobra.Command) error {
	log, closer, err := telemetry.NewLogger(telemetry.LogOptions{Level: a.cfg.LogLevel, Format: a.cfg.LogFormat, Output: a.cfg.LogFile})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	vocab, err := a.vocabulary(log)
	if err != nil {
		return err
	}
	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, httpserver.Options{
		Vocabulary:   vocab,
		Picker:       a.picker(vocab),
		Daily:        daily.NewPicker(vocab, a.cfg.DailySalt),
		Metrics:      telemetry.NewMetrics(),
		Logger:       log,
		Secret:       []byte(a.cfg.JWTSecret),
		TokenTTL:     a.cfg.SessionTTL,
		ClientOrigin: a.cfg.ClientOrigin,
		RevealDelay:  a.cfg.RevealDelay,
		StrictWords:  a.cfg.StrictWords,
		RateRPS:      a.cfg.RateLimitRPS,
		RateBurst:    a.cfg.RateLimitBurst,
	})

	ctx := cmd.Context()
	go store.RunSweeper(ctx, mem, a.cfg.SessionTTL, sweepInterval, func(n int) {
		log.Info().Int("removed", n).Msg("expired games swept")
	})

	if a.cfg.JWTSecret == "dev_secret_change_me" {
		log.Warn().Msg("JWT_SECRET is the development default")
	}
	log.Info().Str("addr", a.cfg.Addr()).Int("words", vocab.Len()).Msg("starting develordle server")
	return srv.Start(ctx, a.cfg.Addr())
}
