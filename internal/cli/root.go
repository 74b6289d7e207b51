// Package cli wires configuration, logging and the game packages into the
// develordle command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robalobadob/develordle/internal/config"
	"github.com/robalobadob/develordle/internal/daily"
	"github.com/robalobadob/develordle/internal/engine"
	"github.com/robalobadob/develordle/internal/words"
)

// Build information, set by main.
var (
	Version = "dev"
	Commit  = "unknown"
)

// flags override the matching config values when set.
type flags struct {
	wordsFile string
	daily     bool
	strict    bool
	logLevel  string
}

type app struct {
	cfg   config.Config
	flags flags
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return newRootCommand().ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	return (&app{}).command()
}

func (a *app) command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "develordle",
		Short: "Guess the five-letter developer word in six tries",
		Long: `develordle is a word-guessing game about developer vocabulary.

Each guess is scored letter by letter: green letters are in the right spot,
yellow letters are in the word elsewhere, grey letters are not in it.
Play in the terminal, or host games for web clients over HTTP.`,
		Version:       fmt.Sprintf("%s (commit: %s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.flags.wordsFile, "words", "w", "", "word list file, one word per line (overrides WORDS_FILE)")
	pf.BoolVar(&a.flags.daily, "daily", false, "use the word of the day as the target (overrides TARGET_MODE)")
	pf.BoolVar(&a.flags.strict, "strict", false, "reject guesses that are not in the word list (overrides STRICT_WORDS)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(newPlayCommand(a))
	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newWordsCommand(a))

	return rootCmd
}

// load reads the environment and applies any flags the user set.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("words") {
		cfg.WordsFile = a.flags.wordsFile
	}
	if f.Changed("daily") && a.flags.daily {
		cfg.TargetMode = "daily"
	}
	if f.Changed("strict") {
		cfg.StrictWords = a.flags.strict
	}
	if f.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	a.cfg = cfg
	return nil
}

func (a *app) vocabulary(log zerolog.Logger) (*words.Vocabulary, error) {
	if a.cfg.WordsFile == "" {
		return words.Default()
	}
	v, err := words.Load(a.cfg.WordsFile)
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", a.cfg.WordsFile).Int("words", v.Len()).Msg("word list loaded")
	return v, nil
}

// picker returns the target source selected by TARGET_MODE.
func (a *app) picker(v *words.Vocabulary) engine.Picker {
	if a.cfg.TargetMode == "daily" {
		return daily.NewPicker(v, a.cfg.DailySalt)
	}
	return v
}
