package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robalobadob/develordle/internal/daily"
)

var nowFunc = time.Now

func newWordsCommand(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Show the active word list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vocab, err := a.vocabulary(zerolog.Nop())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d words of %d letters\n", vocab.Len(), vocab.WordLength())
			now := nowFunc()
			fmt.Fprintf(out, "today (%s) is word #%d\n", daily.DateKey(now), daily.WordIndex(now, a.cfg.DailySalt, vocab.Len())+1)
			if list {
				fmt.Fprintln(out, strings.Join(vocab.Words(), "\n"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "print every word")
	return cmd
}
