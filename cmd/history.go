package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alphabetz/alphabetz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past practice sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := s.EventRepo().QueryPracticeSessions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No practice sessions yet.")
			return nil
		}

		fmt.Printf("%-19s  %-7s  %-6s  %-8s  %-6s  %s\n",
			"Timestamp", "Score", "Of", "Duration", "Full", "Types")
		fmt.Println(strings.Repeat("─", 90))

		for _, r := range recs {
			full := "yes"
			if !r.FullSession {
				full = "early"
			}
			fmt.Printf("%-19s  %-7d  %-6d  %-8s  %-6s  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.Score,
				r.Attempted,
				fmt.Sprintf("%d:%02d", r.DurationSecs/60, r.DurationSecs%60),
				full,
				strings.Join(r.QuestionTypes, ","),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
