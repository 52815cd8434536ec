package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alphabetz/alphabetz/internal/tenses"
)

var tensesCmd = &cobra.Command{
	Use:   "tenses [id]",
	Short: "Show the tense reference (all tenses, or one in detail)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			tmpl, ok := tenses.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown tense %q", args[0])
			}
			printTense(tmpl)
			return nil
		}

		time, _ := cmd.Flags().GetString("time")
		list := tenses.All()
		if time != "" {
			list = tenses.ByTime(strings.ToLower(time))
			if len(list) == 0 {
				return fmt.Errorf("no tenses found for time %q (present, past or future)", time)
			}
		}

		// Header.
		fmt.Printf("%-26s  %-32s  %s\n", "ID", "Title", "Active affirmative")
		fmt.Println(strings.Repeat("─", 100))

		for _, t := range list {
			e, _ := t.Lookup(tenses.VoiceActive, tenses.FormAffirmative)
			fmt.Printf("%-26s  %-32s  %s\n", t.ID, t.Title, e.Structure)
		}

		fmt.Printf("\n%d tenses\n", len(list))
		return nil
	},
}

func printTense(t tenses.Template) {
	sep := strings.Repeat("─", 60)
	fmt.Println(t.Title)
	for _, v := range []tenses.Voice{tenses.VoiceActive, tenses.VoicePassive} {
		fmt.Println(sep)
		fmt.Printf("%s voice\n", strings.ToUpper(string(v[:1]))+string(v[1:]))
		fmt.Println(sep)
		for _, e := range t.Entries(v) {
			fmt.Printf("%-14s %s\n", e.Form, e.Structure)
			fmt.Printf("%-14s %s\n", "", e.Example)
		}
	}
}

func init() {
	tensesCmd.Flags().String("time", "", "Filter by time (present, past or future)")
}
