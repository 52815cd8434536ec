package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alphabetz/alphabetz/internal/llm"
	"github.com/alphabetz/alphabetz/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged question-batch and sentence-conversion calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failedOnly {
			events = failedEvents(events)
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No model calls recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-19s  %-24s  %6s  %6s  %7s  %s\n",
			"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "")
		rule(out, 100)
		for _, e := range events {
			printEventRow(out, e)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and raw response of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(e)
		}
		printEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Token usage, failures and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No model calls recorded.")
			return nil
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		out := cmd.OutOrStdout()
		printPurposeUsage(out, byPurpose)
		fmt.Fprintln(out)
		printModelCost(out, byModel)
		return nil
	},
}

func failedEvents(events []store.LLMEventRecord) []store.LLMEventRecord {
	var out []store.LLMEventRecord
	for _, e := range events {
		if !e.Success {
			out = append(out, e)
		}
	}
	return out
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("─", n))
}

func printEventRow(w io.Writer, e store.LLMEventRecord) {
	mark := "✓"
	if !e.Success {
		mark = "✗ " + truncate(e.ErrorMessage, 40)
	}
	fmt.Fprintf(w, "%-5d  %-19s  %-19s  %-24s  %6d  %6d  %7d  %s\n",
		e.ID,
		e.Timestamp.Local().Format(timeLayout),
		e.Purpose,
		truncate(e.Model, 24),
		e.InputTokens,
		e.OutputTokens,
		e.LatencyMs,
		mark,
	)
}

func printEvent(w io.Writer, e *store.LLMEventRecord) {
	fields := [][2]string{
		{"ID", strconv.Itoa(e.ID)},
		{"Time", e.Timestamp.Local().Format(timeLayout)},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Purpose", e.Purpose},
		{"Request", e.RequestID},
		{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		{"Success", strconv.FormatBool(e.Success)},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", e.ErrorMessage})
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%-10s %s\n", f[0]+":", f[1])
	}

	for _, section := range []struct{ name, body string }{
		{"PROMPT", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		fmt.Fprintln(w)
		rule(w, 60)
		fmt.Fprintln(w, section.name)
		rule(w, 60)
		if section.body == "" {
			fmt.Fprintln(w, "(not captured)")
			continue
		}
		fmt.Fprintln(w, section.body)
	}
}

func printPurposeUsage(w io.Writer, usage []store.LLMUsage) {
	fmt.Fprintln(w, "Usage by purpose")
	rule(w, 80)
	fmt.Fprintf(w, "%-19s  %6s  %6s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Failed", "Input", "Output", "Avg Ms")
	rule(w, 80)

	var total store.LLMUsage
	for _, u := range usage {
		fmt.Fprintf(w, "%-19s  %6d  %6d  %10d  %10d  %8d\n",
			u.Purpose, u.Calls, u.Failures, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		total.Calls += u.Calls
		total.Failures += u.Failures
		total.InputTokens += u.InputTokens
		total.OutputTokens += u.OutputTokens
	}
	rule(w, 80)
	fmt.Fprintf(w, "%-19s  %6d  %6d  %10d  %10d\n",
		"TOTAL", total.Calls, total.Failures, total.InputTokens, total.OutputTokens)
}

func printModelCost(w io.Writer, usage []store.LLMUsage) {
	fmt.Fprintln(w, "Estimated cost (USD)")
	rule(w, 80)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	rule(w, 80)

	var sum float64
	var unpriced []string
	for _, u := range usage {
		cost := "?"
		if c := llm.LookupCost(u.Model); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			sum += usd
			cost = formatCost(usd)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
	}
	rule(w, 80)

	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(sum))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (question-batch or sentence-conversion)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed calls")
	llmViewCmd.Flags().Bool("json", false, "Print the event as JSON")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
