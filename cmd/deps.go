package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alphabetz/alphabetz/internal/client"
	"github.com/alphabetz/alphabetz/internal/converter"
	"github.com/alphabetz/alphabetz/internal/convertgen"
	"github.com/alphabetz/alphabetz/internal/llm"
	"github.com/alphabetz/alphabetz/internal/questiongen"
	"github.com/alphabetz/alphabetz/internal/store"
)

// backends are the question generator and sentence converter used by the
// TUI and the one-shot commands. Both are nil when nothing is configured.
type backends struct {
	Generator questiongen.Generator
	Converter convertgen.Converter
	// Status describes where requests go, e.g. "gemini · gemini-2.5-flash".
	Status string
}

func (b backends) ready() bool { return b.Generator != nil }

// buildBackends uses --gateway (or the configured gateway URL) when set,
// otherwise an in-process provider. events may be nil.
func buildBackends(ctx context.Context, cmd *cobra.Command, events store.EventRepo) (backends, error) {
	gatewayURL, _ := cmd.Flags().GetString("gateway")
	if gatewayURL == "" {
		gatewayURL = fileConfig.GatewayURL()
	}
	if gatewayURL != "" {
		c := client.New(gatewayURL, nil)
		return backends{
			Generator: c,
			Converter: converter.WithRetry(c),
			Status:    "gateway · " + gatewayURL,
		}, nil
	}

	cfg, ok := fileConfig.LLMConfig()
	if !ok {
		return backends{}, cfg.Validate()
	}

	var recorder llm.EventRecorder
	if events != nil {
		recorder = events
	}
	provider, err := llm.NewProvider(ctx, cfg, recorder)
	if err != nil {
		return backends{}, err
	}
	conversion, err := llm.NewProvider(ctx, cfg.SingleAttempt(), recorder)
	if err != nil {
		return backends{}, err
	}
	return backends{
		Generator: questiongen.New(provider, questiongen.DefaultConfig()),
		Converter: converter.WithRetry(convertgen.New(conversion)),
		Status:    cfg.Provider + " · " + provider.ModelID(),
	}, nil
}

// warnNoProvider explains how to enable the AI features.
func warnNoProvider(err error) {
	fmt.Fprintln(os.Stderr, "warning: LLM provider not configured:", err)
	fmt.Fprintln(os.Stderr, "warning: practice uses offline questions and the converter is unavailable.")
}

// optionalEvents opens the store when possible. History and request logging
// are optional, so a failure is only a warning.
func optionalEvents(cmd *cobra.Command) (store.EventRepo, func()) {
	st, err := openStore(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return nil, func() {}
	}
	return st.EventRepo(), func() { st.Close() }
}
