package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alphabetz/alphabetz/internal/app"
	"github.com/alphabetz/alphabetz/internal/screens/home"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	events, closeStore := optionalEvents(cmd)
	defer closeStore()

	b, err := buildBackends(ctx, cmd, events)
	if err != nil {
		warnNoProvider(err)
	}

	skipSplash, _ := cmd.Flags().GetBool("no-splash")

	status := b.Status
	if status == "" {
		status = "offline"
	}
	return app.Run(app.Options{
		Home: home.Options{
			Generator: b.Generator,
			Converter: b.Converter,
			Events:    events,
			Defaults:  fileConfig.PracticeSettings(),
			LLMReady:  b.ready(),
		},
		Status:     status,
		SkipSplash: skipSplash,
	})
}
