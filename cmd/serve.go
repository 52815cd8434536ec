package cmd

import (
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alphabetz/alphabetz/internal/gateway"
	"github.com/alphabetz/alphabetz/internal/llm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway (/generate and /convert)",
	Long: `Serve the question and conversion endpoints over HTTP.

The provider credential is read on every request, so the gateway starts
without one and answers 500 until it is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = fileConfig.ListenAddr()
		}

		opts := []gateway.Option{
			gateway.WithConfigLoader(func() llm.Config {
				cfg, _ := fileConfig.LLMConfig()
				return cfg
			}),
		}

		st, err := openStore(cmd)
		if err != nil {
			log.Printf("request logging disabled: %v", err)
		} else {
			defer st.Close()
			opts = append(opts, gateway.WithEvents(st.EventRepo()))
		}

		if _, ok := fileConfig.LLMConfig(); !ok {
			log.Printf("no LLM provider configured yet; requests will fail until a key is set")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return gateway.New(opts...).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default ALPHABETZ_ADDR or :3000)")
}
