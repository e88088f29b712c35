package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"adventure/internal/helper"
	"adventure/internal/logger"

	"github.com/spf13/cobra"
)

func newHelperCmd(opts *rootOptions) *cobra.Command {
	var provider, model, baseURL string
	cmd := &cobra.Command{
		Use:   "helper",
		Short: "Ask an AI provider questions, one line at a time",
		Long: `Sends each line to an OpenAI-compatible chat endpoint and prints the reply.
Known providers: ` + strings.Join(helper.ProviderNames(), ", ") + `. Type 'exit' to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hc := opts.cfg.Helper
			if cmd.Flags().Changed("provider") {
				hc.Provider = provider
			}
			if cmd.Flags().Changed("model") {
				hc.Model = model
			}
			if cmd.Flags().Changed("base-url") {
				hc.BaseURL = baseURL
			}
			clientOpts, err := helper.Resolve(hc.Provider, hc.Model, hc.BaseURL, os.Getenv)
			if err != nil {
				return reportErr(cmd, err)
			}
			client, err := helper.NewClient(clientOpts)
			if err != nil {
				return reportErr(cmd, err)
			}

			ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err = helper.Run(ctx, helper.Options{
				In:       cmd.InOrStdin(),
				Out:      cmd.OutOrStdout(),
				Provider: client,
				Prompt:   plainPrompt(cmd),
				Logger:   logger.Named("helper").WithField("provider", clientOpts.Name),
			})
			if err != nil {
				return reportErr(cmd, fmt.Errorf("helper: %w", err))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "", "AI provider (overrides helper.provider)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (overrides helper.model)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "API endpoint (overrides helper.base_url)")
	return cmd
}
