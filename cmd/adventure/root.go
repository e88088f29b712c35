package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"adventure/internal/config"
	"adventure/internal/logger"
	"adventure/internal/repl"
	"adventure/internal/tui"

	"github.com/spf13/cobra"
)

// rootOptions 汇总所有子命令共享的 flag。
type rootOptions struct {
	configPath string
	overrides  []string
	plain      bool

	cfg     config.Config
	logFile io.Closer
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "adventure",
		Short:         "A tiny text adventure",
		Long:          `Type commands and watch the story unfold in a terminal, a plain line stream, or a browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.plain {
				return runPlain(cmd, opts)
			}
			_, err := tui.Run(tui.Options{
				CopyableOutput: opts.cfg.TUI.CopyableOutput,
				Logger:         logger.Named("tui"),
			})
			if err != nil {
				return reportErr(cmd, fmt.Errorf("tui: %w", err))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.adventure/config.toml)")
	cmd.PersistentFlags().StringArrayVarP(&opts.overrides, "set", "c", nil, "Override config value key=value (repeatable)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Read commands line by line from stdin instead of the full-screen UI")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newHelperCmd(opts))
	return cmd, opts
}

// execute runs cmd and always releases what setup opened, including on
// error paths where cobra skips post-run hooks.
func execute(cmd *cobra.Command, opts *rootOptions) error {
	defer opts.teardown()
	return cmd.Execute()
}

// setup 加载配置并把日志重定向到文件。
func (o *rootOptions) setup() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	o.cfg = config.ApplyKVOverrides(cfg, o.overrides)

	logger.Configure()
	if err := logger.SetLevel(o.cfg.Log.Level); err != nil {
		return fmt.Errorf("log level %q: %w", o.cfg.Log.Level, err)
	}
	logFile, _, err := logger.SetupFile(o.cfg.Log.Path)
	if err != nil {
		// 终端仍可用，仅记录到 stderr。
		logger.Warnf("failed to initialize log file: %v", err)
		return nil
	}
	o.logFile = logFile
	return nil
}

func (o *rootOptions) teardown() {
	if o.logFile != nil {
		_ = o.logFile.Close()
		o.logFile = nil
	}
}

func runPlain(cmd *cobra.Command, opts *rootOptions) error {
	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()
	_, err := repl.Run(ctx, repl.Options{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Prompt: plainPrompt(cmd),
		Logger: logger.Named("repl"),
	})
	if err != nil && ctx.Err() == nil {
		return reportErr(cmd, fmt.Errorf("line mode: %w", err))
	}
	return nil
}

// plainPrompt is only shown when stdin is a terminal; piped input gets a
// clean transcript.
func plainPrompt(cmd *cobra.Command) string {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return ""
	}
	info, err := f.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return ""
	}
	return "> "
}

func reportErr(cmd *cobra.Command, err error) error {
	logger.Entry().WithError(err).Error("command failed")
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	return err
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
