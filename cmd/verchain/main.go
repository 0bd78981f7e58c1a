// cmd/verchain/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sghaida/verchain/chain"
	"github.com/sghaida/verchain/contract"
	"github.com/sghaida/verchain/internal/config"
	"github.com/sghaida/verchain/internal/httpapi"
	"github.com/sghaida/verchain/internal/logger"
)

// usageError marks errors caused by bad invocation (exit code 2).
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// serveFunc starts the HTTP server. Replaced in tests.
var serveFunc = func(ctx context.Context, srv *httpapi.Server) error {
	return srv.Run(ctx)
}

// run executes the CLI and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		var ue usageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var manifestPath string

	root := &cobra.Command{
		Use:           "verchain",
		Short:         "Inspect and serve an API version-compatibility ladder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})
	root.PersistentFlags().StringVar(&manifestPath, "manifest", os.Getenv("VERCHAIN_MANIFEST"),
		"path to a chain manifest (default: embedded v1 -> v2 -> v3 ladder)")

	load := func() (*chain.Chain, error) {
		return contract.Build(manifestPath)
	}

	root.AddCommand(
		newVersionsCmd(load),
		newResolveCmd(load),
		newCheckCmd(load),
		newServeCmd(&manifestPath),
	)
	return root
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

func newVersionsCmd(load func() (*chain.Chain, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List the ladder root first, with each version's own overrides",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range c.Versions() {
				pred, _ := c.Predecessor(v)
				ops, err := c.Overrides(v)
				if err != nil {
					return err
				}
				line := v.String()
				if pred == "" {
					line += " (root)"
				} else {
					line += " <- " + pred.String()
				}
				if len(ops) == 0 {
					line += "  [pass-through]"
				} else {
					line += "  overrides: " + strings.Join(ops, ", ")
				}
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newResolveCmd(load func() (*chain.Chain, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <version> <operation>",
		Short: "Show which version provides an operation",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := chain.ParseTag(args[0])
			if err != nil {
				return usageError{err: err}
			}
			c, err := load()
			if err != nil {
				return err
			}
			r, err := c.Trace(tag, args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s (path: %s)\n",
				r.Requested, r.Operation, r.Provider, joinTags(r.Path, " > "))
			return nil
		},
	}
}

func newCheckCmd(load func() (*chain.Chain, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the manifest and print every version's resolved contract",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range c.Versions() {
				resolved, err := c.Contract(v)
				if err != nil {
					return err
				}
				ops := make([]string, 0, len(resolved))
				for op := range resolved {
					ops = append(ops, op)
				}
				sort.Strings(ops)

				parts := make([]string, len(ops))
				for i, op := range ops {
					parts[i] = op + "=" + resolved[op].Provider.String()
				}
				_, _ = fmt.Fprintf(out, "%s: %s\n", v, strings.Join(parts, " "))
			}
			_, _ = fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

func newServeCmd(manifestPath *string) *cobra.Command {
	var (
		addr           string
		defaultVersion string
		logMode        string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the versioned HTTP API",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("default-version") {
				cfg.DefaultVersion = defaultVersion
			}
			if cmd.Flags().Changed("log-mode") {
				cfg.LogMode = logMode
			}
			cfg.ManifestPath = *manifestPath

			log, err := logger.New(cfg.LogMode)
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer log.Sync()

			c, err := contract.Build(cfg.ManifestPath)
			if err != nil {
				return err
			}
			log.Info("version chain loaded",
				"versions", joinTags(c.Versions(), ","),
				"manifest", cfg.ManifestPath,
				"env", cfg.Env,
			)

			srv, err := httpapi.NewServer(cfg.Addr, cfg.ShutdownTimeout(), httpapi.RouterConfig{
				Chain:          c,
				Logger:         log,
				AllowedOrigins: cfg.AllowedOrigins,
				DefaultVersion: cfg.DefaultVersion,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serveFunc(ctx, srv)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides VERCHAIN_ADDR)")
	cmd.Flags().StringVar(&defaultVersion, "default-version", "", "version for requests without one (default: latest)")
	cmd.Flags().StringVar(&logMode, "log-mode", "dev", "dev or prod (overrides VERCHAIN_LOG_MODE)")
	return cmd
}

func joinTags(tags []chain.Tag, sep string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}
