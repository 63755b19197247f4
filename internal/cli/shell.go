package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storeroom/internal/metrics"
	"github.com/mesh-intelligence/storeroom/internal/shell"
	"github.com/mesh-intelligence/storeroom/internal/store"
)

type shellOptions struct {
	noSeed      bool
	metricsAddr string
	category    string
	factor      float64
}

func newShellCmd(a *app) *cobra.Command {
	opts := &shellOptions{}

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive menu",
		Long: `Shell reseeds the store with the fixed products and customers, then shows
a numbered menu for adding the sample orders, running each report and
raising prices. Every change is committed as soon as it succeeds.

With --metrics-addr, operation counters are also served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("metrics-addr") {
				opts.metricsAddr = a.cfg.GetString(cfgKeyMetricsAddr)
			}
			return runShell(cmd, a, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noSeed, "no-seed", false, "keep existing data instead of reseeding")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().StringVar(&opts.category, "category", shell.DefaultPriceCategory, "category for the price increase entry")
	cmd.Flags().Float64Var(&opts.factor, "factor", shell.DefaultPriceFactor, "factor for the price increase entry")

	return cmd
}

func runShell(cmd *cobra.Command, a *app, opts *shellOptions) error {
	ctx := cmd.Context()
	rec := metrics.NewRecorder()

	s, err := a.openStore(ctx, rec)
	if err != nil {
		return err
	}
	defer s.Close()

	if !opts.noSeed {
		if err := s.ResetAndSeed(ctx); err != nil {
			return err
		}
	}

	if opts.metricsAddr != "" {
		stop, err := serveMetrics(a, opts.metricsAddr, rec)
		if err != nil {
			return sysError("metrics listener", err)
		}
		defer stop()
	}

	d := shell.NewDispatcher(s,
		shell.WithOrders(store.SampleOrders()),
		shell.WithPriceIncrease(opts.category, opts.factor),
		shell.WithStats(rec),
	)
	return shell.New(d, a.logger).Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}

// serveMetrics starts an HTTP server for rec on addr and returns a function
// that shuts it down.
func serveMetrics(a *app, addr string, rec *metrics.Recorder) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", "error", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
