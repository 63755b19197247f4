package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storeroom/internal/export"
	"github.com/mesh-intelligence/storeroom/internal/metrics"
	"github.com/mesh-intelligence/storeroom/internal/store"
	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// openStore opens the configured store. The caller must Close it. Config
// validation failures are user errors; everything else is a system error.
func (a *app) openStore(ctx context.Context, rec *metrics.Recorder) (*store.Store, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, sysError("configure store", err)
	}
	a.logger.Debug("opening store", "driver", cfg.Driver, "path", cfg.Path)

	opts := []store.Option{store.WithLogger(a.logger)}
	if rec != nil {
		opts = append(opts, store.WithMetrics(rec))
	}
	s, err := store.Open(ctx, cfg, opts...)
	if err != nil {
		if errors.Is(err, types.ErrStorage) {
			return nil, sysError("open store", err)
		}
		return nil, userError("open store", err)
	}
	return s, nil
}

// withStore opens the store, runs fn and closes the store.
func (a *app) withStore(cmd *cobra.Command, fn func(s *store.Store) error) error {
	s, err := a.openStore(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// render writes v as JSON in --json mode and the tables as text otherwise.
func (a *app) render(out io.Writer, v any, tables ...export.Table) error {
	if a.flags.jsonMode {
		return export.WriteJSON(out, v)
	}
	return export.WriteText(out, tables...)
}

// scalar writes a single report value: {"key": v} in --json mode and
// "label: text" otherwise.
func (a *app) scalar(out io.Writer, key, label, text string, v any) error {
	if a.flags.jsonMode {
		return export.WriteJSON(out, map[string]any{key: v})
	}
	_, err := fmt.Fprintf(out, "%s: %s\n", label, text)
	return err
}
