package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// Shell runs the menu loop over a Dispatcher.
type Shell struct {
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// New creates a Shell. A nil logger discards log output.
func New(d *Dispatcher, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Shell{dispatcher: d, logger: logger}
}

// Run prints the menu, reads a key per line from in and dispatches it until
// the exit key, end of input, or a storage error. Constraint, no-data and
// input errors are printed and the loop continues. Mutations are committed
// as soon as they succeed.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := printMenu(out); err != nil {
			return err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			fmt.Fprintln(out)
			return nil
		}

		key := strings.TrimSpace(scanner.Text())
		cmd, ok := ParseKey(key)
		if !ok {
			fmt.Fprintf(out, "Invalid choice %q.\n", key)
			continue
		}
		if cmd == CommandExit {
			return nil
		}

		s.logger.Debug("dispatching command", "command", cmd.String())
		err := s.dispatcher.Dispatch(ctx, cmd, out)
		switch {
		case err == nil:
		case errors.Is(err, types.ErrNoData):
			fmt.Fprintln(out, "No orders yet.")
		case errors.Is(err, types.ErrStorage), errors.Is(err, types.ErrStoreClosed):
			s.logger.Error("command failed", "command", cmd.String(), "error", err)
			return fmt.Errorf("%s: %w", cmd, err)
		default:
			s.logger.Warn("command rejected", "command", cmd.String(), "error", err)
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func printMenu(out io.Writer) error {
	var b strings.Builder
	b.WriteString("\n===== MENU =====\n")
	for _, c := range menuOrder {
		fmt.Fprintf(&b, "%s. %s\n", c.Key(), c.Label())
	}
	b.WriteString("Choose an action: ")
	_, err := io.WriteString(out, b.String())
	return err
}
