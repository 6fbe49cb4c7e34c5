package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/somersault/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Re-score sheets in a directory as they change",
	Long: `Scores every routine and judge sheet in DIR, then re-scores each sheet
whenever it is written, until interrupted. Changes are debounced
(debounce, default 200ms). Scores are recorded when a history store is
configured.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	w, err := watch.NewWatcher(args[0], s.cfg.Debounce)
	if err != nil {
		return err
	}
	em, err := s.emitter()
	if err != nil {
		return err
	}
	defer em.Close()

	runner := &watch.Runner{
		Watcher:  w,
		Reporter: s.printer,
		Emitter:  em,
		Logger:   s.logger,
	}
	db, err := s.openStore(cmd.Context())
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		runner.Recorder = db
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			s.printer.Info("\nshutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runner.Run(ctx)
}
