package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"registrar/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the data directory and report changes",
	Long: `Watch the data directory for changes and print a catalog summary each
time the files are rewritten. Bursts of writes are debounced into a single
reload. Stop with Ctrl-C.

Examples:
  registrar watch
  registrar watch --data /path/to/.registrar`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		dir := dataDir()
		w, err := watcher.New(watcher.DefaultConfig(dir))
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer func() { _ = w.Stop() }()

		changes, err := w.Start()
		if err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}

		if err := printSummary(cmd); err != nil {
			return err
		}
		fmt.Printf("Watching %s (Ctrl-C to stop)\n", dir)

		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-changes:
				if !ok {
					return nil
				}
				if err := printSummary(cmd); err != nil {
					fmt.Println("reload failed:", err)
				}
			}
		}
	},
}

// printSummary reloads the registry from disk and prints current counts.
func printSummary(cmd *cobra.Command) error {
	reg, cleanup, err := openRegistry(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Printf("%d courses, %d students\n", len(reg.Courses()), len(reg.Students()))
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
