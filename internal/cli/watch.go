package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/doctest/internal/config"
	"github.com/mvp-joe/doctest/internal/pipeline"
	"github.com/mvp-joe/doctest/internal/watcher"
)

// watchCmd rebuilds the generated test file whenever documentation sources
// change.
var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Watch documentation sources and regenerate on change",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		return runWatch(cmd.Context(), root)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(ctx context.Context, root string) error {
	cfg, err := config.Load(root, cfgFile)
	if err != nil {
		return err
	}
	applyBuildFlags(cfg)

	opts, err := pipelineOptions(root, cfg)
	if err != nil {
		return err
	}
	// Unchanged files skip re-extraction across rebuilds.
	opts.Cache, err = pipeline.NewExtractionCache(4096)
	if err != nil {
		return err
	}

	rebuild := func(ctx context.Context) {
		result, err := pipeline.Run(ctx, opts)
		if err != nil {
			log.Printf("Build failed: %v", err)
			return
		}
		if err := writeOutputs(cfg, result); err != nil {
			log.Printf("Writing output failed: %v", err)
			return
		}
		log.Printf("Wrote %s (%d examples)", cfg.Output.File, len(result.Examples))
	}

	rebuild(ctx)

	// The generated file and its map usually land inside the watched root;
	// without ignoring them, every rebuild's write would trigger the next.
	var ignore []string
	if cfg.Output.File != "-" {
		ignore = []string{cfg.Output.File, cfg.Output.File + ".map"}
	}

	w, err := watcher.New(root, ignore, func(ctx context.Context, changed []string) {
		rebuild(ctx)
	})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Stop()
	w.Start(ctx)

	fmt.Fprintf(os.Stderr, "Watching %s for changes (Ctrl-C to stop)\n", root)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-ctx.Done():
	case <-sigCh:
	}
	return nil
}
