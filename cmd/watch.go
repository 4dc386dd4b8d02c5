package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yates-Labs/clog/internal/repo"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [repository]",
	Short: "Record every new commit as it appears",
	Long: `Watch a repository and record a changelog entry for each new commit.

The watcher polls the HEAD hash and fires only when the hash changes, so a
clean working tree alone never triggers an entry. Stop with Ctrl-C.

Examples:
  clog watch
  clog watch /path/to/repo --interval 5s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 10*time.Second, "Polling interval")
}

func runWatch(cmd *cobra.Command, args []string) error {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	r, err := repo.Open(repoPath)
	if err != nil {
		return err
	}

	// Fail on a broken setup before entering the loop.
	if _, err := buildPipeline(repoPath); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start from the current HEAD so only commits made while watching are
	// recorded.
	lastHash := ""
	if meta, err := r.Head(); err == nil {
		lastHash = meta.Hash
	}

	fmt.Printf("Watching %s every %s (Ctrl-C to stop)\n", repoPath, watchInterval)

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopped watching")
			return nil
		case <-ticker.C:
			meta, err := r.Head()
			if err != nil {
				logger.Warn("failed to read HEAD", slog.Any("err", err))
				continue
			}
			if meta.Hash == lastHash {
				continue
			}
			lastHash = meta.Hash

			// Reload ignore rules so .clogignore edits made between
			// commits apply to the next entry.
			ruleCache.Invalidate(repoPath)
			p, err := buildPipeline(repoPath)
			if err != nil {
				logger.Error("failed to rebuild pipeline", slog.Any("err", err))
				continue
			}

			result, err := p.Run(ctx, meta.Hash)
			if err != nil {
				logger.Error("failed to record commit",
					slog.String("commit", meta.Hash),
					slog.Any("err", err))
				continue
			}
			printResult(result)
		}
	}
}
