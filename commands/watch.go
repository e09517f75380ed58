package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/penwyp/go-eld-log/internal/data/watcher"
	"github.com/penwyp/go-eld-log/internal/util"
	"github.com/penwyp/go-eld-log/internal/viewer"
	"github.com/spf13/cobra"
)

const clearScreen = "\033[H\033[2J"

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Redraw a log file in the terminal whenever it changes",
	Long: `Draws the daily logs in FILE as text and redraws them each time the file is
written. Logs whose content did not change are served from the render cache.
Press Ctrl-C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer util.CloseLogger()

	v, err := viewer.New(cfg)
	if err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(cfg.Files)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.Files[0], err)
	}
	defer fw.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return watchLoop(ctx, v, cmd.OutOrStdout(), fw.Events(), cfg.Files[0])
}

// watchLoop draws once and then again for every event that changed the file.
// It returns when ctx is done or events is closed.
func watchLoop(ctx context.Context, v *viewer.Viewer, w io.Writer, events <-chan watcher.Event, path string) error {
	clearFirst := isTerminal(w)
	last, _ := util.GetFileInfo(path)
	redraw(v, w, clearFirst)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			info, err := util.GetFileInfo(event.Path)
			if err != nil {
				util.LogDebugf("Skip event for unreadable file: %s - %v", event.Path, err)
				continue
			}
			if last != nil && last.Same(info) {
				continue
			}
			last = info
			util.LogDebugf("File changed: %s (%s)", event.Path, event.Operation)
			redraw(v, w, clearFirst)
		}
	}
}

func redraw(v *viewer.Viewer, w io.Writer, clearFirst bool) {
	if clearFirst {
		fmt.Fprint(w, clearScreen)
	}
	if err := v.Run(w); err != nil {
		util.LogWarnf("Failed to render: %v", err)
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	hits, misses := v.CacheStats()
	util.LogDebugf("Render cache: %d hits, %d misses", hits, misses)
}
