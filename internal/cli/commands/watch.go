package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	_ "github.com/Jayk56/dslyrics/pkg/lint/rules" // register lint rules
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-analyze a lyric sheet on every save",
		Long: `Watch a lyric sheet and rerun the full analysis whenever it changes.

The sheet is analyzed once at startup and again after each save, with a
short debounce so editors that write in bursts trigger one pass.`,
		Example: `  dslyrics watch song.lyr`,
		Args:    cobra.ExactArgs(1),
		RunE:    runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger

	p, err := cmdCtx.newPipeline()
	if err != nil {
		return err
	}

	target, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyze := func() {
		r.Muted(fmt.Sprintf("--- %s", time.Now().Format("15:04:05")))
		content, err := os.ReadFile(target)
		if err != nil {
			r.StatusLine(args[0], "error", err.Error())
			return
		}
		rep, err := p.AnalyzeContext(ctx, args[0], string(content))
		if err != nil {
			r.StatusLine(args[0], "error", err.Error())
			return
		}
		renderReport(r, args[0], rep, false)
	}

	analyze()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory rather than the file itself: editors that
	// save through a rename replace the inode and silently end a watch
	// on the file.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}

	r.Muted(fmt.Sprintf("Watching %s (Ctrl-C to stop)", args[0]))

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				logger.Debug("sheet changed, re-analyzing", "file", event.Name)
				analyze()
			})

		case err := <-watcher.Errors:
			logger.Error("watcher error", "error", err)
		}
	}
}
