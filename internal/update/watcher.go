package update

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// Sender is the part of *tea.Program the watcher needs.
type Sender interface {
	Send(msg tea.Msg)
}

// StartWatcher watches the directory holding the state file and sends
// FileChangedMsg after writes to it settle. Files sharing the state file's
// name prefix count too, so SQLite journals trigger a reload.
func StartWatcher(statePath string, program Sender, logger *log.Logger) (func(), error) {
	if logger == nil {
		logger = log.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(statePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go watchLoop(watcher.Events, watcher.Errors, done, filepath.Base(statePath), program, logger)

	cleanup := func() {
		close(done)
		watcher.Close()
	}
	return cleanup, nil
}

func watchLoop(events <-chan fsnotify.Event, errs <-chan error, done <-chan struct{}, base string, program Sender, logger *log.Logger) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				program.Send(FileChangedMsg{})
			})

		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Printf("watcher: %v", err)

		case <-done:
			return
		}
	}
}
