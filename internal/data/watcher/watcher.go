package watcher

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/penwyp/go-horti/internal/core/model"
	"github.com/penwyp/go-horti/internal/util"
)

// FileWatcher reports changes to plant data, visitor logs and art assets
// below a set of root directories.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	paths   []string
	match   func(path string) bool
	events  chan model.FileEvent
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewFileWatcher watches every directory below paths. Roots that do not
// exist are skipped. Only changes to paths accepted by match are reported,
// except for new directories; a nil match accepts everything.
func NewFileWatcher(paths []string, match func(path string) bool) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		paths:   paths,
		match:   match,
		events:  make(chan model.FileEvent, 100),
		done:    make(chan struct{}),
	}

	for _, path := range paths {
		if err := fw.addPath(path); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	fw.wg.Add(1)
	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) addPath(path string) error {
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return fw.watcher.Add(p)
		}
		return nil
	})
}

func (fw *FileWatcher) relevant(name string) bool {
	return fw.match == nil || fw.match(name)
}

func (fw *FileWatcher) processEvents() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.done:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			// new user or .botany directories need watching too
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.addPath(event.Name); err != nil {
						util.LogWarnf("Failed to watch new directory %s: %v", event.Name, err)
					}
					fw.emit(model.FileEvent{Path: event.Name, Operation: event.Op.String()})
					continue
				}
			}

			if fw.relevant(event.Name) {
				fw.emit(model.FileEvent{Path: event.Name, Operation: event.Op.String()})
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

func (fw *FileWatcher) emit(ev model.FileEvent) {
	select {
	case fw.events <- ev:
	case <-fw.done:
	}
}

func (fw *FileWatcher) Events() <-chan model.FileEvent {
	return fw.events
}

// Close stops watching and waits for the event goroutine to exit.
func (fw *FileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)
		err = fw.watcher.Close()
		fw.wg.Wait()
	})
	return err
}
