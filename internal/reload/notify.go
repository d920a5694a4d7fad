// Package reload signals option reload requests, either from SIGUSR2 or
// from config file modifications.
package reload

import (
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Notifier implements reload request notification.
type Notifier struct {
	log     *zap.Logger
	C       chan struct{}
	watcher *fsnotify.Watcher
}

// Notify about options reload request.
func (n *Notifier) Notify() {
	n.log.Info("notify")
	n.C <- struct{}{}
}

// WatchFile starts signalling on modifications of path, typically the
// config file in use.
func (n *Notifier) WatchFile(path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to init watcher")
	}
	if err = w.Add(path); err != nil {
		_ = w.Close()
		return errors.Wrapf(err, "failed to watch %s", path)
	}
	n.watcher = w
	go func() {
		for {
			select {
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				n.log.Info("config file changed", zap.String("path", e.Name))
				n.C <- struct{}{}
			case watchErr, ok := <-w.Errors:
				if !ok {
					return
				}
				n.log.Warn("watch failed", zap.Error(watchErr))
			}
		}
	}()
	return nil
}

// Close stops file watching, if any. Signal subscription stays active.
func (n *Notifier) Close() error {
	if n.watcher == nil {
		return nil
	}
	return n.watcher.Close()
}

// NewNotifier initializes and returns new notifier.
func NewNotifier(l *zap.Logger) *Notifier {
	n := &Notifier{log: l, C: make(chan struct{}, 1)}
	n.subscribe()
	return n
}
