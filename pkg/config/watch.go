package config

import (
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file at path whenever it changes on disk and
// invokes onChange with the newly loaded Config. It is not used by the
// core engine, which reads configuration once at Open; it exists for
// long-running front-ends embedding the engine that want hot-reload.
//
// The returned stop function closes the underlying watcher. Errors
// occurring after the watcher starts (a bad reload, a removed file) are
// swallowed rather than propagated, since there is no synchronous caller
// left to report them to; onChange is called only after a successful
// reload.
func Watch(path string, onChange func(*Config)) (stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					continue
				}
				onChange(cfg)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher.Close, nil
}
