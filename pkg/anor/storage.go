package anor

import (
	"os"
	"time"

	"github.com/anor-db/anor/internal/logger"
	"github.com/anor-db/anor/pkg/anor/metrics"
	"github.com/anor-db/anor/pkg/config"
)

// Logger is the logging capability the engine calls into. It is injected
// via WithLogger so the core never reaches into a process-global logger;
// defaultLogger adapts the package-level internal/logger functions for
// callers that don't supply one.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type defaultLogger struct{}

func (defaultLogger) Debug(msg string, args ...any) { logger.Debug(msg, args...) }
func (defaultLogger) Info(msg string, args ...any)  { logger.Info(msg, args...) }
func (defaultLogger) Warn(msg string, args ...any)  { logger.Warn(msg, args...) }
func (defaultLogger) Error(msg string, args ...any) { logger.Error(msg, args...) }

// Storage is the public storage facade: an embeddable, thread-safe
// key->object store backed by a data directory.
type Storage struct {
	dataDir   string
	codecType CodecType
	lockWait  time.Duration

	items map[string]*Item
	conc  concurrency

	instLock *instanceLock

	logger  Logger
	metrics metrics.Recorder
}

// StorageOption configures optional capabilities on Open/OpenWithConfig.
type StorageOption func(*Storage)

// WithLogger injects a logging capability. Without this option the
// engine logs through the package-level internal/logger.
func WithLogger(l Logger) StorageOption {
	return func(s *Storage) { s.logger = l }
}

// WithMetrics injects a metrics recording capability. Without this
// option the engine records no metrics (metrics.NoopRecorder).
func WithMetrics(m metrics.Recorder) StorageOption {
	return func(s *Storage) { s.metrics = m }
}

// WithCodec selects the codec tag used for the manifest and every item
// written by this instance. Defaults to CodecBincode (tag 1, gob-backed).
func WithCodec(codecType CodecType) StorageOption {
	return func(s *Storage) { s.codecType = codecType }
}

// WithLockTimeout overrides the default 5000ms instance-lock acquisition
// timeout.
func WithLockTimeout(d time.Duration) StorageOption {
	return func(s *Storage) { s.lockWait = d }
}

func (s *Storage) log() Logger {
	if s.logger != nil {
		return s.logger
	}
	return defaultLogger{}
}

func (s *Storage) rec() metrics.Recorder {
	if s.metrics != nil {
		return s.metrics
	}
	return metrics.NoopRecorder{}
}

// Open creates the data directory if needed, acquires the instance lock,
// loads persisted state, and returns a ready engine. It is the caller's
// responsibility to Close the returned Storage.
func Open(dataDir string, opts ...StorageOption) (*Storage, error) {
	start := time.Now()
	s := &Storage{
		dataDir:   dataDir,
		codecType: CodecBincode,
		items:     make(map[string]*Item),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		err = newStoreError(ErrIO, dataDir, "could not create data directory: %v", err)
		s.log().Error("open failed", "path", dataDir, "error", err)
		return nil, err
	}

	lock, err := acquireInstanceLock(dataDir, s.lockWait)
	if err != nil {
		s.log().Error("open failed to acquire instance lock", "path", dataDir, "error", err)
		return nil, err
	}
	s.instLock = lock

	if err := s.Load(); err != nil {
		_ = s.instLock.release()
		s.log().Error("open failed to load storage", "path", dataDir, "error", err)
		return nil, err
	}

	s.rec().ObserveOpen(time.Since(start))
	s.log().Info("storage opened", "path", dataDir)
	return s, nil
}

// OpenWithConfig opens an engine using cfg.Storage.DataPath and
// cfg.Storage.LockTimeout. If cfg.Storage.DataPath is empty, ErrConfigMissing
// is returned, matching spec.md §7's ConfigMissing error kind.
func OpenWithConfig(cfg *config.Config, opts ...StorageOption) (*Storage, error) {
	if cfg == nil || cfg.Storage.DataPath == "" {
		return nil, newStoreError(ErrConfigMissing, "", "storage.data_path is required")
	}
	allOpts := append([]StorageOption{WithLockTimeout(cfg.Storage.LockTimeout)}, opts...)
	return Open(cfg.Storage.DataPath, allOpts...)
}

// Close flushes the engine and releases the instance lock. It is safe to
// call once; calling it again is a no-op beyond whatever the second flush
// attempt yields.
func (s *Storage) Close() error {
	start := time.Now()
	flushErr := s.Flush()
	if flushErr != nil {
		s.log().Error("close: flush failed", "error", flushErr)
	}
	unlockErr := s.instLock.release()
	if unlockErr != nil {
		s.log().Error("close: instance unlock failed", "error", unlockErr)
	}
	s.instLock = nil
	s.rec().ObserveClose(time.Since(start))
	if flushErr != nil {
		return flushErr
	}
	return unlockErr
}

// GlobalLock acquires exclusive, multi-step access to the engine for the
// calling goroutine. Release it by calling Unlock (typically via defer).
// While held, every lock()-scoped operation issued by any other goroutine
// blocks until release. The holder itself must not call the Storage
// facade methods (Insert, Get, ...) while holding the lock, since those
// always acquire as an unheld caller and would deadlock against the lock
// already held; use the equivalent method on the returned *GlobalLock
// instead (GlobalLock.Insert, GlobalLock.Get, ...).
func (s *Storage) GlobalLock() *GlobalLock {
	return acquireGlobalLock(s)
}

// ---- locked helpers: operate under an already-held map_mutex/global
// lock, accepting the calling holder's token (0 for ordinary, unheld
// callers) so reentrant internal calls from Load/Flush do not deadlock.

func (s *Storage) insertLocked(item *Item, holder lockToken) {
	unlock := s.conc.lock(holder)
	defer unlock()
	s.items[item.Key] = item
}

func (s *Storage) getLocked(key string, holder lockToken) (*Item, bool) {
	unlock := s.conc.lock(holder)
	defer unlock()
	item, ok := s.items[key]
	if !ok {
		return nil, false
	}
	return item.Clone(), true
}

func (s *Storage) removeLocked(key string, holder lockToken) {
	unlock := s.conc.lock(holder)
	defer unlock()
	delete(s.items, key)
}

func (s *Storage) clearLocked(holder lockToken) {
	unlock := s.conc.lock(holder)
	defer unlock()
	s.items = make(map[string]*Item)
}

func (s *Storage) keysLocked(holder lockToken) []string {
	unlock := s.conc.lock(holder)
	defer unlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	return keys
}

// ---- public facade: ordinary callers, holder token 0.

// Insert stores item under item.Key, overwriting any existing item at
// that key.
func (s *Storage) Insert(item *Item) {
	s.insertLocked(item, 0)
	s.rec().ObserveOp("insert")
}

// Update is identical to Insert; it exists as a distinct name to mirror
// the intent at call sites ("I expect this key to already exist").
func (s *Storage) Update(item *Item) {
	s.Insert(item)
}

// Get returns a snapshot clone of the item stored under key, if any.
func (s *Storage) Get(key string) (*Item, bool) {
	item, ok := s.getLocked(key, 0)
	s.rec().ObserveOp("get")
	return item, ok
}

// Remove deletes the item stored under key, if any.
func (s *Storage) Remove(key string) {
	s.removeLocked(key, 0)
	s.rec().ObserveOp("remove")
}

// Clear removes every item from the engine.
func (s *Storage) Clear() {
	s.clearLocked(0)
	s.rec().ObserveOp("clear")
}

// Keys returns the keys of every stored item. Order is unspecified.
func (s *Storage) Keys() []string {
	return s.keysLocked(0)
}

// GetInnerObject decodes the inner object of the item stored under key
// into out (a pointer), returning whether the key was found and decoding
// succeeded.
func (s *Storage) GetInnerObject(key string, out any) bool {
	item, ok := s.getLocked(key, 0)
	if !ok {
		return false
	}
	return GetObject(item, s.codecType, out)
}

// UpdateInnerObject re-encodes the inner object of the item stored under
// key to reflect value, returning whether the key was found and encoding
// succeeded. It does not bump the item's Version; see Item.BumpVersion.
func (s *Storage) UpdateInnerObject(key string, value any) bool {
	unlock := s.conc.lock(0)
	defer unlock()
	item, ok := s.items[key]
	if !ok {
		return false
	}
	return UpdateObject(item, value, s.codecType)
}
