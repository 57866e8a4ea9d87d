package ui

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/dsv/pkg/config"
	"github.com/vanderheijden86/dsv/pkg/watcher"
)

// WorkerState represents the current state of the config worker.
type WorkerState int

const (
	// WorkerIdle means the worker is waiting for file changes.
	WorkerIdle WorkerState = iota
	// WorkerProcessing means the worker is reloading the file.
	WorkerProcessing
	// WorkerStopped means the worker has been stopped.
	WorkerStopped
)

func (s WorkerState) String() string {
	switch s {
	case WorkerIdle:
		return "idle"
	case WorkerProcessing:
		return "processing"
	case WorkerStopped:
		return "stopped"
	}
	return fmt.Sprintf("WorkerState(%d)", int(s))
}

// WorkerError wraps errors with phase and retry context.
type WorkerError struct {
	Phase   string    // "read", "parse"
	Cause   error     // The underlying error
	Time    time.Time // When the error occurred
	Retries int       // Consecutive failures including this one
}

func (e WorkerError) Error() string {
	return fmt.Sprintf("%s failed: %v (retries: %d)", e.Phase, e.Cause, e.Retries)
}

func (e WorkerError) Unwrap() error {
	return e.Cause
}

// Sender delivers messages to the running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// ConfigReloadedMsg carries a configuration that changed on disk.
type ConfigReloadedMsg struct {
	Config config.Config
	Path   string
}

// ConfigErrorMsg reports a config file that could not be used. The previous
// configuration stays in effect.
type ConfigErrorMsg struct {
	Err *WorkerError
}

// ConfigWorker watches the config file and reloads it off the UI thread.
type ConfigWorker struct {
	path          string
	debounceDelay time.Duration

	mu         sync.RWMutex
	state      WorkerState
	dirty      bool // A change came in while processing
	started    bool
	lastHash   string
	current    *config.Config
	lastError  *WorkerError
	errorCount int

	watcher *watcher.Watcher
	sender  Sender

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// WorkerConfig configures the ConfigWorker.
type WorkerConfig struct {
	Path          string
	DebounceDelay time.Duration
	Sender        Sender
	ForcePoll     bool
}

// NewConfigWorker creates a worker. An empty path yields a worker that
// never reloads.
func NewConfigWorker(cfg WorkerConfig) (*ConfigWorker, error) {
	ctx, cancel := context.WithCancel(context.Background())

	if cfg.DebounceDelay == 0 {
		cfg.DebounceDelay = 200 * time.Millisecond
	}

	w := &ConfigWorker{
		path:          cfg.Path,
		debounceDelay: cfg.DebounceDelay,
		sender:        cfg.Sender,
		state:         WorkerIdle,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
	}

	if cfg.Path != "" {
		fw, err := watcher.New(cfg.Path,
			watcher.WithDebounceDuration(cfg.DebounceDelay),
			watcher.WithForcePoll(cfg.ForcePoll),
			watcher.WithOnError(func(err error) {
				log.Printf("warning: config watcher: %v", err)
			}),
		)
		if err != nil {
			cancel()
			return nil, err
		}
		w.watcher = fw
		// Seed the hash so the first change event is compared against what
		// the program started with.
		if data, err := os.ReadFile(cfg.Path); err == nil {
			w.lastHash = contentHash(data)
		}
	}

	return w, nil
}

// Start begins watching. Start is idempotent.
func (w *ConfigWorker) Start() error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	w.mu.Unlock()

	if w.watcher != nil {
		if err := w.watcher.Start(); err != nil {
			return err
		}
		go w.processLoop()
	} else {
		close(w.done)
	}
	return nil
}

// Stop halts the worker. Stop is idempotent.
func (w *ConfigWorker) Stop() {
	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	w.state = WorkerStopped
	wasStarted := w.started
	w.mu.Unlock()

	w.cancel()
	if w.watcher != nil {
		w.watcher.Stop()
	}

	if wasStarted {
		select {
		case <-w.done:
		case <-time.After(2 * time.Second):
		}
	}
}

// TriggerReload reloads the file now. No effect once stopped.
func (w *ConfigWorker) TriggerReload() {
	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	if w.state == WorkerProcessing {
		w.dirty = true
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()
	go w.process()
}

// State returns the current worker state.
func (w *ConfigWorker) State() WorkerState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Current returns the last configuration loaded by the worker, or nil.
func (w *ConfigWorker) Current() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// LastError returns the most recent error (nil if the last reload succeeded).
func (w *ConfigWorker) LastError() *WorkerError {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastError
}

// LastHash returns the content hash of the last file seen.
func (w *ConfigWorker) LastHash() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastHash
}

func (w *ConfigWorker) processLoop() {
	defer close(w.done)
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.watcher.Changed():
			w.process()
		}
	}
}

func (w *ConfigWorker) process() {
	w.mu.Lock()
	if w.state != WorkerIdle {
		if w.state == WorkerProcessing {
			w.dirty = true
		}
		w.mu.Unlock()
		return
	}
	w.state = WorkerProcessing
	w.dirty = false
	w.mu.Unlock()

	cfg := w.reload()

	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	if cfg != nil {
		w.current = cfg
	}
	wasDirty := w.dirty
	w.state = WorkerIdle
	w.mu.Unlock()

	if w.sender != nil && cfg != nil {
		w.sender.Send(ConfigReloadedMsg{Config: *cfg, Path: w.path})
	}
	if wasDirty {
		go w.process()
	}
}

// reload reads and validates the file. It returns nil when the content is
// unchanged or unusable.
func (w *ConfigWorker) reload() *config.Config {
	if w.path == "" {
		return nil
	}

	var data []byte
	if werr := w.safeCompute("read", func() error {
		var err error
		data, err = os.ReadFile(w.path)
		if os.IsNotExist(err) {
			// A deleted file means defaults, same as at startup.
			data, err = nil, nil
		}
		return err
	}); werr != nil {
		w.fail(werr)
		return nil
	}

	hash := contentHash(data)
	w.mu.RLock()
	lastHash := w.lastHash
	w.mu.RUnlock()
	if hash == lastHash && lastHash != "" {
		w.recordError(nil)
		return nil
	}

	var cfg config.Config
	if werr := w.safeCompute("parse", func() error {
		var err error
		cfg, err = config.LoadFrom(w.path)
		return err
	}); werr != nil {
		w.fail(werr)
		return nil
	}

	w.recordError(nil)
	w.mu.Lock()
	w.lastHash = hash
	w.mu.Unlock()
	log.Printf("config reloaded from %s (hash=%s)", w.path, hashPrefix(hash))
	return &cfg
}

func (w *ConfigWorker) fail(werr *WorkerError) {
	w.recordError(werr)
	log.Printf("warning: config reload: %v", werr)
	if w.sender != nil {
		w.sender.Send(ConfigErrorMsg{Err: werr})
	}
}

// safeCompute executes fn and recovers from any panics.
func (w *ConfigWorker) safeCompute(phase string, fn func() error) *WorkerError {
	var result *WorkerError
	func() {
		defer func() {
			if r := recover(); r != nil {
				result = &WorkerError{
					Phase: phase,
					Cause: fmt.Errorf("panic: %v\n%s", r, debug.Stack()),
					Time:  time.Now(),
				}
			}
		}()
		if err := fn(); err != nil {
			result = &WorkerError{
				Phase: phase,
				Cause: err,
				Time:  time.Now(),
			}
		}
	}()
	return result
}

// recordError tracks an error and updates the consecutive failure count.
func (w *ConfigWorker) recordError(err *WorkerError) {
	w.mu.Lock()
	w.lastError = err
	if err != nil {
		w.errorCount++
		err.Retries = w.errorCount
	} else {
		w.errorCount = 0
	}
	w.mu.Unlock()
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashPrefix returns up to 16 characters of hash for logging.
func hashPrefix(hash string) string {
	if len(hash) > 16 {
		return hash[:16]
	}
	return hash
}
