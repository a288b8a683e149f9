package rules

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arthur-debert/termlinks/pkg/config"
	"github.com/arthur-debert/termlinks/pkg/errors"
	"github.com/arthur-debert/termlinks/pkg/logging"
	"github.com/arthur-debert/termlinks/pkg/types"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// reloadDelay coalesces the bursts of events editors produce on save
const reloadDelay = 100 * time.Millisecond

// FileStore is a Store backed by the termlinks configuration file
type FileStore struct {
	path   string
	logger zerolog.Logger
	subs   *subscribers

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	last    []types.Rule
}

// NewFileStore creates a store reading rules from the config file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   filepath.Clean(path),
		logger: logging.GetLogger("rules.file").With().Str("path", path).Logger(),
		subs:   newSubscribers(),
	}
}

// Path returns the configuration file backing the store
func (s *FileStore) Path() string {
	return s.path
}

// LoadConfig reads the whole configuration file
func (s *FileStore) LoadConfig(ctx context.Context) (*config.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return config.Load(s.path)
}

// LoadRules reads the rules from the configuration file
func (s *FileStore) LoadRules(ctx context.Context) ([]types.Rule, error) {
	cfg, err := s.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	rules := cfg.Linker.EffectiveRules()
	s.logger.Debug().Int("rules", len(rules)).Msg("Loaded rules")
	return rules, nil
}

// SaveRules replaces the rules in the configuration file
func (s *FileStore) SaveRules(ctx context.Context, rules []types.Rule) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := config.WriteRules(s.path, rules); err != nil {
		return err
	}
	s.logger.Info().Int("rules", len(rules)).Msg("Saved rules")
	return nil
}

// OnRulesChanged implements Store. Notifications only arrive while Watch
// is running.
func (s *FileStore) OnRulesChanged(fn func()) func() {
	return s.subs.add(fn)
}

// Watch starts watching the configuration file until ctx is done or Close
// is called. The config directory is created if needed so that a file
// created later is seen too.
func (s *FileStore) Watch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrWatch, "failed to create %s", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrWatch, "failed to create watcher")
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return errors.Wrapf(err, errors.ErrWatch, "failed to watch %s", dir).WithDetail("path", dir)
	}

	if rules, err := s.LoadRules(ctx); err == nil {
		s.last = rules
	} else {
		s.logger.Warn().Err(err).Msg("Initial rule load failed")
	}

	s.watcher = watcher
	go s.run(ctx, watcher)

	s.logger.Debug().Str("dir", dir).Msg("Watching configuration")
	return nil
}

// Close stops watching. It is safe to call more than once.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

func (s *FileStore) run(ctx context.Context, watcher *fsnotify.Watcher) {
	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = s.Close()
			return
		case <-timer.C:
			s.reload(ctx)
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			s.logger.Trace().Str("op", event.Op.String()).Msg("Configuration event")
			timer.Reset(reloadDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn().Err(err).Msg("Watcher error")
		}
	}
}

// reload re-reads the rules and notifies subscribers when they changed.
// A file that fails to parse, such as one caught mid-write, is ignored
// until the next event.
func (s *FileStore) reload(ctx context.Context) {
	rules, err := s.LoadRules(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Ignoring unreadable configuration")
		return
	}

	s.mu.Lock()
	changed := !sameRules(s.last, rules)
	s.last = rules
	s.mu.Unlock()

	if changed {
		s.logger.Info().Int("rules", len(rules)).Msg("Rules changed")
		s.subs.notify()
	}
}
