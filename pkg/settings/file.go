package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
)

// DefaultPollInterval is how often a watched FileStore checks for external edits.
const DefaultPollInterval = time.Second

// document is the on-disk layout of a settings file:
//
//	[theme]
//	columns = 3
//	cell_gap = 4.0
//
//	[settings]
//	quick_tiles_per_row = 4
type document struct {
	Theme    Theme          `toml:"theme"`
	Settings map[string]any `toml:"settings"`
}

// FileStore is a TOML file-based settings store for CLI use.
// Edits made by other processes are picked up while the store is watched.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	doc      document
	modTime  time.Time
	interval time.Duration

	bc       *broadcaster
	pollOnce sync.Once
	stop     chan struct{}
	stopOnce sync.Once
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithPollInterval sets how often Watch checks the file for changes.
func WithPollInterval(d time.Duration) FileOption {
	return func(s *FileStore) {
		if d > 0 {
			s.interval = d
		}
	}
}

// DefaultPath returns the settings file location, honoring XDG_CONFIG_HOME.
// Falls back to ~/.config/quicktiles/settings.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "quicktiles", "settings.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "quicktiles", "settings.toml"), nil
}

// NewFileStore opens the settings file at path, creating its directory if
// needed. A missing file is an empty store. If path is empty, DefaultPath is used.
func NewFileStore(path string, opts ...FileOption) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := qterrors.ValidatePath(path); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}

	s := &FileStore{
		path:     path,
		interval: DefaultPollInterval,
		bc:       newBroadcaster(),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load replaces the in-memory document with the file contents.
// Callers must hold the write lock or own s exclusively.
func (s *FileStore) load() error {
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		s.doc = document{Settings: map[string]any{}}
		s.modTime = time.Time{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat settings file: %w", err)
	}

	var doc document
	if _, err := toml.DecodeFile(s.path, &doc); err != nil {
		return qterrors.Wrap(qterrors.ErrCodeInvalidFormat, err, "parse settings file %s", s.path)
	}
	if doc.Settings == nil {
		doc.Settings = map[string]any{}
	}
	s.doc = doc
	s.modTime = info.ModTime()
	return nil
}

// save writes the document atomically. Callers must hold the write lock.
func (s *FileStore) save() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(s.doc); err != nil {
		tmp.Close()
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	if info, err := os.Stat(s.path); err == nil {
		s.modTime = info.ModTime()
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.doc.Settings[key]
	if !ok {
		return "", false, nil
	}
	return formatValue(v), true, nil
}

func (s *FileStore) Put(ctx context.Context, key, value string) error {
	if err := qterrors.ValidateSettingKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	prev, had := s.doc.Settings[key]
	s.doc.Settings[key] = parseValue(value)
	err := s.save()
	if err != nil {
		if had {
			s.doc.Settings[key] = prev
		} else {
			delete(s.doc.Settings, key)
		}
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.bc.publish(Change{Key: key, Value: value})
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	prev, ok := s.doc.Settings[key]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.doc.Settings, key)
	err := s.save()
	if err != nil {
		s.doc.Settings[key] = prev
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.bc.publish(Change{Key: key, Deleted: true})
	return nil
}

func (s *FileStore) List(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.doc.Settings))
	for k, v := range s.doc.Settings {
		out[k] = formatValue(v)
	}
	return out, nil
}

// Watch reports local writes and, via polling, edits made to the file by
// other processes. External edits arrive as a Change with an empty Key.
func (s *FileStore) Watch(ctx context.Context) (<-chan Change, error) {
	ch := s.bc.subscribe(ctx)
	s.pollOnce.Do(func() { go s.poll() })
	return ch, nil
}

func (s *FileStore) poll() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if s.reloadIfChanged() {
				s.bc.publish(Change{})
			}
		}
	}
}

// reloadIfChanged re-reads the file when its modification time moved.
func (s *FileStore) reloadIfChanged() bool {
	info, err := os.Stat(s.path)
	var mod time.Time
	if err == nil {
		mod = info.ModTime()
	} else if !os.IsNotExist(err) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if mod.Equal(s.modTime) {
		return false
	}
	if err := s.load(); err != nil {
		// Half-written or invalid file: keep the last good document.
		s.modTime = mod
		return false
	}
	return true
}

// Theme returns the file's [theme] table as written. Keys missing from the
// table stay unset; [Read] fills them. It makes FileStore a [ThemeSource].
func (s *FileStore) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := s.doc.Theme
	if t.CellGap != nil {
		t.CellGap = Gap(*t.CellGap)
	}
	return t
}

// SetTheme replaces the [theme] table and notifies watchers.
func (s *FileStore) SetTheme(ctx context.Context, t Theme) error {
	s.mu.Lock()
	prev := s.doc.Theme
	s.doc.Theme = t
	err := s.save()
	if err != nil {
		s.doc.Theme = prev
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.bc.publish(Change{})
	return nil
}

// Path returns the settings file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	s.bc.close()
	return nil
}

var (
	_ Store       = (*FileStore)(nil)
	_ ThemeSource = (*FileStore)(nil)
)
