package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileStore keeps every profile in one JSON document keyed by name.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Names returns the stored profile names in alphabetical order.
func (s *FileStore) Names() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the named profile with defaults applied.
func (s *FileStore) Load(name string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return Profile{}, err
	}
	p, ok := all[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p.WithDefaults(name), nil
}

// Loader reads a profile by name.
type Loader interface {
	Load(name string) (Profile, error)
}

// LoadOrDefault returns the named profile for planning. An unknown name or a
// read failure is logged and yields the default settings with an empty
// routine. A missing Default profile yields the seed.
func LoadOrDefault(l Loader, name string) Profile {
	if name == "" {
		name = DefaultName
	}
	p, err := l.Load(name)
	switch {
	case err == nil:
		return p
	case errors.Is(err, ErrNotFound) && name == DefaultName:
		return Seed()
	case errors.Is(err, ErrNotFound):
		log.Printf("INFO: profile %q not found, using defaults", name)
	default:
		log.Printf("ERROR: reading profile %q, using defaults: %v", name, err)
	}
	return Profile{}.WithDefaults(name)
}

// Save fills zero settings with defaults, validates and writes the profile,
// replacing any existing entry.
func (s *FileStore) Save(name string, p Profile) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty profile name", ErrInvalid)
	}
	p = p.filled()
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	all[name] = p
	return s.write(all)
}

// Delete removes the named profile. Deleting a missing profile is not an error.
func (s *FileStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := all[name]; !ok {
		return nil
	}
	delete(all, name)
	return s.write(all)
}

// EnsureDefault seeds the default profile when the store holds none.
func (s *FileStore) EnsureDefault() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	if len(all) > 0 {
		return nil
	}
	log.Printf("INFO: seeding profile %q in %s", DefaultName, s.path)
	all[DefaultName] = Seed()
	return s.write(all)
}

func (s *FileStore) read() (map[string]Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]Profile{}, nil
	}

	all := map[string]Profile{}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode profiles %s: %w", s.path, err)
	}
	return all, nil
}

// write replaces the document atomically via a temp file in the same directory.
func (s *FileStore) write(all map[string]Profile) error {
	data, err := json.MarshalIndent(all, "", "    ")
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".profiles-*.json")
	if err != nil {
		return fmt.Errorf("create temp profile file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write profiles: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close profiles: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace profiles: %w", err)
	}
	return nil
}
