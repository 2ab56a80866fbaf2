// Package profiles manages per-game optimization profiles: what a game
// supports (upscalers, ray tracing), where its config file lives, and the
// schema its settings must satisfy before anything is written.
package profiles

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Resolution is a game's render target.
type Resolution string

const (
	Res1080p Resolution = "1080p"
	Res2K    Resolution = "2K"
	Res4K    Resolution = "4K"
	Res5K    Resolution = "5K"
	Res6K    Resolution = "6K"
)

// CapabilityRequirements declares which upscaling/ray-tracing features a game
// can actually use. The optimizer intersects these with the GPU flags.
type CapabilityRequirements struct {
	SupportsDLSS       bool `json:"supportsDlss"`
	SupportsFSR        bool `json:"supportsFsr"`
	SupportsXeSS       bool `json:"supportsXess"`
	SupportsRayTracing bool `json:"supportsRaytracing"`
}

// GameProfile is one game's optimization profile. Keys in the settings schema
// and in settings maps are flat and dot-free; the profile store is a plain
// JSON array of these records.
type GameProfile struct {
	Name            string                 `json:"name" validate:"required"`
	ExecutableNames []string               `json:"executableNames" validate:"required,min=1,dive,required"`
	ConfigFilePath  string                 `json:"configFilePath" validate:"required"`
	Requirements    CapabilityRequirements `json:"requirements"`
	TargetRes       Resolution             `json:"targetResolution" validate:"required,oneof=1080p 2K 4K 5K 6K"`
	TargetFPS       uint                   `json:"targetFps" validate:"gte=30,lte=240"`
	Schema          Schema                 `json:"settingsSchema"`
}

// Store holds the profile collection, loaded from a JSON file at startup and
// rewritten synchronously after every mutation.
type Store struct {
	log  *slog.Logger
	path string

	mu       sync.Mutex
	profiles []GameProfile
	validate *validator.Validate
}

// OpenStore loads the profile store at path. A missing file seeds the
// built-in defaults and writes them out; a profile failing struct validation
// is dropped with a warning rather than poisoning the whole store.
func OpenStore(path string, log *slog.Logger) (*Store, error) {
	s := &Store{
		log:      log,
		path:     path,
		validate: validator.New(),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.profiles = DefaultProfiles()
		if werr := s.save(); werr != nil {
			return nil, fmt.Errorf("seed profile store: %w", werr)
		}
		log.Info("seeded default game profiles", "path", path, "count", len(s.profiles))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile store: %w", err)
	}

	var loaded []GameProfile
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse profile store: %w", err)
	}

	for _, p := range loaded {
		if err := s.validate.Struct(p); err != nil {
			log.Warn("dropping invalid game profile", "name", p.Name, "error", err)
			continue
		}
		s.profiles = append(s.profiles, p)
	}
	return s, nil
}

// All returns a copy of every profile.
func (s *Store) All() []GameProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GameProfile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// ByName returns the profile with the given name (case-sensitive), or nil.
func (s *Store) ByName(name string) *GameProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.profiles {
		if s.profiles[i].Name == name {
			p := s.profiles[i]
			return &p
		}
	}
	return nil
}

// Put inserts or replaces a profile by name and rewrites the store file.
func (s *Store) Put(p GameProfile) error {
	if err := s.validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile %q: %w", p.Name, err)
	}

	s.mu.Lock()
	replaced := false
	for i := range s.profiles {
		if s.profiles[i].Name == p.Name {
			s.profiles[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		s.profiles = append(s.profiles, p)
	}
	s.mu.Unlock()

	return s.save()
}

// Installed returns the profiles whose config file exists on disk. When no
// game is found, every profile is returned so the UI always has something to
// offer.
func (s *Store) Installed() []GameProfile {
	all := s.All()
	var found []GameProfile
	for _, p := range all {
		if _, err := os.Stat(p.ConfigFilePath); err == nil {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return all
	}
	return found
}

func (s *Store) save() error {
	s.mu.Lock()
	data, err := json.MarshalIndent(s.profiles, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write profile store: %w", err)
	}
	return nil
}
