package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Package sources holds the closed set of upstream endpoints the adapters
// talk to, with optional overrides from a YAML/JSON file.

// Kind identifies one upstream source dialect.
type Kind string

const (
	KindAPOD         Kind = "apod"
	KindNeoFeed      Kind = "neo_feed"
	KindNeoDetail    Kind = "neo_detail"
	KindRoverPhotos  Kind = "rover_photos"
	KindEarthImagery Kind = "earth_imagery"
	KindEarthAssets  Kind = "earth_assets"
	KindEpic         Kind = "epic"
	KindEpicArchive  Kind = "epic_archive"
	KindMediaSearch  Kind = "media_search"
	KindMediaAsset   Kind = "media_asset"
	KindTechTransfer Kind = "tech_transfer"
)

// Source describes one upstream endpoint entry.
type Source struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Endpoint    string `json:"endpoint" yaml:"endpoint"`
	RequiresKey bool   `json:"requires_key" yaml:"requires_key"`
}

// Registry resolves source kinds to their endpoint configuration.
type Registry struct {
	sources map[Kind]Source
}

type registryFile struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

func defaultSources() []Source {
	return []Source{
		{ID: string(KindAPOD), Name: "Astronomy Picture of the Day", Endpoint: "https://api.nasa.gov/planetary/apod", RequiresKey: true},
		{ID: string(KindNeoFeed), Name: "Near Earth Object Feed", Endpoint: "https://api.nasa.gov/neo/rest/v1/feed", RequiresKey: true},
		{ID: string(KindNeoDetail), Name: "Near Earth Object Lookup", Endpoint: "https://api.nasa.gov/neo/rest/v1/neo", RequiresKey: true},
		{ID: string(KindRoverPhotos), Name: "Mars Rover Photos", Endpoint: "https://api.nasa.gov/mars-photos/api/v1/rovers", RequiresKey: true},
		{ID: string(KindEarthImagery), Name: "Earth Imagery", Endpoint: "https://api.nasa.gov/planetary/earth/imagery", RequiresKey: true},
		{ID: string(KindEarthAssets), Name: "Earth Imagery Assets", Endpoint: "https://api.nasa.gov/planetary/earth/assets", RequiresKey: true},
		{ID: string(KindEpic), Name: "EPIC Imagery", Endpoint: "https://api.nasa.gov/EPIC/api", RequiresKey: true},
		{ID: string(KindEpicArchive), Name: "EPIC Image Archive", Endpoint: "https://epic.gsfc.nasa.gov/archive", RequiresKey: false},
		{ID: string(KindMediaSearch), Name: "Image and Video Library Search", Endpoint: "https://images-api.nasa.gov/search", RequiresKey: false},
		{ID: string(KindMediaAsset), Name: "Image and Video Library Asset", Endpoint: "https://images-api.nasa.gov/asset", RequiresKey: false},
		{ID: string(KindTechTransfer), Name: "Technology Transfer", Endpoint: "https://api.nasa.gov/techtransfer", RequiresKey: true},
	}
}

// DefaultRegistry returns a registry with the production endpoints.
func DefaultRegistry() *Registry {
	reg := &Registry{sources: make(map[Kind]Source)}
	for _, s := range defaultSources() {
		reg.sources[Kind(s.ID)] = s
	}
	return reg
}

// LoadRegistry builds a registry from defaults plus overrides in the given
// YAML or JSON file. An empty path returns the defaults untouched.
func LoadRegistry(path string) (*Registry, error) {
	reg := DefaultRegistry()
	if strings.TrimSpace(path) == "" {
		return reg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	overrides, err := parseRegistryFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	for i := range overrides.Sources {
		s := sanitizeSource(overrides.Sources[i])
		if err := validateSource(s); err != nil {
			return nil, fmt.Errorf("source[%d]: %w", i, err)
		}
		base, known := reg.sources[Kind(s.ID)]
		if !known {
			return nil, fmt.Errorf("unknown source id %q", s.ID)
		}
		if s.Name == "" {
			s.Name = base.Name
		}
		s.RequiresKey = base.RequiresKey
		reg.sources[Kind(s.ID)] = s
	}

	return reg, nil
}

func parseRegistryFile(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var out registryFile
		if err := d.fn(data, &out); err == nil {
			return out, nil
		}
	}

	return registryFile{}, errors.New("sources file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func sanitizeSource(s Source) Source {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.Endpoint = strings.TrimRight(strings.TrimSpace(s.Endpoint), "/")
	return s
}

func validateSource(s Source) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if s.Endpoint == "" {
		return fmt.Errorf("endpoint is required for source %q", s.ID)
	}
	return nil
}

// Endpoint returns the base endpoint for the given source kind.
func (r *Registry) Endpoint(kind Kind) (string, error) {
	if r == nil || r.sources == nil {
		return "", errors.New("source registry is not initialized")
	}
	s, ok := r.sources[kind]
	if !ok {
		return "", fmt.Errorf("no endpoint registered for source %q", kind)
	}
	return s.Endpoint, nil
}

// RequiresKey reports whether the source expects an api_key parameter.
func (r *Registry) RequiresKey(kind Kind) bool {
	if r == nil {
		return false
	}
	s, ok := r.sources[kind]
	return ok && s.RequiresKey
}

// All returns the registered sources in a stable order.
func (r *Registry) All() []Source {
	if r == nil {
		return nil
	}
	out := make([]Source, 0, len(r.sources))
	for _, def := range defaultSources() {
		if s, ok := r.sources[Kind(def.ID)]; ok {
			out = append(out, s)
		}
	}
	return out
}
