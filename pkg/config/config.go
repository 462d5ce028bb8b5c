// Package config loads archispec settings from TOML files.
//
// A file may set any subset of keys; everything else keeps the value from
// [Default]. Unknown keys are rejected so typos surface at startup:
//
//	[convert]
//	visible_only = true
//	hidden_diagram_properties = ["Hidden"]
//
//	[convert.element_types]
//	AndJunction = "RC-State"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/archispec/pkg/archimate"
	"github.com/matzehuels/archispec/pkg/errors"
)

// Config is the complete settings tree.
type Config struct {
	Convert Convert `toml:"convert"`
	Cache   Cache   `toml:"cache"`
	Store   Store   `toml:"store"`
	Server  Server  `toml:"server"`
}

// Convert mirrors [archimate.Options].
type Convert struct {
	VisibleOnly                bool              `toml:"visible_only"`
	StrictSchema               bool              `toml:"strict_schema"`
	Glossary                   bool              `toml:"glossary"`
	DisambiguatePropertyTitles bool              `toml:"disambiguate_property_titles"`
	TitleLength                int               `toml:"title_length"`
	DescriptionLength          int               `toml:"description_length"`
	Namespace                  string            `toml:"namespace"`
	HiddenDiagramProperties    []string          `toml:"hidden_diagram_properties"`
	Folders                    Folders           `toml:"folders"`
	NativeProperties           NativeProperties  `toml:"native_properties"`
	ElementTypes               map[string]string `toml:"element_types"`
	RelationshipTypes          map[string]string `toml:"relationship_types"`
}

// Folders names generated folders and their type labels.
type Folders struct {
	Diagrams     string `toml:"diagrams"`
	Glossary     string `toml:"glossary"`
	Actors       string `toml:"actors"`
	States       string `toml:"states"`
	Events       string `toml:"events"`
	Collections  string `toml:"collections"`
	FolderType   string `toml:"folder_type"`
	DiagramsType string `toml:"diagrams_type"`
	GlossaryType string `toml:"glossary_type"`
	RootType     string `toml:"root_type"`
}

// NativeProperties lists property definitions read into resource attributes.
type NativeProperties struct {
	CreatedBy []string `toml:"created_by"`
	CreatedAt []string `toml:"created_at"`
	ChangedBy []string `toml:"changed_by"`
	ChangedAt []string `toml:"changed_at"`
}

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Cache selects and configures the conversion cache.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
}

// Store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Store selects and configures model persistence.
type Store struct {
	Backend    string   `toml:"backend"`
	MongoURI   string   `toml:"mongo_uri"`
	Database   string   `toml:"database"`
	Collection string   `toml:"collection"`
	Timeout    Duration `toml:"timeout"`
}

// Server configures the HTTP API.
type Server struct {
	Addr           string   `toml:"addr"`
	MaxUploadBytes int64    `toml:"max_upload_bytes"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// Duration is a time.Duration written as a string ("90s", "24h").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Convert: Convert{
			TitleLength:       archimate.DefaultTitleLength,
			DescriptionLength: archimate.DefaultDescriptionLength,
			Namespace:         archimate.DefaultNamespace,
			Folders: Folders{
				Diagrams:     archimate.DefaultDiagramsFolder,
				Glossary:     archimate.DefaultGlossaryFolder,
				Actors:       archimate.DefaultActorFolder,
				States:       archimate.DefaultStateFolder,
				Events:       archimate.DefaultEventFolder,
				Collections:  archimate.DefaultCollectionFolder,
				FolderType:   archimate.DefaultFolderType,
				DiagramsType: archimate.DefaultDiagramsType,
				GlossaryType: archimate.DefaultGlossaryType,
				RootType:     archimate.DefaultRootType,
			},
		},
		Cache: Cache{
			Backend: CacheFile,
			Dir:     defaultCacheDir(),
			Prefix:  "archispec:",
			TTL:     Duration{24 * time.Hour},
		},
		Store: Store{
			Backend:    StoreMemory,
			Database:   "archispec",
			Collection: "models",
			Timeout:    Duration{10 * time.Second},
		},
		Server: Server{
			Addr:           ":8080",
			MaxUploadBytes: 32 << 20,
			RequestTimeout: Duration{time.Minute},
		},
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "archispec")
	}
	return filepath.Join(os.TempDir(), "archispec-cache")
}

// Load reads the TOML file at path over [Default] and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Parse decodes TOML text over [Default] and validates the result.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown key %s", undecoded[0])
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and backend settings.
func (c Config) Validate() error {
	if c.Convert.TitleLength <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "convert.title_length must be positive")
	}
	if c.Convert.DescriptionLength <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "convert.description_length must be positive")
	}
	switch c.Cache.Backend {
	case CacheNone:
	case CacheFile:
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
		}
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreMemory:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_upload_bytes must be positive")
	}
	return nil
}

// Options returns conversion options for these settings. File name, date
// and logger are per call and left unset.
func (c Convert) Options() archimate.Options {
	np := archimate.NativeProperties(c.NativeProperties)
	return archimate.Options{
		TitleLength:                c.TitleLength,
		DescriptionLength:          c.DescriptionLength,
		Namespace:                  c.Namespace,
		FolderType:                 c.Folders.FolderType,
		DiagramsType:               c.Folders.DiagramsType,
		GlossaryType:               c.Folders.GlossaryType,
		RootType:                   c.Folders.RootType,
		DiagramsFolder:             c.Folders.Diagrams,
		GlossaryFolder:             c.Folders.Glossary,
		ActorFolder:                c.Folders.Actors,
		StateFolder:                c.Folders.States,
		EventFolder:                c.Folders.Events,
		CollectionFolder:           c.Folders.Collections,
		HiddenDiagramProperties:    c.HiddenDiagramProperties,
		VisibleOnly:                c.VisibleOnly,
		StrictSchema:               c.StrictSchema,
		DisambiguatePropertyTitles: c.DisambiguatePropertyTitles,
		Glossary:                   c.Glossary,
		ElementTypes:               c.ElementTypes,
		RelationshipTypes:          c.RelationshipTypes,
		NativeProperties:           np,
	}
}

// String renders c as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("# encode: %v\n", err)
	}
	return b.String()
}
