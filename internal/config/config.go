package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/pplale/cardimage/internal/matcher"
)

// LocalConfigName is the config file looked up in the working directory
const LocalConfigName = "cardimage.toml"

// Config represents the application configuration
type Config struct {
	Strip      string     `toml:"strip"`
	Suffix     string     `toml:"suffix"`
	Normalize  bool       `toml:"normalize"`
	Ignore     []string   `toml:"ignore"`
	Categories []Category `toml:"category"`
}

// Category describes one card category: where its dataset and images live
// and how its cards are matched.
type Category struct {
	Key        string            `toml:"key"`
	Input      string            `toml:"input"`
	Output     string            `toml:"output"`
	ImageDir   string            `toml:"image_dir"`
	URLPrefix  string            `toml:"url_prefix"`
	Attribute  string            `toml:"attribute"`
	UseMarkers bool              `toml:"use_markers"`
	Markers    map[string]string `toml:"markers,omitempty"`
}

// Default returns the built-in configuration for the yojo and sweet datasets
func Default() *Config {
	return &Config{
		Strip:     "、。・",
		Suffix:    ".png",
		Normalize: true,
		Categories: []Category{
			{
				Key:        "yojo",
				Input:      "src/data/yojo.json",
				Output:     "src/data/yojo_updated.json",
				ImageDir:   "public/images/yojo",
				URLPrefix:  "/images/yojo",
				Attribute:  "fruit",
				UseMarkers: true,
				Markers: map[string]string{
					"いちご": "イチゴ",
					"ぶどう": "ぶどう",
				},
			},
			{
				Key:       "sweet",
				Input:     "src/data/sweet.json",
				Output:    "src/data/sweet_updated.json",
				ImageDir:  "public/images/sweet",
				URLPrefix: "/images/sweet",
				Attribute: "fruit",
			},
		},
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetConfigFilePath returns the path to the user config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "cardimage", "config.toml")
}

// GetCacheDir returns the cache directory of the tool
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "cardimage")
}

// ResolveConfigPath picks the config file to use. An explicit path always
// wins; otherwise cardimage.toml in workdir, then the user config file.
// An empty result means no file was found and defaults apply.
func ResolveConfigPath(explicit, workdir string) string {
	if explicit != "" {
		return explicit
	}

	local := filepath.Join(workdir, LocalConfigName)
	if _, err := os.Stat(local); err == nil {
		return local
	}

	userPath := GetConfigFilePath()
	if _, err := os.Stat(userPath); err == nil {
		return userPath
	}

	return ""
}

// LoadConfig loads the config file at path. An empty path yields the
// defaults. Keys absent from the file keep their default values; a file
// that defines categories replaces the default ones.
func LoadConfig(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	config.Categories = nil
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}

	if len(config.Categories) == 0 {
		config.Categories = Default().Categories
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// WriteConfig encodes config as TOML to path
func WriteConfig(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}

	return nil
}

// Validate checks the configuration for mistakes that would make a run
// meaningless
func (c *Config) Validate() error {
	for _, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid ignore pattern: %s", pattern)
		}
	}

	seen := make(map[string]bool)
	for i, cat := range c.Categories {
		if cat.Key == "" {
			return fmt.Errorf("category %d: key is required", i+1)
		}
		if seen[cat.Key] {
			return fmt.Errorf("duplicate category: %s", cat.Key)
		}
		seen[cat.Key] = true

		if cat.Input == "" {
			return fmt.Errorf("category %s: input is required", cat.Key)
		}
		if cat.ImageDir == "" {
			return fmt.Errorf("category %s: image_dir is required", cat.Key)
		}
	}

	return nil
}

// Category looks up a category by key
func (c *Config) Category(key string) (Category, error) {
	for _, cat := range c.Categories {
		if cat.Key == key {
			return cat, nil
		}
	}
	return Category{}, fmt.Errorf("unknown category: %s (known: %s)", key, strings.Join(c.Keys(), ", "))
}

// Keys returns the category keys in config order
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		keys = append(keys, cat.Key)
	}
	return keys
}

// Select returns the named categories, or all of them when keys is empty
func (c *Config) Select(keys []string) ([]Category, error) {
	if len(keys) == 0 {
		return c.Categories, nil
	}

	selected := make([]Category, 0, len(keys))
	for _, key := range keys {
		cat, err := c.Category(key)
		if err != nil {
			return nil, err
		}
		selected = append(selected, cat)
	}
	return selected, nil
}

// Rule returns the matching rule for a category
func (c *Config) Rule(cat Category) matcher.Rule {
	return matcher.Rule{
		Strip:      c.Strip,
		Suffix:     c.Suffix,
		UseMarkers: cat.UseMarkers,
		Markers:    cat.Markers,
		Normalize:  c.Normalize,
	}
}

// ImageURL builds the public URL of an image file in the category
func (cat Category) ImageURL(file string) string {
	return strings.TrimSuffix(cat.URLPrefix, "/") + "/" + file
}

// Resolve joins a config-relative path with the working directory
func Resolve(workdir, path string) string {
	if filepath.IsAbs(path) || workdir == "" {
		return path
	}
	return filepath.Join(workdir, path)
}

func (c *Config) applyDefaults() {
	for i := range c.Categories {
		cat := &c.Categories[i]
		if cat.Output == "" && cat.Input != "" {
			ext := filepath.Ext(cat.Input)
			cat.Output = strings.TrimSuffix(cat.Input, ext) + "_updated" + ext
		}
		if cat.URLPrefix == "" {
			cat.URLPrefix = "/images/" + cat.Key
		}
		if cat.Attribute == "" {
			cat.Attribute = "fruit"
		}
	}
}
