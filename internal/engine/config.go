package engine

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default character budgets. The total limit leaves room for prompt and
// response in typical model context windows.
const (
	DefaultTotalLimit = 60000
	DefaultPerFileCap = 20000
)

// Config is the immutable configuration for one engine invocation. All
// classification, priority, and ordering decisions are driven by this value;
// the engine reads no ambient state.
type Config struct {
	// TotalLimit is the hard character ceiling for the assembled context.
	TotalLimit int
	// PerFileCap bounds how many characters a single file may consume.
	PerFileCap int

	SkipDirs         map[string]bool
	CacheDirSuffixes []string
	LockFiles        map[string]bool
	SkipSuffixes     []string
	BinaryExtensions map[string]bool

	PriorityPrefixes []string
	PriorityFiles    map[string]bool

	// GroupRanks maps a lowercased file extension to its ordering group rank.
	// Extensions not present rank after all configured groups.
	GroupRanks map[string]int
	GroupCount int

	// StructureMaxEntries caps how many paths the directory tree lists.
	StructureMaxEntries int
}

// configFile is the serialized form shared by the embedded JSON defaults and
// the optional YAML override file.
type configFile struct {
	SkipDirs         []string `json:"skip_dirs" yaml:"skip_dirs"`
	CacheDirSuffixes []string `json:"cache_dir_suffixes" yaml:"cache_dir_suffixes"`
	LockFiles        []string `json:"lock_files" yaml:"lock_files"`
	SkipSuffixes     []string `json:"skip_suffixes" yaml:"skip_suffixes"`
	BinaryExtensions []string `json:"binary_extensions" yaml:"binary_extensions"`
	PriorityPrefixes []string `json:"priority_prefixes" yaml:"priority_prefixes"`
	PriorityFiles    []string `json:"priority_files" yaml:"priority_files"`
	ExtensionGroups  []struct {
		Name       string   `json:"name" yaml:"name"`
		Extensions []string `json:"extensions" yaml:"extensions"`
	} `json:"extension_groups" yaml:"extension_groups"`
	StructureMaxEntries int `json:"structure_max_entries" yaml:"structure_max_entries"`
}

//go:embed defaults.json
var defaultsJSON []byte

// DefaultConfig returns the compiled-in engine configuration.
func DefaultConfig() *Config {
	var f configFile
	if err := json.Unmarshal(defaultsJSON, &f); err != nil {
		// The file is embedded at compile time; failing to parse it is a
		// programming error that should be caught during development.
		panic(fmt.Sprintf("failed to parse embedded defaults.json: %v", err))
	}
	cfg := &Config{
		TotalLimit: DefaultTotalLimit,
		PerFileCap: DefaultPerFileCap,
	}
	applyFile(cfg, &f)
	return cfg
}

// LoadConfig returns the default configuration with an optional YAML override
// applied on top. Non-empty override fields replace the corresponding default
// set wholesale; empty fields keep the defaults.
func LoadConfig(overridePath string) (*Config, error) {
	cfg := DefaultConfig()
	if overridePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(overridePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine config file: %w", err)
	}
	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse engine config file %s: %w", overridePath, err)
	}
	applyFile(cfg, &f)
	return cfg, nil
}

// applyFile copies non-empty fields of f into cfg.
func applyFile(cfg *Config, f *configFile) {
	if len(f.SkipDirs) > 0 {
		cfg.SkipDirs = lowerSet(f.SkipDirs)
	}
	if len(f.CacheDirSuffixes) > 0 {
		cfg.CacheDirSuffixes = lowerSlice(f.CacheDirSuffixes)
	}
	if len(f.LockFiles) > 0 {
		cfg.LockFiles = lowerSet(f.LockFiles)
	}
	if len(f.SkipSuffixes) > 0 {
		cfg.SkipSuffixes = lowerSlice(f.SkipSuffixes)
	}
	if len(f.BinaryExtensions) > 0 {
		cfg.BinaryExtensions = lowerSet(f.BinaryExtensions)
	}
	if len(f.PriorityPrefixes) > 0 {
		cfg.PriorityPrefixes = lowerSlice(f.PriorityPrefixes)
	}
	if len(f.PriorityFiles) > 0 {
		cfg.PriorityFiles = lowerSet(f.PriorityFiles)
	}
	if len(f.ExtensionGroups) > 0 {
		cfg.GroupRanks = make(map[string]int)
		for rank, group := range f.ExtensionGroups {
			for _, ext := range group.Extensions {
				cfg.GroupRanks[strings.ToLower(ext)] = rank
			}
		}
		cfg.GroupCount = len(f.ExtensionGroups)
	}
	if f.StructureMaxEntries > 0 {
		cfg.StructureMaxEntries = f.StructureMaxEntries
	}
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

func lowerSlice(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
