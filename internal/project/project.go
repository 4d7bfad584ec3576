package project

import (
	"errors"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

var ErrNoProjectConfig = errors.New("no .upsync/config.yaml found")

const ConfigFileName = "config.yaml"

// Config represents <root>/.upsync/config.yaml.
type Config struct {
	Version          string   `yaml:"version"`
	Upstream         string   `yaml:"upstream"`                    // git URL of the template repository
	UpstreamName     string   `yaml:"upstream_name,omitempty"`     // cache directory name; derived from URL when empty
	Ref              string   `yaml:"ref,omitempty"`               // branch followed for new releases
	BaselineVersion  string   `yaml:"baseline_version,omitempty"`  // release the manifest baselines came from
	Exclude          []string `yaml:"exclude,omitempty"`           // tracked paths the project opts out of
	AssumeCustomized bool     `yaml:"assume_customized,omitempty"` // treat every file as customized (bulk import)
}

// Name returns the upstream cache directory name.
func (c Config) Name() string {
	if c.UpstreamName != "" {
		return c.UpstreamName
	}
	base := filepath.Base(c.Upstream)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "upstream"
	}
	if ext := filepath.Ext(base); ext == ".git" {
		base = base[:len(base)-len(ext)]
	}
	return base
}

// Excluded reports whether path is opted out of tracking.
func (c Config) Excluded(path string) bool {
	for _, e := range c.Exclude {
		if e == path {
			return true
		}
	}
	return false
}

func configPath(projectDir string) string {
	return filepath.Join(projectDir, ".upsync", ConfigFileName)
}

func ReadConfig(projectDir string) (Config, error) {
	data, err := os.ReadFile(configPath(projectDir))
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, ErrNoProjectConfig
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func WriteConfig(projectDir string, cfg Config) error {
	dir := filepath.Join(projectDir, ".upsync")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(projectDir), data, 0644)
}

// FindProjectRoot walks up from dir looking for .upsync/config.yaml.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(configPath(dir)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProjectConfig
		}
		dir = parent
	}
}
