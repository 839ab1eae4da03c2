package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "threerow.yaml"

// LoadThreeRow loads the game configuration.
// Search order: customPath -> ~/.threerow/configs/threerow.yaml ->
// ./configs/threerow.yaml -> embedded default -> DefaultThreeRowConfig.
// Values missing from a file keep their defaults. An explicit customPath
// must exist and be valid; unreadable or invalid files found on the search
// path are skipped.
func LoadThreeRow(customPath string) (ThreeRowConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultThreeRowConfig(), fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		return parse(data, customPath)
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data, path); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultThreeRowYAML, "embedded defaults"); err == nil {
		return cfg, nil
	}
	return DefaultThreeRowConfig(), nil
}

func parse(data []byte, source string) (ThreeRowConfig, error) {
	cfg := DefaultThreeRowConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultThreeRowConfig(), fmt.Errorf("config: cannot parse %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultThreeRowConfig(), fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(configFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", configFile))
}

// userConfigPath returns the per-user config path, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".threerow", "configs", filename)
}
