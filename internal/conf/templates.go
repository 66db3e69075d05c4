package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TemplatesConfig contains the notification texts loaded from YAML
type TemplatesConfig struct {
	Daily  string `yaml:"daily"`
	Weekly string `yaml:"weekly"`
	Debug  string `yaml:"debug"`
}

// LoadTemplatesConfig loads notification templates from a YAML file.
// A missing file is not an error: defaults are used.
func LoadTemplatesConfig(configPath string) (*TemplatesConfig, error) {
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/templates.yaml",
			"/etc/kava/templates.yaml",
		}
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "templates.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err == nil {
			data, loadedPath = b, p
			break
		}
	}

	if data == nil {
		fmt.Println("[Config] No templates.yaml found, using defaults")
		return DefaultTemplatesConfig(), nil
	}

	fmt.Printf("[Config] Loading templates from: %s\n", loadedPath)

	var config TemplatesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", loadedPath, err)
	}
	config.fillDefaults()

	return &config, nil
}

func (c *TemplatesConfig) fillDefaults() {
	defaults := DefaultTemplatesConfig()
	if c.Daily == "" {
		c.Daily = defaults.Daily
	}
	if c.Weekly == "" {
		c.Weekly = defaults.Weekly
	}
	if c.Debug == "" {
		c.Debug = defaults.Debug
	}
}

// FormatDaily renders the daily notification for day
func (c *TemplatesConfig) FormatDaily(day time.Weekday) string {
	return strings.ReplaceAll(c.Daily, "{{weekday}}", day.String())
}

// FormatWeekly renders the weekly cycle notification
func (c *TemplatesConfig) FormatWeekly(locations int) string {
	return strings.ReplaceAll(c.Weekly, "{{locations}}", fmt.Sprint(locations))
}

// FormatDebug renders the /debug reply
func (c *TemplatesConfig) FormatDebug(day time.Weekday, groups int, loaded string, queued int64) string {
	r := strings.NewReplacer(
		"{{weekday}}", day.String(),
		"{{groups}}", fmt.Sprint(groups),
		"{{loaded}}", loaded,
		"{{queued}}", fmt.Sprint(queued),
	)
	return r.Replace(c.Debug)
}

// DefaultTemplatesConfig returns the built-in templates
func DefaultTemplatesConfig() *TemplatesConfig {
	return &TemplatesConfig{
		Daily:  "Good morning! It is now {{weekday}}.",
		Weekly: "Schedule cycled: next week is open for {{locations}} location(s).",
		Debug:  "day: {{weekday}}\nreaction role groups: {{groups}}\nconfig loaded {{loaded}}\nqueued messages: {{queued}}",
	}
}
