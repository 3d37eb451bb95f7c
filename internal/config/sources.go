package config

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Source represents where a setting's value comes from.
type Source string

const (
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// SettingStatus describes one effective setting for the status command.
type SettingStatus struct {
	Key    string `json:"key"`
	EnvVar string `json:"env_var"`
	Source Source `json:"source"`
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Source returns where the value of key came from.
func (c *Config) Source(key string) Source {
	if s, ok := c.sources[key]; ok {
		return s
	}
	return SourceDefault
}

// Settings lists every known key with its origin, sorted by key.
func (c *Config) Settings() []SettingStatus {
	keys := make([]string, 0, len(c.sources))
	for k := range c.sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]SettingStatus, 0, len(keys))
	for _, k := range keys {
		out = append(out, SettingStatus{Key: k, EnvVar: EnvVar(k), Source: c.sources[k]})
	}
	return out
}

func detectSources(v *viper.Viper) map[string]Source {
	sources := make(map[string]Source)
	for _, key := range v.AllKeys() {
		switch {
		case os.Getenv(EnvVar(key)) != "":
			sources[key] = SourceEnv
		case v.InConfig(key):
			sources[key] = SourceConfig
		default:
			sources[key] = SourceDefault
		}
	}
	return sources
}
