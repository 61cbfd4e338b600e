package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/gubarz/mdgen/internal/shell"
)

// Config holds the application configuration
type Config struct {
	Shell         string   `mapstructure:"shell"`
	TocMarker     string   `mapstructure:"toc_marker"`
	ExcludeLevels []int    `mapstructure:"exclude_levels"`
	ExcludeTitles []string `mapstructure:"exclude_titles"`
	IncludeDepth  int      `mapstructure:"include_depth"`
	DiffContext   int      `mapstructure:"diff_context"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("shell", shell.DefaultShell())
	viper.SetDefault("toc_marker", "-") // "-" bulleted, "1." numbered
	viper.SetDefault("exclude_levels", []int{})
	viper.SetDefault("exclude_titles", []string{})
	viper.SetDefault("include_depth", 10)
	viper.SetDefault("diff_context", 3)

	viper.SetConfigName("mdgen")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "mdgen"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MDGEN")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetShell returns the shell used for command includes
func GetShell() string {
	return viper.GetString("shell")
}

// GetTocMarker returns the TOC list marker style
func GetTocMarker() string {
	return viper.GetString("toc_marker")
}

// GetExcludeLevels returns the heading levels excluded from numbering
func GetExcludeLevels() map[int]bool {
	out := make(map[int]bool)
	for _, l := range viper.GetIntSlice("exclude_levels") {
		out[l] = true
	}
	return out
}

// GetExcludeTitles returns the heading titles excluded from numbering
func GetExcludeTitles() map[string]bool {
	out := make(map[string]bool)
	for _, t := range viper.GetStringSlice("exclude_titles") {
		out[t] = true
	}
	return out
}

// GetIncludeDepth returns the maximum include nesting depth
func GetIncludeDepth() int {
	return viper.GetInt("include_depth")
}

// GetDiffContext returns the number of context lines in diff output
func GetDiffContext() int {
	return viper.GetInt("diff_context")
}

// SetTocMarker sets the TOC marker style at runtime
func SetTocMarker(marker string) {
	viper.Set("toc_marker", marker)
	C.TocMarker = marker
}
