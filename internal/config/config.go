package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Input contains source library configuration.
type Input struct {
	TrackDir string `toml:"track_dir"`
}

// Output contains output bundle directory configuration.
type Output struct {
	Dir      string `toml:"dir"`
	BuildDir string `toml:"build_dir"`
}

// Cards contains card content and page geometry configuration. All physical
// dimensions are in millimeters; the page is fixed to A4.
type Cards struct {
	URLPrefix    string  `toml:"url_prefix"`
	Font         string  `toml:"font"`
	Title        string  `toml:"title"`
	Language     string  `toml:"language"`
	Emoji        string  `toml:"emoji"`
	Grid         bool    `toml:"grid"`
	CropMarks    bool    `toml:"crop_marks"`
	CardWidth    float64 `toml:"card_width_mm"`
	CardHeight   float64 `toml:"card_height_mm"`
	PageWidth    float64 `toml:"page_width_mm"`
	PageHeight   float64 `toml:"page_height_mm"`
	Margin       float64 `toml:"margin_mm"`
	DuplexMirror string  `toml:"duplex_mirror"`
}

// Audio contains transcoding configuration.
type Audio struct {
	Bitrate        string `toml:"bitrate"`
	Extension      string `toml:"extension"`
	FFmpegBinary   string `toml:"ffmpeg_binary"`
	MetaflacBinary string `toml:"metaflac_binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Identifiers contains public asset identifier derivation configuration.
type Identifiers struct {
	// Mode selects "content" (deterministic, stable across reruns so
	// previously printed cards keep working) or "random" (fresh per run).
	Mode string `toml:"mode"`
}

// Render contains document rendering configuration.
type Render struct {
	InkscapeBinary string `toml:"inkscape_binary"`
	PDFUniteBinary string `toml:"pdfunite_binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Workers contains parallelism configuration for per-track work.
type Workers struct {
	Parallelism int `toml:"parallelism"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for a trackdeck run.
//
// Sections by subsystem:
//   - Input: source track library location
//   - Output: bundle and intermediate build directories
//   - Cards: card content, localization, page geometry, cut guides
//   - Audio: transcoder and tag reader settings
//   - Identifiers: public identifier derivation mode
//   - Render: SVG-to-PDF renderer and merger settings
//   - Workers: per-track parallelism bound
//   - Logging: log format and level
type Config struct {
	Input       Input       `toml:"input"`
	Output      Output      `toml:"output"`
	Cards       Cards       `toml:"cards"`
	Audio       Audio       `toml:"audio"`
	Identifiers Identifiers `toml:"identifiers"`
	Render      Render      `toml:"render"`
	Workers     Workers     `toml:"workers"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/trackdeck/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("trackdeck.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output bundle tree and the intermediate
// build directory.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{
		c.Output.Dir,
		c.SongsDir(),
		c.CoversDir(),
		c.Output.BuildDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SongsDir returns the directory holding transcoded audio named by identifier.
func (c *Config) SongsDir() string {
	return filepath.Join(c.Output.Dir, "songs")
}

// CoversDir returns the directory holding extracted cover art.
func (c *Config) CoversDir() string {
	return filepath.Join(c.Output.Dir, "covers")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
