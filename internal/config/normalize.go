package config

import "strings"

// normalize trims and defaults string fields and expands filesystem paths.
// It runs before Validate so validation sees canonical values.
func (c *Config) normalize() error {
	c.Input.TrackDir = strings.TrimSpace(c.Input.TrackDir)
	c.Output.Dir = strings.TrimSpace(c.Output.Dir)
	c.Output.BuildDir = strings.TrimSpace(c.Output.BuildDir)

	if c.Input.TrackDir == "" {
		c.Input.TrackDir = "tracks"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "out"
	}
	if c.Output.BuildDir == "" {
		c.Output.BuildDir = "build"
	}

	for _, field := range []*string{&c.Input.TrackDir, &c.Output.Dir, &c.Output.BuildDir} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Cards.URLPrefix = strings.TrimSpace(c.Cards.URLPrefix)
	// The scan target is url_prefix + identifier + extension, so the prefix
	// must concatenate cleanly with a path segment.
	if c.Cards.URLPrefix != "" && !strings.HasSuffix(c.Cards.URLPrefix, "/") {
		c.Cards.URLPrefix += "/"
	}

	c.Cards.Language = strings.ToLower(strings.TrimSpace(c.Cards.Language))
	if c.Cards.Language == "" {
		c.Cards.Language = "en"
	}
	if strings.TrimSpace(c.Cards.Font) == "" {
		c.Cards.Font = "sans-serif"
	}
	if strings.TrimSpace(c.Cards.Emoji) == "" {
		c.Cards.Emoji = "🎸"
	}
	c.Cards.DuplexMirror = strings.ToLower(strings.TrimSpace(c.Cards.DuplexMirror))
	if c.Cards.DuplexMirror == "" {
		c.Cards.DuplexMirror = MirrorHorizontal
	}

	c.Audio.Bitrate = strings.TrimSpace(c.Audio.Bitrate)
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = "190k"
	}
	c.Audio.Extension = strings.TrimSpace(c.Audio.Extension)
	if c.Audio.Extension == "" {
		c.Audio.Extension = ".m4a"
	}
	if !strings.HasPrefix(c.Audio.Extension, ".") {
		c.Audio.Extension = "." + c.Audio.Extension
	}
	if strings.TrimSpace(c.Audio.FFmpegBinary) == "" {
		c.Audio.FFmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(c.Audio.MetaflacBinary) == "" {
		c.Audio.MetaflacBinary = "metaflac"
	}
	if c.Audio.TimeoutSeconds <= 0 {
		c.Audio.TimeoutSeconds = 120
	}

	c.Identifiers.Mode = strings.ToLower(strings.TrimSpace(c.Identifiers.Mode))
	if c.Identifiers.Mode == "" {
		c.Identifiers.Mode = IdentModeContent
	}

	if strings.TrimSpace(c.Render.InkscapeBinary) == "" {
		c.Render.InkscapeBinary = "inkscape"
	}
	if strings.TrimSpace(c.Render.PDFUniteBinary) == "" {
		c.Render.PDFUniteBinary = "pdfunite"
	}
	if c.Render.TimeoutSeconds <= 0 {
		c.Render.TimeoutSeconds = 60
	}

	if c.Workers.Parallelism <= 0 {
		c.Workers.Parallelism = 4
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	return nil
}
