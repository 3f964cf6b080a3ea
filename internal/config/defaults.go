package config

const (
	// IdentModeContent derives identifiers from audio content and metadata,
	// stable across reruns of the same library.
	IdentModeContent = "content"
	// IdentModeRandom draws a fresh identifier per run.
	IdentModeRandom = "random"

	// MirrorHorizontal flips back-page columns, for duplex printing that
	// flips sheets on the long edge.
	MirrorHorizontal = "horizontal"
	// MirrorVertical flips back-page rows, for short-edge duplex.
	MirrorVertical = "vertical"
	// MirrorNone keeps front and back grids identical.
	MirrorNone = "none"
)

// Default returns the built-in configuration. The geometry defaults follow
// the Hitster card size: 62mm cards on A4 with a 7mm minimum margin give a
// 3x4 grid per page.
func Default() Config {
	return Config{
		Input: Input{
			TrackDir: "tracks",
		},
		Output: Output{
			Dir:      "out",
			BuildDir: "build",
		},
		Cards: Cards{
			Font:         "sans-serif",
			Title:        "",
			Language:     "en",
			Emoji:        "🎸",
			Grid:         true,
			CropMarks:    true,
			CardWidth:    62,
			CardHeight:   62,
			PageWidth:    210,
			PageHeight:   297,
			Margin:       7,
			DuplexMirror: MirrorHorizontal,
		},
		Audio: Audio{
			Bitrate:        "190k",
			Extension:      ".m4a",
			FFmpegBinary:   "ffmpeg",
			MetaflacBinary: "metaflac",
			TimeoutSeconds: 120,
		},
		Identifiers: Identifiers{
			Mode: IdentModeContent,
		},
		Render: Render{
			InkscapeBinary: "inkscape",
			PDFUniteBinary: "pdfunite",
			TimeoutSeconds: 60,
		},
		Workers: Workers{
			Parallelism: 4,
		},
		Logging: Logging{
			Format: "",
			Level:  "info",
		},
	}
}
