package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration invariants that normalization cannot repair.
func (c *Config) Validate() error {
	var problems []string

	if c.Cards.URLPrefix == "" {
		problems = append(problems, "cards.url_prefix is required")
	} else if !strings.Contains(c.Cards.URLPrefix, "://") {
		problems = append(problems, "cards.url_prefix must be an absolute URL")
	}

	if c.Cards.CardWidth <= 0 || c.Cards.CardHeight <= 0 {
		problems = append(problems, "cards.card_width_mm and cards.card_height_mm must be positive")
	}
	if c.Cards.PageWidth <= 0 || c.Cards.PageHeight <= 0 {
		problems = append(problems, "cards.page_width_mm and cards.page_height_mm must be positive")
	}
	if c.Cards.Margin < 0 {
		problems = append(problems, "cards.margin_mm must not be negative")
	}

	switch c.Cards.DuplexMirror {
	case MirrorHorizontal, MirrorVertical, MirrorNone:
	default:
		problems = append(problems, fmt.Sprintf("cards.duplex_mirror: unsupported value %q", c.Cards.DuplexMirror))
	}

	switch c.Identifiers.Mode {
	case IdentModeContent, IdentModeRandom:
	default:
		problems = append(problems, fmt.Sprintf("identifiers.mode: unsupported value %q", c.Identifiers.Mode))
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unsupported value %q", c.Logging.Format))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid configuration: " + strings.Join(problems, "; "))
}
