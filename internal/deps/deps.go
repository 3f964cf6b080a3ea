// Package deps checks the external tools a build run shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"trackdeck/internal/config"
	"trackdeck/internal/services"
)

// Requirement defines one external binary the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ForConfig lists the requirements of a build run with the configured
// binaries filled in.
func ForConfig(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "metaflac",
			Command:     cfg.Audio.MetaflacBinary,
			Description: "Reads FLAC tags and the embedded audio checksum",
		},
		{
			Name:        "ffmpeg",
			Command:     cfg.Audio.FFmpegBinary,
			Description: "Encodes anonymized audio and extracts cover art",
		},
		{
			Name:        "inkscape",
			Command:     cfg.Render.InkscapeBinary,
			Description: "Converts rendered pages to PDF",
		},
		{
			Name:        "pdfunite",
			Command:     cfg.Render.PDFUniteBinary,
			Description: "Merges page PDFs into the final deck",
		},
	}
}

// CheckBinaries evaluates the requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if resolved, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		} else {
			status.Command = resolved
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}

// Verify runs the checks and fails when any required binary is missing, so
// a build stops before touching the library rather than mid-run.
func Verify(cfg *config.Config) ([]Status, error) {
	statuses := CheckBinaries(ForConfig(cfg))
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	if len(missing) > 0 {
		return statuses, services.Wrap(services.ErrConfiguration, "deps", "verify",
			fmt.Sprintf("missing required tools: %s", strings.Join(missing, ", ")), nil)
	}
	return statuses, nil
}
