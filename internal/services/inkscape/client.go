// Package inkscape turns rendered SVG pages into the final printable PDF.
// Conversion runs one inkscape process per page; the per-page PDFs are then
// merged with pdfunite in page order.
package inkscape

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"trackdeck/internal/services"
)

// Client invokes the inkscape and pdfunite binaries.
type Client struct {
	Binary         string
	PDFUniteBinary string
	Timeout        time.Duration
}

// New returns a client with a per-call timeout.
func New(binary, pdfunite string, timeout time.Duration) *Client {
	if strings.TrimSpace(binary) == "" {
		binary = "inkscape"
	}
	if strings.TrimSpace(pdfunite) == "" {
		pdfunite = "pdfunite"
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{Binary: binary, PDFUniteBinary: pdfunite, Timeout: timeout}
}

// Convert renders the SVG at source into a PDF at dest. Inkscape exits zero
// even on some failures, so the destination is verified afterwards.
func (c *Client) Convert(ctx context.Context, source, dest string) error {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(dest) == "" {
		return services.Wrap(services.ErrValidation, "inkscape", "convert", "empty source or destination", nil)
	}

	if err := c.run(ctx, c.Binary,
		"--export-type=pdf",
		"--export-filename="+dest,
		source,
	); err != nil {
		return err
	}

	if _, err := os.Stat(dest); err != nil {
		return services.Wrap(services.ErrExternalTool, "inkscape", "convert",
			fmt.Sprintf("%s: no PDF produced", source), err)
	}
	return nil
}

// Merge concatenates the given PDFs into dest, preserving order.
func (c *Client) Merge(ctx context.Context, sources []string, dest string) error {
	if len(sources) == 0 {
		return services.Wrap(services.ErrValidation, "inkscape", "merge", "no pages to merge", nil)
	}
	if strings.TrimSpace(dest) == "" {
		return services.Wrap(services.ErrValidation, "inkscape", "merge", "empty destination", nil)
	}

	args := append(append([]string{}, sources...), dest)
	if err := c.run(ctx, c.PDFUniteBinary, args...); err != nil {
		return err
	}
	if _, err := os.Stat(dest); err != nil {
		return services.Wrap(services.ErrExternalTool, "inkscape", "merge",
			fmt.Sprintf("%s: no merged PDF produced", dest), err)
	}
	return nil
}

func (c *Client) run(ctx context.Context, binary string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "inkscape", "run",
				fmt.Sprintf("%s timed out after %s", binary, c.Timeout), err)
		}
		return services.Wrap(services.ErrExternalTool, "inkscape", "run",
			strings.TrimSpace(string(output)), err)
	}
	return nil
}
