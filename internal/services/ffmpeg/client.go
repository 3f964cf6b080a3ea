package ffmpeg

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

// Client invokes the ffmpeg binary for anonymized audio encodes and cover
// art extraction.
type Client struct {
	Binary  string
	Bitrate string
	Timeout time.Duration
}

// New returns a client for the given ffmpeg binary with a per-call timeout.
func New(binary, bitrate string, timeout time.Duration) *Client {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	if strings.TrimSpace(bitrate) == "" {
		bitrate = "190k"
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{Binary: binary, Bitrate: bitrate, Timeout: timeout}
}

// Transcode encodes source into an anonymized mono AAC file at dest. All
// metadata, cover art, and extra streams are stripped so the output carries
// nothing that could reveal the answer to a player who peeks at the file.
// Existing destinations are left untouched so reruns stay cheap.
func (c *Client) Transcode(ctx context.Context, source, dest string) error {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(dest) == "" {
		return services.Wrap(services.ErrValidation, "ffmpeg", "transcode", "empty source or destination", nil)
	}
	if _, err := os.Stat(dest); err == nil {
		return nil
	}

	tmp := dest + ".tmp"
	_, err := c.run(ctx,
		"-hide_banner", "-loglevel", "error",
		"-i", source,
		"-map", "0:a",
		"-map_metadata", "-1",
		"-ac", "1",
		"-c:a", "aac",
		"-b:a", c.Bitrate,
		"-f", "mp4",
		"-y", tmp,
	)
	if err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "transcode",
			fmt.Sprintf("move %s into place", dest), err)
	}
	return nil
}

// ExtractCover writes the first embedded picture stream of source to dest as
// a JPEG. The caller decides beforehand whether a picture exists; a missing
// stream surfaces as a tool error.
func (c *Client) ExtractCover(ctx context.Context, source, dest string) error {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(dest) == "" {
		return services.Wrap(services.ErrValidation, "ffmpeg", "extract-cover", "empty source or destination", nil)
	}

	tmp := dest + ".tmp.jpg"
	_, err := c.run(ctx,
		"-hide_banner", "-loglevel", "error",
		"-i", source,
		"-map", "0:v:0",
		"-frames:v", "1",
		"-c:v", "mjpeg",
		"-f", "image2",
		"-y", tmp,
	)
	if err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "extract-cover",
			fmt.Sprintf("move %s into place", dest), err)
	}
	return nil
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", services.Wrap(services.ErrTimeout, "ffmpeg", "run",
				fmt.Sprintf("timed out after %s", c.Timeout), err)
		}
		return "", services.Wrap(services.ErrExternalTool, "ffmpeg", "run",
			strings.TrimSpace(string(output)), err)
	}
	return string(output), nil
}
