package metaflac

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"trackdeck/internal/services"
)

// zeroMD5 is what FLAC files encoded without -f8 carry in the STREAMINFO
// block; such files cannot anchor a stable content identifier.
const zeroMD5 = "00000000000000000000000000000000"

// Result holds the outcome of inspecting one FLAC file.
type Result struct {
	// AudioMD5 is the encoder-embedded MD5 of the raw audio stream. It is
	// independent of the tag blocks, so retagging does not change it.
	AudioMD5 string
	// Tags maps uppercased Vorbis comment keys to their last value.
	Tags map[string]string
	// HasPicture reports whether a PICTURE metadata block is present.
	HasPicture bool
}

// Client invokes the metaflac binary.
type Client struct {
	Binary  string
	Timeout time.Duration
}

// New returns a client for the given metaflac binary with a per-call timeout.
func New(binary string, timeout time.Duration) *Client {
	if strings.TrimSpace(binary) == "" {
		binary = "metaflac"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{Binary: binary, Timeout: timeout}
}

// Inspect reads the audio MD5 and Vorbis comments from path. Repeated tags
// keep only the last value, matching Vorbis comment semantics.
func (c *Client) Inspect(ctx context.Context, path string) (Result, error) {
	if strings.TrimSpace(path) == "" {
		return Result{}, services.Wrap(services.ErrValidation, "metaflac", "inspect", "empty path", nil)
	}

	output, err := c.run(ctx, "--show-md5sum", "--export-tags-to=-", "--", path)
	if err != nil {
		return Result{}, err
	}

	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return Result{}, services.Wrap(services.ErrExternalTool, "metaflac", "inspect",
			fmt.Sprintf("%s: no md5sum in output", path), nil)
	}
	md5sum := strings.TrimSpace(lines[0])
	if md5sum == zeroMD5 {
		return Result{}, services.Wrap(services.ErrValidation, "metaflac", "inspect",
			fmt.Sprintf("%s: no embedded audio md5sum, re-encode with flac -f8", path), nil)
	}

	tags := make(map[string]string)
	for _, line := range lines[1:] {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		tags[strings.ToUpper(key)] = value
	}

	hasPicture, err := c.hasPicture(ctx, path)
	if err != nil {
		return Result{}, err
	}

	return Result{AudioMD5: md5sum, Tags: tags, HasPicture: hasPicture}, nil
}

func (c *Client) hasPicture(ctx context.Context, path string) (bool, error) {
	output, err := c.run(ctx, "--list", "--block-type=PICTURE", "--", path)
	if err != nil {
		return false, err
	}
	return strings.Contains(output, "METADATA block"), nil
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", services.Wrap(services.ErrTimeout, "metaflac", "run",
				fmt.Sprintf("timed out after %s", c.Timeout), err)
		}
		return "", services.Wrap(services.ErrExternalTool, "metaflac", "run",
			strings.TrimSpace(string(output)), err)
	}
	return string(output), nil
}
