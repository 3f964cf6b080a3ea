package track

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/bogem/id3v2"
)

// mp3Inspection mirrors the metaflac result shape for MP3 sources.
type mp3Inspection struct {
	contentHash string
	tags        map[string]string
	hasPicture  bool
}

// inspectMP3 reads ID3v2 frames and hashes the audio bytes outside the tag
// blocks, so retagging a file does not change its content hash.
func inspectMP3(path string) (mp3Inspection, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return mp3Inspection{}, fmt.Errorf("parse id3 tag: %w", err)
	}
	defer tag.Close()

	tags := make(map[string]string)
	setIfPresent := func(key, value string) {
		if value != "" {
			tags[key] = value
		}
	}
	setIfPresent("TITLE", tag.Title())
	setIfPresent("ARTIST", tag.Artist())
	setIfPresent("ALBUM", tag.Album())
	setIfPresent("DATE", tag.Year())
	if frame := tag.GetTextFrame("TDOR"); frame.Text != "" {
		tags["ORIGINALDATE"] = frame.Text
	}

	hasPicture := len(tag.GetFrames(tag.CommonID("Attached picture"))) > 0

	hash, err := hashMP3Audio(path, int64(tag.Size()))
	if err != nil {
		return mp3Inspection{}, err
	}

	return mp3Inspection{contentHash: hash, tags: tags, hasPicture: hasPicture}, nil
}

// hashMP3Audio digests the file starting after the leading ID3v2 block and
// stopping before a trailing ID3v1 block when one exists.
func hashMP3Audio(path string, tagSize int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	end := info.Size()
	if end >= tagSize+idv1TagSize {
		trailer := make([]byte, 3)
		if _, err := f.ReadAt(trailer, end-idv1TagSize); err == nil && bytes.Equal(trailer, []byte("TAG")) {
			end -= idv1TagSize
		}
	}
	if tagSize > end {
		tagSize = end
	}

	if _, err := f.Seek(tagSize, io.SeekStart); err != nil {
		return "", err
	}

	digest := sha256.New()
	if _, err := io.CopyN(digest, f, end-tagSize); err != nil && err != io.EOF {
		return "", err
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

const idv1TagSize = 128
