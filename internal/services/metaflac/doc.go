// Package metaflac wraps the metaflac binary for reading FLAC Vorbis
// comments and the encoder-embedded audio MD5.
package metaflac
