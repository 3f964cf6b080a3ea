// Package track models one selected audio work and builds Tracks from
// tagged FLAC and MP3 source files.
package track
