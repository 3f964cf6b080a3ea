// Command trackdeck builds a printable music quiz card deck and its
// companion web bundle from a directory of tagged FLAC and MP3 files.
package main
