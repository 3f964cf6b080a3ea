// Package ident derives unguessable public asset identifiers for private
// audio tracks and detects identifier collisions across a run.
package ident
