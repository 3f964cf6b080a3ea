// Package card composes the visual content of one playing card: a scannable
// code front and a title/artist/year back.
package card
