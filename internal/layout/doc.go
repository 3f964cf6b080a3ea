// Package layout packs cards into fixed A4 page pairs with exact physical
// coordinates, optional cut grid lines, and crop marks. Geometry is computed
// once per run and shared by every page so multi-page cuts cannot drift.
package layout
