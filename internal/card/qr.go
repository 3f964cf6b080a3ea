package card

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// moduleSize is the printed size of one QR module in mm. At 0.8mm per
// module a version-2 code with quiet zone lands around 27mm, which scans
// reliably from a 62mm card with consumer phone cameras.
const moduleSize = 0.8

// encodeQR renders content as a single SVG path with one quiet-zone border
// already included. Medium error correction keeps the module count low
// enough to print crisply while surviving print artifacts.
func encodeQR(content string) (path string, sizeMM float64, err error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", 0, fmt.Errorf("qr encode: %w", err)
	}

	// Bitmap includes the four-module quiet zone on every side.
	bitmap := code.Bitmap()
	modules := len(bitmap)
	if modules == 0 {
		return "", 0, fmt.Errorf("qr encode: empty bitmap")
	}

	var b strings.Builder
	for y, row := range bitmap {
		// Merge horizontal runs of dark modules into single rects to keep
		// the path small.
		x := 0
		for x < len(row) {
			if !row[x] {
				x++
				continue
			}
			run := 0
			for x+run < len(row) && row[x+run] {
				run++
			}
			fmt.Fprintf(&b, "M%s %sh%sv%sh-%sz",
				trimFloat(float64(x)*moduleSize),
				trimFloat(float64(y)*moduleSize),
				trimFloat(float64(run)*moduleSize),
				trimFloat(moduleSize),
				trimFloat(float64(run)*moduleSize),
			)
			x += run
		}
	}

	return b.String(), float64(modules) * moduleSize, nil
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
