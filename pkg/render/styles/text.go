package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// LinkVertical returns the SVG path of a cubic link from (x0,y0) to (x1,y1)
// whose tangents are vertical at both ends, the shape d3's linkVertical
// produces.
func LinkVertical(x0, y0, x1, y1 float64) string {
	ym := (y0 + y1) / 2
	return fmt.Sprintf("M%.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f", x0, y0, x0, ym, x1, ym, x1, y1)
}

// EscapeXML escapes s for use in SVG text content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
