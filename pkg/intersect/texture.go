package intersect

import (
	"fmt"
	"strings"
)

// TextureDraw selects which side of a trimming bitmap stays visible.
type TextureDraw uint8

const (
	DrawTrue  TextureDraw = 1 << iota // keep pixels inside the flooded region
	DrawFalse                         // keep pixels outside it
	DrawBoth  = DrawTrue | DrawFalse
)

func (d TextureDraw) String() string {
	var parts []string
	if d&DrawTrue != 0 {
		parts = append(parts, "true")
	}
	if d&DrawFalse != 0 {
		parts = append(parts, "false")
	}
	if len(parts) == 0 {
		return "none"
	}
	if d&^DrawBoth != 0 {
		return fmt.Sprintf("TextureDraw(%d)", uint8(d))
	}
	return strings.Join(parts, "|")
}

// Layer is one intersection's contribution to an object's texture.
type Layer struct {
	Bitmap *Bitmap
	Draw   TextureDraw
}

// Compose combines layers into a size×size mask of 0 and 1 in bitmap
// storage order. A pixel is 1 when every layer keeps it: inside pixels need
// DrawTrue and outside pixels need DrawFalse. With no layers every pixel is
// kept.
func Compose(size int, layers []Layer) []float32 {
	out := make([]float32, size*size)
	for i := range out {
		keep := true
		for _, l := range layers {
			if l.Bitmap == nil || len(l.Bitmap.Bits) != len(out) {
				continue
			}
			in := l.Bitmap.Bits[i]
			if (in && l.Draw&DrawTrue == 0) || (!in && l.Draw&DrawFalse == 0) {
				keep = false
				break
			}
		}
		if keep {
			out[i] = 1
		}
	}
	return out
}
