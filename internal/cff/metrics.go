/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cff

import (
	"github.com/pixelpdf/pixelpdf/common"
)

// Type2 charstring operators recognized by the metric extractor.
const (
	t2Hstem    = 1
	t2Vstem    = 3
	t2Vmoveto  = 4
	t2Endchar  = 14
	t2Hstemhm  = 18
	t2Hintmask = 19
	t2Cntrmask = 20
	t2Rmoveto  = 21
	t2Hmoveto  = 22
	t2Vstemhm  = 23
)

// GlyphMetrics holds the horizontal metrics of a single glyph in glyph
// space units.
type GlyphMetrics struct {
	Advance     float64
	LeftBearing float64
}

// GlyphMetrics extracts the advance width and left side-bearing of glyph
// `gid` from the leading operators of its Type2 charstring.
//
// The charstring is scanned up to the first stem hint, mask, moveto or
// endchar operator. An extra leading operand before that operator carries
// the glyph width as a delta from the Private DICT's nominalWidthX; without
// it the defaultWidthX applies.
func (font *Font) GlyphMetrics(gid uint16) (GlyphMetrics, bool) {
	if int(gid) >= len(font.charStrings) {
		return GlyphMetrics{}, false
	}
	cs := font.charStrings[gid]

	metrics := GlyphMetrics{Advance: font.defaultWidthX}
	var stack []float64

	for i := 0; i < len(cs); {
		b0 := int(cs[i])
		switch {
		case b0 == 28: // shortint
			if i+3 > len(cs) {
				return metrics, true
			}
			stack = append(stack, float64(int16(uint16(cs[i+1])<<8|uint16(cs[i+2]))))
			i += 3
		case b0 == 255: // 16.16 fixed
			if i+5 > len(cs) {
				return metrics, true
			}
			v := int32(uint32(cs[i+1])<<24 | uint32(cs[i+2])<<16 | uint32(cs[i+3])<<8 | uint32(cs[i+4]))
			stack = append(stack, float64(v)/65536)
			i += 5
		case b0 >= 32 && b0 <= 246:
			stack = append(stack, float64(b0-139))
			i++
		case b0 >= 247 && b0 <= 250:
			if i+2 > len(cs) {
				return metrics, true
			}
			stack = append(stack, float64((b0-247)*256+int(cs[i+1])+108))
			i += 2
		case b0 >= 251 && b0 <= 254:
			if i+2 > len(cs) {
				return metrics, true
			}
			stack = append(stack, float64(-(b0-251)*256-int(cs[i+1])-108))
			i += 2
		default:
			// First operator terminates the scan. The operand count parity
			// relative to the operator's arity reveals the width operand.
			switch b0 {
			case t2Hstem, t2Vstem, t2Hstemhm, t2Vstemhm, t2Hintmask, t2Cntrmask:
				if len(stack)%2 == 1 {
					metrics.Advance = font.nominalWidthX + stack[0]
				}
				return metrics, true
			case t2Rmoveto:
				if len(stack) > 2 {
					metrics.Advance = font.nominalWidthX + stack[0]
					stack = stack[1:]
				}
				if len(stack) == 2 {
					metrics.LeftBearing = stack[0]
				}
				return metrics, true
			case t2Hmoveto, t2Vmoveto:
				if len(stack) > 1 {
					metrics.Advance = font.nominalWidthX + stack[0]
					stack = stack[1:]
				}
				if len(stack) == 1 && b0 == t2Hmoveto {
					metrics.LeftBearing = stack[0]
				}
				return metrics, true
			case t2Endchar:
				if len(stack) == 1 || len(stack) == 5 {
					metrics.Advance = font.nominalWidthX + stack[0]
				}
				return metrics, true
			default:
				common.Log.Trace("GlyphMetrics: gid=%d stops at op %d", gid, b0)
				return metrics, true
			}
		}
	}
	return metrics, true
}
