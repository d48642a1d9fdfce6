/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package type1

import (
	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/internal/textencoding"
)

// Type1 charstring operators.
const (
	t1Hstem       = 1
	t1Vstem       = 3
	t1Vmoveto     = 4
	t1Rlineto     = 5
	t1Hlineto     = 6
	t1Vlineto     = 7
	t1Rrcurveto   = 8
	t1Closepath   = 9
	t1Callsubr    = 10
	t1Return      = 11
	t1Escape      = 12
	t1Hsbw        = 13
	t1Endchar     = 14
	t1Rmoveto     = 21
	t1Hmoveto     = 22
	t1Vhcurveto   = 30
	t1Hvcurveto   = 31
	t1EscDotsect  = 0
	t1EscVstem3   = 1
	t1EscHstem3   = 2
	t1EscSeac     = 6
	t1EscSbw      = 7
	t1EscDiv      = 12
	t1EscOtherSub = 16
	t1EscPop      = 17
	t1EscSetCurPt = 33
)

// Type2 operator codes emitted by the converter. Path operators share their
// encoding with Type1.
const (
	t2Vmoveto   = 4
	t2Rlineto   = 5
	t2Hlineto   = 6
	t2Vlineto   = 7
	t2Rrcurveto = 8
	t2Endchar   = 14
	t2Rmoveto   = 21
	t2Hmoveto   = 22
	t2Vhcurveto = 30
	t2Hvcurveto = 31
	t2EscDiv    = 12
)

// maxSubrDepth bounds local subroutine inlining.
const maxSubrDepth = 10

// ConvertedGlyph is the result of converting one Type1 charstring. The
// charstring carries no leading width operand; the CFF assembler prepends
// one for glyphs whose width differs from the computed defaultWidthX.
type ConvertedGlyph struct {
	Name       string
	CharString []byte
	Width      float64
}

// ConvertGlyphs converts every charstring of the font to Type2. Glyphs
// whose charstrings cannot be converted are dropped with a debug log entry;
// .notdef is always present, synthesized as an empty glyph when missing.
func (font *Font) ConvertGlyphs() []ConvertedGlyph {
	names := font.GlyphNames()
	glyphs := make([]ConvertedGlyph, 0, len(names))
	for _, name := range names {
		glyph, err := font.convertGlyph(name)
		if err != nil {
			if name == ".notdef" {
				w := &t2Writer{}
				w.writeOp(t2Endchar)
				glyph = ConvertedGlyph{Name: name, CharString: w.bytes()}
			} else {
				common.Log.Debug("ERROR: converting glyph %q: %v", name, err)
				continue
			}
		}
		glyphs = append(glyphs, glyph)
	}
	return glyphs
}

// convertGlyph converts the named charstring to Type2.
func (font *Font) convertGlyph(name string) (ConvertedGlyph, error) {
	cs, ok := font.CharStrings[name]
	if !ok {
		return ConvertedGlyph{}, errMalformed
	}
	conv := &converter{font: font}
	if err := conv.interpret(cs, 0, false); err != nil {
		return ConvertedGlyph{}, err
	}
	if !conv.ended {
		conv.out.writeOp(t2Endchar)
	}
	return ConvertedGlyph{
		Name:       name,
		CharString: conv.out.bytes(),
		Width:      conv.width,
	}, nil
}

// converter holds the interpreter state for a single glyph conversion. The
// current point is tracked on every path operator so that seac composition
// can position the accent relative to the base glyph's end point.
type converter struct {
	font *Font
	out  t2Writer

	stack []t2Operand

	// psStack receives callothersubr results consumed by pop.
	psStack []float64

	x, y  float64
	sbx   float64
	width float64

	// originX/originY shift the side-bearing moveto of the charstring
	// being interpreted; seac composition places the accent by moving its
	// origin.
	originX, originY float64

	inFlex  bool
	flexPts []float64

	ended bool
}

// t2Operand is a pending charstring operand: a plain number, or a deferred
// division emitted as the Type2 div operator.
type t2Operand struct {
	a, b  float64
	isDiv bool
}

func (op t2Operand) value() float64 {
	if op.isDiv {
		return op.a / op.b
	}
	return op.a
}

func num(v float64) t2Operand {
	return t2Operand{a: v}
}

// interpret runs one (possibly inlined) charstring. `suppressEndchar` is
// set for the base glyph of a seac composition.
func (conv *converter) interpret(cs []byte, depth int, suppressEndchar bool) error {
	if depth > maxSubrDepth {
		common.Log.Debug("ERROR: Type1 subr depth exceeded")
		return errMalformed
	}
	for i := 0; i < len(cs) && !conv.ended; {
		b0 := int(cs[i])
		switch {
		case b0 >= 32 && b0 <= 246:
			conv.stack = append(conv.stack, num(float64(b0-139)))
			i++
		case b0 >= 247 && b0 <= 250:
			if i+2 > len(cs) {
				return errTruncated
			}
			conv.stack = append(conv.stack, num(float64((b0-247)*256+int(cs[i+1])+108)))
			i += 2
		case b0 >= 251 && b0 <= 254:
			if i+2 > len(cs) {
				return errTruncated
			}
			conv.stack = append(conv.stack, num(float64(-(b0-251)*256-int(cs[i+1])-108)))
			i += 2
		case b0 == 255:
			if i+5 > len(cs) {
				return errTruncated
			}
			v := int32(uint32(cs[i+1])<<24 | uint32(cs[i+2])<<16 | uint32(cs[i+3])<<8 | uint32(cs[i+4]))
			conv.stack = append(conv.stack, num(float64(v)))
			i += 5
		case b0 == t1Escape:
			if i+2 > len(cs) {
				return errTruncated
			}
			if err := conv.escOp(int(cs[i+1]), depth, suppressEndchar); err != nil {
				return err
			}
			i += 2
		default:
			done, err := conv.op(b0, depth, suppressEndchar)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			i++
		}
	}
	return nil
}

// op executes a one-byte operator. The bool return is true on `return`.
func (conv *converter) op(b0 int, depth int, suppressEndchar bool) (bool, error) {
	switch b0 {
	case t1Hstem, t1Vstem:
		// Hints are stripped.
		conv.clear()
	case t1Vmoveto:
		if conv.inFlex {
			if v := conv.values(); len(v) == 1 {
				conv.flexPts = append(conv.flexPts, 0, v[0])
			}
			conv.clear()
			break
		}
		conv.trackMove(0, 1)
		conv.flush(t2Vmoveto)
	case t1Rlineto:
		conv.trackMove(0, -1)
		conv.flush(t2Rlineto)
	case t1Hlineto:
		conv.trackMove(1, 0)
		conv.flush(t2Hlineto)
	case t1Vlineto:
		conv.trackMove(0, 1)
		conv.flush(t2Vlineto)
	case t1Rrcurveto:
		conv.trackCurve()
		conv.flush(t2Rrcurveto)
	case t1Closepath:
		// Type2 closes subpaths implicitly.
		conv.clear()
	case t1Callsubr:
		if len(conv.stack) == 0 {
			return false, errMalformed
		}
		idx := int(conv.stack[len(conv.stack)-1].value())
		conv.stack = conv.stack[:len(conv.stack)-1]
		if idx < 0 || idx >= len(conv.font.Subrs) {
			common.Log.Debug("ERROR: Type1 subr %d out of range", idx)
			return false, errMalformed
		}
		if err := conv.interpret(conv.font.Subrs[idx], depth+1, suppressEndchar); err != nil {
			return false, err
		}
	case t1Return:
		return true, nil
	case t1Hsbw:
		if v := conv.values(); len(v) >= 2 {
			if conv.width == 0 {
				conv.width = v[1]
			}
			conv.sbx = v[0]
			conv.moveToSideBearing(v[0], 0)
		} else {
			conv.clear()
		}
	case t1Endchar:
		conv.clear()
		if !suppressEndchar {
			conv.out.writeOp(t2Endchar)
			conv.ended = true
		}
	case t1Rmoveto:
		if conv.inFlex {
			if v := conv.values(); len(v) == 2 {
				conv.flexPts = append(conv.flexPts, v[0], v[1])
			}
			conv.clear()
			break
		}
		conv.trackMove(0, -1)
		conv.flush(t2Rmoveto)
	case t1Hmoveto:
		if conv.inFlex {
			if v := conv.values(); len(v) == 1 {
				conv.flexPts = append(conv.flexPts, v[0], 0)
			}
			conv.clear()
			break
		}
		conv.trackMove(1, 0)
		conv.flush(t2Hmoveto)
	case t1Vhcurveto:
		if v := conv.values(); len(v) == 4 {
			conv.x += v[1] + v[3]
			conv.y += v[0] + v[2]
		}
		conv.flush(t2Vhcurveto)
	case t1Hvcurveto:
		if v := conv.values(); len(v) == 4 {
			conv.x += v[0] + v[1]
			conv.y += v[2] + v[3]
		}
		conv.flush(t2Hvcurveto)
	default:
		common.Log.Debug("Type1 operator %d skipped", b0)
		conv.clear()
	}
	return false, nil
}

// escOp executes a two-byte 12 x operator.
func (conv *converter) escOp(b1 int, depth int, suppressEndchar bool) error {
	switch b1 {
	case t1EscDotsect, t1EscVstem3, t1EscHstem3:
		// Hint machinery is stripped.
		conv.clear()
	case t1EscSeac:
		return conv.seac(depth)
	case t1EscSbw:
		if v := conv.values(); len(v) >= 4 {
			if conv.width == 0 {
				conv.width = v[2]
			}
			conv.sbx = v[0]
			conv.moveToSideBearing(v[0], v[1])
		} else {
			conv.clear()
		}
	case t1EscDiv:
		if len(conv.stack) < 2 {
			return errMalformed
		}
		b := conv.stack[len(conv.stack)-1].value()
		a := conv.stack[len(conv.stack)-2].value()
		conv.stack = conv.stack[:len(conv.stack)-2]
		conv.stack = append(conv.stack, t2Operand{a: a, b: b, isDiv: true})
	case t1EscOtherSub:
		return conv.callOtherSubr()
	case t1EscPop:
		var v float64
		if n := len(conv.psStack); n > 0 {
			v = conv.psStack[n-1]
			conv.psStack = conv.psStack[:n-1]
		}
		conv.stack = append(conv.stack, num(v))
	case t1EscSetCurPt:
		if v := conv.values(); len(v) == 2 {
			conv.x, conv.y = v[0], v[1]
		}
		conv.clear()
	default:
		common.Log.Debug("Type1 escape operator %d skipped", b1)
		conv.clear()
	}
	return nil
}

// seac composes an accented glyph: the base glyph charstring with endchar
// suppressed, an rmoveto to the accent position, then the accent
// charstring.
func (conv *converter) seac(depth int) error {
	v := conv.values()
	conv.clear()
	if len(v) < 5 {
		return errMalformed
	}
	asb, adx, ady := v[0], v[1], v[2]
	bchar, achar := byte(int(v[3])), byte(int(v[4]))

	std := textencoding.StandardEncodingGlyphNames()
	baseName, ok1 := std[bchar]
	accentName, ok2 := std[achar]
	if !ok1 || !ok2 {
		common.Log.Debug("ERROR: seac with codes %d %d outside StandardEncoding", bchar, achar)
		return errMalformed
	}
	baseCS, ok1 := conv.font.CharStrings[string(baseName)]
	accentCS, ok2 := conv.font.CharStrings[string(accentName)]
	if !ok1 || !ok2 {
		common.Log.Debug("ERROR: seac components %q %q missing", baseName, accentName)
		return errMalformed
	}

	sbx := conv.sbx
	if err := conv.interpret(baseCS, depth+1, true); err != nil {
		return err
	}

	// The accent's origin is displaced by (adx - asb) from the composite
	// side bearing; its own hsbw then emits the positioning rmoveto
	// relative to the base glyph's current point.
	conv.originX = sbx + adx - asb
	conv.originY = ady
	return conv.interpret(accentCS, depth+1, false)
}

// moveToSideBearing emits the side-bearing moveto of hsbw/sbw relative to
// the current point and the glyph origin.
func (conv *converter) moveToSideBearing(sbx, sby float64) {
	tx := conv.originX + sbx
	ty := conv.originY + sby
	dx := tx - conv.x
	dy := ty - conv.y
	conv.x, conv.y = tx, ty
	if dy == 0 {
		conv.stack = []t2Operand{num(dx)}
		conv.flush(t2Hmoveto)
		return
	}
	conv.stack = []t2Operand{num(dx), num(dy)}
	conv.flush(t2Rmoveto)
}

// callOtherSubr implements the OtherSubrs protocol: 0/1/2 are flex, 3 is
// hint replacement. Arguments arrive as: arg1..argn n othersubr#.
func (conv *converter) callOtherSubr() error {
	if len(conv.stack) < 2 {
		return errMalformed
	}
	subrNum := int(conv.stack[len(conv.stack)-1].value())
	n := int(conv.stack[len(conv.stack)-2].value())
	conv.stack = conv.stack[:len(conv.stack)-2]
	if n < 0 || n > len(conv.stack) {
		return errMalformed
	}
	args := conv.values()[len(conv.stack)-n:]
	conv.stack = conv.stack[:len(conv.stack)-n]

	switch subrNum {
	case 1: // begin flex
		conv.inFlex = true
		conv.flexPts = conv.flexPts[:0]
	case 2: // flex progress marker
	case 0: // end flex
		conv.inFlex = false
		conv.emitFlex()
		// The trailing pops feed setcurrentpoint with the flex end point;
		// pops pull from the top, so push y first.
		conv.psStack = append(conv.psStack, conv.y, conv.x)
	case 3: // hint replacement: pop returns the subr number to call
		if len(args) > 0 {
			conv.psStack = append(conv.psStack, args[len(args)-1])
		} else {
			conv.psStack = append(conv.psStack, 3)
		}
	default:
		common.Log.Debug("Type1 othersubr %d ignored", subrNum)
		conv.psStack = append(conv.psStack, args...)
	}
	return nil
}

// emitFlex converts the collected flex rmoveto deltas into a single
// rrcurveto carrying both curve segments. The first collected pair is the
// flex reference point and is folded into the first control point.
func (conv *converter) emitFlex() {
	pts := conv.flexPts
	if len(pts) == 14 {
		folded := make([]float64, 12)
		copy(folded, pts[2:])
		folded[0] += pts[0]
		folded[1] += pts[1]
		pts = folded
	}
	if len(pts) != 12 {
		common.Log.Debug("ERROR: flex with %d deltas", len(pts)/2)
		conv.flexPts = conv.flexPts[:0]
		return
	}
	conv.stack = conv.stack[:0]
	for _, v := range pts {
		conv.stack = append(conv.stack, num(v))
		if len(conv.stack)%2 == 0 {
			conv.x += conv.stack[len(conv.stack)-2].value()
			conv.y += conv.stack[len(conv.stack)-1].value()
		}
	}
	// Recompute the point movement: every pair is a relative offset.
	conv.flush(t2Rrcurveto)
	conv.flexPts = conv.flexPts[:0]
}

// values returns the numeric values of the pending operand stack.
func (conv *converter) values() []float64 {
	v := make([]float64, len(conv.stack))
	for i, op := range conv.stack {
		v[i] = op.value()
	}
	return v
}

func (conv *converter) clear() {
	conv.stack = conv.stack[:0]
}

// trackMove updates the current point for a move or line operator. The
// pair (1, 0) moves x by the last operand and (0, 1) moves y by the last
// operand; any other pair moves x and y by the last two operands.
func (conv *converter) trackMove(xArity, yArity int) {
	v := conv.values()
	switch {
	case xArity == 1 && yArity == 0 && len(v) >= 1: // horizontal
		conv.x += v[len(v)-1]
	case xArity == 0 && yArity == 1 && len(v) >= 1: // vertical
		conv.y += v[len(v)-1]
	case len(v) >= 2: // dx dy
		conv.x += v[len(v)-2]
		conv.y += v[len(v)-1]
	}
}

// trackCurve updates the current point for a rrcurveto operator.
func (conv *converter) trackCurve() {
	v := conv.values()
	if len(v) < 6 {
		return
	}
	for i := 0; i+1 < len(v); i += 2 {
		conv.x += v[i]
		conv.y += v[i+1]
	}
}

// flush emits the pending operands followed by operator `op`.
func (conv *converter) flush(op int) {
	for _, operand := range conv.stack {
		if operand.isDiv {
			conv.out.writeNumber(operand.a)
			conv.out.writeNumber(operand.b)
			conv.out.writeEscOp(t2EscDiv)
		} else {
			conv.out.writeNumber(operand.a)
		}
	}
	conv.out.writeOp(op)
	conv.clear()
}
