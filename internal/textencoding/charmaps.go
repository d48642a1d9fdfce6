/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import (
	"sync"

	"golang.org/x/text/encoding/charmap"
)

const (
	baseWinAnsi  = "WinAnsiEncoding"
	baseMacRoman = "MacRomanEncoding"
)

func init() {
	RegisterSimpleEncoding(baseWinAnsi, NewWinAnsiEncoder)
	RegisterSimpleEncoding(baseMacRoman, NewMacRomanEncoder)
}

var (
	winAnsiOnce sync.Once
	winAnsiDec  map[byte]rune
	winAnsiEnc  map[rune]byte

	macRomanOnce sync.Once
	macRomanDec  map[byte]rune
	macRomanEnc  map[rune]byte
)

// NewWinAnsiEncoder returns a SimpleEncoder that implements WinAnsiEncoding.
func NewWinAnsiEncoder() SimpleEncoder {
	winAnsiOnce.Do(initWinAnsi)
	return &simpleEncoding{
		baseName: baseWinAnsi,
		decode:   winAnsiDec,
		encode:   winAnsiEnc,
	}
}

// NewMacRomanEncoder returns a SimpleEncoder that implements
// MacRomanEncoding.
func NewMacRomanEncoder() SimpleEncoder {
	macRomanOnce.Do(initMacRoman)
	return &simpleEncoding{
		baseName: baseMacRoman,
		decode:   macRomanDec,
		encode:   macRomanEnc,
	}
}

func initWinAnsi() {
	// WinAnsiEncoding is also known as CP1252. Comparing to CP1252, all
	// unused and non-visual codes are replaced with the bullet character.
	const bullet = '•'
	replace := map[byte]rune{
		127: bullet, // DEL

		// unused
		129: bullet,
		141: bullet,
		143: bullet,
		144: bullet,
		157: bullet,

		// typographically similar
		160: ' ', // non-breaking space -> space
		173: '-', // soft hyphen -> hyphen
	}
	winAnsiDec, winAnsiEnc = fromCharmap(charmap.Windows1252, replace)
}

func initMacRoman() {
	replace := map[byte]rune{
		202: ' ', // non-breaking space -> space
	}
	macRomanDec, macRomanEnc = fromCharmap(charmap.Macintosh, replace)
}

// fromCharmap builds the code <-> rune maps of a simple encoding from an
// x/text character map, with code points in `replace` overridden.
func fromCharmap(enc *charmap.Charmap, replace map[byte]rune) (map[byte]rune, map[rune]byte) {
	decode := make(map[byte]rune, 256)
	encode := make(map[rune]byte, 256)
	for i := 0x20; i < 0x100; i++ {
		b := byte(i)
		r := enc.DecodeByte(b)
		if r2, ok := replace[b]; ok {
			r = r2
		}
		if r == 0 || r == 0xfffd {
			continue
		}
		decode[b] = r
		if _, taken := encode[r]; !taken {
			encode[r] = b
		}
	}
	return decode, encode
}
