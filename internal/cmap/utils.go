/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

import (
	"fmt"
	"strconv"
	"unicode/utf16"
)

// String returns a decimal representation of the integer token.
func (o cmapInt) String() string {
	return strconv.FormatInt(o.val, 10)
}

// String returns a decimal representation of the float token.
func (o cmapFloat) String() string {
	return fmt.Sprintf("%f", o.val)
}

// hexToCharCode returns the big-endian integer value of the hex string.
func hexToCharCode(shex cmapHexString) CharCode {
	var code CharCode
	for _, v := range shex.b {
		code <<= 8
		code |= CharCode(v)
	}
	return code
}

// hexToString decodes the UTF-16BE encoded string in `shex` to unicode
// runes. One byte hex strings are interpreted as a raw character code.
//
// 9.10.3 ToUnicode CMaps (page 293)
// The CMap defined in the ToUnicode entry of the font dictionary shall
// follow the conventions for CMaps ... It shall use the beginbfchar,
// endbfchar, beginbfrange, and endbfrange operators to define the mapping
// from character codes to Unicode character sequences expressed in
// UTF-16BE encoding.
func hexToString(shex cmapHexString) string {
	if shex.numBytes == 1 {
		return string(rune(shex.b[0]))
	}
	b := shex.b
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i < len(b); i += 2 {
		units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
	}
	return string(utf16.Decode(units))
}
