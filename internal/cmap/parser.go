/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/core"
)

// cMapParser tokenizes CMap content streams.
type cMapParser struct {
	reader *bufio.Reader
}

// newCMapParser creates a new instance of the CMap parser from input data.
func newCMapParser(content []byte) *cMapParser {
	return &cMapParser{
		reader: bufio.NewReader(bytes.NewReader(content)),
	}
}

// parseObject detects the signature at the current position and parses the
// corresponding object.
func (p *cMapParser) parseObject() (cmapObject, error) {
	p.skipSpaces()
	for {
		bb, err := p.reader.Peek(2)
		if err != nil {
			return nil, err
		}

		switch {
		case bb[0] == '%':
			p.parseComment()
			p.skipSpaces()
		case bb[0] == '/':
			return p.parseName()
		case bb[0] == '(':
			return p.parseString()
		case bb[0] == '[':
			return p.parseArray()
		case bb[0] == '<' && bb[1] == '<':
			return p.parseDict()
		case bb[0] == '<':
			return p.parseHexString()
		case core.IsDecimalDigit(bb[0]) || (bb[0] == '-' && core.IsDecimalDigit(bb[1])):
			return p.parseNumber()
		default:
			return p.parseOperand()
		}
	}
}

// skipSpaces skips over any spaces.
func (p *cMapParser) skipSpaces() error {
	for {
		bb, err := p.reader.Peek(1)
		if err != nil {
			return err
		}
		if !core.IsWhiteSpace(bb[0]) {
			return nil
		}
		p.reader.ReadByte()
	}
}

// parseComment reads a comment line starting with '%'.
func (p *cMapParser) parseComment() error {
	for {
		bb, err := p.reader.Peek(1)
		if err != nil {
			return err
		}
		if bb[0] == '\r' || bb[0] == '\n' {
			return nil
		}
		p.reader.ReadByte()
	}
}

// parseName parses a name starting with '/'.
func (p *cMapParser) parseName() (cmapName, error) {
	name := ""
	started := false
	for {
		bb, err := p.reader.Peek(1)
		if err == io.EOF {
			break // Can happen when loading from object stream.
		}
		if err != nil {
			return cmapName{name}, err
		}

		if !started {
			if bb[0] != '/' {
				common.Log.Debug("ERROR: Name starting with %s (% x)", bb, bb)
				return cmapName{name}, fmt.Errorf("invalid name: (%c)", bb[0])
			}
			started = true
			p.reader.ReadByte()
			continue
		}

		if core.IsWhiteSpace(bb[0]) || core.IsDelimiter(bb[0]) {
			break
		}
		if bb[0] == '#' {
			hexcode, err := p.reader.Peek(3)
			if err != nil {
				return cmapName{name}, err
			}
			p.reader.Discard(3)
			code, err := hex.DecodeString(string(hexcode[1:3]))
			if err != nil {
				return cmapName{name}, err
			}
			name += string(code)
			continue
		}
		b, _ := p.reader.ReadByte()
		name += string(b)
	}
	return cmapName{name}, nil
}

// parseString parses a string that starts with '(' and ends with ')'.
func (p *cMapParser) parseString() (cmapString, error) {
	p.reader.ReadByte()

	buf := bytes.Buffer{}
	depth := 1
	for {
		bb, err := p.reader.Peek(1)
		if err != nil {
			return cmapString{buf.String()}, err
		}

		switch bb[0] {
		case '\\': // Escape sequence.
			p.reader.ReadByte()
			b, err := p.reader.ReadByte()
			if err != nil {
				return cmapString{buf.String()}, err
			}
			if core.IsOctalDigit(b) {
				numeric := []byte{b}
				bb, err = p.reader.Peek(2)
				if err != nil {
					return cmapString{buf.String()}, err
				}
				for _, val := range bb {
					if !core.IsOctalDigit(val) {
						break
					}
					numeric = append(numeric, val)
				}
				p.reader.Discard(len(numeric) - 1)
				code, err := strconv.ParseUint(string(numeric), 8, 32)
				if err != nil {
					return cmapString{buf.String()}, err
				}
				buf.WriteByte(byte(code))
				continue
			}
			switch b {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case '(', ')', '\\':
				buf.WriteByte(b)
			}
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				p.reader.ReadByte()
				return cmapString{buf.String()}, nil
			}
		}

		b, _ := p.reader.ReadByte()
		buf.WriteByte(b)
	}
}

// parseHexString parses a PostScript hex string such as <0041>.
// Hex strings start with '<' and end with '>'.
func (p *cMapParser) parseHexString() (cmapHexString, error) {
	p.reader.ReadByte()

	buf := bytes.Buffer{}
	for {
		p.skipSpaces()

		bb, err := p.reader.Peek(1)
		if err != nil {
			return cmapHexString{}, err
		}
		if bb[0] == '>' {
			p.reader.ReadByte()
			break
		}

		b, _ := p.reader.ReadByte()
		if isHexDigit(b) {
			buf.WriteByte(b)
		}
	}

	if buf.Len()%2 == 1 {
		common.Log.Debug("parseHexString: appending '0' to %#q", buf.String())
		buf.WriteByte('0')
	}

	hexb, _ := hex.DecodeString(buf.String())
	return cmapHexString{numBytes: len(hexb), b: hexb}, nil
}

func isHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

// parseArray parses an array, which starts with '[' and ends with ']'.
func (p *cMapParser) parseArray() (cmapArray, error) {
	arr := cmapArray{Array: []cmapObject{}}
	p.reader.ReadByte()

	for {
		p.skipSpaces()

		bb, err := p.reader.Peek(1)
		if err != nil {
			return arr, err
		}
		if bb[0] == ']' {
			p.reader.ReadByte()
			return arr, nil
		}

		obj, err := p.parseObject()
		if err != nil {
			return arr, err
		}
		arr.Array = append(arr.Array, obj)
	}
}

// parseDict parses a dictionary object, which starts with '<<' and ends
// with '>>'.
func (p *cMapParser) parseDict() (cmapDict, error) {
	dict := makeDict()

	// Pass the '<<'.
	for i := 0; i < 2; i++ {
		c, _ := p.reader.ReadByte()
		if c != '<' {
			return dict, ErrBadCMapDict
		}
	}

	for {
		p.skipSpaces()

		bb, err := p.reader.Peek(2)
		if err != nil {
			return dict, err
		}
		if bb[0] == '>' && bb[1] == '>' {
			p.reader.Discard(2)
			return dict, nil
		}

		key, err := p.parseName()
		if err != nil {
			common.Log.Debug("ERROR: parseDict. Bad key. err=%v", err)
			return dict, err
		}
		p.skipSpaces()

		val, err := p.parseObject()
		if err != nil {
			return dict, err
		}
		dict.Dict[key.Name] = val

		// Skip "def" which optionally follows key value dict definitions in CMaps.
		p.skipSpaces()
		bb, err = p.reader.Peek(3)
		if err != nil {
			return dict, err
		}
		if string(bb) == "def" {
			p.reader.Discard(3)
		}
	}
}

// parseNumber parses an integer or float number.
func (p *cMapParser) parseNumber() (cmapObject, error) {
	o, err := core.ParseNumber(p.reader)
	if err != nil {
		return nil, err
	}
	switch o := o.(type) {
	case *core.PdfObjectFloat:
		return cmapFloat{float64(*o)}, nil
	case *core.PdfObjectInteger:
		return cmapInt{int64(*o)}, nil
	}
	return nil, fmt.Errorf("unhandled number type %T", o)
}

// parseOperand parses an operand, which is a text command represented by a
// word.
func (p *cMapParser) parseOperand() (cmapOperand, error) {
	buf := bytes.Buffer{}
	for {
		bb, err := p.reader.Peek(1)
		if err != nil {
			if err == io.EOF {
				break
			}
			return cmapOperand{}, err
		}
		if core.IsDelimiter(bb[0]) || core.IsWhiteSpace(bb[0]) {
			break
		}
		b, _ := p.reader.ReadByte()
		buf.WriteByte(b)
	}

	if buf.Len() == 0 {
		return cmapOperand{}, fmt.Errorf("invalid operand (empty)")
	}
	return cmapOperand{Operand: buf.String()}, nil
}
