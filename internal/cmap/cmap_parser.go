/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

import (
	"errors"
	"io"

	"github.com/pixelpdf/pixelpdf/common"
)

// parse runs the token loop over the CMap data and fills `cmap`.
// Unknown operators are skipped; stray operands are discarded.
func (cmap *CMap) parse(p *cMapParser) error {
	var prev cmapObject
	for {
		o, err := p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			common.Log.Debug("ERROR: parsing CMap: %v", err)
			return err
		}
		switch t := o.(type) {
		case cmapOperand:
			switch t.Operand {
			case begincodespacerange:
				if err := cmap.parseCodespaceRange(p); err != nil {
					return err
				}
			case begincidchar:
				if err := cmap.parseCIDChar(p); err != nil {
					return err
				}
			case begincidrange:
				if err := cmap.parseCIDRange(p); err != nil {
					return err
				}
			case beginbfchar:
				if err := cmap.parseBfchar(p); err != nil {
					return err
				}
			case beginbfrange:
				if err := cmap.parseBfrange(p); err != nil {
					return err
				}
			case usecmap:
				if prev == nil {
					common.Log.Debug("ERROR: usecmap with no arg")
					return ErrBadCMap
				}
				name, ok := prev.(cmapName)
				if !ok {
					common.Log.Debug("ERROR: usecmap arg not a name %#v", prev)
					return ErrBadCMap
				}
				cmap.usecmap = name.Name
			case cidSystemInfo:
				// Some generators leave the "/" off CIDSystemInfo.
				if err := cmap.parseSystemInfo(p); err != nil {
					return err
				}
			}
		case cmapName:
			switch t.Name {
			case cidSystemInfo:
				if err := cmap.parseSystemInfo(p); err != nil {
					return err
				}
			case cmapname:
				if err := cmap.parseName(p); err != nil {
					return err
				}
			case cmaptype:
				if err := cmap.parseType(p); err != nil {
					return err
				}
			case cmapversion:
				if err := cmap.parseVersion(p); err != nil {
					return err
				}
			case wmode:
				if err := cmap.parseWMode(p); err != nil {
					return err
				}
			}
		}
		prev = o
	}

	cmap.sortCodespaces()
	return nil
}

// parseName parses a cmap name entry: /CMapName /83pv-RKSJ-H def
func (cmap *CMap) parseName(p *cMapParser) error {
	name := ""
	done := false
	// Badly formed CMaps have been seen with multiple operands before the
	// def; tolerate a generous number of them.
	for i := 0; i < 20 && !done; i++ {
		o, err := p.parseObject()
		if err != nil {
			return err
		}
		switch t := o.(type) {
		case cmapOperand:
			switch t.Operand {
			case "def":
				done = true
			default:
				// Not an error: some writers emit non-PostScript names with
				// embedded spaces; glue the pieces back together.
				common.Log.Debug("parseName: unexpected operand. o=%#v name=%#q", o, name)
				if name != "" {
					name = name + " " + t.Operand
				}
			}
		case cmapName:
			name = t.Name
		}
	}
	if !done {
		common.Log.Debug("ERROR: parseName: no def")
		return ErrBadCMap
	}
	cmap.name = name
	return nil
}

// parseType parses a cmap type entry: /CMapType 1 def
func (cmap *CMap) parseType(p *cMapParser) error {
	ctype := 0
	done := false
	for i := 0; i < 3 && !done; i++ {
		o, err := p.parseObject()
		if err != nil {
			return err
		}
		switch t := o.(type) {
		case cmapOperand:
			switch t.Operand {
			case "def":
				done = true
			default:
				common.Log.Debug("ERROR: parseType: state error. o=%#v", o)
				return ErrBadCMap
			}
		case cmapInt:
			ctype = int(t.val)
		}
	}
	cmap.ctype = ctype
	return nil
}

// parseWMode parses a writing mode entry: /WMode 1 def
func (cmap *CMap) parseWMode(p *cMapParser) error {
	mode := 0
	done := false
	for i := 0; i < 3 && !done; i++ {
		o, err := p.parseObject()
		if err != nil {
			return err
		}
		switch t := o.(type) {
		case cmapOperand:
			switch t.Operand {
			case "def":
				done = true
			default:
				common.Log.Debug("ERROR: parseWMode: state error. o=%#v", o)
				return ErrBadCMap
			}
		case cmapInt:
			mode = int(t.val)
		}
	}
	cmap.wmode = mode
	return nil
}

// parseVersion consumes a cmap version entry. The version itself is not
// needed; eating it reduces unhandled object warnings.
func (cmap *CMap) parseVersion(p *cMapParser) error {
	version := ""
	done := false
	for i := 0; i < 3 && !done; i++ {
		o, err := p.parseObject()
		if err != nil {
			return err
		}
		switch t := o.(type) {
		case cmapOperand:
			switch t.Operand {
			case "def":
				done = true
			default:
				common.Log.Debug("ERROR: parseVersion: state error. o=%#v", o)
				return ErrBadCMap
			}
		case cmapInt:
			version = t.String()
		case cmapFloat:
			version = t.String()
		case cmapString:
			version = t.String
		default:
			common.Log.Debug("ERROR: parseVersion: bad type. o=%#v", o)
		}
	}
	cmap.version = version
	return nil
}

// parseSystemInfo parses a CIDSystemInfo entry, either an inline dictionary
// or the begin/def key-value form.
func (cmap *CMap) parseSystemInfo(p *cMapParser) error {
	inDict := false
	inDef := false
	name := ""
	done := false
	systemInfo := CIDSystemInfo{}

	// 50 is a generous but arbitrary limit to prevent an endless loop on
	// badly formed cmap files.
	for i := 0; i < 50 && !done; i++ {
		o, err := p.parseObject()
		if err != nil {
			return err
		}
		switch t := o.(type) {
		case cmapDict:
			d := t.Dict
			r, ok := d["Registry"].(cmapString)
			if !ok {
				common.Log.Debug("ERROR: Bad CIDSystemInfo Registry")
				return ErrBadCMap
			}
			systemInfo.Registry = r.String

			r, ok = d["Ordering"].(cmapString)
			if !ok {
				common.Log.Debug("ERROR: Bad CIDSystemInfo Ordering")
				return ErrBadCMap
			}
			systemInfo.Ordering = r.String

			s, ok := d["Supplement"].(cmapInt)
			if !ok {
				common.Log.Debug("ERROR: Bad CIDSystemInfo Supplement")
				return ErrBadCMap
			}
			systemInfo.Supplement = int(s.val)
			done = true
		case cmapOperand:
			switch t.Operand {
			case "begin":
				inDict = true
			case "end":
				done = true
			case "def":
				inDef = false
			}
		case cmapName:
			if inDict {
				name = t.Name
				inDef = true
			}
		case cmapString:
			if inDef {
				switch name {
				case "Registry":
					systemInfo.Registry = t.String
				case "Ordering":
					systemInfo.Ordering = t.String
				}
			}
		case cmapInt:
			if inDef && name == "Supplement" {
				systemInfo.Supplement = int(t.val)
			}
		}
	}
	if !done {
		common.Log.Debug("ERROR: Parsed CIDSystemInfo dict incorrectly")
		return ErrBadCMap
	}

	cmap.systemInfo = systemInfo
	return nil
}

// parseCodespaceRange parses the codespace range section of a CMap.
func (cmap *CMap) parseCodespaceRange(p *cMapParser) error {
	for {
		o, err := p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}

		hexLow, ok := o.(cmapHexString)
		if !ok {
			if op, isOperand := o.(cmapOperand); isOperand {
				if op.Operand == endcodespacerange {
					return nil
				}
				return errors.New("unexpected operand")
			}
		}

		o, err = p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		hexHigh, ok := o.(cmapHexString)
		if !ok {
			return errors.New("non-hex high")
		}

		if hexLow.numBytes != hexHigh.numBytes {
			return errors.New("unequal number of bytes in range")
		}

		low := hexToCharCode(hexLow)
		high := hexToCharCode(hexHigh)
		if high < low {
			common.Log.Debug("ERROR: Bad codespace. low=0x%02x high=0x%02x", low, high)
			return ErrBadCMap
		}
		cmap.codespaces = append(cmap.codespaces, Codespace{
			NumBytes: hexHigh.numBytes,
			Low:      low,
			High:     high,
		})

		common.Log.Trace("Codespace low: 0x%X, high: 0x%X", low, high)
	}

	if len(cmap.codespaces) == 0 {
		common.Log.Debug("ERROR: No codespaces in cmap.")
		return ErrBadCMap
	}
	return nil
}

// parseCIDChar parses the single char CID section of a CMap: <code> cid
func (cmap *CMap) parseCIDChar(p *cMapParser) error {
	for {
		o, err := p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}

		hexCode, ok := o.(cmapHexString)
		if !ok {
			if op, isOperand := o.(cmapOperand); isOperand {
				if op.Operand == endcidchar {
					return nil
				}
				return errors.New("cid char code must be a hex string")
			}
		}

		o, err = p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		cid, ok := o.(cmapInt)
		if !ok {
			return errors.New("cid char value must be a decimal number")
		}
		if cid.val < 0 {
			return errors.New("invalid cid char value")
		}

		cmap.codeToCID[hexToCharCode(hexCode)] = CID(cid.val)
	}
	return nil
}

// parseCIDRange parses the CID range section of a CMap:
// <from> <to> firstCid
func (cmap *CMap) parseCIDRange(p *cMapParser) error {
	for {
		// Character code interval start.
		o, err := p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}

		hexStart, ok := o.(cmapHexString)
		if !ok {
			if op, isOperand := o.(cmapOperand); isOperand {
				if op.Operand == endcidrange {
					return nil
				}
				return errors.New("cid interval start must be a hex string")
			}
		}

		// Character code interval end.
		o, err = p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}

		hexEnd, ok := o.(cmapHexString)
		if !ok {
			return errors.New("cid interval end must be a hex string")
		}
		if hexStart.numBytes != hexEnd.numBytes {
			return errors.New("unequal number of bytes in range")
		}

		start := hexToCharCode(hexStart)
		end := hexToCharCode(hexEnd)
		if start > end {
			common.Log.Debug("ERROR: Invalid CID range. start=0x%02x end=0x%02x", start, end)
			return ErrBadCMap
		}

		// Interval start CID.
		o, err = p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}

		cidStart, ok := o.(cmapInt)
		if !ok {
			return errors.New("cid start value must be a decimal number")
		}
		if cidStart.val < 0 {
			return errors.New("invalid cid start value")
		}

		cmap.cidRanges = append(cmap.cidRanges, cidRange{
			numBytes: hexStart.numBytes,
			low:      start,
			high:     end,
			cid:      CID(cidStart.val),
		})

		common.Log.Trace("CID range: <0x%X> <0x%X> %d", start, end, cidStart.val)
	}
	return nil
}

// parseBfchar parses a bfchar section of a CMap file.
func (cmap *CMap) parseBfchar(p *cMapParser) error {
	for {
		// Src code.
		o, err := p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		var code CharCode

		switch v := o.(type) {
		case cmapOperand:
			if v.Operand == endbfchar {
				return nil
			}
			return errors.New("unexpected operand")
		case cmapHexString:
			code = hexToCharCode(v)
		default:
			return errors.New("unexpected type")
		}

		// Target code.
		o, err = p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		var target string
		switch v := o.(type) {
		case cmapOperand:
			if v.Operand == endbfchar {
				return nil
			}
			common.Log.Debug("ERROR: Unexpected operand. %#v", v)
			return ErrBadCMap
		case cmapHexString:
			target = hexToString(v)
		case cmapName:
			common.Log.Debug("ERROR: Unexpected name. %#v", v)
			target = MissingCodeString
		default:
			common.Log.Debug("ERROR: Unexpected type. %#v", o)
			return ErrBadCMap
		}

		cmap.codeToUnicode[code] = target
	}
	return nil
}

// parseBfrange parses a bfrange section of a CMap file. Entries are
// triplets <from> <to> target where target is either a hex string or an
// array of hex strings.
func (cmap *CMap) parseBfrange(p *cMapParser) error {
	for {
		// Src code from.
		var srcCodeFrom CharCode
		o, err := p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		switch v := o.(type) {
		case cmapOperand:
			if v.Operand == endbfrange {
				return nil
			}
			return errors.New("unexpected operand")
		case cmapHexString:
			srcCodeFrom = hexToCharCode(v)
		default:
			return errors.New("unexpected type")
		}

		// Src code to.
		var srcCodeTo CharCode
		o, err = p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		switch v := o.(type) {
		case cmapOperand:
			common.Log.Debug("ERROR: Incomplete bfrange triplet")
			return ErrBadCMap
		case cmapHexString:
			srcCodeTo = hexToCharCode(v)
		default:
			common.Log.Debug("ERROR: Unexpected type %T", o)
			return ErrBadCMap
		}
		if srcCodeTo < srcCodeFrom {
			common.Log.Debug("ERROR: Bad bfrange. from=0x%02x to=0x%02x", srcCodeFrom, srcCodeTo)
			return ErrBadCMap
		}

		// Target(s).
		o, err = p.parseObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		switch v := o.(type) {
		case cmapArray:
			if len(v.Array) != int(srcCodeTo-srcCodeFrom)+1 {
				common.Log.Debug("ERROR: Invalid number of items in array")
				return ErrBadCMap
			}
			for code := srcCodeFrom; code <= srcCodeTo; code++ {
				o := v.Array[code-srcCodeFrom]
				hexs, ok := o.(cmapHexString)
				if !ok {
					return errors.New("non-hex string in array")
				}
				cmap.codeToUnicode[code] = hexToString(hexs)
			}
		case cmapHexString:
			// <from> <to> <dst> maps [from,to] to [dst,dst+to-from].
			// The increment rolls over only in the last byte of the
			// destination (PDF 2.0 9.10.3).
			target := make([]byte, len(v.b))
			copy(target, v.b)
			for code := srcCodeFrom; code <= srcCodeTo; code++ {
				cmap.codeToUnicode[code] = hexToString(cmapHexString{
					numBytes: v.numBytes,
					b:        target,
				})
				if len(target) > 0 {
					target[len(target)-1]++
				}
			}
		default:
			common.Log.Debug("ERROR: Unexpected type %T", o)
			return ErrBadCMap
		}
	}
	return nil
}
