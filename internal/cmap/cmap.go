/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pixelpdf/pixelpdf/common"
)

// CharCode is the big-endian integer value of a character code.
type CharCode uint32

// CID is a character identifier, the glyph selector of a CID-keyed font.
type CID uint32

// CharacterCode is a character code extracted from a content stream string,
// together with the number of bytes it occupied. Codes are compared as
// big-endian integer values of equal-length byte sequences.
type CharacterCode struct {
	Val      CharCode
	NumBytes int
}

// Bytes returns the big-endian byte representation of the code.
func (c CharacterCode) Bytes() []byte {
	b := make([]byte, c.NumBytes)
	for i := 0; i < c.NumBytes; i++ {
		b[i] = byte(c.Val >> uint(8*(c.NumBytes-i-1)))
	}
	return b
}

// String returns a description of `c`.
func (c CharacterCode) String() string {
	return fmt.Sprintf("<%0*x>", 2*c.NumBytes, uint32(c.Val))
}

// Codespace represents a single codespace range used in the CMap.
type Codespace struct {
	NumBytes int
	Low      CharCode
	High     CharCode
}

// CIDSystemInfo contains information for identifying the character
// collection used by a CID font, e.g. Adobe-Japan1-6.
type CIDSystemInfo struct {
	Registry   string
	Ordering   string
	Supplement int
}

// String returns a human readable description of `info`.
// It looks like "Adobe-Japan2-000".
func (info CIDSystemInfo) String() string {
	return fmt.Sprintf("%s-%s-%03d", info.Registry, info.Ordering, info.Supplement)
}

// cidRange is a begincidrange entry: codes in [low, high] map to consecutive
// CIDs starting at cid.
type cidRange struct {
	numBytes int
	low      CharCode
	high     CharCode
	cid      CID
}

// CMap maps character codes to CIDs or to Unicode strings.
// References:
//
//	https://www.adobe.com/content/dam/acom/en/devnet/acrobat/pdfs/5411.ToUnicode.pdf
//	https://github.com/adobe-type-tools/cmap-resources/releases
type CMap struct {
	name       string
	ctype      int
	version    string
	usecmap    string // Parent CMap name; merged in during load.
	wmode      int    // 0 = horizontal, 1 = vertical.
	systemInfo CIDSystemInfo

	// identity is set for the predefined Identity-H/V CMaps, where the CID
	// is the big-endian integer value of the code bytes.
	identity bool

	codespaces []Codespace

	// Single begincidchar entries. Ranges are kept separate so lookup can
	// try the direct map first and fall back to range arithmetic.
	codeToCID map[CharCode]CID
	cidRanges []cidRange

	// ToUnicode entries.
	codeToUnicode map[CharCode]string
}

// ParentLoader resolves a predefined CMap referenced through usecmap.
// `depth` is the nesting depth of the chain being resolved; loaders that
// re-enter the parser must pass it on through LoadCmapFromDataDepth so the
// chain bound keeps holding across parse/load boundaries.
type ParentLoader func(name string, depth int) (*CMap, error)

// newCMap returns an initialized CMap.
func newCMap() *CMap {
	return &CMap{
		codeToCID:     make(map[CharCode]CID),
		codeToUnicode: make(map[CharCode]string),
	}
}

// NewIdentityCMap returns the predefined Identity-H or Identity-V CMap.
func NewIdentityCMap(name string) *CMap {
	cmap := newCMap()
	cmap.name = name
	cmap.ctype = 1
	cmap.identity = true
	cmap.codespaces = []Codespace{{NumBytes: 2, Low: 0, High: 0xffff}}
	if strings.HasSuffix(name, "-V") {
		cmap.wmode = 1
	}
	cmap.systemInfo = CIDSystemInfo{Registry: "Adobe", Ordering: "Identity"}
	return cmap
}

// IsIdentityName returns true if `name` names one of the identity CMaps.
func IsIdentityName(name string) bool {
	return name == "Identity-H" || name == "Identity-V"
}

// LoadCmapFromData parses the in-memory cmap `data` and returns the
// resulting CMap. The `loadParent` hook resolves predefined CMaps referenced
// through usecmap; it may be nil, in which case usecmap is ignored. usecmap
// chains deeper than 16 (including cycles) are rejected with ErrCMapDepth.
func LoadCmapFromData(data []byte, loadParent ParentLoader) (*CMap, error) {
	return LoadCmapFromDataDepth(data, loadParent, 0)
}

// LoadCmapFromDataDepth is LoadCmapFromData for parent loaders that
// re-enter the parser while resolving a usecmap chain: `depth` is the
// nesting depth the loader was invoked with.
func LoadCmapFromDataDepth(data []byte, loadParent ParentLoader, depth int) (*CMap, error) {
	if depth > maxUseCMapDepth {
		common.Log.Debug("ERROR: usecmap chain deeper than %d", maxUseCMapDepth)
		return nil, ErrCMapDepth
	}

	cmap := newCMap()
	if err := cmap.parse(newCMapParser(data)); err != nil {
		return nil, err
	}

	if cmap.usecmap != "" && loadParent != nil {
		parent, err := loadParent(cmap.usecmap, depth+1)
		if err == ErrCMapDepth {
			return nil, err
		}
		if err != nil {
			common.Log.Debug("ERROR: could not load parent CMap %q: %v", cmap.usecmap, err)
		} else if parent != nil {
			cmap.inherit(parent)
		}
	}
	return cmap, nil
}

// inherit merges the codespaces and mappings of `parent` into `cmap`,
// with local entries taking precedence.
func (cmap *CMap) inherit(parent *CMap) {
	cmap.codespaces = append(cmap.codespaces, parent.codespaces...)
	for code, cid := range parent.codeToCID {
		if _, ok := cmap.codeToCID[code]; !ok {
			cmap.codeToCID[code] = cid
		}
	}
	cmap.cidRanges = append(cmap.cidRanges, parent.cidRanges...)
	for code, s := range parent.codeToUnicode {
		if _, ok := cmap.codeToUnicode[code]; !ok {
			cmap.codeToUnicode[code] = s
		}
	}
	if parent.identity {
		cmap.identity = true
	}
}

// Name returns the name of the CMap.
func (cmap *CMap) Name() string {
	return cmap.name
}

// Type returns the CMap type.
func (cmap *CMap) Type() int {
	return cmap.ctype
}

// WMode returns the writing mode of the CMap: 0 for horizontal, 1 for
// vertical.
func (cmap *CMap) WMode() int {
	return cmap.wmode
}

// SystemInfo returns the CIDSystemInfo of the CMap.
func (cmap *CMap) SystemInfo() CIDSystemInfo {
	return cmap.systemInfo
}

// HasCodespaces returns true if the CMap declares codespace ranges. Without
// them callers fall back to fixed 2-byte codes.
func (cmap *CMap) HasCodespaces() bool {
	return len(cmap.codespaces) > 0
}

// Codespaces returns the codespace ranges of the CMap.
func (cmap *CMap) Codespaces() []Codespace {
	return cmap.codespaces
}

// String returns a human readable description of `cmap`.
func (cmap *CMap) String() string {
	si := cmap.systemInfo
	parts := []string{
		fmt.Sprintf("type:%d", cmap.ctype),
	}
	if cmap.version != "" {
		parts = append(parts, fmt.Sprintf("version:%s", cmap.version))
	}
	if cmap.usecmap != "" {
		parts = append(parts, fmt.Sprintf("usecmap:%#q", cmap.usecmap))
	}
	parts = append(parts, fmt.Sprintf("systemInfo:%s", si.String()))
	if len(cmap.codespaces) > 0 {
		parts = append(parts, fmt.Sprintf("codespaces:%d", len(cmap.codespaces)))
	}
	if len(cmap.codeToUnicode) > 0 {
		parts = append(parts, fmt.Sprintf("codeToUnicode:%d", len(cmap.codeToUnicode)))
	}
	return fmt.Sprintf("CMAP{%#q %s}", cmap.name, strings.Join(parts, " "))
}

// sortCodespaces orders codespaces by byte length, shortest first. matchCode
// tries every length and keeps the longest match, whatever the order.
func (cmap *CMap) sortCodespaces() {
	sort.SliceStable(cmap.codespaces, func(i, j int) bool {
		return cmap.codespaces[i].NumBytes < cmap.codespaces[j].NumBytes
	})
}

// BytesToCharcodes converts the byte array `data` to a list of character
// codes using the codespace ranges of `cmap`.
//
// At each position the longest codespace match wins. When no codespace
// matches, a single byte is consumed and emitted as a 1-byte code so that
// the scan can resynchronize; the bool return is false in that case.
// Concatenating the bytes of the returned codes always reconstructs `data`.
func (cmap *CMap) BytesToCharcodes(data []byte) ([]CharacterCode, bool) {
	var codes []CharacterCode
	if !cmap.HasCodespaces() {
		// Fixed 2-byte codes.
		for i := 0; i < len(data); i += 2 {
			code := CharacterCode{NumBytes: 2}
			if i+1 < len(data) {
				code.Val = CharCode(data[i])<<8 | CharCode(data[i+1])
			} else {
				common.Log.Debug("ERROR: BytesToCharcodes. Odd length data=[% 02x]", data)
				code.Val = CharCode(data[i]) << 8
			}
			codes = append(codes, code)
		}
		return codes, true
	}

	matched := true
	for i := 0; i < len(data); {
		code, ok := cmap.matchCode(data[i:])
		if !ok {
			// Resynchronize by consuming a single byte.
			common.Log.Debug("ERROR: No codespace matches byte 0x%02x at offset %d", data[i], i)
			code = CharacterCode{Val: CharCode(data[i]), NumBytes: 1}
			matched = false
		}
		codes = append(codes, code)
		i += code.NumBytes
	}
	return codes, matched
}

// matchCode greedily matches the longest codespace prefix of `data`.
func (cmap *CMap) matchCode(data []byte) (CharacterCode, bool) {
	var val CharCode
	var best CharacterCode
	found := false
	for n := 1; n <= maxCodeLen && n <= len(data); n++ {
		val = val<<8 | CharCode(data[n-1])
		if cmap.inCodespace(val, n) {
			best = CharacterCode{Val: val, NumBytes: n}
			found = true
		}
	}
	return best, found
}

// inCodespace returns true if `code` is inside a `numBytes` codespace range.
func (cmap *CMap) inCodespace(code CharCode, numBytes int) bool {
	for _, cs := range cmap.codespaces {
		if cs.NumBytes == numBytes && cs.Low <= code && code <= cs.High {
			return true
		}
	}
	return false
}

// CIDForCode maps the character code to a character identifier. The direct
// map from begincidchar entries is consulted first, then the cid ranges.
// The bool return is false when the CMap has no mapping for the code;
// callers substitute CID 0.
func (cmap *CMap) CIDForCode(code CharacterCode) (CID, bool) {
	if cmap.identity {
		return CID(code.Val), true
	}
	if cid, ok := cmap.codeToCID[code.Val]; ok {
		return cid, true
	}
	for _, r := range cmap.cidRanges {
		if r.numBytes == code.NumBytes && r.low <= code.Val && code.Val <= r.high {
			return r.cid + CID(code.Val-r.low), true
		}
	}
	return 0, false
}

// UnicodeForCode returns the unicode string matching character code `code`
// in a ToUnicode CMap.
func (cmap *CMap) UnicodeForCode(code CharCode) (string, bool) {
	s, ok := cmap.codeToUnicode[code]
	return s, ok
}

// CharcodeBytesToUnicode converts a byte array of charcodes to a unicode
// string representation, along with a count of codes that could not be
// converted.
func (cmap *CMap) CharcodeBytesToUnicode(data []byte) (string, int) {
	codes, _ := cmap.BytesToCharcodes(data)
	var (
		parts     []string
		numMisses int
	)
	for _, code := range codes {
		s, ok := cmap.codeToUnicode[code.Val]
		if !ok {
			s = MissingCodeString
			numMisses++
		}
		parts = append(parts, s)
	}
	if numMisses > 0 {
		common.Log.Debug("ERROR: CharcodeBytesToUnicode. Not in map. data=[% 02x] misses=%d cmap=%s",
			data, numMisses, cmap)
	}
	return strings.Join(parts, ""), numMisses
}
