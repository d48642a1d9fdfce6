/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

import "errors"

const (
	begincodespacerange = "begincodespacerange"
	endcodespacerange   = "endcodespacerange"
	begincidchar        = "begincidchar"
	endcidchar          = "endcidchar"
	begincidrange       = "begincidrange"
	endcidrange         = "endcidrange"
	beginbfchar         = "beginbfchar"
	endbfchar           = "endbfchar"
	beginbfrange        = "beginbfrange"
	endbfrange          = "endbfrange"
	usecmap             = "usecmap"
	cmapname            = "CMapName"
	cmaptype            = "CMapType"
	cmapversion         = "CMapVersion"
	cidSystemInfo       = "CIDSystemInfo"
	wmode               = "WMode"
)

var (
	// ErrBadCMap is returned on a structural problem in a CMap stream.
	ErrBadCMap = errors.New("bad cmap")

	// ErrBadCMapComment describes a comment that does not start with '%'.
	// The parser does not return it and does not check for a leading %!PS.
	ErrBadCMapComment = errors.New("comment should start with %")

	// ErrBadCMapDict is returned on a malformed inline dictionary.
	ErrBadCMapDict = errors.New("invalid dict")

	// ErrCMapDepth is returned when a usecmap chain exceeds the maximum
	// nesting depth.
	ErrCMapDepth = errors.New("usecmap chain too deep")
)

const (
	// Maximum number of possible bytes per code.
	maxCodeLen = 4

	// maxUseCMapDepth bounds usecmap chains; deeper chains are rejected.
	maxUseCMapDepth = 16

	// MissingCodeRune replaces runes that can't be decoded. '�' = �.
	MissingCodeRune = '�' // �

	// MissingCodeString replaces strings that can't be decoded.
	MissingCodeString = string(MissingCodeRune)
)
