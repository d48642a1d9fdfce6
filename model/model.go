/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package model implements the PDF-facing layer of the renderer core: font
// resolution, color space resolution and their document-scoped caches. The
// binary font, color and image engines live under internal/; this package
// binds them to PDF dictionary semantics.
package model

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pixelpdf/pixelpdf/core"
	"github.com/pixelpdf/pixelpdf/internal/cmap"
)

var (
	// ErrRequiredAttributeMissing is returned when a required dictionary
	// entry is absent.
	ErrRequiredAttributeMissing = errors.New("required attribute missing")

	// ErrFontNotSupported is returned for font dictionaries the library
	// cannot load.
	ErrFontNotSupported = fmt.Errorf("unsupported font (%w)", core.ErrNotSupported)

	// ErrFontSubstitution signals that an embedded font program failed to
	// parse and the caller should render with a substitute typeface.
	ErrFontSubstitution = errors.New("embedded font requires substitution")

	// ErrColorOutOfRange is returned for color component values outside
	// the declared decode range.
	ErrColorOutOfRange = errors.New("color component out of range")
)

// Function is a PDF function object (types 0/2/3/4), evaluated for
// Separation and DeviceN tint transforms. The function engine is an
// external collaborator of the core.
type Function interface {
	Evaluate(inputs []float64) ([]float64, error)
}

// objectKey is the (object number, generation) identity of an indirect
// object, used as a document cache key.
type objectKey struct {
	num, gen int64
}

// Document owns the caches shared by all pages of one document: fonts,
// color spaces and CMaps, keyed by indirect reference identity. Entries
// are immutable after first insertion; a mutex guards the get-or-insert.
// Distinct documents can be decoded from different goroutines as long as
// each has its own Document.
type Document struct {
	mu sync.Mutex

	fonts       map[objectKey]*PdfFont
	colorSpaces map[objectKey]PdfColorspace
	cmaps       map[string]*cmap.CMap

	// OutputIntent is the document's output intent ICC based color space,
	// used as a fallback for Device spaces.
	OutputIntent PdfColorspace
}

// NewDocument returns an empty document cache set.
func NewDocument() *Document {
	return &Document{
		fonts:       make(map[objectKey]*PdfFont),
		colorSpaces: make(map[objectKey]PdfColorspace),
		cmaps:       make(map[string]*cmap.CMap),
	}
}

// FontForObject resolves `obj` to a font, caching by indirect reference.
func (doc *Document) FontForObject(obj core.PdfObject) (*PdfFont, error) {
	num, gen, hasKey := core.GetObjectReference(obj)
	if hasKey {
		doc.mu.Lock()
		if font, ok := doc.fonts[objectKey{num, gen}]; ok {
			doc.mu.Unlock()
			return font, nil
		}
		doc.mu.Unlock()
	}

	font, err := NewPdfFontFromPdfObject(obj)
	if err != nil {
		return nil, err
	}
	if hasKey {
		doc.mu.Lock()
		if cached, ok := doc.fonts[objectKey{num, gen}]; ok {
			font = cached
		} else {
			doc.fonts[objectKey{num, gen}] = font
		}
		doc.mu.Unlock()
	}
	return font, nil
}

// ColorspaceForObject resolves `obj` to a color space, caching by indirect
// reference.
func (doc *Document) ColorspaceForObject(obj core.PdfObject) (PdfColorspace, error) {
	num, gen, hasKey := core.GetObjectReference(obj)
	if hasKey {
		doc.mu.Lock()
		if cs, ok := doc.colorSpaces[objectKey{num, gen}]; ok {
			doc.mu.Unlock()
			return cs, nil
		}
		doc.mu.Unlock()
	}

	cs, err := NewPdfColorspaceFromPdfObject(obj)
	if err != nil {
		return nil, err
	}
	if hasKey {
		doc.mu.Lock()
		if cached, ok := doc.colorSpaces[objectKey{num, gen}]; ok {
			cs = cached
		} else {
			doc.colorSpaces[objectKey{num, gen}] = cs
		}
		doc.mu.Unlock()
	}
	return cs, nil
}

// PredefinedCMap loads a predefined CMap by name, caching document-wide.
// Identity-H and Identity-V are built in; other predefined CMaps resolve
// through the registered loader.
func (doc *Document) PredefinedCMap(name string) (*cmap.CMap, error) {
	doc.mu.Lock()
	if cm, ok := doc.cmaps[name]; ok {
		doc.mu.Unlock()
		return cm, nil
	}
	doc.mu.Unlock()

	cm, err := loadPredefinedCMap(name)
	if err != nil {
		return nil, err
	}
	doc.mu.Lock()
	doc.cmaps[name] = cm
	doc.mu.Unlock()
	return cm, nil
}
