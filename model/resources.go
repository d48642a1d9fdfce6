/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/core"
)

// PageColorspaces resolves color space values within one page's resource
// context: named resources, the Default{Gray,RGB,CMYK} overrides and the
// document's output intent fallback for device spaces. Resolutions are
// cached by resource name on the page and by indirect reference on the
// document, so repeated q/Q brackets observe stable converters.
type PageColorspaces struct {
	doc       *Document
	resources *core.PdfObjectDictionary

	byName map[string]PdfColorspace
}

// NewPageColorspaces returns a resolver for the page with the given
// resource dictionary (its /ColorSpace subdictionary is consulted).
func NewPageColorspaces(doc *Document, resources *core.PdfObjectDictionary) *PageColorspaces {
	return &PageColorspaces{
		doc:       doc,
		resources: resources,
		byName:    make(map[string]PdfColorspace),
	}
}

// ResolveName resolves a color space named in a content stream: a device
// space name (subject to Default overrides), or a named entry of the
// page's ColorSpace resources.
func (page *PageColorspaces) ResolveName(name string) (PdfColorspace, error) {
	if cs, ok := page.byName[name]; ok {
		return cs, nil
	}

	cs, err := page.resolveName(name)
	if err != nil {
		return nil, err
	}
	page.byName[name] = cs
	return cs, nil
}

func (page *PageColorspaces) resolveName(name string) (PdfColorspace, error) {
	switch name {
	case "DeviceGray", "G":
		if cs, ok := page.defaultOverride("DefaultGray"); ok {
			return cs, nil
		}
		if cs := page.outputIntentFor(1); cs != nil {
			return cs, nil
		}
		return NewPdfColorspaceDeviceGray(), nil
	case "DeviceRGB", "RGB":
		if cs, ok := page.defaultOverride("DefaultRGB"); ok {
			return cs, nil
		}
		if cs := page.outputIntentFor(3); cs != nil {
			return cs, nil
		}
		return NewPdfColorspaceDeviceRGB(), nil
	case "DeviceCMYK", "CMYK":
		if cs, ok := page.defaultOverride("DefaultCMYK"); ok {
			return cs, nil
		}
		if cs := page.outputIntentFor(4); cs != nil {
			return cs, nil
		}
		return NewPdfColorspaceDeviceCMYK(), nil
	case "Pattern":
		return &PdfColorspacePattern{}, nil
	}

	if obj := page.namedResource(name); obj != nil {
		return page.Resolve(obj)
	}
	common.Log.Debug("ERROR: color space %q not in resources", name)
	return nil, core.ErrRangeError
}

// Resolve resolves a color space value (name, array or indirect
// reference) through the document cache.
func (page *PageColorspaces) Resolve(obj core.PdfObject) (PdfColorspace, error) {
	if name, ok := core.GetNameVal(obj); ok {
		return page.ResolveName(name)
	}
	if page.doc != nil {
		return page.doc.ColorspaceForObject(obj)
	}
	return NewPdfColorspaceFromPdfObject(obj)
}

// defaultOverride looks up a DefaultGray/DefaultRGB/DefaultCMYK entry of
// the page's ColorSpace resources.
func (page *PageColorspaces) defaultOverride(name string) (PdfColorspace, bool) {
	obj := page.namedResource(name)
	if obj == nil {
		return nil, false
	}
	cs, err := page.Resolve(obj)
	if err != nil {
		common.Log.Debug("ERROR: bad %s override: %v", name, err)
		return nil, false
	}
	return cs, true
}

// outputIntentFor returns the document output intent space when its
// component count matches the requested device space.
func (page *PageColorspaces) outputIntentFor(components int) PdfColorspace {
	if page.doc == nil || page.doc.OutputIntent == nil {
		return nil
	}
	if page.doc.OutputIntent.GetNumComponents() != components {
		return nil
	}
	return page.doc.OutputIntent
}

// namedResource fetches an entry of the page's ColorSpace resource
// subdictionary.
func (page *PageColorspaces) namedResource(name string) core.PdfObject {
	if page.resources == nil {
		return nil
	}
	csDict, ok := core.GetDict(page.resources.Get("ColorSpace"))
	if !ok {
		return nil
	}
	return csDict.Get(core.PdfObjectName(name))
}
