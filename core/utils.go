/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

import (
	"github.com/pixelpdf/pixelpdf/common"
)

// GetNumberAsFloat returns the contents of `obj` as a float if it is an
// integer or float, or an error if it isn't.
func GetNumberAsFloat(obj PdfObject) (float64, error) {
	switch t := TraceToDirectObject(obj).(type) {
	case *PdfObjectFloat:
		return float64(*t), nil
	case *PdfObjectInteger:
		return float64(*t), nil
	}
	return 0, ErrNotANumber
}

// IsNullObject returns true if `obj` is a PdfObjectNull.
func IsNullObject(obj PdfObject) bool {
	_, isNull := TraceToDirectObject(obj).(*PdfObjectNull)
	return isNull
}

// GetBool returns the *PdfObjectBool object that is represented by a
// PdfObject directly or indirectly within an indirect object. The bool flag
// indicates whether a match was found.
func GetBool(obj PdfObject) (bo *PdfObjectBool, found bool) {
	bo, found = TraceToDirectObject(obj).(*PdfObjectBool)
	return bo, found
}

// GetBoolVal returns the bool value within a *PdObjectBool represented by an
// PdfObject interface directly or indirectly. If the PdfObject does not
// represent a bool value, a default value of false is returned (found = false also).
func GetBoolVal(obj PdfObject) (b bool, found bool) {
	bo, found := TraceToDirectObject(obj).(*PdfObjectBool)
	if found {
		return bool(*bo), true
	}
	return false, false
}

// GetInt returns the *PdfObjectInteger object that is represented by a
// PdfObject either directly or indirectly within an indirect object. The bool
// flag indicates whether a match was found.
func GetInt(obj PdfObject) (into *PdfObjectInteger, found bool) {
	into, found = TraceToDirectObject(obj).(*PdfObjectInteger)
	return into, found
}

// GetIntVal returns the int value represented by the PdfObject directly or
// indirectly if contained within an indirect object. On type mismatch the
// found bool flag is false and the value is 0.
func GetIntVal(obj PdfObject) (val int, found bool) {
	into, found := TraceToDirectObject(obj).(*PdfObjectInteger)
	if found && into != nil {
		return int(*into), true
	}
	return 0, false
}

// GetFloatVal returns the float64 value represented by the PdfObject directly
// or indirectly if contained within an indirect object. On type mismatch the
// found bool flag returned is false and the value is 0.
func GetFloatVal(obj PdfObject) (val float64, found bool) {
	fo, found := TraceToDirectObject(obj).(*PdfObjectFloat)
	if found {
		return float64(*fo), true
	}
	return 0, false
}

// GetString returns the *PdfObjectString represented by the PdfObject
// directly or indirectly within an indirect object. On type mismatch the
// found bool flag returned is false and a nil pointer is returned.
func GetString(obj PdfObject) (so *PdfObjectString, found bool) {
	so, found = TraceToDirectObject(obj).(*PdfObjectString)
	return so, found
}

// GetStringVal returns the string value represented by the PdfObject directly
// or indirectly if contained within an indirect object. On type mismatch the
// found bool flag returned is false and an empty string is returned.
func GetStringVal(obj PdfObject) (val string, found bool) {
	so, found := TraceToDirectObject(obj).(*PdfObjectString)
	if found {
		return so.Str(), true
	}
	return "", false
}

// GetStringBytes is like GetStringVal except that it returns the string as a
// []byte.  It is for convenience.
func GetStringBytes(obj PdfObject) (bytes []byte, found bool) {
	so, found := TraceToDirectObject(obj).(*PdfObjectString)
	if found {
		return so.Bytes(), true
	}
	return nil, false
}

// GetName returns the *PdfObjectName represented by the PdfObject directly or
// indirectly within an indirect object. On type mismatch the found bool flag
// returned is false and a nil pointer is returned.
func GetName(obj PdfObject) (name *PdfObjectName, found bool) {
	name, found = TraceToDirectObject(obj).(*PdfObjectName)
	return name, found
}

// GetNameVal returns the string value represented by the PdfObject directly
// or indirectly if contained within an indirect object. On type mismatch the
// found bool flag returned is false and an empty string is returned.
func GetNameVal(obj PdfObject) (val string, found bool) {
	name, found := TraceToDirectObject(obj).(*PdfObjectName)
	if found {
		return string(*name), true
	}
	return "", false
}

// GetArray returns the *PdfObjectArray represented by the PdfObject directly
// or indirectly within an indirect object. On type mismatch the found bool
// flag returned is false and a nil pointer is returned.
func GetArray(obj PdfObject) (arr *PdfObjectArray, found bool) {
	arr, found = TraceToDirectObject(obj).(*PdfObjectArray)
	return arr, found
}

// GetDict returns the *PdfObjectDictionary represented by the PdfObject
// directly or indirectly within an indirect object. On type mismatch the
// found bool flag returned is false and a nil pointer is returned.
func GetDict(obj PdfObject) (dict *PdfObjectDictionary, found bool) {
	switch t := TraceToDirectObject(obj).(type) {
	case *PdfObjectDictionary:
		return t, true
	case *PdfObjectStream:
		return t.PdfObjectDictionary, true
	}
	return nil, false
}

// GetStream returns the *PdfObjectStream represented by the PdfObject. On
// type mismatch the found bool flag returned is false and a nil pointer is
// returned.
func GetStream(obj PdfObject) (stream *PdfObjectStream, found bool) {
	obj = ResolveReference(obj)
	if iobj, isInd := obj.(*PdfIndirectObject); isInd {
		obj = iobj.PdfObject
	}
	stream, found = obj.(*PdfObjectStream)
	return stream, found
}

// GetObjectReference returns the (object number, generation) identity of
// `obj` if it is an indirect object or reference, for use as a cache key.
func GetObjectReference(obj PdfObject) (objNum int64, gen int64, ok bool) {
	switch t := obj.(type) {
	case *PdfObjectReference:
		return t.ObjectNumber, t.GenerationNumber, true
	case *PdfIndirectObject:
		return t.ObjectNumber, t.GenerationNumber, true
	case *PdfObjectStream:
		return t.ObjectNumber, t.GenerationNumber, true
	}
	common.Log.Trace("GetObjectReference: not an indirect object %T", obj)
	return 0, 0, false
}
