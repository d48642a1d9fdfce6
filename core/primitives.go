/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

import (
	"fmt"
	"strings"

	"github.com/pixelpdf/pixelpdf/common"
)

// PdfObject is an interface which all primitive PDF objects must implement.
type PdfObject interface {
	// String outputs a string representation of the primitive. Used for debugging.
	String() string
}

// PdfObjectBool represents the primitive PDF boolean object.
type PdfObjectBool bool

// PdfObjectInteger represents the primitive PDF integer numerical object.
type PdfObjectInteger int64

// PdfObjectFloat represents the primitive PDF floating point numerical object.
type PdfObjectFloat float64

// PdfObjectString represents the primitive PDF string object.
type PdfObjectString struct {
	val   string
	isHex bool
}

// PdfObjectName represents the primitive PDF name object.
type PdfObjectName string

// PdfObjectArray represents the primitive PDF array object.
type PdfObjectArray struct {
	vec []PdfObject
}

// PdfObjectDictionary represents the primitive PDF dictionary/map object.
type PdfObjectDictionary struct {
	dict map[PdfObjectName]PdfObject
	keys []PdfObjectName
}

// PdfObjectNull represents the primitive PDF null object.
type PdfObjectNull struct{}

// PdfObjectReference represents the primitive PDF reference object.
type PdfObjectReference struct {
	ObjectNumber     int64
	GenerationNumber int64

	// resolved is the object the reference points to, filled in by the
	// object parser when the document is loaded.
	resolved PdfObject
}

// PdfIndirectObject represents the primitive PDF indirect object.
type PdfIndirectObject struct {
	PdfObjectReference
	PdfObject
}

// PdfObjectStream represents the primitive PDF Object stream.
type PdfObjectStream struct {
	PdfObjectReference
	*PdfObjectDictionary
	Stream []byte
}

// MakeDict creates and returns an empty PdfObjectDictionary.
func MakeDict() *PdfObjectDictionary {
	return &PdfObjectDictionary{
		dict: map[PdfObjectName]PdfObject{},
	}
}

// MakeName creates a PdfObjectName from a string.
func MakeName(s string) *PdfObjectName {
	name := PdfObjectName(s)
	return &name
}

// MakeInteger creates a PdfObjectInteger from an int64.
func MakeInteger(val int64) *PdfObjectInteger {
	num := PdfObjectInteger(val)
	return &num
}

// MakeFloat creates an PdfObjectFloat from a float64.
func MakeFloat(val float64) *PdfObjectFloat {
	num := PdfObjectFloat(val)
	return &num
}

// MakeBool creates a PdfObjectBool from a bool value.
func MakeBool(val bool) *PdfObjectBool {
	v := PdfObjectBool(val)
	return &v
}

// MakeString creates an PdfObjectString from a string.
// NOTE: PDF does not use utf-8 internally, most commonly byte values are used
// that map to glyphs through font encodings.
func MakeString(s string) *PdfObjectString {
	return &PdfObjectString{val: s}
}

// MakeStringFromBytes creates an PdfObjectString from a byte array.
func MakeStringFromBytes(data []byte) *PdfObjectString {
	return MakeString(string(data))
}

// MakeHexString creates an PdfObjectString from a string intended for output
// as a hexadecimal string.
func MakeHexString(s string) *PdfObjectString {
	return &PdfObjectString{val: s, isHex: true}
}

// MakeNull creates an PdfObjectNull.
func MakeNull() *PdfObjectNull {
	return &PdfObjectNull{}
}

// MakeArray creates an PdfObjectArray from a list of PdfObjects.
func MakeArray(objects ...PdfObject) *PdfObjectArray {
	return &PdfObjectArray{vec: objects}
}

// MakeArrayFromIntegers creates an PdfObjectArray from a slice of ints, where
// each array element is an PdfObjectInteger.
func MakeArrayFromIntegers(vals []int) *PdfObjectArray {
	array := MakeArray()
	for _, val := range vals {
		array.Append(MakeInteger(int64(val)))
	}
	return array
}

// MakeArrayFromFloats creates an PdfObjectArray from a slice of float64s,
// where each array element is an PdfObjectFloat.
func MakeArrayFromFloats(vals []float64) *PdfObjectArray {
	array := MakeArray()
	for _, val := range vals {
		array.Append(MakeFloat(val))
	}
	return array
}

// MakeIndirectObject creates an PdfIndirectObject with a specified direct
// object PdfObject.
func MakeIndirectObject(obj PdfObject) *PdfIndirectObject {
	ind := &PdfIndirectObject{}
	ind.PdfObject = obj
	return ind
}

// MakeStream creates an PdfObjectStream with the specified contents and
// stream dictionary `d`. A nil dictionary gets an empty one.
func MakeStream(contents []byte, d *PdfObjectDictionary) *PdfObjectStream {
	stream := &PdfObjectStream{}
	if d == nil {
		d = MakeDict()
	}
	d.Set("Length", MakeInteger(int64(len(contents))))
	stream.PdfObjectDictionary = d
	stream.Stream = contents
	return stream
}

// String returns the state of the bool as "true" or "false".
func (b *PdfObjectBool) String() string {
	if *b {
		return "true"
	}
	return "false"
}

// String returns a string representation of the PdfObjectInteger.
func (i *PdfObjectInteger) String() string {
	return fmt.Sprintf("%d", *i)
}

// String returns a string representation of the PdfObjectFloat.
func (f *PdfObjectFloat) String() string {
	return fmt.Sprintf("%f", *f)
}

// String returns a string representation of `str`.
func (str *PdfObjectString) String() string {
	return str.val
}

// Str returns the string value of `str`.
func (str *PdfObjectString) Str() string {
	return str.val
}

// Bytes returns the PdfObjectString content as a []byte array.
func (str *PdfObjectString) Bytes() []byte {
	return []byte(str.val)
}

// String returns a string representation of `name`.
func (name *PdfObjectName) String() string {
	return string(*name)
}

// Elements returns a slice of the PdfObject elements in the array.
func (array *PdfObjectArray) Elements() []PdfObject {
	if array == nil {
		return nil
	}
	return array.vec
}

// Len returns the number of elements in the array.
func (array *PdfObjectArray) Len() int {
	if array == nil {
		return 0
	}
	return len(array.vec)
}

// Get returns the i-th element of the array or nil if out of bounds (by index).
func (array *PdfObjectArray) Get(i int) PdfObject {
	if array == nil || i >= len(array.vec) || i < 0 {
		return nil
	}
	return array.vec[i]
}

// Set sets the PdfObject at index i of the array. An error is returned if the index is outside bounds.
func (array *PdfObjectArray) Set(i int, obj PdfObject) error {
	if i < 0 || i >= len(array.vec) {
		return ErrRangeError
	}
	array.vec[i] = obj
	return nil
}

// Append appends PdfObject(s) to the array.
func (array *PdfObjectArray) Append(objects ...PdfObject) {
	if array == nil {
		common.Log.Debug("Warn - Attempt to append to a nil array")
		return
	}
	array.vec = append(array.vec, objects...)
}

// String returns a string representation of the PdfObjectArray.
func (array *PdfObjectArray) String() string {
	outStr := "["
	for ind, o := range array.Elements() {
		outStr += o.String()
		if ind < array.Len()-1 {
			outStr += ", "
		}
	}
	outStr += "]"
	return outStr
}

// ToFloat64Array returns a slice of all elements in the array as a float64
// slice.  An error is returned if the array contains non-numeric objects.
func (array *PdfObjectArray) ToFloat64Array() ([]float64, error) {
	var vals []float64
	for _, obj := range array.Elements() {
		switch t := TraceToDirectObject(obj).(type) {
		case *PdfObjectInteger:
			vals = append(vals, float64(*t))
		case *PdfObjectFloat:
			vals = append(vals, float64(*t))
		default:
			return nil, ErrTypeError
		}
	}
	return vals, nil
}

// ToIntegerArray returns a slice of all array elements as an int slice. An
// error is returned if the array non-integer objects. Each element can only
// be PdfObjectInteger.
func (array *PdfObjectArray) ToIntegerArray() ([]int, error) {
	var vals []int
	for _, obj := range array.Elements() {
		if number, is := TraceToDirectObject(obj).(*PdfObjectInteger); is {
			vals = append(vals, int(*number))
		} else {
			return nil, ErrTypeError
		}
	}
	return vals, nil
}

// Set sets the dictionary's key -> val mapping entry. Overwrites if key
// already set.
func (d *PdfObjectDictionary) Set(key PdfObjectName, val PdfObject) {
	if _, found := d.dict[key]; !found {
		d.keys = append(d.keys, key)
	}
	d.dict[key] = val
}

// Get returns the PdfObject corresponding to the specified key.
// Returns a nil value if the key is not set.
func (d *PdfObjectDictionary) Get(key PdfObjectName) PdfObject {
	if d == nil {
		return nil
	}
	val, has := d.dict[key]
	if !has {
		return nil
	}
	return val
}

// Keys returns the list of keys in the dictionary in insertion order.
func (d *PdfObjectDictionary) Keys() []PdfObjectName {
	if d == nil {
		return nil
	}
	return d.keys
}

// Remove removes an element specified by key.
func (d *PdfObjectDictionary) Remove(key PdfObjectName) {
	idx := -1
	for i, k := range d.keys {
		if k == key {
			idx = i
			break
		}
	}
	if idx >= 0 {
		d.keys = append(d.keys[:idx], d.keys[idx+1:]...)
		delete(d.dict, key)
	}
}

// SetIfNotNil sets the dictionary's key -> val mapping entry. Does not
// overwrite if the value is nil.
func (d *PdfObjectDictionary) SetIfNotNil(key PdfObjectName, val PdfObject) {
	if val == nil {
		return
	}
	switch t := val.(type) {
	case *PdfObjectNull:
		return
	case *PdfObjectArray:
		if t == nil {
			return
		}
	case *PdfObjectDictionary:
		if t == nil {
			return
		}
	}
	d.Set(key, val)
}

// String returns a string describing `d`.
func (d *PdfObjectDictionary) String() string {
	var b strings.Builder
	b.WriteString("Dict(")
	for _, k := range d.keys {
		v := d.dict[k]
		b.WriteString(`"` + k.String() + `": `)
		b.WriteString(v.String())
		b.WriteString(", ")
	}
	b.WriteString(")")
	return b.String()
}

// String returns a string describing `null`.
func (null *PdfObjectNull) String() string {
	return "null"
}

// String returns a string describing `ref`.
func (ref *PdfObjectReference) String() string {
	return fmt.Sprintf("Ref(%d %d)", ref.ObjectNumber, ref.GenerationNumber)
}

// SetResolved binds `obj` as the object the reference points to.
func (ref *PdfObjectReference) SetResolved(obj PdfObject) {
	ref.resolved = obj
}

// Resolve resolves the reference and returns the indirect or stream object.
// If the reference cannot be resolved, a *PdfObjectNull object is returned.
func (ref *PdfObjectReference) Resolve() PdfObject {
	if ref.resolved == nil {
		return MakeNull()
	}
	return ref.resolved
}

// String returns a string describing `ind`.
func (ind *PdfIndirectObject) String() string {
	// Avoid printing out the object, can cause problems with circular
	// references.
	return fmt.Sprintf("IObject:%d", ind.ObjectNumber)
}

// String returns a string describing `stream`.
func (stream *PdfObjectStream) String() string {
	return fmt.Sprintf("Object stream %d: %s", stream.ObjectNumber, stream.PdfObjectDictionary)
}

// ResolveReference resolves reference if `o` is a *PdfObjectReference and
// returns the object referenced to. Otherwise returns back `o`.
func ResolveReference(obj PdfObject) PdfObject {
	if ref, isRef := obj.(*PdfObjectReference); isRef {
		return ref.Resolve()
	}
	return obj
}

// TraceToDirectObject traces a PdfObject to a direct object, resolving a
// reference and unwrapping nested indirect objects as needed.
func TraceToDirectObject(obj PdfObject) PdfObject {
	if ref, isRef := obj.(*PdfObjectReference); isRef {
		obj = ref.Resolve()
	}

	iobj, isIndirectObj := obj.(*PdfIndirectObject)
	depth := 0
	for isIndirectObj {
		obj = iobj.PdfObject
		iobj, isIndirectObj = obj.(*PdfIndirectObject)
		depth++
		if depth > traceMaxDepth {
			common.Log.Error("ERROR: Trace depth level beyond %d - not going deeper!", traceMaxDepth)
			return nil
		}
	}
	return obj
}

// traceMaxDepth specifies the maximum recursion depth allowed.
const traceMaxDepth = 10
