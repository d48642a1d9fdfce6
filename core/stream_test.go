/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStreamNoFilter(t *testing.T) {
	stream := MakeStream([]byte("raw data"), nil)
	out, err := DecodeStream(stream)
	require.NoError(t, err)
	assert.Equal(t, []byte("raw data"), out)
}

func TestDecodeStreamFlate(t *testing.T) {
	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	w.Write([]byte("flate payload"))
	w.Close()

	d := MakeDict()
	d.Set("Filter", MakeName("FlateDecode"))
	stream := MakeStream(compressed.Bytes(), d)

	out, err := DecodeStream(stream)
	require.NoError(t, err)
	assert.Equal(t, []byte("flate payload"), out)
}

func TestDecodeStreamASCIIHex(t *testing.T) {
	d := MakeDict()
	d.Set("Filter", MakeName("ASCIIHexDecode"))
	stream := MakeStream([]byte("48 65 6C 6C 6F>"), d)

	out, err := DecodeStream(stream)
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello"), out)
}

func TestDecodeStreamRunLength(t *testing.T) {
	d := MakeDict()
	d.Set("Filter", MakeName("RunLengthDecode"))
	// "ab" literal, then 'c' repeated 4 times, then EOD.
	stream := MakeStream([]byte{1, 'a', 'b', 253, 'c', 128}, d)

	out, err := DecodeStream(stream)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcccc"), out)
}

func TestDecodeStreamDCTPassThrough(t *testing.T) {
	d := MakeDict()
	d.Set("Filter", MakeName("DCTDecode"))
	payload := []byte{0xff, 0xd8, 0xff, 0xd9}
	stream := MakeStream(payload, d)

	out, err := DecodeStream(stream)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecodeStreamUnknownFilter(t *testing.T) {
	d := MakeDict()
	d.Set("Filter", MakeName("NotAFilter"))
	stream := MakeStream([]byte{1, 2, 3}, d)
	_, err := DecodeStream(stream)
	assert.ErrorIs(t, err, ErrUnsupportedEncodingParameters)
}

func TestGetters(t *testing.T) {
	d := MakeDict()
	d.Set("Int", MakeInteger(42))
	d.Set("Float", MakeFloat(1.5))
	d.Set("Name", MakeName("Hello"))
	d.Set("Str", MakeString("world"))
	d.Set("Arr", MakeArray(MakeInteger(1), MakeFloat(2)))

	v, ok := GetIntVal(d.Get("Int"))
	require.True(t, ok)
	assert.Equal(t, 42, v)

	f, err := GetNumberAsFloat(d.Get("Float"))
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	name, ok := GetNameVal(d.Get("Name"))
	require.True(t, ok)
	assert.Equal(t, "Hello", name)

	s, ok := GetStringVal(d.Get("Str"))
	require.True(t, ok)
	assert.Equal(t, "world", s)

	arr, ok := GetArray(d.Get("Arr"))
	require.True(t, ok)
	vals, err := arr.ToFloat64Array()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, vals)

	_, ok = GetIntVal(d.Get("Missing"))
	assert.False(t, ok)
}

func TestTraceToDirectObject(t *testing.T) {
	inner := MakeInteger(7)
	ind := MakeIndirectObject(inner)
	assert.Equal(t, inner, TraceToDirectObject(ind))

	ref := &PdfObjectReference{ObjectNumber: 3}
	ref.SetResolved(ind)
	assert.Equal(t, inner, TraceToDirectObject(ref))
}

func TestGetObjectReference(t *testing.T) {
	ind := MakeIndirectObject(MakeDict())
	ind.ObjectNumber = 17
	ind.GenerationNumber = 2

	num, gen, ok := GetObjectReference(ind)
	require.True(t, ok)
	assert.Equal(t, int64(17), num)
	assert.Equal(t, int64(2), gen)

	_, _, ok = GetObjectReference(MakeInteger(1))
	assert.False(t, ok)
}
