/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grayJPEG is a minimal baseline 8x8 grayscale JPEG with all-zero
// coefficients, decoding to uniform 128 gray.
func grayJPEG() []byte {
	var out bytes.Buffer
	out.Write([]byte{0xff, 0xd8})
	out.Write([]byte{0xff, 0xdb, 0x00, 0x43, 0x00})
	for i := 0; i < 64; i++ {
		out.WriteByte(1)
	}
	out.Write([]byte{0xff, 0xc0, 0x00, 0x0b, 0x08, 0x00, 0x08, 0x00, 0x08, 0x01, 0x01, 0x11, 0x00})
	out.Write([]byte{0xff, 0xc4, 0x00, 0x26})
	out.WriteByte(0x00)
	out.Write([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	out.WriteByte(0x00)
	out.WriteByte(0x10)
	out.Write([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	out.WriteByte(0x00)
	out.Write([]byte{0xff, 0xda, 0x00, 0x08, 0x01, 0x01, 0x00, 0x00, 0x3f, 0x00})
	out.WriteByte(0x00)
	out.Write([]byte{0xff, 0xd9})
	return out.Bytes()
}

func TestNewImageFromJPEG(t *testing.T) {
	img, err := NewImageFromJPEG(grayJPEG(), nil)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Width)
	assert.Equal(t, 8, img.Height)

	px := img.At(3, 4)
	assert.Equal(t, uint8(128), px.R)
	assert.Equal(t, uint8(128), px.G)
	assert.Equal(t, uint8(128), px.B)
	assert.Equal(t, uint8(255), px.A)
}

func TestNewImageFromJPEGWithSampler(t *testing.T) {
	// An inverting gray sampler.
	sampler := func(comps []float64) [4]uint8 {
		v := uint8((1 - comps[0]) * 255)
		return [4]uint8{v, v, v, 255}
	}
	img, err := NewImageFromJPEG(grayJPEG(), sampler)
	require.NoError(t, err)
	px := img.At(0, 0)
	assert.InDelta(t, 127, int(px.R), 1)
}

func TestImageResample(t *testing.T) {
	img, err := NewImageFromJPEG(grayJPEG(), nil)
	require.NoError(t, err)

	scaled := img.Resample(4, 4)
	assert.Equal(t, 4, scaled.Width)
	assert.Equal(t, 4, scaled.Height)
	// Uniform images stay uniform under resampling.
	px := scaled.At(2, 2)
	assert.InDelta(t, 128, int(px.R), 1)

	same := img.Resample(8, 8)
	assert.Same(t, img, same)
}
