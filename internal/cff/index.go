/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cff

import (
	"github.com/pixelpdf/pixelpdf/common"
)

// index is a CFF INDEX, an ordered sequence of binary blobs.
type index [][]byte

// parseIndex reads the INDEX starting at `pos` in `data` and returns the
// items together with the offset of the first byte after the INDEX.
//
// The layout is: count (u16 BE), offSize (u8), count+1 offsets of offSize
// bytes each (1-based), then the item data. Item i spans
// [offsets[i]-1, offsets[i+1]-1) of the data section.
func parseIndex(data []byte, pos int) (index, int, error) {
	if pos < 0 || pos+2 > len(data) {
		return nil, 0, errTruncated
	}
	count := int(data[pos])<<8 | int(data[pos+1])
	pos += 2
	if count == 0 {
		return nil, pos, nil
	}

	if pos >= len(data) {
		return nil, 0, errTruncated
	}
	offSize := int(data[pos])
	pos++
	if offSize < 1 || offSize > 4 {
		common.Log.Debug("ERROR: CFF INDEX offSize=%d", offSize)
		return nil, 0, errMalformed
	}

	offTableLen := (count + 1) * offSize
	if pos+offTableLen > len(data) {
		return nil, 0, errTruncated
	}
	offsets := make([]uint32, count+1)
	prev := uint32(0)
	for i := 0; i <= count; i++ {
		var off uint32
		for j := 0; j < offSize; j++ {
			off = off<<8 | uint32(data[pos+i*offSize+j])
		}
		if off < 1 || off < prev {
			common.Log.Debug("ERROR: CFF INDEX non-monotonic offset %d", off)
			return nil, 0, errMalformed
		}
		offsets[i] = off - 1
		prev = off
	}
	pos += offTableLen

	end := pos + int(offsets[count])
	if end > len(data) {
		return nil, 0, errTruncated
	}

	items := make(index, count)
	for i := 0; i < count; i++ {
		items[i] = data[pos+int(offsets[i]) : pos+int(offsets[i+1])]
	}
	return items, end, nil
}
