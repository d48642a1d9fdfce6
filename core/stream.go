/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

import (
	"bytes"
	"compress/zlib"
	"encoding/ascii85"
	"encoding/hex"
	"io"

	"github.com/pixelpdf/pixelpdf/common"
)

// Filter names from the stream dictionary. The full filter chain lives with
// the document parser; this package only needs enough to hand decoded bytes
// to the font, color and image engines. DCTDecode payloads are returned raw:
// the JPEG engine is the DCT path.
const (
	StreamEncodingFilterNameFlate     = "FlateDecode"
	StreamEncodingFilterNameASCIIHex  = "ASCIIHexDecode"
	StreamEncodingFilterNameASCII85   = "ASCII85Decode"
	StreamEncodingFilterNameRunLength = "RunLengthDecode"
	StreamEncodingFilterNameDCT       = "DCTDecode"
)

// DecodeStream decodes the stream data and returns the decoded data.
// An error is returned upon failure.
func DecodeStream(streamObj *PdfObjectStream) ([]byte, error) {
	data := streamObj.Stream
	filters, err := filterNames(streamObj.PdfObjectDictionary)
	if err != nil {
		return nil, err
	}

	for _, filter := range filters {
		data, err = decodeSingle(filter, data)
		if err != nil {
			common.Log.Debug("ERROR: decoding stream filter %q: %v", filter, err)
			return nil, err
		}
	}
	return data, nil
}

// filterNames returns the filter chain of the stream dictionary in
// application order.
func filterNames(d *PdfObjectDictionary) ([]string, error) {
	obj := d.Get("Filter")
	if obj == nil {
		return nil, nil
	}
	if name, ok := GetNameVal(obj); ok {
		return []string{name}, nil
	}
	if arr, ok := GetArray(obj); ok {
		var names []string
		for _, o := range arr.Elements() {
			name, ok := GetNameVal(o)
			if !ok {
				return nil, ErrTypeError
			}
			names = append(names, name)
		}
		return names, nil
	}
	return nil, ErrTypeError
}

func decodeSingle(filter string, data []byte) ([]byte, error) {
	switch filter {
	case StreamEncodingFilterNameFlate:
		return flateDecode(data)
	case StreamEncodingFilterNameASCIIHex:
		return asciiHexDecode(data)
	case StreamEncodingFilterNameASCII85:
		return ascii85Decode(data)
	case StreamEncodingFilterNameRunLength:
		return runLengthDecode(data)
	case StreamEncodingFilterNameDCT:
		// The JPEG engine consumes the entropy-coded data directly.
		return data, nil
	default:
		common.Log.Debug("ERROR: unsupported stream filter %q", filter)
		return nil, ErrUnsupportedEncodingParameters
	}
}

func flateDecode(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out bytes.Buffer
	if _, err := io.Copy(&out, r); err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return out.Bytes(), nil
}

func asciiHexDecode(data []byte) ([]byte, error) {
	var clean []byte
	for _, b := range data {
		switch {
		case b == '>':
			goto done
		case b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f' || b == 0:
			continue
		default:
			clean = append(clean, b)
		}
	}
done:
	if len(clean)%2 == 1 {
		clean = append(clean, '0')
	}
	out := make([]byte, hex.DecodedLen(len(clean)))
	if _, err := hex.Decode(out, clean); err != nil {
		return nil, err
	}
	return out, nil
}

func ascii85Decode(data []byte) ([]byte, error) {
	if idx := bytes.Index(data, []byte("~>")); idx >= 0 {
		data = data[:idx]
	}
	var out bytes.Buffer
	dec := ascii85.NewDecoder(bytes.NewReader(data))
	if _, err := io.Copy(&out, dec); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func runLengthDecode(data []byte) ([]byte, error) {
	var out []byte
	for i := 0; i < len(data); {
		length := int(data[i])
		i++
		if length == 128 {
			break
		}
		if length < 128 {
			n := length + 1
			if i+n > len(data) {
				return nil, ErrRangeError
			}
			out = append(out, data[i:i+n]...)
			i += n
		} else {
			if i >= len(data) {
				return nil, ErrRangeError
			}
			n := 257 - length
			for j := 0; j < n; j++ {
				out = append(out, data[i])
			}
			i++
		}
	}
	return out, nil
}
