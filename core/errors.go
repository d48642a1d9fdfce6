/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

import "errors"

var (
	// ErrUnsupportedEncodingParameters error indicates that encoding/decoding
	// was attempted with unsupported parameters.
	ErrUnsupportedEncodingParameters = errors.New("unsupported encoding parameters")

	// ErrNoDataForHandler error indicates that the stream dictionary does not
	// carry the data needed by the selected filter handler.
	ErrNoDataForHandler = errors.New("no data for handler")

	// ErrTypeError indicates that an object is of the wrong type.
	ErrTypeError = errors.New("type check error")

	// ErrRangeError indicates that an offset, count or index is out of range.
	ErrRangeError = errors.New("range check error")

	// ErrNotSupported indicates a feature the library deliberately does not
	// implement, e.g. arithmetic-coded JPEG or iccMAX profiles.
	ErrNotSupported = errors.New("feature not currently supported")

	// ErrNotANumber indicates that a numeric object was expected.
	ErrNotANumber = errors.New("not a number")
)
