/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cff

import (
	"math"
	"strconv"

	"github.com/pixelpdf/pixelpdf/common"
)

// dictOp identifies a DICT operator. Two byte escape operators 12 x are
// encoded as 0x0c00|x.
type dictOp uint16

// Top DICT and Private DICT operators used by the parser.
const (
	opVersion        dictOp = 0x0000
	opNotice         dictOp = 0x0001
	opFullName       dictOp = 0x0002
	opFamilyName     dictOp = 0x0003
	opWeight         dictOp = 0x0004
	opFontBBox       dictOp = 0x0005
	opCharset        dictOp = 0x000f
	opEncoding       dictOp = 0x0010
	opCharStrings    dictOp = 0x0011
	opPrivate        dictOp = 0x0012
	opSubrs          dictOp = 0x0013
	opDefaultWidthX  dictOp = 0x0014
	opNominalWidthX  dictOp = 0x0015
	opCopyright      dictOp = 0x0c00
	opFontMatrix     dictOp = 0x0c07
	opROS            dictOp = 0x0c1e
	opCIDFontVersion dictOp = 0x0c1f
	opCIDCount       dictOp = 0x0c22
	opFDArray        dictOp = 0x0c24
	opFDSelect       dictOp = 0x0c25
)

// cffDict is a decoded DICT: operator -> operand list.
type cffDict map[dictOp][]float64

// parseDict decodes the interleaved operand/operator structure of a CFF
// DICT. Integer operands use the 1 to 5 byte encodings; real operands use
// the nibble encoded opcode 30 form.
func parseDict(data []byte) (cffDict, error) {
	dict := cffDict{}
	var stack []float64

	for i := 0; i < len(data); {
		b0 := int(data[i])
		switch {
		case b0 <= 21: // operator
			op := dictOp(b0)
			i++
			if b0 == 12 {
				if i >= len(data) {
					return nil, errTruncated
				}
				op = 0x0c00 | dictOp(data[i])
				i++
			}
			operands := make([]float64, len(stack))
			copy(operands, stack)
			dict[op] = operands
			stack = stack[:0]
		case b0 == 28: // int16
			if i+3 > len(data) {
				return nil, errTruncated
			}
			v := int16(uint16(data[i+1])<<8 | uint16(data[i+2]))
			stack = append(stack, float64(v))
			i += 3
		case b0 == 29: // int32
			if i+5 > len(data) {
				return nil, errTruncated
			}
			v := int32(uint32(data[i+1])<<24 | uint32(data[i+2])<<16 |
				uint32(data[i+3])<<8 | uint32(data[i+4]))
			stack = append(stack, float64(v))
			i += 5
		case b0 == 30: // real, nibble encoded
			v, n, err := parseReal(data[i+1:])
			if err != nil {
				return nil, err
			}
			stack = append(stack, v)
			i += 1 + n
		case b0 >= 32 && b0 <= 246:
			stack = append(stack, float64(b0-139))
			i++
		case b0 >= 247 && b0 <= 250:
			if i+2 > len(data) {
				return nil, errTruncated
			}
			stack = append(stack, float64((b0-247)*256+int(data[i+1])+108))
			i += 2
		case b0 >= 251 && b0 <= 254:
			if i+2 > len(data) {
				return nil, errTruncated
			}
			stack = append(stack, float64(-(b0-251)*256-int(data[i+1])-108))
			i += 2
		default:
			common.Log.Debug("ERROR: CFF DICT reserved byte %d", b0)
			return nil, errMalformed
		}
	}
	return dict, nil
}

// parseReal decodes a nibble stream real number terminated by nibble 0xf.
// Returns the value and the number of bytes consumed.
func parseReal(data []byte) (float64, int, error) {
	var s []byte
	for i := 0; i < len(data); i++ {
		for _, nib := range []byte{data[i] >> 4, data[i] & 0x0f} {
			switch {
			case nib <= 9:
				s = append(s, '0'+nib)
			case nib == 0xa:
				s = append(s, '.')
			case nib == 0xb:
				s = append(s, 'E')
			case nib == 0xc:
				s = append(s, 'E', '-')
			case nib == 0xe:
				s = append(s, '-')
			case nib == 0xf:
				v, err := strconv.ParseFloat(string(s), 64)
				if err != nil {
					return 0, 0, errMalformed
				}
				return v, i + 1, nil
			}
		}
	}
	return math.NaN(), 0, errTruncated
}

// intOperand returns the last operand of `op` as an int.
func (d cffDict) intOperand(op dictOp, def int) int {
	operands, ok := d[op]
	if !ok || len(operands) == 0 {
		return def
	}
	return int(operands[len(operands)-1])
}
