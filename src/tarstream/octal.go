package tarstream

import "encoding/binary"

// maxOctal11 is the largest value representable in 11 octal digits
// (8^11 - 1). Larger values in 12-wide fields use the GNU binary form.
const maxOctal11 int64 = 8589934591

// parseOctal decodes a fixed-width numeric field. Leading spaces and zeros
// are padding; the first NUL, or a space after padding, terminates the
// value. A 12-wide field whose first byte has the high bit set carries the
// GNU extension instead: an 8-byte big-endian integer at offset+4.
// Digits are not range-checked; malformed input accumulates as-is.
func parseOctal(b []byte, offset, length int) int64 {
	if length == 12 && b[offset]&0x80 != 0 {
		return int64(binary.BigEndian.Uint64(b[offset+4 : offset+12]))
	}
	var result int64
	padding := true
	for i := offset; i < offset+length; i++ {
		c := b[i]
		if c == 0 {
			break
		}
		if c == ' ' || c == '0' {
			if padding {
				continue
			}
			if c == ' ' {
				break
			}
		}
		padding = false
		result = result<<3 + int64(c-'0')
	}
	return result
}

// putOctal encodes value right-justified with leading zeros into length-1
// bytes and NUL-terminates the field. Values beyond maxOctal11 in a 12-wide
// field are written in the GNU binary form: 0x80 marker, three zero bytes,
// then the value as a big-endian 64-bit integer. Returns offset+length.
func putOctal(value int64, b []byte, offset, length int) int {
	if value > maxOctal11 && length == 12 {
		b[offset] = 0x80
		b[offset+1] = 0
		b[offset+2] = 0
		b[offset+3] = 0
		binary.BigEndian.PutUint64(b[offset+4:offset+12], uint64(value))
		return offset + length
	}
	idx := length - 1
	b[offset+idx] = 0
	idx--
	for v := value; idx >= 0; idx-- {
		b[offset+idx] = byte('0' + (v & 7))
		v >>= 3
	}
	return offset + length
}

// putChecksumOctal encodes like putOctal but ends the field with a space:
// checksum fields are octal digits, NUL, space rather than NUL alone.
func putChecksumOctal(value int64, b []byte, offset, length int) int {
	putOctal(value, b, offset, length-1)
	b[offset+length-1] = ' '
	return offset + length
}
