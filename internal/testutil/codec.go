// Package testutil contains helpers used across tests to reduce boilerplate
// when driving protocol scenarios, notably a minimal message/bit codec for
// end-to-end transmission tests. These helpers are not intended for
// production usage.
package testutil

// MessageToBits serializes an ASCII message into bits, most significant bit
// of each byte first.
func MessageToBits(msg string) []int {
	bits := make([]int, 0, len(msg)*8)
	for _, b := range []byte(msg) {
		for i := 7; i >= 0; i-- {
			bits = append(bits, int(b>>i)&1)
		}
	}
	return bits
}

// BitsToMessage deserializes bits produced by MessageToBits. Unknown bits
// (negative values, e.g. from lost qubits) decode as 0.
func BitsToMessage(bits []int) string {
	out := make([]byte, 0, len(bits)/8)
	for i := 0; i+7 < len(bits); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			b <<= 1
			if bits[i+j] == 1 {
				b |= 1
			}
		}
		out = append(out, b)
	}
	return string(out)
}
