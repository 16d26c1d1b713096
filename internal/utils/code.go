package utils

import "math/rand"

// BookingCodeAlphabet avoids 0/O/1/I so codes survive being read over the phone.
const BookingCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const BookingCodeLength = 16

// GenerateBookingCode draws length independent symbols from BookingCodeAlphabet.
// Not suitable for secrets; uniqueness is enforced by the datastore.
func GenerateBookingCode(length int) string {
	if length <= 0 {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = BookingCodeAlphabet[rand.Intn(len(BookingCodeAlphabet))]
	}
	return string(out)
}
