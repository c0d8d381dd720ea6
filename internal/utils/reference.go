// Package utils provides small helpers shared across modules.
package utils

import (
	"crypto/rand"
	"math/big"
)

// referenceAlphabet is the character set for human-facing references.
// Digits and uppercase letters, matching the ORD/RES/REF codes customers
// read back over the phone.
const referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// referenceLength is the number of random characters after the prefix
const referenceLength = 9

// NewReference generates a human-facing reference like "ORD7K2M4QX1A".
// Prefix identifies the record type ("ORD", "RES", "REF").
func NewReference(prefix string) string {
	buf := make([]byte, referenceLength)
	max := big.NewInt(int64(len(referenceAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// nothing sensible to do but give up loudly
			panic("utils: system random source unavailable: " + err.Error())
		}
		buf[i] = referenceAlphabet[n.Int64()]
	}
	return prefix + string(buf)
}
