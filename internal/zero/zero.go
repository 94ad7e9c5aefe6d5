// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zero clears sensitive byte buffers.  It exists so private key
// material handed to the signing code can be wiped as soon as it has been
// copied into curve types, instead of lingering in caller-owned slices
// until the garbage collector gets to them.
package zero

// Bytes sets all bytes in the passed slice to zero.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
