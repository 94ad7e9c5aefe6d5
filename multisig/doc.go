// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package multisig provides construction and parsing of standard m-of-n
multisignature redeem scripts and derivation of the segwit locking scripts
that commit to them.

A redeem script built by this package always has the canonical layout

	OP_m <pubkey 1> ... <pubkey n> OP_n OP_CHECKMULTISIG

with every public key in 33-byte compressed form and 1 <= m <= n <= 15.  The
order of the public keys is part of the script's identity: the same key set
in a different order yields a different script and therefore a different
P2WSH address.

All functions in this package are pure; a RedeemScript is immutable once
built and may be shared freely across goroutines.
*/
package multisig
