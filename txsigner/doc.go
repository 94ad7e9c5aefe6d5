// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package txsigner produces and checks the SIGHASH_ALL signatures that satisfy
version 0 segwit spending conditions.

Two input kinds are supported, modeled by the closed InputKind variant:
P2WPKH inputs locked to a single public key hash, and P2WSH inputs locked to
an m-of-n multisig redeem script built by the multisig package.  Signing is
deterministic (RFC6979 nonce derivation) and every signature produced or
accepted by this package is in strict DER form with a low S value, so a
given private key and digest always map to the same witness bytes.

The package is split along the signing and checking paths.  SignDigest and
SignInput turn a private key plus a BIP0143 digest into a Signature, and
P2WPKHWitness/P2WSHWitness assemble witness stacks from signatures.  P2WSH
assembly accepts a partial signature set, leaving empty placeholder slots
for keys that have not signed yet so the stack can be round-tripped between
signers; FinalizeP2WSHWitness compacts a fully signed stack into the
consensus form.  The verify functions mirror the signing path and report
outcomes as booleans: a signature that does not check out is an expected
result, not an error.

Nothing in this package retains state between calls and no function logs or
echoes private key material.
*/
package txsigner
