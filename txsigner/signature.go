// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txsigner

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btctxutils/sighash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// compactSigLen is the length of a compact signature: 32 bytes for each of
// the R and S components.
const compactSigLen = 64

// Signature is the canonical ECDSA signature value type used throughout
// this package.  Every Signature is guaranteed to carry a low S value,
// regardless of which constructor produced it, so serializing one always
// yields a non-malleable encoding.
type Signature struct {
	sig *ecdsa.Signature
}

// Serialize returns the strict DER encoding of the signature without a
// sighash type byte.
func (s *Signature) Serialize() []byte {
	return s.sig.Serialize()
}

// WitnessSerialize returns the DER encoding of the signature with the
// SIGHASH_ALL type byte appended, which is the form a signature takes on a
// witness stack.
func (s *Signature) WitnessSerialize() []byte {
	return append(s.sig.Serialize(), sighash.SigHashAll)
}

// IsEqual reports whether the two signatures have identical R and S values.
func (s *Signature) IsEqual(other *Signature) bool {
	return s.sig.IsEqual(other.sig)
}

// derSignatureS extracts the S component of a DER signature that already
// passed strict parsing.  The layout walked here is
//
//	0x30 <total len> 0x02 <R len> <R> 0x02 <S len> <S>
func derSignatureS(der []byte) (*secp256k1.ModNScalar, error) {
	if len(der) < 8 || der[0] != 0x30 || der[2] != 0x02 {
		return nil, newError(ErrSignatureEncoding,
			"signature does not have a DER sequence header", nil)
	}
	sMarker := 4 + int(der[3])
	if sMarker+2 > len(der) || der[sMarker] != 0x02 {
		return nil, newError(ErrSignatureEncoding,
			"signature is missing its S integer marker", nil)
	}
	sStart := sMarker + 2
	sEnd := sStart + int(der[sMarker+1])
	if sEnd != len(der) {
		return nil, newError(ErrSignatureEncoding,
			"signature S length disagrees with signature length",
			nil)
	}
	sBytes := der[sStart:sEnd]
	for len(sBytes) > 1 && sBytes[0] == 0x00 {
		sBytes = sBytes[1:]
	}

	var sScalar secp256k1.ModNScalar
	if overflow := sScalar.SetByteSlice(sBytes); overflow {
		return nil, newError(ErrSignatureEncoding,
			"signature S exceeds the curve order", nil)
	}
	return &sScalar, nil
}

// ParseDERSignature converts a strict DER encoded signature into the
// canonical Signature type.  Signatures with an S value over half the curve
// order fail with ErrHighSignature since accepting them would reintroduce
// signature malleability.
func ParseDERSignature(der []byte) (*Signature, error) {
	sig, err := ecdsa.ParseDERSignature(der)
	if err != nil {
		return nil, newError(ErrSignatureEncoding,
			"signature is not strict DER", err)
	}
	sScalar, err := derSignatureS(der)
	if err != nil {
		return nil, err
	}
	if sScalar.IsOverHalfOrder() {
		return nil, newError(ErrHighSignature,
			"signature S is over half the curve order", nil)
	}
	return &Signature{sig: sig}, nil
}

// ParseCompactSignature converts a 64-byte R||S signature into the
// canonical Signature type, applying the same strictness rules as
// ParseDERSignature.
func ParseCompactSignature(compact []byte) (*Signature, error) {
	if len(compact) != compactSigLen {
		return nil, newError(ErrSignatureEncoding,
			fmt.Sprintf("compact signature must be %d bytes, got "+
				"%d", compactSigLen, len(compact)), nil)
	}

	var rScalar, sScalar btcec.ModNScalar
	if overflow := rScalar.SetByteSlice(compact[:32]); overflow {
		return nil, newError(ErrSignatureEncoding,
			"signature R exceeds the curve order", nil)
	}
	if overflow := sScalar.SetByteSlice(compact[32:]); overflow {
		return nil, newError(ErrSignatureEncoding,
			"signature S exceeds the curve order", nil)
	}
	if rScalar.IsZero() || sScalar.IsZero() {
		return nil, newError(ErrSignatureEncoding,
			"signature components must be non-zero", nil)
	}
	if sScalar.IsOverHalfOrder() {
		return nil, newError(ErrHighSignature,
			"signature S is over half the curve order", nil)
	}
	return &Signature{sig: ecdsa.NewSignature(&rScalar, &sScalar)}, nil
}

// ParseWitnessSignature converts a witness stack element holding a DER
// signature with a trailing sighash type byte into the canonical Signature
// type.  Only SIGHASH_ALL is accepted.
func ParseWitnessSignature(element []byte) (*Signature, error) {
	if len(element) < 2 {
		return nil, newError(ErrSignatureEncoding,
			"witness signature element is too short", nil)
	}
	if element[len(element)-1] != sighash.SigHashAll {
		return nil, newError(ErrSignatureEncoding,
			fmt.Sprintf("unsupported sighash type 0x%02x",
				element[len(element)-1]), nil)
	}
	return ParseDERSignature(element[:len(element)-1])
}
