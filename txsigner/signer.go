// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txsigner

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btctxutils/internal/zero"
	"github.com/btcsuite/btctxutils/multisig"
	"github.com/btcsuite/btctxutils/sighash"
)

// PrivateKeyFromBytes converts a raw 32-byte scalar into a signing key.
// The passed slice is zeroed before returning so key material does not
// linger in buffers the caller no longer controls.
func PrivateKeyFromBytes(raw []byte) (*btcec.PrivateKey, error) {
	defer zero.Bytes(raw)

	if len(raw) != 32 {
		return nil, newError(ErrInvalidPrivateKey,
			fmt.Sprintf("private key must be 32 bytes, got %d",
				len(raw)), nil)
	}
	privKey, _ := btcec.PrivKeyFromBytes(raw)
	if privKey.Key.IsZero() {
		return nil, newError(ErrInvalidPrivateKey,
			"private key scalar is zero", nil)
	}
	return privKey, nil
}

// SignDigest signs the 32-byte digest with the given private key.  The
// nonce is derived deterministically per RFC6979, so identical key and
// digest pairs always produce the identical signature, and the resulting S
// value is always in the lower half of the curve order.
func SignDigest(privKey *btcec.PrivateKey, digest []byte) (*Signature, error) {
	if len(digest) != chainhash.HashSize {
		return nil, newError(ErrInvalidDigest,
			fmt.Sprintf("digest must be %d bytes, got %d",
				chainhash.HashSize, len(digest)), nil)
	}
	return &Signature{sig: ecdsa.Sign(privKey, digest)}, nil
}

// SignInput computes the BIP0143 digest for the input with the given index
// and signs it.  The input kind supplies the script code and the value must
// be the amount of the output being spent.  A nil hash cache is allowed;
// see sighash.CalcWitnessSigHash.
func SignInput(privKey *btcec.PrivateKey, tx *wire.MsgTx,
	cache *sighash.SigHashes, idx int, kind InputKind,
	value btcutil.Amount) (*Signature, error) {

	scriptCode, err := kind.ScriptCode()
	if err != nil {
		return nil, err
	}
	digest, err := sighash.CalcWitnessSigHash(tx, cache, idx, scriptCode,
		value)
	if err != nil {
		return nil, err
	}

	log.Debugf("Signing input %d spending %v (%v)", idx,
		tx.TxIn[idx].PreviousOutPoint, value)

	return SignDigest(privKey, digest)
}

// P2WPKHWitness assembles the two-element witness stack spending a P2WPKH
// output: the signature with its sighash type byte followed by the
// compressed public key.
func P2WPKHWitness(sig *Signature, pubKey *btcec.PublicKey) wire.TxWitness {
	return wire.TxWitness{
		sig.WitnessSerialize(),
		pubKey.SerializeCompressed(),
	}
}

// KeySignature attributes a signature to the redeem script public key that
// produced it.
type KeySignature struct {
	PubKey *btcec.PublicKey
	Sig    *Signature
}

// P2WSHWitness assembles the witness stack spending a P2WSH multisig
// output from the given, possibly partial, signature set.  The stack has
// one slot per redeem script key, in script key order:
//
//	[<empty dummy>, <slot 1>, ..., <slot n>, <redeem script>]
//
// A slot holds the signature of its key with the sighash type byte
// appended, or stays empty when that key has not signed yet.  Keeping the
// empty placeholder slots lets a partially signed stack be handed to the
// remaining signers and filled in without re-deriving which slot belongs
// to whom; FinalizeP2WSHWitness compacts the stack once enough signatures
// have been collected.
func P2WSHWitness(redeemScript *multisig.RedeemScript,
	sigs []KeySignature) (wire.TxWitness, error) {

	pubKeys := redeemScript.PubKeys()
	if len(sigs) > len(pubKeys) {
		return nil, newError(ErrSignatureCountExceedsKeys,
			fmt.Sprintf("got %d signatures for a redeem script "+
				"with %d keys", len(sigs), len(pubKeys)), nil)
	}

	sigsByKey := make(map[string]*Signature, len(sigs))
	for _, keySig := range sigs {
		serialized := string(keySig.PubKey.SerializeCompressed())
		if _, ok := sigsByKey[serialized]; ok {
			return nil, newError(ErrDuplicateSignature,
				fmt.Sprintf("multiple signatures for public "+
					"key %x", serialized), nil)
		}
		sigsByKey[serialized] = keySig.Sig
	}

	witness := make(wire.TxWitness, 0, len(pubKeys)+2)

	// Start with the empty dummy element consumed by the off-by-one bug
	// in OP_CHECKMULTISIG.
	witness = append(witness, []byte{})
	matched := 0
	for _, pubKey := range pubKeys {
		sig, ok := sigsByKey[string(pubKey.SerializeCompressed())]
		if !ok {
			witness = append(witness, []byte{})
			continue
		}
		witness = append(witness, sig.WitnessSerialize())
		matched++
	}
	if matched != len(sigs) {
		return nil, newError(ErrUnknownPubKey,
			fmt.Sprintf("%d of %d signatures belong to keys "+
				"outside the redeem script", len(sigs)-matched,
				len(sigs)), nil)
	}
	witness = append(witness, redeemScript.Script())

	log.Debugf("Assembled %d-of-%d witness with %d signature(s)",
		redeemScript.Threshold(), len(pubKeys), matched)

	return witness, nil
}

// FinalizeP2WSHWitness compacts a slotted multisig witness produced by
// P2WSHWitness into the consensus form executed by OP_CHECKMULTISIG: the
// empty placeholder slots are dropped and exactly threshold signatures are
// kept, in key order.  It fails with ErrNotEnoughSignatures when fewer
// than threshold slots are filled.
func FinalizeP2WSHWitness(witness wire.TxWitness) (wire.TxWitness, error) {
	if len(witness) < 2 {
		return nil, newError(ErrNotEnoughSignatures,
			"witness is missing its dummy and redeem script "+
				"elements", nil)
	}
	redeemScript, err := multisig.ParseRedeemScript(witness[len(witness)-1])
	if err != nil {
		return nil, err
	}

	threshold := redeemScript.Threshold()
	final := make(wire.TxWitness, 0, threshold+2)
	final = append(final, []byte{})
	for _, slot := range witness[1 : len(witness)-1] {
		if len(slot) == 0 {
			continue
		}
		if len(final)-1 == threshold {
			break
		}
		final = append(final, slot)
	}
	if len(final)-1 < threshold {
		return nil, newError(ErrNotEnoughSignatures,
			fmt.Sprintf("witness carries %d signature(s) but the "+
				"redeem script requires %d", len(final)-1,
				threshold), nil)
	}
	final = append(final, witness[len(witness)-1])
	return final, nil
}
