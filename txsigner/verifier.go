// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txsigner

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btctxutils/multisig"
	"github.com/btcsuite/btctxutils/sighash"
)

// VerifyDigestSignature reports whether the signature is valid for the
// given digest and public key.  A mismatch is an expected outcome, so the
// result is a plain boolean rather than an error.
func VerifyDigestSignature(pubKey *btcec.PublicKey, digest []byte,
	sig *Signature) bool {

	if sig == nil || len(digest) != chainhash.HashSize {
		return false
	}
	return sig.sig.Verify(digest, pubKey)
}

// VerifyInputSignature recomputes the BIP0143 digest of the input with the
// given index and reports whether the signature is valid for it under the
// given public key.
func VerifyInputSignature(pubKey *btcec.PublicKey, tx *wire.MsgTx,
	cache *sighash.SigHashes, idx int, kind InputKind,
	value btcutil.Amount, sig *Signature) bool {

	scriptCode, err := kind.ScriptCode()
	if err != nil {
		return false
	}
	digest, err := sighash.CalcWitnessSigHash(tx, cache, idx, scriptCode,
		value)
	if err != nil {
		return false
	}
	return VerifyDigestSignature(pubKey, digest, sig)
}

// VerifyWitnessP2WPKH reports whether the witness stack on its own satisfies
// the given P2WPKH locking script for the input with the given index.  The
// stack must hold exactly a SIGHASH_ALL signature and the compressed public
// key whose hash160 matches the locking script's witness program, and the
// signature must verify against the input's digest.
func VerifyWitnessP2WPKH(witness wire.TxWitness, lockingScript []byte,
	tx *wire.MsgTx, cache *sighash.SigHashes, idx int,
	value btcutil.Amount) bool {

	if len(witness) != 2 {
		return false
	}
	sig, err := ParseWitnessSignature(witness[0])
	if err != nil {
		return false
	}
	pubKey, err := btcec.ParsePubKey(witness[1])
	if err != nil || len(witness[1]) != 33 {
		return false
	}

	// The claimed key must hash to the locking script's witness program.
	expectedScript, err := multisig.PayToWitnessPubKey(pubKey)
	if err != nil || !bytes.Equal(expectedScript, lockingScript) {
		return false
	}

	return VerifyInputSignature(pubKey, tx, cache, idx,
		P2WPKHInput{PubKey: pubKey}, value, sig)
}

// VerifyWitnessP2WSH reports whether the witness stack satisfies the given
// multisig redeem script for the input with the given index.  The stack's
// final element must be the redeem script itself, and at least threshold of
// the supplied signatures must verify against distinct script keys in a
// single pass: a signature in slot i is only checked against key i and
// later keys, matching the order OP_CHECKMULTISIG enforces.  Empty
// placeholder slots from partial signing are skipped.
func VerifyWitnessP2WSH(witness wire.TxWitness,
	redeemScript *multisig.RedeemScript, tx *wire.MsgTx,
	cache *sighash.SigHashes, idx int, value btcutil.Amount) bool {

	if len(witness) < 2 || len(witness[0]) != 0 {
		return false
	}
	if !bytes.Equal(witness[len(witness)-1], redeemScript.Script()) {
		return false
	}

	digest, err := sighash.CalcWitnessSigHash(tx, cache, idx,
		redeemScript.Script(), value)
	if err != nil {
		return false
	}

	pubKeys := redeemScript.PubKeys()
	keyIdx := 0
	validSigs := 0
	for _, element := range witness[1 : len(witness)-1] {
		if len(element) == 0 {
			continue
		}
		sig, err := ParseWitnessSignature(element)
		if err != nil {
			return false
		}

		// Advance through the remaining keys until one validates the
		// signature.  Running out of keys means the stack is out of
		// order or carries a foreign signature.
		matched := false
		for ; keyIdx < len(pubKeys); keyIdx++ {
			if VerifyDigestSignature(pubKeys[keyIdx], digest, sig) {
				matched = true
				keyIdx++
				break
			}
		}
		if !matched {
			return false
		}
		validSigs++
	}

	return validSigs >= redeemScript.Threshold()
}

// ValidateSignedInput executes the locking script of the given previous
// output against the fully signed input with the given index using the
// script engine under standard verification flags, the same check a
// relaying node applies before accepting the transaction.
func ValidateSignedInput(tx *wire.MsgTx, idx int, prevOut *wire.TxOut) error {
	prevOutFetcher := txscript.NewCannedPrevOutputFetcher(
		prevOut.PkScript, prevOut.Value,
	)
	hashCache := txscript.NewTxSigHashes(tx, prevOutFetcher)
	vm, err := txscript.NewEngine(
		prevOut.PkScript, tx, idx, txscript.StandardVerifyFlags, nil,
		hashCache, prevOut.Value, prevOutFetcher,
	)
	if err != nil {
		return newError(ErrInputValidation,
			"cannot create script engine", err)
	}
	if err := vm.Execute(); err != nil {
		return newError(ErrInputValidation,
			"signed input failed script execution", err)
	}
	return nil
}
