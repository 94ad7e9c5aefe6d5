// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txsigner

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btctxutils/multisig"
	"github.com/btcsuite/btctxutils/sighash"
)

// InputKind describes the spending condition of the previous output an
// input redeems, which determines both the script code hashed into the
// input's digest and the shape of its witness stack.  The set of kinds is
// closed: only the two version 0 witness kinds below exist, and legacy or
// P2SH-wrapped inputs are deliberately not representable.
type InputKind interface {
	// ScriptCode returns the BIP0143 script code of the input.
	ScriptCode() ([]byte, error)

	// LockingScript returns the locking script of the output being
	// spent.
	LockingScript() ([]byte, error)

	// sealed restricts InputKind implementations to this package.
	sealed()
}

// P2WPKHInput marks an input spending a pay-to-witness-pubkey-hash output
// locked to the given public key.
type P2WPKHInput struct {
	PubKey *btcec.PublicKey
}

// ScriptCode returns the canonical pay-to-pubkey-hash script derived from
// the public key's hash160.
func (in P2WPKHInput) ScriptCode() ([]byte, error) {
	return sighash.P2WPKHScriptCode(in.PubKey)
}

// LockingScript returns the 22-byte P2WPKH locking script.
func (in P2WPKHInput) LockingScript() ([]byte, error) {
	return multisig.PayToWitnessPubKey(in.PubKey)
}

func (in P2WPKHInput) sealed() {}

// P2WSHInput marks an input spending a pay-to-witness-script-hash output
// locked to the given multisig redeem script.
type P2WSHInput struct {
	RedeemScript *multisig.RedeemScript
}

// ScriptCode returns the redeem script bytes, which BIP0143 uses directly
// as the script code for P2WSH inputs.
func (in P2WSHInput) ScriptCode() ([]byte, error) {
	return in.RedeemScript.Script(), nil
}

// LockingScript returns the 34-byte P2WSH locking script.
func (in P2WSHInput) LockingScript() ([]byte, error) {
	return multisig.PayToWitnessScript(in.RedeemScript)
}

func (in P2WSHInput) sealed() {}
