// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
)

// PayToWitnessScript returns the version 0 P2WSH locking script committing
// to the given redeem script:
//
//	OP_0 <32-byte sha256(redeem script)>
//
// The result is always 34 bytes.
func PayToWitnessScript(redeemScript *RedeemScript) ([]byte, error) {
	scriptHash := chainhash.HashB(redeemScript.script)
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(scriptHash).
		Script()
}

// PayToWitnessPubKey returns the version 0 P2WPKH locking script for the
// given public key:
//
//	OP_0 <20-byte hash160(compressed pubkey)>
//
// The result is always 22 bytes.
func PayToWitnessPubKey(pubKey *btcec.PublicKey) ([]byte, error) {
	pubKeyHash := btcutil.Hash160(pubKey.SerializeCompressed())
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(pubKeyHash).
		Script()
}

// Address returns the bech32 P2WSH address of the given redeem script on the
// given network.
func Address(redeemScript *RedeemScript,
	params *chaincfg.Params) (*btcutil.AddressWitnessScriptHash, error) {

	scriptHash := chainhash.HashB(redeemScript.script)
	return btcutil.NewAddressWitnessScriptHash(scriptHash, params)
}

// PubKeyAddress returns the bech32 P2WPKH address of the given public key on
// the given network.
func PubKeyAddress(pubKey *btcec.PublicKey,
	params *chaincfg.Params) (*btcutil.AddressWitnessPubKeyHash, error) {

	pubKeyHash := btcutil.Hash160(pubKey.SerializeCompressed())
	return btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, params)
}
