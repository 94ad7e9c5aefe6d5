// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txsigner_test

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btctxutils/multisig"
	"github.com/btcsuite/btctxutils/sighash"
	"github.com/btcsuite/btctxutils/txsigner"
)

// This example walks a 2-of-3 P2WSH output from redeem script construction
// through signing by two of the key holders to a finalized witness.
func Example() {
	// Three key holders.  In practice each holder only has their own
	// private key and exchanges signatures out of band.
	privKeys := make([]*btcec.PrivateKey, 3)
	pubKeys := make([]*btcec.PublicKey, 3)
	for i := range privKeys {
		var raw [32]byte
		for j := range raw {
			raw[j] = byte(0x40 + i)
		}
		privKey, err := txsigner.PrivateKeyFromBytes(raw[:])
		if err != nil {
			fmt.Println(err)
			return
		}
		privKeys[i] = privKey
		pubKeys[i] = privKey.PubKey()
	}

	redeemScript, err := multisig.BuildRedeemScript(pubKeys, 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	lockingScript, err := multisig.PayToWitnessScript(redeemScript)
	if err != nil {
		fmt.Println(err)
		return
	}

	// The transaction spending the multisig output.
	prevHash := chainhash.HashH([]byte("funding transaction"))
	value := btcutil.Amount(100000000)
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prevHash, 0), nil, nil))
	tx.AddTxOut(wire.NewTxOut(int64(value)-1000, lockingScript))

	// Holders 0 and 2 sign.
	cache := sighash.NewSigHashes(tx)
	kind := txsigner.P2WSHInput{RedeemScript: redeemScript}
	var sigs []txsigner.KeySignature
	for _, i := range []int{0, 2} {
		sig, err := txsigner.SignInput(
			privKeys[i], tx, cache, 0, kind, value,
		)
		if err != nil {
			fmt.Println(err)
			return
		}
		sigs = append(sigs, txsigner.KeySignature{
			PubKey: pubKeys[i], Sig: sig,
		})
	}

	witness, err := txsigner.P2WSHWitness(redeemScript, sigs)
	if err != nil {
		fmt.Println(err)
		return
	}
	final, err := txsigner.FinalizeP2WSHWitness(witness)
	if err != nil {
		fmt.Println(err)
		return
	}
	tx.TxIn[0].Witness = final

	err = txsigner.ValidateSignedInput(
		tx, 0, wire.NewTxOut(int64(value), lockingScript),
	)
	fmt.Println("witness elements:", len(final))
	fmt.Println("valid:", err == nil)

	// Output:
	// witness elements: 4
	// valid: true
}
