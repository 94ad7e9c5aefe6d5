// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sighash computes BIP0143 signature hashes for version 0 segwit
// inputs.  Only the SIGHASH_ALL signature type is supported: every digest
// produced here commits to all inputs and outputs of the spending
// transaction as well as the value and script code of the output being
// spent.
package sighash

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// SigHashAll is the signature hash type byte appended to a serialized
// signature when it is placed on a witness stack.  It is the only type this
// package produces digests for.
const SigHashAll = 0x01

// ErrInputIndexOutOfRange describes an input index that does not exist in
// the transaction being signed.  Callers can test for it with errors.Is.
var ErrInputIndexOutOfRange = errors.New("transaction input index out of range")

// SigHashes houses the partial set of sighashes introduced within BIP0143.
// The three hashes are independent of the input being signed, so they are
// calculated once per transaction and reused across every input rather than
// recomputed per input.
type SigHashes struct {
	HashPrevOuts chainhash.Hash
	HashSequence chainhash.Hash
	HashOutputs  chainhash.Hash
}

// NewSigHashes computes, and returns the cached sighashes of the given
// transaction.  The transaction must not be mutated while the returned cache
// is in use.
func NewSigHashes(tx *wire.MsgTx) *SigHashes {
	return &SigHashes{
		HashPrevOuts: calcHashPrevOuts(tx),
		HashSequence: calcHashSequence(tx),
		HashOutputs:  calcHashOutputs(tx),
	}
}

// calcHashPrevOuts calculates a single hash of all the previous outputs
// (txid:index pairs) referenced within the passed transaction, in input
// order.
func calcHashPrevOuts(tx *wire.MsgTx) chainhash.Hash {
	var b bytes.Buffer
	for _, txIn := range tx.TxIn {
		wire.WriteOutPoint(&b, 0, tx.Version, &txIn.PreviousOutPoint)
	}
	return chainhash.DoubleHashH(b.Bytes())
}

// calcHashSequence computes an aggregated hash of each input's sequence
// number, in input order.
func calcHashSequence(tx *wire.MsgTx) chainhash.Hash {
	var b bytes.Buffer
	for _, txIn := range tx.TxIn {
		binary.Write(&b, binary.LittleEndian, txIn.Sequence)
	}
	return chainhash.DoubleHashH(b.Bytes())
}

// calcHashOutputs computes a hash digest of all outputs created by the
// transaction, each serialized as its 8-byte value followed by its
// length-prefixed locking script, in output order.
func calcHashOutputs(tx *wire.MsgTx) chainhash.Hash {
	var b bytes.Buffer
	for _, txOut := range tx.TxOut {
		wire.WriteTxOut(&b, 0, tx.Version, txOut)
	}
	return chainhash.DoubleHashH(b.Bytes())
}

// CalcWitnessSigHash computes the BIP0143 SIGHASH_ALL digest for the input
// with the given index.  The script code is the redeem script itself for a
// P2WSH input, or the canonical pay-to-pubkey-hash script obtained from
// P2WPKHScriptCode for a P2WPKH input.  The value must be the exact amount
// of the output being spent, in satoshis, since the digest commits to it.
//
// A nil cache is allowed, in which case the intermediate hashes are computed
// on the fly.  Callers signing several inputs of the same transaction should
// pass a cache built with NewSigHashes instead.
func CalcWitnessSigHash(tx *wire.MsgTx, cache *SigHashes, idx int,
	scriptCode []byte, value btcutil.Amount) ([]byte, error) {

	if idx < 0 || idx >= len(tx.TxIn) {
		return nil, fmt.Errorf("%w: input %d of a transaction with "+
			"%d inputs", ErrInputIndexOutOfRange, idx, len(tx.TxIn))
	}
	if cache == nil {
		cache = NewSigHashes(tx)
	}
	txIn := tx.TxIn[idx]

	var sigMsg bytes.Buffer

	binary.Write(&sigMsg, binary.LittleEndian, uint32(tx.Version))
	sigMsg.Write(cache.HashPrevOuts[:])
	sigMsg.Write(cache.HashSequence[:])

	// Per-input commitments: the outpoint being spent, the script code,
	// the spent output's value, and the input's sequence number.  These
	// are the only fields that vary across inputs of one transaction.
	wire.WriteOutPoint(&sigMsg, 0, tx.Version, &txIn.PreviousOutPoint)
	wire.WriteVarBytes(&sigMsg, 0, scriptCode)
	binary.Write(&sigMsg, binary.LittleEndian, uint64(value))
	binary.Write(&sigMsg, binary.LittleEndian, txIn.Sequence)

	sigMsg.Write(cache.HashOutputs[:])
	binary.Write(&sigMsg, binary.LittleEndian, tx.LockTime)
	binary.Write(&sigMsg, binary.LittleEndian, uint32(SigHashAll))

	return chainhash.DoubleHashB(sigMsg.Bytes()), nil
}

// P2WPKHScriptCode returns the script code used when computing the sighash
// of a P2WPKH input locked to the given public key:
//
//	OP_DUP OP_HASH160 <20-byte hash160(pubkey)> OP_EQUALVERIFY OP_CHECKSIG
//
// Note this is derived from the public key's hash160 rather than taken from
// the witness program of the P2WPKH locking script.
func P2WPKHScriptCode(pubKey *btcec.PublicKey) ([]byte, error) {
	pubKeyHash := btcutil.Hash160(pubKey.SerializeCompressed())
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(pubKeyHash).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}
