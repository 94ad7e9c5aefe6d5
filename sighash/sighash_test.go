// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sighash_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btctxutils/sighash"
	"github.com/stretchr/testify/require"
)

// The fixtures below are the native P2WPKH and P2WSH examples from BIP143,
// reused verbatim so the digests computed here can be checked against the
// published reference values.
const (
	bip143P2WPKHTxHex = "0100000002fff7f7881a8099afa6940d42d1e7f6362bec38" +
		"171ea3edf433541db4e4ad969f0000000000eeffffffef51e1b804cc89" +
		"d182d279655c3aa89e815b1b309fe287d9b2b55d57b90ec68a01000000" +
		"00ffffffff02202cb206000000001976a9148280b37df378db99f66f85" +
		"c95a783a76ac7a6d5988ac9093510d000000001976a9143bde42dbee7e" +
		"4dbe6a21b2d50ce2f0167faa815988ac11000000"

	bip143P2WPKHPubKeyHex = "025476c2e83188368da1ff3e292e7acafcdb3566bb0a" +
		"d253f62fc70f07aeee6357"

	bip143P2WPKHValue = btcutil.Amount(600000000)

	bip143P2WPKHDigestHex = "c37af31116d1b27caf68aae9e3ac82f1477929014d5b" +
		"917657d0eb49478cb670"

	bip143P2WSHTxHex = "010000000136641869ca081e70f394c6948e8af409e18b619d" +
		"f2ed74aa106c1ca29787b96e0100000000ffffffff0200e9a435000000" +
		"001976a914389ffce9cd9ae88dcc0631e88a821ffdbe9bfe2688acc083" +
		"2f05000000001976a9147480a33f950689af511e6e84c138dbbd3c3ee4" +
		"1588ac00000000"

	bip143P2WSHScriptHex = "56210307b8ae49ac90a048e9b53357a2354b3334e9c8be" +
		"e813ecb98e99a7e07e8c3ba32103b28f0c28bfab54554ae8c658ac5c3e" +
		"0ce6e79ad336331f78c428dd43eea8449b21034b8113d703413d57761b" +
		"8b9781957b8c0ac1dfe69f492580ca4195f50376ba4a21033400f6afec" +
		"b833092a9a21cfdf1ed1376e58c5d1f47de74683123987e967a8f42103" +
		"a6d48b1131e94ba04d9737d61acdaa1322008af9602b3b14862c07a178" +
		"9aac162102d8b661b0b3302ee2f162b09e07a55ad5dfbe673a9f01d9f0" +
		"c19617681024306b56ae"

	bip143P2WSHValue = btcutil.Amount(987654321)

	bip143P2WSHDigestHex = "185c0be5263dce5b4bb50a047973c1b6272bfbd0103a89" +
		"444597dc40b248ee7c"
)

// decodeTx deserializes an unsigned transaction from its hex encoding.
func decodeTx(t *testing.T, txHex string) *wire.MsgTx {
	t.Helper()

	serialized, err := hex.DecodeString(txHex)
	require.NoError(t, err)

	tx := wire.NewMsgTx(wire.TxVersion)
	require.NoError(t, tx.Deserialize(bytes.NewReader(serialized)))
	return tx
}

func hexToBytes(t *testing.T, s string) []byte {
	t.Helper()

	decoded, err := hex.DecodeString(s)
	require.NoError(t, err)
	return decoded
}

func TestSigHashesP2WPKHExample(t *testing.T) {
	tx := decodeTx(t, bip143P2WPKHTxHex)
	cache := sighash.NewSigHashes(tx)

	require.Equal(t,
		"96b827c8483d4e9b96712b6713a7b68d6e8003a781feba36c31143470b"+
			"4efd37",
		hex.EncodeToString(cache.HashPrevOuts[:]))
	require.Equal(t,
		"52b0a642eea2fb7ae638c36f6252b6750293dbe574a806984b8e4d8548"+
			"339a3b",
		hex.EncodeToString(cache.HashSequence[:]))
	require.Equal(t,
		"863ef3e1a92afbfdb97f31ad0fc7683ee943e9abcf2501590ff8f6551f"+
			"47e5e5",
		hex.EncodeToString(cache.HashOutputs[:]))
}

func TestCalcWitnessSigHashP2WPKHExample(t *testing.T) {
	tx := decodeTx(t, bip143P2WPKHTxHex)

	pubKey, err := btcec.ParsePubKey(
		hexToBytes(t, bip143P2WPKHPubKeyHex))
	require.NoError(t, err)

	scriptCode, err := sighash.P2WPKHScriptCode(pubKey)
	require.NoError(t, err)
	require.Equal(t,
		"76a9141d0f172a0ecb48aee1be1f2687d2963ae33f71a188ac",
		hex.EncodeToString(scriptCode))

	digest, err := sighash.CalcWitnessSigHash(
		tx, sighash.NewSigHashes(tx), 1, scriptCode,
		bip143P2WPKHValue,
	)
	require.NoError(t, err)
	require.Equal(t, bip143P2WPKHDigestHex, hex.EncodeToString(digest))
}

func TestCalcWitnessSigHashP2WSHExample(t *testing.T) {
	tx := decodeTx(t, bip143P2WSHTxHex)
	witnessScript := hexToBytes(t, bip143P2WSHScriptHex)

	digest, err := sighash.CalcWitnessSigHash(
		tx, sighash.NewSigHashes(tx), 0, witnessScript,
		bip143P2WSHValue,
	)
	require.NoError(t, err)
	require.Equal(t, bip143P2WSHDigestHex, hex.EncodeToString(digest))
}

// TestCalcWitnessSigHashNilCache asserts that the digest is the same whether
// the midstate hashes are precomputed or derived on the fly.
func TestCalcWitnessSigHashNilCache(t *testing.T) {
	tx := decodeTx(t, bip143P2WSHTxHex)
	witnessScript := hexToBytes(t, bip143P2WSHScriptHex)

	cached, err := sighash.CalcWitnessSigHash(
		tx, sighash.NewSigHashes(tx), 0, witnessScript,
		bip143P2WSHValue,
	)
	require.NoError(t, err)

	uncached, err := sighash.CalcWitnessSigHash(
		tx, nil, 0, witnessScript, bip143P2WSHValue,
	)
	require.NoError(t, err)
	require.Equal(t, cached, uncached)
}

func TestCalcWitnessSigHashInputIndexOutOfRange(t *testing.T) {
	tx := decodeTx(t, bip143P2WSHTxHex)
	witnessScript := hexToBytes(t, bip143P2WSHScriptHex)

	_, err := sighash.CalcWitnessSigHash(
		tx, nil, -1, witnessScript, bip143P2WSHValue,
	)
	require.ErrorIs(t, err, sighash.ErrInputIndexOutOfRange)

	_, err = sighash.CalcWitnessSigHash(
		tx, nil, len(tx.TxIn), witnessScript, bip143P2WSHValue,
	)
	require.ErrorIs(t, err, sighash.ErrInputIndexOutOfRange)
}

// TestCalcWitnessSigHashMatchesTxscript cross-checks the digest against the
// txscript implementation on a transaction with several inputs and outputs.
func TestCalcWitnessSigHashMatchesTxscript(t *testing.T) {
	tx := decodeTx(t, bip143P2WPKHTxHex)
	pubKey, err := btcec.ParsePubKey(
		hexToBytes(t, bip143P2WPKHPubKeyHex))
	require.NoError(t, err)

	scriptCode, err := sighash.P2WPKHScriptCode(pubKey)
	require.NoError(t, err)

	lockingScript, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(btcutil.Hash160(pubKey.SerializeCompressed())).
		Script()
	require.NoError(t, err)

	fetcher := txscript.NewCannedPrevOutputFetcher(
		lockingScript, int64(bip143P2WPKHValue),
	)
	reference, err := txscript.CalcWitnessSigHash(
		scriptCode, txscript.NewTxSigHashes(tx, fetcher),
		txscript.SigHashAll, tx, 1, int64(bip143P2WPKHValue),
	)
	require.NoError(t, err)

	digest, err := sighash.CalcWitnessSigHash(
		tx, sighash.NewSigHashes(tx), 1, scriptCode,
		bip143P2WPKHValue,
	)
	require.NoError(t, err)
	require.Equal(t, reference, digest)
}
