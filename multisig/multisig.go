// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"
)

// MaxPubKeys is the largest number of public keys a standard multisig
// redeem script may contain.
const MaxPubKeys = 15

// RedeemScript is a standard m-of-n multisig redeem script together with its
// parsed content.  It is immutable once constructed.
type RedeemScript struct {
	script    []byte
	pubKeys   []*btcec.PublicKey
	threshold int
}

// Script returns a copy of the serialized redeem script bytes.
func (r *RedeemScript) Script() []byte {
	script := make([]byte, len(r.script))
	copy(script, r.script)
	return script
}

// PubKeys returns the script's public keys in script order.
func (r *RedeemScript) PubKeys() []*btcec.PublicKey {
	pubKeys := make([]*btcec.PublicKey, len(r.pubKeys))
	copy(pubKeys, r.pubKeys)
	return pubKeys
}

// Threshold returns the number of signatures required to satisfy the script.
func (r *RedeemScript) Threshold() int {
	return r.threshold
}

// String returns the hex encoding of the serialized script.
func (r *RedeemScript) String() string {
	return hex.EncodeToString(r.script)
}

// Builder incrementally collects the public keys and signature threshold of
// an m-of-n multisig redeem script.  Keys are kept in insertion order, which
// becomes the script's key order.
type Builder struct {
	pubKeys   []*btcec.PublicKey
	threshold int
}

// NewBuilder returns a builder for a redeem script requiring the given
// number of signatures.
func NewBuilder(threshold int) *Builder {
	return &Builder{threshold: threshold}
}

// AddPubKey appends a participant public key to the builder.  The builder is
// returned to allow chaining.
func (b *Builder) AddPubKey(pubKey *btcec.PublicKey) *Builder {
	b.pubKeys = append(b.pubKeys, pubKey)
	return b
}

// Threshold replaces the builder's signature threshold.  The builder is
// returned to allow chaining.
func (b *Builder) Threshold(threshold int) *Builder {
	b.threshold = threshold
	return b
}

// Script finalizes the builder and returns the canonical redeem script for
// the collected keys and threshold.
func (b *Builder) Script() (*RedeemScript, error) {
	return BuildRedeemScript(b.pubKeys, b.threshold)
}

// validateContent checks the standardness constraints shared by script
// construction and parsing.
func validateContent(pubKeys []*btcec.PublicKey, threshold int) error {
	if len(pubKeys) > MaxPubKeys {
		return newError(ErrTooManyKeys,
			fmt.Sprintf("got %d public keys but standard multisig "+
				"scripts allow at most %d", len(pubKeys),
				MaxPubKeys), nil)
	}
	if threshold < 1 || threshold > len(pubKeys) {
		return newError(ErrInvalidThreshold,
			fmt.Sprintf("threshold %d is not between 1 and the "+
				"number of public keys (%d)", threshold,
				len(pubKeys)), nil)
	}
	seen := make(map[string]struct{}, len(pubKeys))
	for _, pubKey := range pubKeys {
		serialized := string(pubKey.SerializeCompressed())
		if _, ok := seen[serialized]; ok {
			return newError(ErrDuplicateKey,
				fmt.Sprintf("public key %x appears more than "+
					"once", serialized), nil)
		}
		seen[serialized] = struct{}{}
	}
	return nil
}

// BuildRedeemScript constructs the canonical redeem script
//
//	OP_m <pubkey 1> ... <pubkey n> OP_n OP_CHECKMULTISIG
//
// for the given public keys and signature threshold.  The keys are placed in
// the script in the order given, so callers must fix the key order before
// building.  Every key is serialized in 33-byte compressed form.
func BuildRedeemScript(pubKeys []*btcec.PublicKey, threshold int) (*RedeemScript, error) {
	if err := validateContent(pubKeys, threshold); err != nil {
		return nil, err
	}

	builder := txscript.NewScriptBuilder()
	builder.AddInt64(int64(threshold))
	for _, pubKey := range pubKeys {
		builder.AddData(pubKey.SerializeCompressed())
	}
	builder.AddInt64(int64(len(pubKeys)))
	builder.AddOp(txscript.OP_CHECKMULTISIG)

	script, err := builder.Script()
	if err != nil {
		return nil, newError(ErrNotStandard, "failed to serialize "+
			"redeem script", err)
	}

	log.Debugf("Built %d-of-%d redeem script (%d bytes)", threshold,
		len(pubKeys), len(script))

	return &RedeemScript{
		script:    script,
		pubKeys:   append([]*btcec.PublicKey(nil), pubKeys...),
		threshold: threshold,
	}, nil
}

// smallInt returns the integer a small-int opcode pushes, along with whether
// the opcode is in fact one of OP_1 through OP_16.
func smallInt(opcode byte) (int, bool) {
	if opcode < txscript.OP_1 || opcode > txscript.OP_16 {
		return 0, false
	}
	return int(opcode-txscript.OP_1) + 1, true
}

// ParseRedeemScript parses a raw script as a standard multisig redeem script
// and returns its content.  Scripts that deviate from the canonical layout
// in any way, including uncompressed keys, fail with ErrNotStandard.
func ParseRedeemScript(script []byte) (*RedeemScript, error) {
	tokenizer := txscript.MakeScriptTokenizer(0, script)

	// Threshold.
	if !tokenizer.Next() {
		return nil, newError(ErrNotStandard, "empty script", nil)
	}
	threshold, ok := smallInt(tokenizer.Opcode())
	if !ok {
		return nil, newError(ErrNotStandard,
			"script does not begin with a small-int threshold", nil)
	}

	// Public keys, one compressed key per push, up to the key-count opcode.
	var pubKeys []*btcec.PublicKey
	for {
		if !tokenizer.Next() {
			return nil, newError(ErrNotStandard,
				"script is missing its key count and "+
					"OP_CHECKMULTISIG tail", tokenizer.Err())
		}
		if tokenizer.Opcode() != txscript.OP_DATA_33 {
			break
		}
		pubKey, err := btcec.ParsePubKey(tokenizer.Data())
		if err != nil {
			return nil, newError(ErrNotStandard,
				"script pushes an invalid public key", err)
		}
		pubKeys = append(pubKeys, pubKey)
	}

	// Key count and OP_CHECKMULTISIG tail.
	keyCount, ok := smallInt(tokenizer.Opcode())
	if !ok || keyCount != len(pubKeys) {
		return nil, newError(ErrNotStandard,
			fmt.Sprintf("script declares %d keys but pushes %d",
				keyCount, len(pubKeys)), nil)
	}
	if !tokenizer.Next() || tokenizer.Opcode() != txscript.OP_CHECKMULTISIG {
		return nil, newError(ErrNotStandard,
			"script does not end in OP_CHECKMULTISIG", nil)
	}
	if tokenizer.Next() {
		return nil, newError(ErrNotStandard,
			"script has trailing opcodes after OP_CHECKMULTISIG", nil)
	}
	if err := tokenizer.Err(); err != nil {
		return nil, newError(ErrNotStandard, "malformed script", err)
	}

	if err := validateContent(pubKeys, threshold); err != nil {
		return nil, err
	}

	redeemScript := make([]byte, len(script))
	copy(redeemScript, script)
	return &RedeemScript{
		script:    redeemScript,
		pubKeys:   pubKeys,
		threshold: threshold,
	}, nil
}
