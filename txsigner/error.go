// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txsigner

import "fmt"

// ErrorCode identifies a kind of error.
type ErrorCode int

const (
	// ErrInvalidDigest indicates that a signature hash passed for signing
	// or verification is not exactly 32 bytes.
	ErrInvalidDigest ErrorCode = iota

	// ErrInvalidPrivateKey indicates that raw private key material could
	// not be turned into a usable signing key.
	ErrInvalidPrivateKey

	// ErrSignatureEncoding indicates that a raw signature is not strict
	// DER, or not a well-formed 64-byte compact signature.
	ErrSignatureEncoding

	// ErrHighSignature indicates that a signature carries an S value in
	// the upper half of the curve order.  Such signatures are malleable
	// and rejected outright.
	ErrHighSignature

	// ErrSignatureCountExceedsKeys indicates that more signatures were
	// supplied for a multisig witness than the redeem script has keys.
	ErrSignatureCountExceedsKeys

	// ErrNotEnoughSignatures indicates that a multisig witness does not
	// carry enough signatures to meet the redeem script's threshold.
	ErrNotEnoughSignatures

	// ErrUnknownPubKey indicates a signature attributed to a public key
	// that is not part of the redeem script.
	ErrUnknownPubKey

	// ErrDuplicateSignature indicates that more than one signature was
	// supplied for the same public key.
	ErrDuplicateSignature

	// ErrInputValidation indicates that a fully signed input failed
	// script engine execution.
	ErrInputValidation
)

// errorCodeStrings is a map of error codes back to their constant names for
// pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidDigest:             "ErrInvalidDigest",
	ErrInvalidPrivateKey:         "ErrInvalidPrivateKey",
	ErrSignatureEncoding:         "ErrSignatureEncoding",
	ErrHighSignature:             "ErrHighSignature",
	ErrSignatureCountExceedsKeys: "ErrSignatureCountExceedsKeys",
	ErrNotEnoughSignatures:       "ErrNotEnoughSignatures",
	ErrUnknownPubKey:             "ErrUnknownPubKey",
	ErrDuplicateSignature:        "ErrDuplicateSignature",
	ErrInputValidation:           "ErrInputValidation",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error is a typed error for all errors arising during signing and witness
// assembly.  Note that failed signature verification is reported as a plain
// boolean by the verify functions, never as an Error.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// newError creates a new Error.
func newError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}
