// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import "fmt"

// ErrorCode identifies a kind of error.
type ErrorCode int

const (
	// ErrInvalidThreshold indicates that the requested signature threshold
	// is zero, negative, or larger than the number of public keys.
	ErrInvalidThreshold ErrorCode = iota

	// ErrTooManyKeys indicates that more than MaxPubKeys public keys were
	// supplied to the builder.  Scripts above that limit are non-standard
	// and will not be relayed.
	ErrTooManyKeys

	// ErrDuplicateKey indicates that the same public key appears more than
	// once in the supplied key list.
	ErrDuplicateKey

	// ErrNotStandard indicates that a raw script does not have the
	// canonical m-of-n CHECKMULTISIG layout.
	ErrNotStandard
)

// errorCodeStrings is a map of error codes back to their constant names for
// pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidThreshold: "ErrInvalidThreshold",
	ErrTooManyKeys:      "ErrTooManyKeys",
	ErrDuplicateKey:     "ErrDuplicateKey",
	ErrNotStandard:      "ErrNotStandard",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error is a typed error for all errors arising during redeem script
// construction and parsing.
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
