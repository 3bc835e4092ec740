/*
SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import "errors"

// Error kinds surfaced by the contract. Entry points wrap these with %w and
// context so the middleware can classify failures with errors.Is while the
// message that reaches the client still names the offending key or role.
var (
	// ErrAlreadyExists is returned when a create targets an existing key.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound is returned when a read or mutation references a missing
	// batch or product.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned before any state is touched when the
	// caller's role is not in the operation's allowed set.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrMalformedInput is returned when a structured payload argument cannot
	// be parsed into its expected shape.
	ErrMalformedInput = errors.New("malformed input")
)
