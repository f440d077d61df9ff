package models

import "errors"

var (
	ErrHoldNotFound       = errors.New("hold not found")
	ErrHoldNotPending     = errors.New("hold is not pending")
	ErrHoldExpired        = errors.New("hold has expired")
	ErrRoomNotFound       = errors.New("room not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// BankError is a business-rule failure reported by the bank flow (missing
// accounts, insufficient balance, rejected transaction). The message is shown
// to the user verbatim.
type BankError struct {
	Message string
}

func (e *BankError) Error() string {
	return e.Message
}

// UpstreamShapeError reports a remote payload that matched none of the known
// field-name variants. Failing loudly here surfaces integration drift instead
// of hiding it behind zero values.
type UpstreamShapeError struct {
	Service string
	Field   string
}

func (e *UpstreamShapeError) Error() string {
	return "unexpected " + e.Service + " response shape: missing " + e.Field
}
