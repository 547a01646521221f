// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type BalanceError GenericError
type ConflictError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised         = ExistsError("already initialised")
	ErrArithmeticOverflow         = ProcessError("arithmetic overflow")
	ErrBadAttachment              = InvalidError("companion transfer is missing or does not match")
	ErrCertificateFileExists      = ExistsError("certificate file already exists")
	ErrEmptyMask                  = InvalidError("square mask is empty")
	ErrInsufficientBalance        = BalanceError("insufficient balance")
	ErrInvalidAccount             = InvalidError("invalid account")
	ErrInvalidAccountChecksum     = InvalidError("invalid account checksum")
	ErrInvalidAccountLength       = InvalidError("invalid account length")
	ErrInvalidAdmin               = InvalidError("admin address cannot be zero")
	ErrInvalidAmount              = InvalidError("amount must be greater than zero")
	ErrInvalidArgumentLength      = InvalidError("invalid argument length")
	ErrInvalidClientFingerprint   = InvalidError("invalid client certificate fingerprint")
	ErrInvalidCount               = InvalidError("invalid count")
	ErrInvalidCursor              = InvalidError("invalid cursor")
	ErrInvalidIPAddress           = InvalidError("invalid IP address")
	ErrInvalidLoggerChannel       = InvalidError("invalid logger channel")
	ErrInvalidOnCompletion        = InvalidError("invalid on completion action")
	ErrInvalidPoolPrefix          = InvalidError("invalid pool prefix")
	ErrInvalidRecordSize          = InvalidError("invalid record size")
	ErrInvalidStrategy            = InvalidError("invalid automation strategy")
	ErrKeyFileExists              = ExistsError("key file already exists")
	ErrMissingParameters          = InvalidError("missing parameters")
	ErrNotInitialised             = NotFoundError("not initialised")
	ErrOutboundTransferFailed     = ProcessError("outbound transfer failed")
	ErrRateLimiting               = InvalidError("rate limiting")
	ErrRecordExists               = ExistsError("record already exists")
	ErrRecordNotFound             = NotFoundError("record not found")
	ErrRecordOutOfRange           = InvalidError("record access out of range")
	ErrReloadDisabled             = InvalidError("automation reload is disabled")
	ErrSquareConflict             = ConflictError("square is owned by another authority")
	ErrStorageExhausted           = ProcessError("storage exhausted")
	ErrSupplyCapExceeded          = BalanceError("token supply cap exceeded")
	ErrTransactionAlreadyInUse    = ProcessError("transaction already in use")
	ErrTransactionNotInUse        = ProcessError("transaction is not in use")
	ErrUnauthorised               = PermissionError("caller is not authorised")
	ErrUnbalancedTreasury         = ProcessError("treasury strategy does not balance")
	ErrUnknownSelector            = NotFoundError("unknown method selector")
	ErrUnsupportedDatabaseVersion = ProcessError("unsupported database version")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e BalanceError) Error() string    { return string(e) }
func (e ConflictError) Error() string   { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }

// determine the class of an error
func IsErrBalance(e error) bool    { _, ok := e.(BalanceError); return ok }
func IsErrConflict(e error) bool   { _, ok := e.(ConflictError); return ok }
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
