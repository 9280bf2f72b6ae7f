// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type CapacityError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised    = ProcessError("already initialised")
	CertificateFileExists = ExistsError("certificate file already exists")
	DimensionMismatch     = InvalidError("image must be 64x64 pixels")
	ImageDecode           = InvalidError("image data could not be decoded")
	InvalidAddress        = InvalidError("invalid contract address")
	InvalidCount          = InvalidError("invalid count")
	InvalidIndex          = InvalidError("invalid item index")
	InvalidPage           = InvalidError("invalid page number")
	InvalidPalette        = InvalidError("palette must hold 64 distinct colours")
	InvalidPixel          = InvalidError("pixel code out of range")
	InvalidScale          = InvalidError("invalid scale factor")
	InvalidStructPointer  = InvalidError("invalid struct pointer")
	KeyFileExists         = ExistsError("key file already exists")
	MalformedInput        = InvalidError("malformed DNA")
	MalformedTree         = RecordError("malformed DNA cell tree")
	MissingParameters     = InvalidError("missing parameters")
	NotInitialised        = ProcessError("not initialised")
	OverCapacity          = CapacityError("over capacity")
	PaletteMismatch       = InvalidError("image uses colours outside the palette")
	Stopped               = ProcessError("stopped")
	StorageBackend        = InvalidError("unknown storage backend")
	UnsupportedFormat     = InvalidError("unsupported image format")
	WrongDimensions       = InvalidError("pixel rows must be 64x64")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e CapacityError) Error() string { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// UpstreamError - a remote service replied with something unusable
//
// Response holds the raw body for diagnostics; it must never be
// returned to a client
type UpstreamError struct {
	Operation string
	Response  string
	Err       error
}

// Error - the error interface
func (e *UpstreamError) Error() string {
	if "" == e.Response {
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s: %v: response: %s", e.Operation, e.Err, e.Response)
}

// Unwrap - expose the cause to errors.Is/errors.As
func (e *UpstreamError) Unwrap() error { return e.Err }

// Upstream - wrap an error from a remote call
func Upstream(operation string, response string, err error) error {
	return &UpstreamError{
		Operation: operation,
		Response:  response,
		Err:       err,
	}
}

// determine the class of an error
func IsErrCapacity(e error) bool { var x CapacityError; return errors.As(e, &x) }
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrRecord(e error) bool   { var x RecordError; return errors.As(e, &x) }
func IsErrUpstream(e error) bool { var x *UpstreamError; return errors.As(e, &x) }
