// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import (
	"errors"
	"fmt"
)

// Error conditions. Every error returned by this package matches one of these with errors.Is.
var (
	// ErrUnderflow indicates the input ended inside a header, a value, or an open container.
	ErrUnderflow = errors.New("dicom: unexpected end of input")

	// ErrMalformedHeader indicates a bad preamble signature or unusable File Meta Information.
	ErrMalformedHeader = errors.New("dicom: malformed file meta information")

	// ErrUnsupportedTransferSyntax indicates a transfer syntax this package cannot decode.
	ErrUnsupportedTransferSyntax = errors.New("dicom: unsupported transfer syntax")

	// ErrMalformedDataSet indicates structural elements appearing where they are not allowed.
	ErrMalformedDataSet = errors.New("dicom: malformed data set")
)

// UnderflowError reports the position at which parsing could not proceed for lack of input.
// Events delivered before the underflow remain valid.
type UnderflowError struct {
	// Offset is the position of the first byte of the element that could not be completed.
	// For input ending inside a sequence this is the top level sequence element.
	Offset int
	// Remaining is the number of buffer bytes from Offset onwards that were not parsed.
	Remaining int
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("dicom: input underflow at offset %d: %d bytes not parsed", e.Offset, e.Remaining)
}

func (e *UnderflowError) Unwrap() error {
	return ErrUnderflow
}

// UnsupportedTransferSyntaxError names the transfer syntax that was rejected.
type UnsupportedTransferSyntaxError struct {
	UID string
}

func (e *UnsupportedTransferSyntaxError) Error() string {
	return fmt.Sprintf("dicom: unsupported transfer syntax %s", e.UID)
}

func (e *UnsupportedTransferSyntaxError) Unwrap() error {
	return ErrUnsupportedTransferSyntax
}

// SyntaxError provides detail about a structurally invalid data set.
type SyntaxError struct {
	Offset int    // position of the offending element header
	Reason string // human-readable explanation
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("dicom: malformed data set at offset %d: %s", e.Offset, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return ErrMalformedDataSet
}

// Remaining returns the number of unparsed bytes reported by an underflow error.
// The second result is false if err does not carry an underflow.
func Remaining(err error) (int, bool) {
	var ue *UnderflowError
	if errors.As(err, &ue) {
		return ue.Remaining, true
	}
	return 0, false
}
