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
	"encoding/binary"
	"fmt"
)

// list of transfer syntaxes obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_A
const (
	// ImplicitVRLittleEndianUID is the Implicit VR Little Endian UID
	ImplicitVRLittleEndianUID = "1.2.840.10008.1.2"
	// ExplicitVRLittleEndianUID is the Explicit VR Little Endian UID
	ExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1"
	// ExplicitVRBigEndianUID is the Explicit VR Big Endian UID
	ExplicitVRBigEndianUID = "1.2.840.10008.1.2.2"
	// DeflatedExplicitVRLittleEndianUID is the Deflated Explicit VR Little Endian UID
	DeflatedExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1.99"
	// JPEGBaselineUID is the JPEG Baseline (Process 1) transfer syntax UID
	JPEGBaselineUID = "1.2.840.10008.1.2.4.50"
)

// TransferSyntax is one of the three uncompressed encodings of a data set: a byte order
// combined with implicit or explicit VRs. The zero value is not a valid TransferSyntax.
type TransferSyntax int

// Transfer syntaxes understood by the decoder.
const (
	ImplicitVRLittleEndian TransferSyntax = iota + 1
	ExplicitVRLittleEndian
	ExplicitVRBigEndian
)

// LookupTransferSyntax maps a transfer syntax UID to the encoding of its data set.
// The deflated syntax yields an *UnsupportedTransferSyntaxError.
func LookupTransferSyntax(uid string) (TransferSyntax, error) {
	switch uid {
	case ImplicitVRLittleEndianUID:
		return ImplicitVRLittleEndian, nil
	case ExplicitVRBigEndianUID:
		return ExplicitVRBigEndian, nil
	case DeflatedExplicitVRLittleEndianUID:
		return 0, &UnsupportedTransferSyntaxError{uid}
	}

	// any other syntax should be explicit VR little endian according to PS3.5 A.4
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
	return ExplicitVRLittleEndian, nil
}

func (s TransferSyntax) valid() bool {
	return s >= ImplicitVRLittleEndian && s <= ExplicitVRBigEndian
}

// ByteOrder returns the byte order of multi-byte numbers, including tags and lengths.
func (s TransferSyntax) ByteOrder() binary.ByteOrder {
	if s == ExplicitVRBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// IsExplicitVR is true if VRs are present on the wire.
func (s TransferSyntax) IsExplicitVR() bool {
	return s == ExplicitVRLittleEndian || s == ExplicitVRBigEndian
}

// UID returns the canonical UID of the transfer syntax.
func (s TransferSyntax) UID() string {
	switch s {
	case ImplicitVRLittleEndian:
		return ImplicitVRLittleEndianUID
	case ExplicitVRLittleEndian:
		return ExplicitVRLittleEndianUID
	case ExplicitVRBigEndian:
		return ExplicitVRBigEndianUID
	}
	return ""
}

func (s TransferSyntax) String() string {
	switch s {
	case ImplicitVRLittleEndian:
		return "ImplicitVRLittleEndian"
	case ExplicitVRLittleEndian:
		return "ExplicitVRLittleEndian"
	case ExplicitVRBigEndian:
		return "ExplicitVRBigEndian"
	}
	return fmt.Sprintf("TransferSyntax(%d)", int(s))
}

const vrSize = 2

// codec decodes the parts of an element header in one transfer syntax. It is selected once
// per parse and not modified afterwards.
type codec struct {
	syntax  TransferSyntax
	order   binary.ByteOrder
	tags    TagDictionary
	classes VRClassifier
}

func newCodec(syntax TransferSyntax, cfg *config) codec {
	return codec{syntax, syntax.ByteOrder(), cfg.tags, cfg.classes}
}

// implicit returns the codec for implicit VR little endian with the same dictionaries
func (c codec) implicit() codec {
	c.syntax = ImplicitVRLittleEndian
	c.order = c.syntax.ByteOrder()
	return c
}

func (c codec) readTag(dr *dcmReader) (DataElementTag, error) {
	return dr.Tag(c.order)
}

// readVRAndLength decodes the VR and value length following tag. Items and delimiters have no
// VR and a 32-bit length in every syntax.
func (c codec) readVRAndLength(dr *dcmReader, tag DataElementTag) (VR, uint32, error) {
	if tag.IsStructural() {
		length, err := dr.UInt32(c.order)
		return "", length, err
	}

	if !c.syntax.IsExplicitVR() {
		vr, ok := c.tags.LookupVR(tag)
		if !ok {
			vr = UNVR
		}
		length, err := dr.UInt32(c.order)
		return vr, length, err
	}

	name, err := dr.String(vrSize)
	if err != nil {
		return "", 0, err
	}
	vr := VR(name)

	// For explicit VR, lengths can be stored in a 32 bit field or a 16 bit field
	// depending on the VR type. The 2 cases are defined at the link:
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
	if c.classes.IsLongForm(vr) {
		if err := dr.Skip(2); err != nil { // reserved
			return "", 0, err
		}
		length, err := dr.UInt32(c.order)
		return vr, length, err
	}

	length, err := dr.UInt16(c.order)
	if err != nil {
		return "", 0, err
	}
	if length == 0xFFFF {
		return vr, UndefinedLength, nil
	}
	return vr, uint32(length), nil
}
