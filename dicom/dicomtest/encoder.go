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

// Package dicomtest encodes DICOM data sets and Part-10 files for tests. It writes exactly the
// bytes it is asked to, so malformed and truncated input can be built as easily as valid input.
package dicomtest

import (
	"bytes"
	"encoding/binary"
)

// Syntax selects the byte order and VR encoding of an Encoder
type Syntax struct {
	Order    binary.ByteOrder
	Implicit bool
}

// The transfer syntaxes a data set can be encoded in
var (
	ImplicitLittle = Syntax{Order: binary.LittleEndian, Implicit: true}
	ExplicitLittle = Syntax{Order: binary.LittleEndian}
	ExplicitBig    = Syntax{Order: binary.BigEndian}
)

// Syntaxes lists all transfer syntaxes, for tests that run in each of them
var Syntaxes = map[string]Syntax{
	"implicit little endian": ImplicitLittle,
	"explicit little endian": ExplicitLittle,
	"explicit big endian":    ExplicitBig,
}

// UndefinedLength is the value length of elements and items closed by a delimiter
const UndefinedLength uint32 = 0xFFFFFFFF

// Tags of the items and delimiters of group FFFE
const (
	ItemTag                     uint32 = 0xFFFEE000
	ItemDelimitationItemTag     uint32 = 0xFFFEE00D
	SequenceDelimitationItemTag uint32 = 0xFFFEE0DD
)

// longVRs have a reserved field and a 32-bit length in explicit VR syntaxes
var longVRs = map[string]bool{
	"OB": true, "OD": true, "OF": true, "OL": true, "OV": true, "OW": true, "SQ": true,
	"SV": true, "UC": true, "UN": true, "UR": true, "UT": true, "UV": true,
}

// Encoder builds an encoded data set one element at a time. Methods return the Encoder so
// that calls can be chained.
type Encoder struct {
	syntax Syntax
	buf    bytes.Buffer
}

// NewEncoder returns an Encoder writing in the given syntax
func NewEncoder(syntax Syntax) *Encoder {
	return &Encoder{syntax: syntax}
}

// Syntax returns the syntax the Encoder writes in
func (e *Encoder) Syntax() Syntax {
	return e.syntax
}

// Bytes returns the bytes encoded so far
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of bytes encoded so far
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Tag writes a tag as group then element number
func (e *Encoder) Tag(tag uint32) *Encoder {
	e.UInt16(uint16(tag >> 16))
	return e.UInt16(uint16(tag))
}

// UInt16 writes v in the Encoder's byte order
func (e *Encoder) UInt16(v uint16) *Encoder {
	b := make([]byte, 2)
	e.syntax.Order.PutUint16(b, v)
	return e.Raw(b)
}

// UInt32 writes v in the Encoder's byte order
func (e *Encoder) UInt32(v uint32) *Encoder {
	b := make([]byte, 4)
	e.syntax.Order.PutUint32(b, v)
	return e.Raw(b)
}

// Raw writes b unchanged
func (e *Encoder) Raw(b []byte) *Encoder {
	e.buf.Write(b)
	return e
}

// Header writes an element header. The VR is omitted in implicit syntaxes and for group FFFE
// tags. Lengths are truncated to 16 bits for short-form VRs, so UndefinedLength becomes 0xFFFF.
func (e *Encoder) Header(tag uint32, vr string, length uint32) *Encoder {
	e.Tag(tag)
	if e.syntax.Implicit || tag>>16 == 0xFFFE {
		return e.UInt32(length)
	}

	e.Raw([]byte(vr))
	if longVRs[vr] {
		e.UInt16(0)
		return e.UInt32(length)
	}
	return e.UInt16(uint16(length))
}

// Element writes an element with a defined length and the given value
func (e *Encoder) Element(tag uint32, vr string, value []byte) *Encoder {
	return e.Header(tag, vr, uint32(len(value))).Raw(value)
}

// Item writes an item header
func (e *Encoder) Item(length uint32) *Encoder {
	return e.Header(ItemTag, "", length)
}

// ItemDelimiter writes an Item Delimitation Item
func (e *Encoder) ItemDelimiter() *Encoder {
	return e.Header(ItemDelimitationItemTag, "", 0)
}

// SequenceDelimiter writes a Sequence Delimitation Item
func (e *Encoder) SequenceDelimiter() *Encoder {
	return e.Header(SequenceDelimitationItemTag, "", 0)
}

// DefinedSequence writes an SQ element of defined length holding items of defined length.
// Each item is the encoded body of one item.
func (e *Encoder) DefinedSequence(tag uint32, items ...[]byte) *Encoder {
	body := NewEncoder(e.syntax)
	for _, item := range items {
		body.Item(uint32(len(item))).Raw(item)
	}
	return e.Element(tag, "SQ", body.Bytes())
}

// UndefinedSequence writes an SQ element of undefined length holding items of undefined
// length, with all delimiters.
func (e *Encoder) UndefinedSequence(tag uint32, items ...[]byte) *Encoder {
	e.Header(tag, "SQ", UndefinedLength)
	for _, item := range items {
		e.Item(UndefinedLength).Raw(item).ItemDelimiter()
	}
	return e.SequenceDelimiter()
}

// Encapsulated writes an element of undefined length holding fragments, as used for
// compressed Pixel Data. The first fragment is the Basic Offset Table.
func (e *Encoder) Encapsulated(tag uint32, vr string, fragments ...[]byte) *Encoder {
	e.Header(tag, vr, UndefinedLength)
	for _, f := range fragments {
		e.Item(uint32(len(f))).Raw(f)
	}
	return e.SequenceDelimiter()
}

// UInt16s encodes values as a US value
func UInt16s(order binary.ByteOrder, values ...uint16) []byte {
	b := make([]byte, 2*len(values))
	for i, v := range values {
		order.PutUint16(b[2*i:], v)
	}
	return b
}

// UInt32s encodes values as a UL value
func UInt32s(order binary.ByteOrder, values ...uint32) []byte {
	b := make([]byte, 4*len(values))
	for i, v := range values {
		order.PutUint32(b[4*i:], v)
	}
	return b
}

// Text pads s with a trailing space to an even length
func Text(s string) []byte {
	return pad(s, ' ')
}

// UID pads s with a trailing NULL to an even length
func UID(s string) []byte {
	return pad(s, 0)
}

func pad(s string, padding byte) []byte {
	b := []byte(s)
	if len(b)%2 != 0 {
		b = append(b, padding)
	}
	return b
}
