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
)

// dcmReader is a cursor over a fully buffered DICOM byte stream, providing convenience methods
// for parsing tags, numbers, strings. It never reads at or beyond limit and never writes to buf.
// Every method either consumes exactly what it asks for or fails with ErrUnderflow and leaves
// the cursor unchanged.
type dcmReader struct {
	buf   []byte
	pos   int
	limit int
}

func newDcmReader(buf []byte) *dcmReader {
	return &dcmReader{buf, 0, len(buf)}
}

// Offset returns the position of the cursor within the buffer.
func (dr *dcmReader) Offset() int {
	return dr.pos
}

// Seek moves the cursor to pos.
func (dr *dcmReader) Seek(pos int) {
	dr.pos = pos
}

// Remaining returns how many bytes can be read before limit.
func (dr *dcmReader) Remaining() int {
	return dr.limit - dr.pos
}

func (dr *dcmReader) Tag(order binary.ByteOrder) (DataElementTag, error) {
	b, err := dr.Bytes(4)
	if err != nil {
		return 0, err
	}
	return NewDataElementTag(order.Uint16(b), order.Uint16(b[2:])), nil
}

// Skip advances the cursor by n bytes
func (dr *dcmReader) Skip(n int) error {
	if n < 0 || n > dr.Remaining() {
		return ErrUnderflow
	}
	dr.pos += n
	return nil
}

// String returns a string of length n from the input stream
func (dr *dcmReader) String(n int) (string, error) {
	b, err := dr.Bytes(n)
	return string(b), err
}

// Bytes returns the next n bytes. The returned slice aliases the buffer and its capacity is
// clipped so appending to it cannot overwrite the input.
func (dr *dcmReader) Bytes(n int) ([]byte, error) {
	if n < 0 || n > dr.Remaining() {
		return nil, ErrUnderflow
	}
	b := dr.buf[dr.pos : dr.pos+n : dr.pos+n]
	dr.pos += n
	return b, nil
}

// UInt32 returns a uint32 from the input stream
func (dr *dcmReader) UInt32(order binary.ByteOrder) (uint32, error) {
	b, err := dr.Bytes(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

// UInt16 returns a uint16 from the input stream
func (dr *dcmReader) UInt16(order binary.ByteOrder) (uint16, error) {
	b, err := dr.Bytes(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

// valueSize converts a declared length to a byte count. Lengths that do not fit in an int
// yield -1, which every dcmReader method rejects as an underflow.
func valueSize(length uint32) int {
	n := int(length)
	if n < 0 || uint64(n) != uint64(length) {
		return -1
	}
	return n
}
