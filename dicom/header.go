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

import "fmt"

// Attribute is the decoded header of one Data Element, item or delimiter. It does not own a
// copy of the value: ValueOffset and ValueLength locate the value field within the buffer being
// parsed, and the Attribute is only meaningful while that buffer is.
type Attribute struct {
	Tag DataElementTag

	// Value Representation. Empty for items and delimiters.
	VR VR

	// ValueLength is equal to the length of the value field in bytes.
	// Can be equal to 0xFFFFFFFF to represent an undefined length:
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
	ValueLength uint32

	// Offset is the position of the first byte of the element header.
	Offset int

	// ValueOffset is the position of the first byte of the value field.
	ValueOffset int
}

// HasUndefinedLength is true if the value field is terminated by a delimiter rather than by
// a byte count.
func (a *Attribute) HasUndefinedLength() bool {
	return a.ValueLength == UndefinedLength
}

// IsSequence is true if the value field is a sequence of items holding nested data sets.
// Besides SQ elements this covers UN elements of undefined length, which carry a sequence
// encoded in the implicit VR syntax.
func (a *Attribute) IsSequence() bool {
	return a.VR == SQVR || (a.VR == UNVR && a.HasUndefinedLength())
}

// IsEncapsulated is true for elements, such as compressed pixel data, whose undefined-length
// value field is a sequence of fragment items holding raw bytes.
func (a *Attribute) IsEncapsulated() bool {
	return a.HasUndefinedLength() && !a.IsSequence() && !a.Tag.IsStructural()
}

func (a *Attribute) String() string {
	if a.HasUndefinedLength() {
		return fmt.Sprintf("%v %v #-1", a.Tag, a.VR)
	}
	return fmt.Sprintf("%v %v #%d", a.Tag, a.VR, a.ValueLength)
}

// readElementHeader decodes the element header at the cursor. On failure the cursor is left
// where it was.
func readElementHeader(dr *dcmReader, c codec) (Attribute, error) {
	start := dr.Offset()

	tag, err := c.readTag(dr)
	if err != nil {
		dr.Seek(start)
		return Attribute{}, err
	}

	vr, length, err := c.readVRAndLength(dr, tag)
	if err != nil {
		dr.Seek(start)
		return Attribute{}, err
	}

	return Attribute{tag, vr, length, start, dr.Offset()}, nil
}
