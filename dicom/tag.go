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

// DataElementTag is a unique identifier for a Data Element composed of an unordered pair
// of numbers called the group number and the element number as specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10.
//
// The least significant 16 bits is the element number. The most significant 16 bits is the group
// number. Tags order numerically by (group, element).
type DataElementTag uint32

// NewDataElementTag composes a DataElementTag from its group and element numbers.
func NewDataElementTag(group, element uint16) DataElementTag {
	return DataElementTag(uint32(group)<<16 | uint32(element))
}

// GroupNumber returns the group number component of the DataElementTag
func (t DataElementTag) GroupNumber() uint16 {
	return uint16(t >> 16)
}

// ElementNumber returns the element number component of the DataElementTag
func (t DataElementTag) ElementNumber() uint16 {
	return uint16(t & 0xFFFF)
}

// IsMetadataElement is true if and only if the Data Element is a meta data element
func (t DataElementTag) IsMetadataElement() bool {
	return t.GroupNumber() == metaGroup
}

// IsPrivate is true if and only if the tag belongs to a private group (odd group number)
func (t DataElementTag) IsPrivate() bool {
	return t.GroupNumber()%2 == 1
}

// IsStructural is true for tags of group FFFE (items and delimiters). These tags never denote
// an ordinary Data Element.
func (t DataElementTag) IsStructural() bool {
	return t.GroupNumber() == structuralGroup
}

// IsDelimiter is true for the Item Delimitation Item and the Sequence Delimitation Item.
func (t DataElementTag) IsDelimiter() bool {
	return t.IsStructural() && t != ItemTag
}

func (t DataElementTag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.GroupNumber(), t.ElementNumber())
}

const (
	metaGroup       = 0x0002
	structuralGroup = 0xFFFE
)

// Structural tags as specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
const (
	// ItemTag starts an item of a sequence or a fragment of encapsulated pixel data
	ItemTag DataElementTag = 0xFFFEE000
	// ItemDelimitationItemTag ends an item of undefined length
	ItemDelimitationItemTag DataElementTag = 0xFFFEE00D
	// SequenceDelimitationItemTag ends a sequence of undefined length
	SequenceDelimitationItemTag DataElementTag = 0xFFFEE0DD
)
