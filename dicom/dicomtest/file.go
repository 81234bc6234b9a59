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

package dicomtest

import "bytes"

// Transfer syntax UIDs, for File Meta Information
const (
	ImplicitVRLittleEndianUID         = "1.2.840.10008.1.2"
	ExplicitVRLittleEndianUID         = "1.2.840.10008.1.2.1"
	ExplicitVRBigEndianUID            = "1.2.840.10008.1.2.2"
	DeflatedExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1.99"
	JPEGBaselineUID                   = "1.2.840.10008.1.2.4.50"
)

// Meta describes the File Meta Information of a Part-10 file
type Meta struct {
	TransferSyntaxUID          string
	MediaStorageSOPClassUID    string
	MediaStorageSOPInstanceUID string
	ImplementationClassUID     string
	ImplementationVersionName  string

	// OmitGroupLength leaves out the (0002,0000) element
	OmitGroupLength bool
}

// Encode returns the group 0002 elements in explicit VR little endian. Empty fields are left
// out.
func (m Meta) Encode() []byte {
	elements := NewEncoder(ExplicitLittle).
		Element(0x00020001, "OB", []byte{0x00, 0x01})
	uids := []struct {
		tag   uint32
		value string
	}{
		{0x00020002, m.MediaStorageSOPClassUID},
		{0x00020003, m.MediaStorageSOPInstanceUID},
		{0x00020010, m.TransferSyntaxUID},
		{0x00020012, m.ImplementationClassUID},
	}
	for _, u := range uids {
		if u.value != "" {
			elements.Element(u.tag, "UI", UID(u.value))
		}
	}
	if m.ImplementationVersionName != "" {
		elements.Element(0x00020013, "SH", Text(m.ImplementationVersionName))
	}

	if m.OmitGroupLength {
		return elements.Bytes()
	}
	return NewEncoder(ExplicitLittle).
		Element(0x00020000, "UL", UInt32s(ExplicitLittle.Order, uint32(elements.Len()))).
		Raw(elements.Bytes()).
		Bytes()
}

// File returns a Part-10 file: a zero preamble, the DICM signature, the File Meta
// Information and the encoded data set.
func File(meta Meta, dataSet []byte) []byte {
	var buf bytes.Buffer
	buf.Write(make([]byte, 128))
	buf.WriteString("DICM")
	buf.Write(meta.Encode())
	buf.Write(dataSet)
	return buf.Bytes()
}
