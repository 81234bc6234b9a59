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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTransferSyntax(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want TransferSyntax
	}{
		{
			"explicit vr little endian",
			ExplicitVRLittleEndianUID,
			ExplicitVRLittleEndian,
		},
		{
			"implicit vr little endian",
			ImplicitVRLittleEndianUID,
			ImplicitVRLittleEndian,
		},
		{
			"explicit vr big endian",
			ExplicitVRBigEndianUID,
			ExplicitVRBigEndian,
		},
		{
			"jpeg baseline uid",
			JPEGBaselineUID,
			ExplicitVRLittleEndian,
		},
		{
			"unknown uid",
			"1.2.3.4.5",
			ExplicitVRLittleEndian,
		},
		{
			"empty uid",
			"",
			ExplicitVRLittleEndian,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LookupTransferSyntax(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLookupTransferSyntax_deflated(t *testing.T) {
	_, err := LookupTransferSyntax(DeflatedExplicitVRLittleEndianUID)
	require.ErrorIs(t, err, ErrUnsupportedTransferSyntax)

	var ue *UnsupportedTransferSyntaxError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, DeflatedExplicitVRLittleEndianUID, ue.UID)
}

func TestTransferSyntax_properties(t *testing.T) {
	tests := []struct {
		syntax   TransferSyntax
		order    binary.ByteOrder
		explicit bool
		uid      string
	}{
		{ImplicitVRLittleEndian, binary.LittleEndian, false, ImplicitVRLittleEndianUID},
		{ExplicitVRLittleEndian, binary.LittleEndian, true, ExplicitVRLittleEndianUID},
		{ExplicitVRBigEndian, binary.BigEndian, true, ExplicitVRBigEndianUID},
	}

	for _, tc := range tests {
		t.Run(tc.syntax.String(), func(t *testing.T) {
			assert.Equal(t, tc.order, tc.syntax.ByteOrder())
			assert.Equal(t, tc.explicit, tc.syntax.IsExplicitVR())
			assert.Equal(t, tc.uid, tc.syntax.UID())

			got, err := LookupTransferSyntax(tc.syntax.UID())
			require.NoError(t, err)
			assert.Equal(t, tc.syntax, got)
		})
	}
	assert.Equal(t, "TransferSyntax(0)", TransferSyntax(0).String())
}

func testCodec(syntax TransferSyntax, opts ...Option) codec {
	return newCodec(syntax, newConfig(opts))
}

func TestCodec_readTag(t *testing.T) {
	tests := []struct {
		name   string
		in     []byte
		want   DataElementTag
		syntax TransferSyntax
	}{
		{
			"read tag in big endian",
			[]byte{0x00, 0x02, 0x00, 0x10},
			0x00020010,
			ExplicitVRBigEndian,
		},
		{
			"read tag in little endian",
			[]byte{0x02, 0x00, 0x10, 0x00},
			0x00020010,
			ExplicitVRLittleEndian,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dr := newDcmReader(tc.in)
			got, err := testCodec(tc.syntax).readTag(dr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, 4, dr.Offset())
		})
	}
}

func TestCodec_readVRAndLength(t *testing.T) {
	// testing format outlined in Table 7.1-1 and 7.1-2 is respected
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
	tests := []struct {
		name       string
		bytes      []byte
		tag        DataElementTag
		syntax     TransferSyntax
		wantVR     VR
		wantLength uint32
	}{
		{
			"sequence explicit little endian",
			[]byte{'S', 'Q', 0x00, 0x00, 0x11, 0x22, 0x33, 0x44},
			0x00081140,
			ExplicitVRLittleEndian,
			SQVR,
			0x44332211,
		},
		{
			"sequence explicit big endian",
			[]byte{'S', 'Q', 0x00, 0x00, 0x11, 0x22, 0x33, 0x44},
			0x00081140,
			ExplicitVRBigEndian,
			SQVR,
			0x11223344,
		},
		{
			"unsigned short explicit little endian",
			[]byte{'U', 'S', 0x11, 0x22},
			0x00280010,
			ExplicitVRLittleEndian,
			USVR,
			0x2211,
		},
		{
			"unsigned short explicit big endian",
			[]byte{'U', 'S', 0x11, 0x22},
			0x00280010,
			ExplicitVRBigEndian,
			USVR,
			0x1122,
		},
		{
			"short form 0xFFFF is undefined length",
			[]byte{'S', 'H', 0xFF, 0xFF},
			0x00080070,
			ExplicitVRLittleEndian,
			SHVR,
			UndefinedLength,
		},
		{
			"when in the explicit VR syntax, the data dictionary specified VR is ignored",
			[]byte{'L', 'O', 0x02, 0x00},
			0x00280010,
			ExplicitVRLittleEndian,
			LOVR,
			2,
		},
		{
			"when in the implicit VR syntax, the data dictionary VR is returned",
			[]byte{0x02, 0x00, 0x00, 0x00},
			0x60000010,
			ImplicitVRLittleEndian,
			USVR,
			2,
		},
		{
			"repeating group resolved in implicit VR",
			[]byte{0x02, 0x00, 0x00, 0x00},
			0x60220010,
			ImplicitVRLittleEndian,
			USVR,
			2,
		},
		{
			"unknown tag in implicit VR is UN",
			[]byte{0x10, 0x00, 0x00, 0x00},
			0x00291010,
			ImplicitVRLittleEndian,
			UNVR,
			16,
		},
		{
			"item has no VR in explicit syntax",
			[]byte{0x10, 0x00, 0x00, 0x00},
			ItemTag,
			ExplicitVRLittleEndian,
			"",
			16,
		},
		{
			"delimiter has no VR in big endian",
			[]byte{0x00, 0x00, 0x00, 0x00},
			SequenceDelimitationItemTag,
			ExplicitVRBigEndian,
			"",
			0,
		},
		{
			"undefined length item",
			[]byte{0xFF, 0xFF, 0xFF, 0xFF},
			ItemTag,
			ImplicitVRLittleEndian,
			"",
			UndefinedLength,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dr := newDcmReader(tc.bytes)
			vr, length, err := testCodec(tc.syntax).readVRAndLength(dr, tc.tag)
			require.NoError(t, err)
			assert.Equal(t, tc.wantVR, vr)
			assert.Equal(t, tc.wantLength, length)
			assert.Equal(t, len(tc.bytes), dr.Offset())
		})
	}
}

func TestCodec_injectedCollaborators(t *testing.T) {
	dict := TagVRMap{0x00091001: FDVR}
	c := testCodec(ImplicitVRLittleEndian, WithTagDictionary(dict))
	vr, _, err := c.readVRAndLength(newDcmReader([]byte{8, 0, 0, 0}), 0x00091001)
	require.NoError(t, err)
	assert.Equal(t, FDVR, vr)

	// US treated as long form by a custom classifier
	c = testCodec(ExplicitVRLittleEndian, WithVRClassifier(NewVRSet(USVR)))
	vr, length, err := c.readVRAndLength(newDcmReader([]byte{'U', 'S', 0, 0, 2, 0, 0, 0}), 0x00280010)
	require.NoError(t, err)
	assert.Equal(t, USVR, vr)
	assert.Equal(t, uint32(2), length)
}

func TestCodec_underflow(t *testing.T) {
	tests := []struct {
		name   string
		bytes  []byte
		syntax TransferSyntax
	}{
		{"missing VR", []byte{'U'}, ExplicitVRLittleEndian},
		{"missing short length", []byte{'U', 'S', 0x02}, ExplicitVRLittleEndian},
		{"missing reserved bytes", []byte{'O', 'B', 0x00}, ExplicitVRBigEndian},
		{"missing long length", []byte{'O', 'B', 0x00, 0x00, 0x01, 0x00}, ExplicitVRLittleEndian},
		{"missing implicit length", []byte{0x02, 0x00}, ImplicitVRLittleEndian},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := testCodec(tc.syntax).readVRAndLength(newDcmReader(tc.bytes), 0x00280010)
			assert.ErrorIs(t, err, ErrUnderflow)
		})
	}
}
