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
	"testing"

	"github.com/stretchr/testify/assert"
)

// arithmeticSeq is the set of tags start, start+inc, ... up to end
type arithmeticSeq struct {
	start, end, inc uint32
}

func TestStandardDictionary_LookupVR(t *testing.T) {
	tests := []struct {
		name   string
		tagSet arithmeticSeq
		want   VR
		found  bool
	}{
		{
			"Tags of the form (50xx,2610) have VR US",
			arithmeticSeq{0x50002610, 0x50FF2610, 0x00010000},
			USVR,
			true,
		},
		{
			"Tags of the form (60xx,3000) have VR OW",
			arithmeticSeq{0x60003000, 0x60FE3000, 0x00020000},
			OWVR,
			true,
		},
		{
			"Tags without wildcard lookup",
			arithmeticSeq{0x00081140, 0x00081140, 1},
			SQVR,
			true,
		},
		{
			"when lookup fails, UNVR is returned",
			arithmeticSeq{0xABCDEF98, 0xABCDEF98, 1},
			UNVR,
			false,
		},
		{
			"when the tag belongs to private creator group (gggg,0010-00FF) where gggg is odd, " +
				"the dictionary VR is LO",
			arithmeticSeq{0x80010010, 0x800100FF, 1},
			LOVR,
			true,
		},
		{
			"private data elements are unknown",
			arithmeticSeq{0x00291000, 0x00291010, 1},
			UNVR,
			false,
		},
		{
			"when the tag is a group length element (gggg,0000) the VR is UL",
			arithmeticSeq{0x00020000, 0x0FFF0000, 0x00010000},
			ULVR,
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for tag := tc.tagSet.start; tag <= tc.tagSet.end; tag += tc.tagSet.inc {
				got, ok := StandardDictionary.LookupVR(DataElementTag(tag))
				assert.Equal(t, tc.want, got, DataElementTag(tag))
				assert.Equal(t, tc.found, ok, DataElementTag(tag))
			}
		})
	}
}

func TestTagVRMap_LookupVR(t *testing.T) {
	dict := TagVRMap{0x00100010: PNVR}

	vr, ok := dict.LookupVR(0x00100010)
	assert.True(t, ok)
	assert.Equal(t, PNVR, vr)

	_, ok = dict.LookupVR(0x00100020)
	assert.False(t, ok)
}

func TestStandardVRClasses(t *testing.T) {
	for _, vr := range []VR{OBVR, ODVR, OFVR, OLVR, OVVR, OWVR, SQVR, SVVR, UCVR, UNVR, URVR, UTVR, UVVR} {
		assert.True(t, StandardVRClasses.IsLongForm(vr), vr)
	}
	for _, vr := range []VR{AEVR, ASVR, ATVR, CSVR, DAVR, DSVR, DTVR, FLVR, FDVR, ISVR, LOVR, LTVR,
		PNVR, SHVR, SLVR, SSVR, STVR, TMVR, UIVR, ULVR, USVR} {
		assert.False(t, StandardVRClasses.IsLongForm(vr), vr)
	}
	assert.Equal(t, "--", VR("").String())
}
