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

// UndefinedLength as specified
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
const UndefinedLength = 0xffffffff

// VR models the DICOM Value representations (VR), a 2-character code.
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
//
// Items and delimiters carry no VR; their Attributes have the empty VR.
type VR string

func (vr VR) String() string {
	if vr == "" {
		return "--"
	}
	return string(vr)
}

// VR list obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
const (
	// textual VRs
	CSVR VR = "CS"
	SHVR VR = "SH"
	LOVR VR = "LO"
	STVR VR = "ST"
	LTVR VR = "LT"
	ASVR VR = "AS"

	// person name
	PNVR VR = "PN"

	// application entity
	AEVR VR = "AE"

	// dates/time VR
	DAVR VR = "DA"
	TMVR VR = "TM"
	DTVR VR = "DT"

	// textual numbers
	ISVR VR = "IS"
	DSVR VR = "DS"

	// binary numbers
	SSVR VR = "SS"
	USVR VR = "US"
	SLVR VR = "SL"
	ULVR VR = "UL"
	SVVR VR = "SV"
	UVVR VR = "UV"
	FLVR VR = "FL"
	FDVR VR = "FD"

	// large binary sequences
	OBVR VR = "OB"
	ODVR VR = "OD"
	OLVR VR = "OL"
	OVVR VR = "OV"
	OWVR VR = "OW"
	OFVR VR = "OF"

	// unlimited char
	UCVR VR = "UC"

	// unknown
	UNVR VR = "UN"

	// URL
	URVR VR = "UR"

	// unlimited text
	UTVR VR = "UT"

	// attribute tag
	ATVR VR = "AT"

	// unique identifier
	UIVR VR = "UI"

	// sequence
	SQVR VR = "SQ"
)

// VRClassifier partitions VRs into the two length-field classes of the explicit VR encodings.
// Long-form VRs are followed by 2 reserved bytes and a 32-bit length; all others by a 16-bit
// length. See http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
type VRClassifier interface {
	IsLongForm(vr VR) bool
}

// VRSet is a VRClassifier listing the long-form VRs. Any VR not in the set is short-form.
type VRSet map[VR]struct{}

// NewVRSet returns a VRSet containing vrs.
func NewVRSet(vrs ...VR) VRSet {
	set := VRSet{}
	for _, vr := range vrs {
		set[vr] = struct{}{}
	}
	return set
}

// IsLongForm implements VRClassifier.
func (s VRSet) IsLongForm(vr VR) bool {
	_, ok := s[vr]
	return ok
}

// StandardVRClasses classifies VRs as in the current edition of the standard.
var StandardVRClasses VRClassifier = NewVRSet(
	OBVR, ODVR, OFVR, OLVR, OVVR, OWVR, SQVR, SVVR, UCVR, UNVR, URVR, UTVR, UVVR,
)
