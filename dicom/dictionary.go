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

// TagDictionary resolves the VR of a tag. It is consulted only when decoding the implicit VR
// syntax, where VRs are not present on the wire.
type TagDictionary interface {
	// LookupVR returns the VR of tag and true, or false if the tag is unknown.
	LookupVR(tag DataElementTag) (VR, bool)
}

// TagVRMap is a TagDictionary backed by a map. It is useful for substituting synthetic
// dictionaries.
type TagVRMap map[DataElementTag]VR

// LookupVR implements TagDictionary.
func (m TagVRMap) LookupVR(tag DataElementTag) (VR, bool) {
	vr, ok := m[tag]
	return vr, ok
}

type standardDictionary struct{}

// StandardDictionary is a TagDictionary covering the File Meta Information, the commonly
// used attributes of the patient, study, series, equipment and image modules, group length
// elements, private creator elements, and the repeating groups 50xx and 60xx.
var StandardDictionary TagDictionary = standardDictionary{}

func (standardDictionary) LookupVR(tag DataElementTag) (VR, bool) {
	if vr, ok := standardVRs[tag]; ok {
		return vr, true
	}
	if tag.ElementNumber() == 0 {
		// group length elements (gggg,0000)
		return ULVR, true
	}
	if tag.IsPrivate() && tag.ElementNumber() >= 0x0010 && tag.ElementNumber() <= 0x00FF {
		// private creator elements (gggg,0010-00FF) where gggg is odd
		return LOVR, true
	}
	// Tags in the repeating groups (50xx,eeee) and (60xx,eeee) are stored with the x's set to
	// '0', so CurveDataTag = 0x50003000.
	switch tag.GroupNumber() & 0xFF00 {
	case 0x5000, 0x6000:
		if vr, ok := standardVRs[tag&0xFF00FFFF]; ok {
			return vr, true
		}
	}
	return UNVR, false
}

// Data Element tags referenced by this package.
const (
	FileMetaInformationGroupLengthTag DataElementTag = 0x00020000
	FileMetaInformationVersionTag     DataElementTag = 0x00020001
	MediaStorageSOPClassUIDTag        DataElementTag = 0x00020002
	MediaStorageSOPInstanceUIDTag     DataElementTag = 0x00020003
	TransferSyntaxUIDTag              DataElementTag = 0x00020010
	ImplementationClassUIDTag         DataElementTag = 0x00020012
	ImplementationVersionNameTag      DataElementTag = 0x00020013
	SourceApplicationEntityTitleTag   DataElementTag = 0x00020016
	SpecificCharacterSetTag           DataElementTag = 0x00080005
	PixelDataTag                      DataElementTag = 0x7FE00010
)

// standardVRs is an excerpt of the data dictionary in
// http://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_6
var standardVRs = map[DataElementTag]VR{
	FileMetaInformationGroupLengthTag: ULVR,
	FileMetaInformationVersionTag:     OBVR,
	MediaStorageSOPClassUIDTag:        UIVR,
	MediaStorageSOPInstanceUIDTag:     UIVR,
	TransferSyntaxUIDTag:              UIVR,
	ImplementationClassUIDTag:         UIVR,
	ImplementationVersionNameTag:      SHVR,
	SourceApplicationEntityTitleTag:   AEVR,
	0x00020100:                        UIVR, // Private Information Creator UID
	0x00020102:                        OBVR, // Private Information

	SpecificCharacterSetTag: CSVR,
	0x00080008:              CSVR, // Image Type
	0x00080012:              DAVR, // Instance Creation Date
	0x00080013:              TMVR, // Instance Creation Time
	0x00080016:              UIVR, // SOP Class UID
	0x00080018:              UIVR, // SOP Instance UID
	0x00080020:              DAVR, // Study Date
	0x00080021:              DAVR, // Series Date
	0x00080022:              DAVR, // Acquisition Date
	0x00080023:              DAVR, // Content Date
	0x00080030:              TMVR, // Study Time
	0x00080031:              TMVR, // Series Time
	0x00080032:              TMVR, // Acquisition Time
	0x00080033:              TMVR, // Content Time
	0x00080050:              SHVR, // Accession Number
	0x00080060:              CSVR, // Modality
	0x00080070:              LOVR, // Manufacturer
	0x00080080:              LOVR, // Institution Name
	0x00080090:              PNVR, // Referring Physician's Name
	0x00081030:              LOVR, // Study Description
	0x0008103E:              LOVR, // Series Description
	0x00081090:              LOVR, // Manufacturer's Model Name
	0x00081110:              SQVR, // Referenced Study Sequence
	0x00081111:              SQVR, // Referenced Performed Procedure Step Sequence
	0x00081115:              SQVR, // Referenced Series Sequence
	0x00081140:              SQVR, // Referenced Image Sequence
	0x00081150:              UIVR, // Referenced SOP Class UID
	0x00081155:              UIVR, // Referenced SOP Instance UID
	0x00082112:              SQVR, // Source Image Sequence
	0x00089121:              SQVR, // Referenced Raw Data Sequence

	0x00100010: PNVR, // Patient's Name
	0x00100020: LOVR, // Patient ID
	0x00100030: DAVR, // Patient's Birth Date
	0x00100040: CSVR, // Patient's Sex
	0x00101010: ASVR, // Patient's Age
	0x00101020: DSVR, // Patient's Size
	0x00101030: DSVR, // Patient's Weight

	0x00180015: CSVR, // Body Part Examined
	0x00180050: DSVR, // Slice Thickness
	0x00180060: DSVR, // KVP
	0x00181020: LOVR, // Software Versions
	0x00185100: CSVR, // Patient Position
	0x00182042: UIVR, // Target UID

	0x0020000D: UIVR, // Study Instance UID
	0x0020000E: UIVR, // Series Instance UID
	0x00200010: SHVR, // Study ID
	0x00200011: ISVR, // Series Number
	0x00200012: ISVR, // Acquisition Number
	0x00200013: ISVR, // Instance Number
	0x00200032: DSVR, // Image Position (Patient)
	0x00200037: DSVR, // Image Orientation (Patient)
	0x00200052: UIVR, // Frame of Reference UID
	0x00201041: DSVR, // Slice Location

	0x00280002: USVR, // Samples per Pixel
	0x00280004: CSVR, // Photometric Interpretation
	0x00280008: ISVR, // Number of Frames
	0x00280009: ATVR, // Frame Increment Pointer
	0x00280010: USVR, // Rows
	0x00280011: USVR, // Columns
	0x00280030: DSVR, // Pixel Spacing
	0x00280100: USVR, // Bits Allocated
	0x00280101: USVR, // Bits Stored
	0x00280102: USVR, // High Bit
	0x00280103: USVR, // Pixel Representation
	0x00281050: DSVR, // Window Center
	0x00281051: DSVR, // Window Width
	0x00281052: DSVR, // Rescale Intercept
	0x00281053: DSVR, // Rescale Slope

	0x00400275: SQVR, // Request Attributes Sequence
	0x0040A730: SQVR, // Content Sequence

	0x50000005: USVR, // Curve Dimensions
	0x50002610: USVR, // Curve Range
	0x50003000: OBVR, // Curve Data
	0x60000010: USVR, // Overlay Rows
	0x60000011: USVR, // Overlay Columns
	0x60003000: OWVR, // Overlay Data

	0x7FE00008: OFVR, // Float Pixel Data
	0x7FE00009: ODVR, // Double Float Pixel Data
	PixelDataTag: OWVR,

	0xFFFAFFFA: SQVR, // Digital Signatures Sequence
	0xFFFCFFFC: OBVR, // Data Set Trailing Padding
}
