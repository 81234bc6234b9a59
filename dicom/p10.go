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
	"errors"
	"fmt"
	"strings"
)

const (
	preambleSize = 128
	magic        = "DICM"
	// metaStart is the offset of the first File Meta Information element
	metaStart = preambleSize + len(magic)
)

// MetaInformation holds the File Meta Information of a DICOM file as specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
type MetaInformation struct {
	TransferSyntaxUID          string
	MediaStorageSOPClassUID    string
	MediaStorageSOPInstanceUID string
	ImplementationClassUID     string
	ImplementationVersionName  string

	// EndOffset is the offset of the first byte of the main data set.
	EndOffset int
}

// ParseFile decodes a DICOM file held in buf. It reads the File Meta Information, selects the
// transfer syntax named there, and parses the main data set into h as Parse does. Offsets in
// reported Attributes are relative to the start of buf. The File Meta Information itself is
// not reported to h.
//
// The returned MetaInformation is non-nil whenever the File Meta Information could be read,
// even if the data set that follows could not be parsed.
func ParseFile(buf []byte, h Handler, opts ...Option) (*MetaInformation, error) {
	cfg := newConfig(opts)

	meta, err := readMetaInformation(buf, cfg)
	if err != nil {
		return nil, err
	}

	syntax, err := LookupTransferSyntax(meta.TransferSyntaxUID)
	if err != nil {
		return meta, err
	}

	if err := newParser(buf, meta.EndOffset, newCodec(syntax, cfg), h, cfg.logger).run(); err != nil {
		return meta, err
	}
	return meta, nil
}

// ReadMetaInformation reads the preamble, the DICOM signature and the File Meta Information
// elements at the start of buf. Errors wrap ErrMalformedHeader.
func ReadMetaInformation(buf []byte, opts ...Option) (*MetaInformation, error) {
	return readMetaInformation(buf, newConfig(opts))
}

func readMetaInformation(buf []byte, cfg *config) (*MetaInformation, error) {
	if err := readDicomSignature(buf); err != nil {
		return nil, err
	}

	// File meta elements are always in explicit VR little endian as specified in the standard
	// http://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
	c := newCodec(ExplicitVRLittleEndian, cfg)

	// When present, the FileMetaInformationGroupLength bounds the meta elements. Otherwise they
	// extend to the first element of another group.
	region, bounded, err := metaRegion(buf, c)
	if err != nil {
		return nil, err
	}

	h := &metaHandler{meta: &MetaInformation{}, end: metaStart}
	err = newParser(region, metaStart, c, h, cfg.logger).run()
	if err != nil && (bounded || !h.inDataSet(err)) {
		return nil, fmt.Errorf("%w: reading meta elements: %w", ErrMalformedHeader, err)
	}
	if h.meta.TransferSyntaxUID == "" {
		return nil, fmt.Errorf("%w: transfer syntax not found", ErrMalformedHeader)
	}

	h.meta.EndOffset = h.end
	return h.meta, nil
}

func readDicomSignature(buf []byte) error {
	if len(buf) < metaStart {
		return fmt.Errorf("%w: %d bytes is too short for the preamble and signature", ErrMalformedHeader, len(buf))
	}
	if sig := string(buf[preambleSize:metaStart]); sig != magic {
		return fmt.Errorf("%w: wrong DICOM signature: %q", ErrMalformedHeader, sig)
	}
	return nil
}

// metaRegion returns the prefix of buf that holds the File Meta Information, and whether its
// size is known from the group length element.
func metaRegion(buf []byte, c codec) ([]byte, bool, error) {
	dr := newDcmReader(buf)
	dr.Seek(metaStart)

	attr, err := readElementHeader(dr, c)
	if err != nil || attr.Tag != FileMetaInformationGroupLengthTag || attr.ValueLength != 4 {
		return buf, false, nil
	}
	groupLength, err := dr.UInt32(c.order)
	if err != nil {
		return nil, false, fmt.Errorf("%w: reading FileMetaInformationGroupLength: %w", ErrMalformedHeader, err)
	}

	end := dr.Offset() + valueSize(groupLength)
	if groupLength == UndefinedLength || end > len(buf) || end < dr.Offset() {
		return nil, false, fmt.Errorf("%w: FileMetaInformationGroupLength %d exceeds the %d bytes of input",
			ErrMalformedHeader, groupLength, len(buf)-dr.Offset())
	}
	return buf[:end], true, nil
}

// metaHandler collects the File Meta Information and stops at the first element outside
// group 0002.
type metaHandler struct {
	meta *MetaInformation

	// end is the offset following the last meta element
	end int
}

func (h *metaHandler) Element(attr *Attribute) Control {
	if !attr.Tag.IsMetadataElement() {
		return Stop
	}
	return Accept
}

func (h *metaHandler) Data(attr *Attribute, value []byte) {
	h.end = attr.ValueOffset + len(value)

	switch attr.Tag {
	case TransferSyntaxUIDTag:
		h.meta.TransferSyntaxUID = trimUID(value)
	case MediaStorageSOPClassUIDTag:
		h.meta.MediaStorageSOPClassUID = trimUID(value)
	case MediaStorageSOPInstanceUIDTag:
		h.meta.MediaStorageSOPInstanceUID = trimUID(value)
	case ImplementationClassUIDTag:
		h.meta.ImplementationClassUID = trimUID(value)
	case ImplementationVersionNameTag:
		h.meta.ImplementationVersionName = strings.TrimSpace(string(value))
	}
}

func (h *metaHandler) StartItem(*Attribute) {}

func (h *metaHandler) EndItem(*Attribute) {}

// inDataSet is true if err arose past the last meta element, i.e. while decoding the header
// of the first data set element in the wrong syntax.
func (h *metaHandler) inDataSet(err error) bool {
	var ue *UnderflowError
	return errors.As(err, &ue) && ue.Offset >= h.end
}

// trimUID removes the NULL or space padding of UI values
func trimUID(value []byte) string {
	return strings.TrimRight(string(value), "\x00 ")
}
