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
	"fmt"
	"sort"
	"strings"
)

// DataElement models a DICOM Data Element as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
type DataElement struct {
	Tag DataElementTag

	// Value Representation. Empty for implicit VR elements the dictionary does not know.
	VR VR

	// ValueLength is the length found in the element header. Can be equal to UndefinedLength:
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
	ValueLength uint32

	// At most one of the following is set.

	// Value holds the value bytes of a primitive element
	Value []byte

	// Fragments holds the fragments of an encapsulated element such as compressed Pixel Data,
	// the Basic Offset Table first
	Fragments [][]byte

	// Sequence holds the items of an SQ element
	Sequence *Sequence

	// References locates the value, or each fragment, of a bulk data element in the parsed
	// buffer
	References []BulkDataReference
}

func (e *DataElement) String() string {
	return e.string(0)
}

func (e *DataElement) string(indentLvl int) string {
	prefix := strings.Repeat(">", indentLvl)
	switch {
	case e.Sequence != nil:
		return fmt.Sprintf("%s%v %v %d items%s", prefix, e.Tag, e.VR, len(e.Sequence.Items), e.Sequence.string(indentLvl))
	case e.Fragments != nil:
		return fmt.Sprintf("%s%v %v %d fragments", prefix, e.Tag, e.VR, len(e.Fragments))
	case e.References != nil:
		return fmt.Sprintf("%s%v %v %d references", prefix, e.Tag, e.VR, len(e.References))
	}
	return fmt.Sprintf("%s%v %v #%d", prefix, e.Tag, e.VR, len(e.Value))
}

// DataSet models a DICOM Data Set as defined
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
type DataSet struct {
	// Elements is a map of DataElement tags to *DataElement
	Elements map[DataElementTag]*DataElement
}

// NewDataSet returns an empty DataSet
func NewDataSet() *DataSet {
	return &DataSet{Elements: map[DataElementTag]*DataElement{}}
}

// SortedTags returns the tags of the DataSet in ascending order
func (ds *DataSet) SortedTags() []DataElementTag {
	tags := make([]DataElementTag, 0, len(ds.Elements))
	for tag := range ds.Elements {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// SortedElements returns the elements of the DataSet in ascending tag order
func (ds *DataSet) SortedElements() []*DataElement {
	elements := make([]*DataElement, 0, len(ds.Elements))
	for _, tag := range ds.SortedTags() {
		elements = append(elements, ds.Elements[tag])
	}
	return elements
}

func (ds *DataSet) String() string {
	return ds.string(0)
}

func (ds *DataSet) string(indentLvl int) string {
	lines := make([]string, 0, len(ds.Elements))
	for _, e := range ds.SortedElements() {
		lines = append(lines, e.string(indentLvl))
	}
	return strings.Join(lines, "\n")
}

// Sequence models a DICOM Sequence of Items as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
type Sequence struct {
	Items []*DataSet
}

func (seq *Sequence) String() string {
	return seq.string(0)
}

func (seq *Sequence) string(indentLvl int) string {
	if len(seq.Items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(seq.Items))
	for _, obj := range seq.Items {
		lines = append(lines, obj.string(indentLvl+1))
	}
	return "\n" + strings.Join(lines, "\n")
}

func (seq *Sequence) append(dataSet *DataSet) {
	seq.Items = append(seq.Items, dataSet)
}
