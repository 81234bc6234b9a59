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

// DataSetHandler is a SequenceHandler that collects the events of a parse into a DataSet.
// Values are copied, so the DataSet does not alias the parsed buffer. Elements selected by
// BulkData are located rather than copied.
type DataSetHandler struct {
	// Filter, when set, is consulted for every element. Elements it rejects are skipped along
	// with their nested contents.
	Filter func(attr *Attribute) bool

	// StopAt, when set, stops the parse at the first element it accepts. That element is not
	// collected.
	StopAt func(attr *Attribute) bool

	// BulkData, when set, selects elements whose values are recorded as BulkDataReferences
	// into the parsed buffer rather than copied. DefaultBulkDataDefinition is a common choice.
	BulkData func(attr *Attribute) bool

	root *DataSet

	// sets holds the data set being filled at each nesting level, root first
	sets []*DataSet

	// open holds the sequence and encapsulated elements whose contents are being parsed
	open []*DataElement
}

// NewDataSetHandler returns a DataSetHandler that collects every element. The zero value is
// equally ready to use.
func NewDataSetHandler() *DataSetHandler {
	return &DataSetHandler{}
}

// DataSet returns the collected DataSet. Elements of a parse cut short by an error or Stop are
// present up to that point.
func (h *DataSetHandler) DataSet() *DataSet {
	h.init()
	return h.root
}

func (h *DataSetHandler) init() {
	if h.root == nil {
		h.root = NewDataSet()
		h.sets = []*DataSet{h.root}
	}
}

// Element implements Handler
func (h *DataSetHandler) Element(attr *Attribute) Control {
	if h.StopAt != nil && h.StopAt(attr) {
		return Stop
	}
	if h.Filter != nil && !h.Filter(attr) {
		return Skip
	}

	e := &DataElement{Tag: attr.Tag, VR: attr.VR, ValueLength: attr.ValueLength}
	h.current().Elements[attr.Tag] = e
	bulk := !attr.IsSequence() && h.BulkData != nil && h.BulkData(attr)
	switch {
	case attr.IsSequence():
		e.Sequence = &Sequence{Items: []*DataSet{}}
		h.open = append(h.open, e)
	case bulk:
		e.References = []BulkDataReference{}
		if attr.IsEncapsulated() {
			h.open = append(h.open, e)
		}
	case attr.IsEncapsulated():
		e.Fragments = [][]byte{}
		h.open = append(h.open, e)
	}
	return Accept
}

// Data implements Handler
func (h *DataSetHandler) Data(attr *Attribute, value []byte) {
	var e *DataElement
	if attr.Tag == ItemTag {
		// a fragment of the innermost encapsulated element
		if e = h.innermost(); e == nil || e.Sequence != nil {
			return
		}
	} else if e = h.current().Elements[attr.Tag]; e == nil {
		return
	}

	switch {
	case e.References != nil:
		e.References = append(e.References, newBulkDataReference(attr, value))
	case attr.Tag == ItemTag:
		e.Fragments = append(e.Fragments, append([]byte{}, value...))
	default:
		e.Value = append([]byte{}, value...)
	}
}

// StartItem implements Handler
func (h *DataSetHandler) StartItem(*Attribute) {
	e := h.innermost()
	if e == nil || e.Sequence == nil {
		return
	}
	item := NewDataSet()
	e.Sequence.append(item)
	h.sets = append(h.sets, item)
}

// EndItem implements Handler
func (h *DataSetHandler) EndItem(*Attribute) {
	if e := h.innermost(); e != nil && e.Sequence != nil && len(h.sets) > 1 {
		h.sets = h.sets[:len(h.sets)-1]
	}
}

// EndSequence implements SequenceHandler
func (h *DataSetHandler) EndSequence(*Attribute) {
	if len(h.open) > 0 {
		h.open = h.open[:len(h.open)-1]
	}
}

func (h *DataSetHandler) current() *DataSet {
	h.init()
	return h.sets[len(h.sets)-1]
}

func (h *DataSetHandler) innermost() *DataElement {
	if len(h.open) == 0 {
		return nil
	}
	return h.open[len(h.open)-1]
}

// Collect parses the data set held in buf into a DataSet
func Collect(buf []byte, syntax TransferSyntax, opts ...Option) (*DataSet, error) {
	h := NewDataSetHandler()
	err := Parse(buf, syntax, h, opts...)
	return h.DataSet(), err
}

// CollectFile parses the DICOM file held in buf into a DataSet. The File Meta Information is
// returned separately.
func CollectFile(buf []byte, opts ...Option) (*MetaInformation, *DataSet, error) {
	h := NewDataSetHandler()
	meta, err := ParseFile(buf, h, opts...)
	return meta, h.DataSet(), err
}
