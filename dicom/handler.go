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

// Control is a Handler's answer to an element header. It decides what the parser does next.
type Control int

const (
	// Accept delivers the value of a primitive element through Handler.Data, or descends into
	// the items of a sequence.
	Accept Control = iota

	// Skip advances past the value without delivering it. Skipping a sequence of undefined
	// length still walks its items to find the end, but reports nothing inside it.
	Skip

	// Stop ends the parse. No further callbacks are made and the parse returns successfully.
	Stop
)

func (c Control) String() string {
	switch c {
	case Accept:
		return "Accept"
	case Skip:
		return "Skip"
	case Stop:
		return "Stop"
	}
	return fmt.Sprintf("Control(%d)", int(c))
}

// Handler receives the events of a parse. All callbacks run on the goroutine calling Parse, in
// the order of the input. An *Attribute and a value slice passed to a callback alias the
// parser's state and the input buffer respectively; copy them to keep them past the callback.
//
// A Handler is used by one parse at a time unless it synchronizes itself.
type Handler interface {
	// Element is called once for every decoded element header, items and delimiters excluded.
	// The value field may extend past the end of the input; it is not read before Element
	// returns.
	Element(attr *Attribute) Control

	// Data delivers the raw value field of an accepted primitive element, in the byte order of
	// the transfer syntax. For encapsulated elements it delivers one fragment and attr is the
	// fragment's item.
	Data(attr *Attribute, value []byte)

	// StartItem is called when an item begins inside a sequence or an encapsulated element.
	StartItem(attr *Attribute)

	// EndItem is called when the item started by the matching StartItem ends, whether it was
	// closed by its length or by an Item Delimitation Item.
	EndItem(attr *Attribute)
}

// SequenceHandler is implemented by Handlers that also need to know where an accepted sequence
// or encapsulated element ends.
type SequenceHandler interface {
	Handler

	// EndSequence is called with the header of the element whose items have all been parsed.
	EndSequence(attr *Attribute)
}
