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

	"go.uber.org/zap"
)

// errStopped unwinds the parse loop after a Handler returns Stop.
var errStopped = errors.New("stopped by handler")

// Parse decodes the data set held in buf, encoded in the given transfer syntax, and reports
// its Data Elements to h in the order they appear, at all nesting levels.
//
// Parse returns nil once all of buf has been parsed or h has returned Stop. If the input ends
// inside an element or an open sequence or item, the error is an *UnderflowError telling how
// many bytes were left unparsed; events delivered up to that point stand. Parse never writes
// to buf.
func Parse(buf []byte, syntax TransferSyntax, h Handler, opts ...Option) error {
	if !syntax.valid() {
		return fmt.Errorf("dicom: invalid transfer syntax %v", syntax)
	}
	cfg := newConfig(opts)
	return newParser(buf, 0, newCodec(syntax, cfg), h, cfg.logger).run()
}

type parser struct {
	dr     *dcmReader
	h      Handler
	seqH   SequenceHandler // h, if it wants sequence ends
	stack  containerStack
	logger *zap.Logger
}

// newParser creates a parser for the data set spanning buf[start:]. Offsets in the Attributes it
// reports are relative to buf.
func newParser(buf []byte, start int, c codec, h Handler, logger *zap.Logger) *parser {
	dr := newDcmReader(buf)
	dr.Seek(start)

	p := &parser{dr: dr, h: h, logger: logger}
	p.seqH, _ = h.(SequenceHandler)
	p.stack.push(container{kind: dataSetContainer, end: len(buf), limit: len(buf), codec: c})
	return p
}

func (p *parser) run() error {
	for !p.stack.empty() {
		active := p.stack.top()
		if !active.undefinedLength() && p.dr.Offset() >= active.end {
			p.close()
			continue
		}

		p.dr.limit = active.limit
		attr, err := readElementHeader(p.dr, active.codec)
		if err != nil {
			return p.underflow(p.dr.Offset())
		}

		switch err := p.dispatch(active, &attr); {
		case err == errStopped:
			p.logger.Debug("stopped by handler", zap.Stringer("tag", attr.Tag), zap.Int("offset", attr.Offset))
			return nil
		case err != nil:
			return err
		}
	}
	return nil
}

func (p *parser) dispatch(active *container, attr *Attribute) error {
	switch {
	case attr.Tag == ItemTag:
		return p.item(active, attr)
	case attr.Tag.IsStructural():
		p.delimiter(attr)
		return nil
	case active.kind == sequenceContainer || active.kind == fragmentsContainer:
		return &SyntaxError{attr.Offset, fmt.Sprintf("element %v inside %v outside of an item", attr.Tag, active.kind)}
	}
	return p.element(active, attr)
}

func (p *parser) element(active *container, attr *Attribute) error {
	control := Skip
	if !active.silent {
		control = p.h.Element(attr)
	}

	switch control {
	case Stop:
		return errStopped
	case Skip:
		if attr.HasUndefinedLength() {
			// There is no length to jump over. Walk the nested structure to find its delimiter.
			return p.push(containerKindOf(attr), attr, true)
		}
		if err := p.dr.Skip(valueSize(attr.ValueLength)); err != nil {
			return p.underflow(attr.Offset)
		}
		return nil
	}

	if attr.IsSequence() || attr.HasUndefinedLength() {
		return p.push(containerKindOf(attr), attr, false)
	}

	value, err := p.dr.Bytes(valueSize(attr.ValueLength))
	if err != nil {
		return p.underflow(attr.Offset)
	}
	p.h.Data(attr, value)
	return nil
}

func containerKindOf(attr *Attribute) containerKind {
	if attr.IsSequence() {
		return sequenceContainer
	}
	return fragmentsContainer
}

func (p *parser) item(active *container, attr *Attribute) error {
	switch silent := active.silent; active.kind {
	case sequenceContainer:
		if err := p.push(itemContainer, attr, silent); err != nil {
			return err
		}
		if !silent {
			p.h.StartItem(attr)
		}
		return nil
	case fragmentsContainer:
		if attr.HasUndefinedLength() {
			return &SyntaxError{attr.Offset, "fragment of undefined length"}
		}
		fragment, err := p.dr.Bytes(valueSize(attr.ValueLength))
		if err != nil {
			return p.underflow(attr.Offset)
		}
		if !silent {
			p.h.StartItem(attr)
			p.h.Data(attr, fragment)
			p.h.EndItem(attr)
		}
		return nil
	}
	return &SyntaxError{attr.Offset, fmt.Sprintf("item inside %v", active.kind)}
}

// push opens a container for the value of attr, whose header has just been consumed.
func (p *parser) push(kind containerKind, attr *Attribute, silent bool) error {
	parent := p.stack.top()
	c := container{kind: kind, attr: *attr, end: -1, limit: parent.limit, silent: silent, codec: parent.codec}
	if attr.VR == UNVR && kind == sequenceContainer {
		// Items of a UN sequence are encoded in implicit VR little endian.
		c.codec = parent.codec.implicit()
	}
	if !attr.HasUndefinedLength() {
		size := valueSize(attr.ValueLength)
		if size < 0 || size > parent.limit-attr.ValueOffset {
			return p.underflow(attr.Offset)
		}
		c.end = attr.ValueOffset + size
		c.limit = c.end
	}
	p.stack.push(c)
	return nil
}

// close pops the active container and reports its end.
func (p *parser) close() {
	c := p.stack.pop()
	if c.silent {
		return
	}
	switch c.kind {
	case itemContainer:
		p.h.EndItem(&c.attr)
	case sequenceContainer, fragmentsContainer:
		if p.seqH != nil {
			p.seqH.EndSequence(&c.attr)
		}
	}
}

// delimiter closes the undefined-length container that the delimiter ends. Delimiters that match
// no open container are ignored.
func (p *parser) delimiter(attr *Attribute) {
	if attr.ValueLength != 0 {
		p.logger.Debug("delimiter with non-zero length",
			zap.Stringer("tag", attr.Tag), zap.Uint32("length", attr.ValueLength), zap.Int("offset", attr.Offset))
	}

	active := p.stack.top()
	switch attr.Tag {
	case ItemDelimitationItemTag:
		if active.kind == itemContainer && active.undefinedLength() {
			p.close()
			return
		}
	case SequenceDelimitationItemTag:
		if (active.kind == sequenceContainer || active.kind == fragmentsContainer) && active.undefinedLength() {
			p.close()
			return
		}
		// An item left open by a missing Item Delimitation Item is closed with its sequence.
		if parent := p.stack.below(); active.kind == itemContainer && active.undefinedLength() &&
			parent.kind == sequenceContainer && parent.undefinedLength() {
			p.close()
			p.close()
			return
		}
	}

	p.logger.Debug("ignoring unmatched delimiter",
		zap.Stringer("tag", attr.Tag), zap.Int("offset", attr.Offset), zap.Stringer("container", active.kind))
}

// underflow reports the input as ending inside the element at offset. Inside a nested
// structure the whole top level element is incomplete, so its offset is reported instead.
func (p *parser) underflow(offset int) error {
	if len(p.stack) > 1 {
		offset = p.stack[1].attr.Offset
	}
	err := &UnderflowError{Offset: offset, Remaining: len(p.dr.buf) - offset}
	p.logger.Debug("input underflow", zap.Int("offset", err.Offset), zap.Int("remaining", err.Remaining))
	return err
}
