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

package main

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/GoogleCloudPlatform/go-dicom-stream/dicom"
)

type dumpOptions struct {
	maxValue int
	skip     map[dicom.DataElementTag]bool
	stopAt   dicom.DataElementTag // 0 for none

	// syntax of a bare data set, or 0 for a Part-10 file
	syntax dicom.TransferSyntax
}

// dump writes the elements of buf to w followed by a summary line
func dump(w io.Writer, name string, buf []byte, opts dumpOptions) error {
	d := &dumper{w: w, opts: opts, coding: dicom.DefaultCharacterRepertoire}

	syntax := opts.syntax
	var err error
	if syntax == 0 {
		syntax, err = fileSyntax(buf)
		if err != nil {
			return err
		}
		d.order = syntax.ByteOrder()
		_, err = dicom.ParseFile(buf, d)
	} else {
		d.order = syntax.ByteOrder()
		err = dicom.Parse(buf, syntax, d)
	}

	d.summary(name, len(buf), syntax, err)
	if d.err != nil {
		return d.err
	}
	return err
}

func fileSyntax(buf []byte) (dicom.TransferSyntax, error) {
	meta, err := dicom.ReadMetaInformation(buf)
	if err != nil {
		return 0, err
	}
	return dicom.LookupTransferSyntax(meta.TransferSyntaxUID)
}

// dumper is a dicom.SequenceHandler printing one line per element, item and fragment
type dumper struct {
	w      io.Writer
	opts   dumpOptions
	order  binary.ByteOrder
	coding encoding.Encoding

	// open holds, for each open sequence, whether it is an encapsulated element
	open []bool

	elements, items int
	err             error
}

func (d *dumper) Element(attr *dicom.Attribute) dicom.Control {
	if d.opts.stopAt != 0 && len(d.open) == 0 && attr.Tag >= d.opts.stopAt {
		return dicom.Stop
	}
	d.elements++

	if d.opts.skip[attr.Tag] {
		d.line(attr, "(skipped)")
		return dicom.Skip
	}
	if attr.IsSequence() || attr.IsEncapsulated() {
		d.line(attr, "")
		d.open = append(d.open, attr.IsEncapsulated())
	}
	return dicom.Accept
}

func (d *dumper) Data(attr *dicom.Attribute, value []byte) {
	if attr.Tag == dicom.ItemTag {
		d.line(attr, "["+d.binary(value)+"]")
		return
	}
	if attr.Tag == dicom.SpecificCharacterSetTag && len(d.open) == 0 {
		d.selectCharacterSet(value)
	}
	d.line(attr, "["+d.format(attr.VR, value)+"]")
}

func (d *dumper) StartItem(attr *dicom.Attribute) {
	if d.inEncapsulated() {
		return
	}
	d.items++
	d.line(attr, "")
}

func (d *dumper) EndItem(*dicom.Attribute) {}

func (d *dumper) EndSequence(*dicom.Attribute) {
	if len(d.open) > 0 {
		d.open = d.open[:len(d.open)-1]
	}
}

func (d *dumper) inEncapsulated() bool {
	return len(d.open) > 0 && d.open[len(d.open)-1]
}

func (d *dumper) selectCharacterSet(value []byte) {
	coding, err := dicom.LookupEncoding(strings.TrimRight(string(value), "\x00 "))
	if err != nil {
		logger.Warn("keeping default character repertoire", zap.Error(err))
		return
	}
	d.coding = coding
}

func (d *dumper) line(attr *dicom.Attribute, value string) {
	if d.err != nil {
		return
	}
	s := strings.Repeat(">", len(d.open)) + attr.String()
	if value != "" {
		s += " " + value
	}
	_, d.err = fmt.Fprintln(d.w, s)
}

func (d *dumper) summary(name string, size int, syntax dicom.TransferSyntax, parseErr error) {
	if d.err != nil {
		return
	}
	s := fmt.Sprintf("# %s: %s elements, %s items, %s, %v", name,
		humanize.Comma(int64(d.elements)), humanize.Comma(int64(d.items)), humanize.Bytes(uint64(size)), syntax)
	if remaining, ok := dicom.Remaining(parseErr); ok {
		s += fmt.Sprintf(", incomplete: %s not parsed", humanize.Bytes(uint64(remaining)))
	}
	_, d.err = fmt.Fprintln(d.w, s)
}

// textVRs hold character strings. Those marked true are subject to the Specific Character Set.
var textVRs = map[dicom.VR]bool{
	dicom.AEVR: false, dicom.ASVR: false, dicom.CSVR: false, dicom.DAVR: false, dicom.DSVR: false,
	dicom.DTVR: false, dicom.ISVR: false, dicom.TMVR: false, dicom.UIVR: false, dicom.URVR: false,
	dicom.LOVR: true, dicom.LTVR: true, dicom.PNVR: true, dicom.SHVR: true, dicom.STVR: true,
	dicom.UCVR: true, dicom.UTVR: true,
}

var numberSizes = map[dicom.VR]int{
	dicom.USVR: 2, dicom.SSVR: 2, dicom.ULVR: 4, dicom.SLVR: 4, dicom.FLVR: 4, dicom.ATVR: 4,
	dicom.FDVR: 8, dicom.SVVR: 8, dicom.UVVR: 8,
}

func (d *dumper) format(vr dicom.VR, value []byte) string {
	if charset, ok := textVRs[vr]; ok {
		return d.text(charset, value)
	}
	if size, ok := numberSizes[vr]; ok && len(value) <= d.opts.maxValue {
		return d.numbers(vr, size, value)
	}
	return d.binary(value)
}

func (d *dumper) text(charset bool, value []byte) string {
	coding := dicom.DefaultCharacterRepertoire
	if charset {
		coding = d.coding
	}
	s, err := dicom.DecodeText(coding, value)
	if err != nil {
		return d.binary(value)
	}
	if r := []rune(s); len(r) > d.opts.maxValue {
		s = string(r[:d.opts.maxValue]) + "..."
	}
	return s
}

func (d *dumper) numbers(vr dicom.VR, size int, value []byte) string {
	var parts []string
	for i := 0; i+size <= len(value); i += size {
		b := value[i : i+size]
		var s string
		switch vr {
		case dicom.USVR:
			s = strconv.FormatUint(uint64(d.order.Uint16(b)), 10)
		case dicom.SSVR:
			s = strconv.FormatInt(int64(int16(d.order.Uint16(b))), 10)
		case dicom.ULVR:
			s = strconv.FormatUint(uint64(d.order.Uint32(b)), 10)
		case dicom.SLVR:
			s = strconv.FormatInt(int64(int32(d.order.Uint32(b))), 10)
		case dicom.UVVR:
			s = strconv.FormatUint(d.order.Uint64(b), 10)
		case dicom.SVVR:
			s = strconv.FormatInt(int64(d.order.Uint64(b)), 10)
		case dicom.FLVR:
			s = strconv.FormatFloat(float64(math.Float32frombits(d.order.Uint32(b))), 'g', -1, 32)
		case dicom.FDVR:
			s = strconv.FormatFloat(math.Float64frombits(d.order.Uint64(b)), 'g', -1, 64)
		case dicom.ATVR:
			s = dicom.NewDataElementTag(d.order.Uint16(b), d.order.Uint16(b[2:])).String()
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, `\`)
}

// binary shows short values in hex and long ones by size and digest
func (d *dumper) binary(value []byte) string {
	if len(value) <= d.opts.maxValue {
		return hex.EncodeToString(value)
	}
	sum := blake3.Sum256(value)
	return fmt.Sprintf("%s blake3:%x", humanize.Bytes(uint64(len(value))), sum[:8])
}
