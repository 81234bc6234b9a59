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

// Command dcmdump prints the data elements of DICOM files, one line per element, with nested
// items marked by '>'.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/go-dicom-stream/dicom"
	"github.com/GoogleCloudPlatform/go-dicom-stream/internal/logging"
)

var logger = logging.New("dcmdump")

type cli struct {
	Files    []string `arg:"" type:"existingfile" help:"DICOM files to dump."`
	MaxValue int      `name:"max-value" default:"64" env:"DCMDUMP_MAX_VALUE" help:"Binary values longer than this many bytes are shown as size and BLAKE3 digest, text is cut."`
	Skip     []string `name:"skip" sep:"," help:"Tags to skip along with nested items, as gggg,eeee or ggggeeee. Repeatable."`
	StopAt   string   `name:"stop-at" help:"Stop at the first top level element with this tag or greater."`
	Syntax   string   `name:"syntax" enum:"file,implicit,explicit,big" default:"file" help:"Encoding of the input: a Part-10 file, or a bare data set in implicit VR little endian, explicit VR little endian or explicit VR big endian."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("dcmdump"),
		kong.Description("Dump the data elements of DICOM files."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(c.run(os.Stdout))
}

var syntaxByFlag = map[string]dicom.TransferSyntax{
	"implicit": dicom.ImplicitVRLittleEndian,
	"explicit": dicom.ExplicitVRLittleEndian,
	"big":      dicom.ExplicitVRBigEndian,
}

func (c *cli) options() (dumpOptions, error) {
	opts := dumpOptions{
		maxValue: c.MaxValue,
		skip:     map[dicom.DataElementTag]bool{},
		syntax:   syntaxByFlag[c.Syntax],
	}
	for _, s := range c.Skip {
		tag, err := parseTag(s)
		if err != nil {
			return opts, fmt.Errorf("--skip: %w", err)
		}
		opts.skip[tag] = true
	}
	if c.StopAt != "" {
		tag, err := parseTag(c.StopAt)
		if err != nil {
			return opts, fmt.Errorf("--stop-at: %w", err)
		}
		opts.stopAt = tag
	}
	return opts, nil
}

// run dumps every file. A file that fails does not prevent the others from being dumped.
func (c *cli) run(w io.Writer) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	var errs error
	for _, name := range c.Files {
		if err := dumpFile(w, name, opts); err != nil {
			logger.Warn("dump failed", zap.String("file", name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errs
}

func dumpFile(w io.Writer, name string, opts dumpOptions) error {
	buf, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	logger.Debug("dumping", zap.String("file", name), zap.Int("size", len(buf)))
	return dump(w, name, buf, opts)
}

// parseTag accepts "(gggg,eeee)", "gggg,eeee" and "ggggeeee" in hexadecimal
func parseTag(s string) (dicom.DataElementTag, error) {
	hex := strings.NewReplacer("(", "", ")", "", ",", "", " ", "").Replace(s)
	if len(hex) != 8 {
		return 0, fmt.Errorf("invalid tag %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid tag %q: %w", s, err)
	}
	return dicom.DataElementTag(v), nil
}
