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

	"github.com/GoogleCloudPlatform/go-dicom-stream/dicom/dicomtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewConfig_defaults(t *testing.T) {
	cfg := newConfig(nil)
	assert.Equal(t, StandardDictionary, cfg.tags)
	assert.Equal(t, StandardVRClasses, cfg.classes)
	assert.Same(t, logger, cfg.logger)
}

func TestNewConfig_nilValuesKeepDefaults(t *testing.T) {
	cfg := newConfig([]Option{WithTagDictionary(nil), WithVRClassifier(nil), WithLogger(nil)})
	assert.Equal(t, StandardDictionary, cfg.tags)
	assert.Equal(t, StandardVRClasses, cfg.classes)
	require.NotNil(t, cfg.logger)
}

func TestNewConfig_lastOptionWins(t *testing.T) {
	first, second := TagVRMap{}, TagVRMap{0x00100010: PNVR}
	cfg := newConfig([]Option{WithTagDictionary(first), WithTagDictionary(second)})
	assert.Equal(t, second, cfg.tags)
}

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	buf := dicomtest.NewEncoder(dicomtest.ExplicitLittle).
		ItemDelimiter().
		Header(0x00081140, "SQ", dicomtest.UndefinedLength).
		Header(dicomtest.SequenceDelimitationItemTag, "", 2).
		Element(0x00100010, "PN", dicomtest.Text("Doe^John")).
		Bytes()

	r := &recorder{control: map[DataElementTag]Control{0x00100010: Stop}}
	require.NoError(t, Parse(buf, ExplicitVRLittleEndian, r, WithLogger(zap.New(core))))

	var messages []string
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{
		"ignoring unmatched delimiter",
		"delimiter with non-zero length",
		"stopped by handler",
	}, messages)
	assert.Equal(t, "(FFFE,E00D)", logs.All()[0].ContextMap()["tag"])
}

func TestWithLogger_underflow(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	buf := dicomtest.NewEncoder(dicomtest.ImplicitLittle).
		Element(0x00100010, "PN", dicomtest.Text("Doe^John")).
		Bytes()

	_, err := record(t, buf[:12], ImplicitVRLittleEndian, WithLogger(zap.New(core)))
	require.ErrorIs(t, err, ErrUnderflow)

	entries := logs.FilterMessage("input underflow").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(12), entries[0].ContextMap()["remaining"])
}
