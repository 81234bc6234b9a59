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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupEncoding(t *testing.T) {
	tests := []struct {
		name  string
		term  string
		value []byte
		want  string
	}{
		{
			name:  "default repertoire",
			term:  "",
			value: []byte("Doe^John "),
			want:  "Doe^John",
		},
		{
			name:  "latin-1",
			term:  "ISO_IR 100",
			value: []byte{'M', 0xFC, 'l', 'l', 'e', 'r'},
			want:  "Müller",
		},
		{
			name:  "cyrillic",
			term:  "ISO_IR 144",
			value: []byte{0xBB, 0xEE, 0xDA, 0xE1},
			want:  "Люкс",
		},
		{
			name:  "utf-8 with padding",
			term:  "ISO_IR 192 ",
			value: []byte("Ünïcode "),
			want:  "Ünïcode",
		},
		{
			name:  "first defined term of a multi-valued element",
			term:  `ISO 2022 IR 100\ISO 2022 IR 87`,
			value: []byte{0xE9},
			want:  "é",
		},
		{
			name:  "leading empty value is passed over",
			term:  `\ISO 2022 IR 87`,
			value: []byte("abc"),
			want:  "abc",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			coding, err := LookupEncoding(tc.term)
			require.NoError(t, err)
			got, err := DecodeText(coding, tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLookupEncoding_unknownTerm(t *testing.T) {
	_, err := LookupEncoding("ISO_IR 999")
	assert.Error(t, err)
}

func TestDecodeText_nilEncoding(t *testing.T) {
	got, err := DecodeText(nil, []byte("1.2.3\x00"))
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}
