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

// containerKind tells what a container holds.
type containerKind int

const (
	// dataSetContainer is the top level data set
	dataSetContainer containerKind = iota

	// sequenceContainer holds the items of a sequence
	sequenceContainer

	// itemContainer holds the nested data set of one sequence item
	itemContainer

	// fragmentsContainer holds the fragment items of an encapsulated element
	fragmentsContainer
)

func (k containerKind) String() string {
	switch k {
	case dataSetContainer:
		return "data set"
	case sequenceContainer:
		return "sequence"
	case itemContainer:
		return "item"
	case fragmentsContainer:
		return "fragments"
	}
	return "unknown"
}

// container is a parsing context. Containers of defined length end at a fixed offset;
// containers of undefined length end at their delimiter.
type container struct {
	kind containerKind

	// attr is the header that opened the container. It is zero for the top level data set.
	attr Attribute

	// end is the offset just past the container, or -1 for undefined length.
	end int

	// limit bounds every read inside the container. It is end, or the enclosing container's
	// limit if the length is undefined.
	limit int

	// silent containers belong to a skipped element and are traversed without callbacks.
	silent bool

	// codec decodes the headers inside the container
	codec codec
}

func (c *container) undefinedLength() bool {
	return c.end < 0
}

// containerStack holds the open containers. The active container is the top.
type containerStack []container

func (s *containerStack) push(c container) {
	*s = append(*s, c)
}

func (s *containerStack) pop() container {
	old := *s
	c := old[len(old)-1]
	*s = old[:len(old)-1]
	return c
}

func (s containerStack) top() *container {
	return &s[len(s)-1]
}

// below returns the container under the top, or nil.
func (s containerStack) below() *container {
	if len(s) < 2 {
		return nil
	}
	return &s[len(s)-2]
}

func (s containerStack) empty() bool {
	return len(s) == 0
}
