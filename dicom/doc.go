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

// Package dicom provides a streaming decoder for the DICOM Part-10 file format.
// The decoder walks a fully buffered data set and reports every Data Element to a Handler
// through callbacks instead of building a document tree. The Handler steers the traversal:
// for every element header it decides whether the value is delivered, skipped, or whether
// parsing stops altogether.
//
// Parse decodes a bare data set in a known transfer syntax. ParseFile reads the preamble and
// File Meta Information first, selects the transfer syntax named there, and then decodes the
// main data set. Values handed to a Handler alias the caller's buffer; nothing is copied.
//
// Trees can be layered on top of the callbacks. DataSetHandler is such a Handler: it collects
// DataElements into a DataSet.
package dicom

import "github.com/GoogleCloudPlatform/go-dicom-stream/internal/logging"

var logger = logging.New("dicom")
