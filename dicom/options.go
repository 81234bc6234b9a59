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

import "go.uber.org/zap"

// config holds parser configuration.
type config struct {
	tags    TagDictionary
	classes VRClassifier
	logger  *zap.Logger
}

// Option configures Parse, ParseFile and ReadMetaInformation.
type Option func(*config)

// WithTagDictionary sets the dictionary used to resolve VRs in the implicit VR syntax.
//
// Default: StandardDictionary
func WithTagDictionary(d TagDictionary) Option {
	return func(c *config) {
		c.tags = d
	}
}

// WithVRClassifier sets the classification of VRs into short-form and long-form lengths used
// by the explicit VR syntaxes.
//
// Default: StandardVRClasses
func WithVRClassifier(classes VRClassifier) Option {
	return func(c *config) {
		c.classes = classes
	}
}

// WithLogger sets the logger receiving debug records about tolerated irregularities in the
// input.
//
// Default: the package logger, whose level is set by the DCMSTREAM_LOG_DICOM environment
// variable.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		tags:    StandardDictionary,
		classes: StandardVRClasses,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.tags == nil {
		cfg.tags = StandardDictionary
	}
	if cfg.classes == nil {
		cfg.classes = StandardVRClasses
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}
