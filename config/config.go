// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the options named in spec §6's configuration table.
package config

import (
	"time"

	"gopkg.in/yaml.v2"
)

// Options holds every configuration knob the core recognises (spec §6).
type Options struct {
	// TermCacheCapacity bounds the LRU term-id cache (spec §4.2).
	TermCacheCapacity int `yaml:"term_cache_capacity"`
	// PathMaxDepth caps recursion in property-path CTEs (spec §4.4).
	PathMaxDepth int `yaml:"path_max_depth"`
	// QueryTimeout is the per-query wall-clock ceiling.
	QueryTimeout time.Duration `yaml:"query_timeout"`
	// LoadMaxSize is the byte ceiling for LOAD fetches.
	LoadMaxSize int64 `yaml:"load_max_size"`
	// LoadAllowedSchemes allow-lists URI schemes for LOAD.
	LoadAllowedSchemes []string `yaml:"load_allowed_schemes"`
	// LoadAllowedHosts optionally allow-lists hosts for LOAD. Empty means
	// unrestricted (subject to scheme checks).
	LoadAllowedHosts []string `yaml:"load_allowed_hosts"`
	// GlobalGraphIRI overrides the default-graph sentinel.
	GlobalGraphIRI string `yaml:"global_graph_iri"`
}

// Defaults matches spec §3's stated default sentinel and conservative,
// safe-by-default LOAD limits.
func Defaults() Options {
	return Options{
		TermCacheCapacity:  50_000,
		PathMaxDepth:       10,
		QueryTimeout:       30 * time.Second,
		LoadMaxSize:        64 << 20, // 64 MiB
		LoadAllowedSchemes: []string{"http", "https"},
		LoadAllowedHosts:   nil,
		GlobalGraphIRI:     "urn:___GLOBAL",
	}
}

// Load parses YAML config, starting from Defaults so a partial document
// only overrides what it mentions.
func Load(data []byte) (Options, error) {
	opts := Defaults()
	if len(data) == 0 {
		return opts, nil
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}
