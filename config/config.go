// Copyright (c) 2026 The r2proto3 Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

// Package config holds the settings of a translation run.
package config

import (
	"context"
	"io"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/markcda/r2proto3/syntax"
	"github.com/markcda/r2proto3/typexpr"
)

const (
	DialectRust    = "rust"
	DialectGeneric = "generic"

	DefaultOutput = "generated.proto"
)

type Config struct {
	CrateRoot string `yaml:"crate_root"`
	Output    string `yaml:"output"`
	IgnoreRPC bool   `yaml:"ignore_rpc"`
	Strict    bool   `yaml:"strict"`
	Verbose   bool   `yaml:"verbose"`
	Package   string `yaml:"package"`
	Marker    string `yaml:"marker"`
	Dialect   string `yaml:"dialect"`

	// Types maps additional scalar type names to proto3 scalars, e.g.
	// usize = "uint64".
	Types map[string]string `yaml:"types"`

	// Additional wrapper type names.
	List     []string `yaml:"list"`
	Optional []string `yaml:"optional"`
	Map      []string `yaml:"map"`

	// Exclude lists path prefixes, relative to the crate root, that are
	// not scanned.
	Exclude []string `yaml:"exclude"`
}

func Default() Config {
	return Config{
		CrateRoot: ".",
		Output:    DefaultOutput,
		Marker:    syntax.DefaultMarker,
		Dialect:   DialectRust,
		Exclude:   []string{"target"},
	}
}

// Load reads a TOML or YAML configuration file, chosen by extension, on top
// of Default().
func Load(ctx context.Context, fs afs.Service, URL string) (Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config: %v", URL)
	}
	switch ext := strings.ToLower(path.Ext(URL)); ext {
	case ".toml":
		return decodeTOML(data, URL)
	case ".yaml", ".yml":
		return decodeYAML(data, URL)
	default:
		return Config{}, errors.Errorf("unsupported config format %q: %v", ext, URL)
	}
}

type fileConfig struct {
	CrateRoot string            `toml:"crate_root"`
	Output    string            `toml:"output"`
	IgnoreRPC bool              `toml:"ignore_rpc"`
	Strict    bool              `toml:"strict"`
	Verbose   bool              `toml:"verbose"`
	Package   string            `toml:"package"`
	Marker    string            `toml:"marker"`
	Dialect   string            `toml:"dialect"`
	Types     map[string]string `toml:"types"`
	List      []string          `toml:"list"`
	Optional  []string          `toml:"optional"`
	Map       []string          `toml:"map"`
	Exclude   []string          `toml:"exclude"`
}

func decodeTOML(data []byte, URL string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config: %v", URL)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("unknown config key %q: %v", undecoded[0].String(), URL)
	}

	if meta.IsDefined("crate_root") {
		cfg.CrateRoot = strings.TrimSpace(raw.CrateRoot)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("ignore_rpc") {
		cfg.IgnoreRPC = raw.IgnoreRPC
	}
	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}
	if meta.IsDefined("package") {
		cfg.Package = strings.TrimSpace(raw.Package)
	}
	if meta.IsDefined("marker") {
		cfg.Marker = strings.TrimSpace(raw.Marker)
	}
	if meta.IsDefined("dialect") {
		cfg.Dialect = strings.ToLower(strings.TrimSpace(raw.Dialect))
	}
	if meta.IsDefined("types") {
		cfg.Types = raw.Types
	}
	if meta.IsDefined("list") {
		cfg.List = normalizeNames(raw.List)
	}
	if meta.IsDefined("optional") {
		cfg.Optional = normalizeNames(raw.Optional)
	}
	if meta.IsDefined("map") {
		cfg.Map = normalizeNames(raw.Map)
	}
	if meta.IsDefined("exclude") {
		cfg.Exclude = normalizeNames(raw.Exclude)
	}
	return cfg, nil
}

func decodeYAML(data []byte, URL string) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrapf(err, "failed to parse config: %v", URL)
	}
	cfg.Dialect = strings.ToLower(strings.TrimSpace(cfg.Dialect))
	cfg.List = normalizeNames(cfg.List)
	cfg.Optional = normalizeNames(cfg.Optional)
	cfg.Map = normalizeNames(cfg.Map)
	cfg.Exclude = normalizeNames(cfg.Exclude)
	return cfg, nil
}

func normalizeNames(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, name := range in {
		v := strings.TrimSpace(name)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (c *Config) Validate() error {
	if c.CrateRoot == "" {
		return errors.New("crate root is empty")
	}
	if c.Output == "" {
		return errors.New("output is empty")
	}
	if c.Marker == "" {
		return errors.New("marker is empty")
	}
	switch c.Dialect {
	case DialectRust, DialectGeneric:
	default:
		return errors.Errorf("unknown dialect %q (expected %q or %q)", c.Dialect, DialectRust, DialectGeneric)
	}
	for _, name := range slices.Sorted(maps.Keys(c.Types)) {
		if _, ok := typexpr.ParsePrimitive(c.Types[name]); !ok {
			return errors.Errorf("type %q maps to %q, which is not a proto3 scalar", name, c.Types[name])
		}
	}
	return nil
}

// TypeDialect builds the type dialect described by the configuration.
func (c *Config) TypeDialect() (typexpr.Dialect, error) {
	if err := c.Validate(); err != nil {
		return typexpr.Dialect{}, err
	}
	dialect := typexpr.RustDialect()
	if c.Dialect == DialectGeneric {
		dialect = typexpr.GenericDialect()
	}
	for _, name := range slices.Sorted(maps.Keys(c.Types)) {
		p, _ := typexpr.ParsePrimitive(c.Types[name])
		dialect = dialect.WithScalar(name, p)
	}
	for _, name := range c.List {
		dialect = dialect.WithList(name)
	}
	for _, name := range c.Optional {
		dialect = dialect.WithOptional(name)
	}
	for _, name := range c.Map {
		dialect = dialect.WithMap(name)
	}
	return dialect, nil
}
