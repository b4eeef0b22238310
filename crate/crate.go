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

// Package crate discovers the Rust source files of a crate and extracts
// their marked declarations.
package crate

import (
	"context"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/option"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"

	"github.com/markcda/r2proto3/syntax"
)

const sourceExt = ".rs"

type LoadOption interface {
	apply(*LoadOptions)
}

type loadOption func(*LoadOptions)

func (f loadOption) apply(opts *LoadOptions) { f(opts) }

type LoadOptions struct {
	marker  string
	exclude []string
}

// WithMarker sets the comment text that marks a declaration.
func WithMarker(marker string) LoadOption {
	return loadOption(func(opts *LoadOptions) {
		opts.marker = marker
	})
}

// WithExclude skips source files under the given paths, relative to the
// crate root.
func WithExclude(prefixes ...string) LoadOption {
	return loadOption(func(opts *LoadOptions) {
		opts.exclude = append(opts.exclude, prefixes...)
	})
}

func NewLoadOptions(opts ...LoadOption) *LoadOptions {
	out := &LoadOptions{
		marker: syntax.DefaultMarker,
	}
	for _, opt := range opts {
		opt.apply(out)
	}
	return out
}

// Load lists every ".rs" file under root, in URL order, and extracts its
// marked declarations.
func Load(ctx context.Context, fs afs.Service, root string, opts ...LoadOption) ([]*syntax.File, error) {
	return NewLoadOptions(opts...).Load(ctx, fs, root)
}

func (opts *LoadOptions) Load(ctx context.Context, fs afs.Service, root string) ([]*syntax.File, error) {
	root = rootURL(root)
	objects, err := fs.List(ctx, root, option.NewRecursive(true))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list crate: %v", root)
	}

	rootPath := url.Path(root)
	var sources []storage.Object
	for _, object := range objects {
		if object.IsDir() || path.Ext(object.Name()) != sourceExt {
			continue
		}
		if opts.excluded(relativePath(rootPath, url.Path(object.URL()))) {
			continue
		}
		sources = append(sources, object)
	}
	slices.SortFunc(sources, func(a, b storage.Object) int {
		return strings.Compare(a.URL(), b.URL())
	})

	files := make([]*syntax.File, 0, len(sources))
	for _, object := range sources {
		src, err := fs.Download(ctx, object)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read source: %v", object.URL())
		}
		rel := relativePath(rootPath, url.Path(object.URL()))
		file, err := syntax.Extract(src, syntax.WithPath(rel), syntax.WithMarker(opts.marker))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to extract declarations: %v", object.URL())
		}
		files = append(files, file)
	}
	return files, nil
}

func (opts *LoadOptions) excluded(rel string) bool {
	for _, prefix := range opts.exclude {
		prefix = strings.Trim(path.Clean("/"+prefix), "/")
		if prefix == "" {
			continue
		}
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
	}
	return false
}

func rootURL(root string) string {
	if strings.Contains(root, "://") {
		return strings.TrimRight(root, "/")
	}
	if abs, err := filepath.Abs(root); err == nil {
		return filepath.ToSlash(abs)
	}
	return root
}

func relativePath(rootPath, objectPath string) string {
	rel := strings.TrimPrefix(objectPath, strings.TrimRight(rootPath, "/"))
	return strings.TrimPrefix(rel, "/")
}
