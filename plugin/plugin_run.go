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

package plugin

import (
	"context"

	"github.com/pkg/errors"
	wasm "github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

const (
	allocateExport = "r2proto3_codegen_allocate"
	generateExport = "r2proto3_codegen_generate/"

	// 1 GiB of 64 KiB pages.
	memoryLimitPages = 16384
)

// Run instantiates the plugin module and calls its generator for language.
// A non-zero return code is reported as an error carrying the plugin's
// message; the decoded response is returned either way.
func Run(ctx context.Context, wasmBin []byte, language string, req *Request) (*Response, error) {
	requestBuf, err := EncodeRequest(req)
	if err != nil {
		return nil, err
	}

	runtimeConfig := wasm.NewRuntimeConfigInterpreter()
	runtimeConfig = runtimeConfig.WithMemoryLimitPages(memoryLimitPages)
	runtime := wasm.NewRuntimeWithConfig(ctx, runtimeConfig)
	defer runtime.Close(ctx)

	compiled, err := runtime.CompileModule(ctx, wasmBin)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile plugin")
	}
	module, err := runtime.InstantiateModule(ctx, compiled, wasm.NewModuleConfig())
	if err != nil {
		return nil, errors.Wrap(err, "failed to instantiate plugin")
	}

	allocate, err := exportedFunction(module, allocateExport)
	if err != nil {
		return nil, err
	}
	generate, err := exportedFunction(module, generateExport+language)
	if err != nil {
		return nil, err
	}
	mem := module.Memory()
	if mem == nil {
		return nil, errors.New("plugin does not export a memory")
	}

	results, err := allocate.Call(ctx, uint64(len(requestBuf)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate request buffer")
	}
	requestPtr := uint32(results[0])
	if !mem.Write(requestPtr, requestBuf) {
		return nil, errors.Errorf("request buffer at %#x is out of range", requestPtr)
	}

	results, err = allocate.Call(ctx, 4)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate response pointer")
	}
	responsePtrPtr := uint32(results[0])

	results, err = generate.Call(ctx, uint64(requestPtr), uint64(responsePtrPtr))
	if err != nil {
		return nil, errors.Wrapf(err, "plugin failed to generate %s", language)
	}
	rc := uint8(results[0])

	responsePtr, ok := mem.ReadUint32Le(responsePtrPtr)
	if !ok {
		return nil, errors.New("failed to read response pointer")
	}
	responseLen, ok := mem.ReadUint32Le(responsePtr)
	if !ok {
		return nil, errors.New("failed to read response message length")
	}
	responseBuf, ok := mem.Read(responsePtr, responseLen)
	if !ok {
		return nil, errors.New("failed to read response message")
	}
	resp, err := DecodeResponse(responseBuf)
	if err != nil {
		return nil, err
	}
	if rc != 0 {
		return resp, errors.Errorf("plugin error (rc=%d): %s", rc, resp.Error)
	}
	return resp, nil
}

func exportedFunction(module api.Module, name string) (api.Function, error) {
	fn := module.ExportedFunction(name)
	if fn == nil {
		return nil, errors.Errorf("plugin does not export %q", name)
	}
	return fn, nil
}
