// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package serializer

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// ZstdExt marks a compressed output or input path.
const ZstdExt = ".zst"

var (
	// core deterministic encoding: identical reports produce identical bytes
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error

	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("serializer: CBOR encoder initialization failed: " + err.Error())
	}

	// map[string]any instead of map[any]any for untyped targets
	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("serializer: CBOR decoder initialization failed: " + err.Error())
	}
}

// zstdWriteCloser closes the encoder, flushing the final frame, and then
// the underlying file.
type zstdWriteCloser struct {
	*zstd.Encoder
	file io.Closer
}

func newZstdWriteCloser(w io.WriteCloser) (*zstdWriteCloser, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	return &zstdWriteCloser{Encoder: enc, file: w}, nil
}

func (z *zstdWriteCloser) Close() error {
	if err := z.Encoder.Close(); err != nil {
		_ = z.file.Close()
		return err
	}
	return z.file.Close()
}

type zstdReadCloser struct {
	*zstd.Decoder
	file io.Closer
}

func newZstdReadCloser(r io.ReadCloser) (*zstdReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &zstdReadCloser{Decoder: dec, file: r}, nil
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.file.Close()
}
