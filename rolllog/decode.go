// Copyright 2025 Zintix Labs
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

package rolllog

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/bowlab/errs"
	"gopkg.in/yaml.v3"
)

// Format roll log 的序列化格式。
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
)

const zstdExt = ".zst"

// FormatOf 依檔名判斷格式與是否為 zstd 壓縮，例如 game.yaml.zst。
func FormatOf(name string) (Format, bool, error) {
	compressed := strings.HasSuffix(name, zstdExt)
	name = strings.TrimSuffix(name, zstdExt)
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, compressed, nil
	case ".yaml", ".yml":
		return FormatYAML, compressed, nil
	default:
		return 0, false, errs.Warnf("unsupported roll log file: %s", name)
	}
}

// DecodeJSON 解析 JSON roll log，不做合法性檢查。
func DecodeJSON(data []byte) (*Log, error) {
	l := new(Log)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(l); err != nil {
		return nil, errs.NewWarn("invalid json roll log").With(err.Error())
	}
	return l, nil
}

// DecodeYAML 解析 YAML roll log，不做合法性檢查。
func DecodeYAML(data []byte) (*Log, error) {
	l := new(Log)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(l); err != nil && err != io.EOF {
		return nil, errs.NewWarn("invalid yaml roll log").With(err.Error())
	}
	return l, nil
}

// DecodeZstd 先解壓再依 f 解析。
func DecodeZstd(data []byte, f Format) (*Log, error) {
	zr, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(err, "create zstd reader failed")
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, errs.NewWarn("corrupted zstd roll log").With(err.Error())
	}
	return Decode(raw, f)
}

// Decode 依格式解析 roll log。
func Decode(data []byte, f Format) (*Log, error) {
	if f == FormatYAML {
		return DecodeYAML(data)
	}
	return DecodeJSON(data)
}

// Load 從 fsys 讀取並解析 name，接著執行 Validate。
//
// 檔案來源一律以 fs.FS 注入：os.DirFS、embed.FS 皆可。
func Load(fsys fs.FS, name string) (*Log, error) {
	f, compressed, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errs.Wrap(err, "read roll log failed")
	}

	var l *Log
	if compressed {
		l, err = DecodeZstd(data, f)
	} else {
		l, err = Decode(data, f)
	}
	if err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Encode 依 name 的副檔名把 l 寫入 w（例如 sample.yaml.zst）。
func Encode(w io.Writer, l *Log, name string) error {
	f, compressed, err := FormatOf(name)
	if err != nil {
		return err
	}
	if !compressed {
		return encode(w, l, f)
	}
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return errs.Wrap(err, "create zstd writer failed")
	}
	if err := encode(zw, l, f); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return errs.Wrap(err, "flush zstd writer failed")
	}
	return nil
}

func encode(w io.Writer, l *Log, f Format) error {
	if f == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return errs.Wrap(err, "encode yaml roll log failed")
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return errs.Wrap(err, "encode json roll log failed")
	}
	return nil
}
