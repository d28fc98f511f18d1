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

// Package demo 內建幾局示範用的 roll log，供 CLI 與測試直接載入。
package demo

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/zintix-labs/bowlab/demo/demo_games"
	"github.com/zintix-labs/bowlab/errs"
	"github.com/zintix-labs/bowlab/rolllog"
	"github.com/zintix-labs/bowlab/server/logger"
	"github.com/zintix-labs/bowlab/server/svrcfg"
)

// Prefix CLI 以 "demo:league" 指定內建 roll log。
const Prefix = "demo:"

// Names 回傳所有內建 roll log 名稱（不含副檔名），依字母排序。
func Names() []string {
	entries, err := fs.ReadDir(demo_games.FS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Load 載入並檢查內建 roll log；name 可帶或不帶 "demo:" 前綴。
func Load(name string) (*rolllog.Log, error) {
	name = strings.TrimPrefix(name, Prefix)
	for _, n := range Names() {
		if n == name {
			return rolllog.Load(demo_games.FS, n+".yaml")
		}
	}
	return nil, errs.Warnf("unknown demo %q (available: %s)", name, strings.Join(Names(), ", "))
}

// NewServerConfig 開發用的預設伺服器設定。
func NewServerConfig() (*svrcfg.SvrCfg, error) {
	scfg := &svrcfg.SvrCfg{
		Log:  logger.NewDefaultAsyncLogger(logger.ModeDev),
		Addr: svrcfg.DefaultAddr,
	}
	if err := scfg.Valid(); err != nil {
		return nil, errs.Wrap(err, "demo server config")
	}
	return scfg, nil
}
