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

// Package perf 以 runtime/pprof 包住一段執行，輸出 cpu / heap / allocs profile。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/bowlab/errs"
)

// DefaultDir pprof 檔案寫入路徑
const DefaultDir = "build/profiling"

// Run 依 mode 執行 exe 並寫出 profile 到 dir；mode 為 "" 時直接執行。
//
// exe 的錯誤優先回傳；profile 寫檔失敗為 errs.Fatal。
func Run(dir string, mode string, exe func() error) error {
	if dir == "" {
		dir = DefaultDir
	}
	switch mode {
	case "":
		return exe()
	case "cpu":
		return cpu(dir, exe)
	case "heap", "allocs":
		if err := exe(); err != nil {
			return err
		}
		return snapshot(dir, mode)
	default:
		return errs.Warnf("unknown pprof mode %q: want cpu|heap|allocs", mode)
	}
}

func create(dir, mode string) (*os.File, error) {
	// 確保目錄存在
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "create pprof dir failed")
	}
	f, err := os.Create(filepath.Join(dir, mode+".pprof"))
	if err != nil {
		return nil, errs.Wrap(err, "create "+mode+".pprof failed")
	}
	return f, nil
}

func cpu(dir string, exe func() error) error {
	f, err := create(dir, "cpu")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "start cpu profile failed")
	}
	defer pprof.StopCPUProfile()
	return exe()
}

// snapshot 在 exe() 之後拍一次 heap 或累積配置 (allocs) 快照。
func snapshot(dir, mode string) error {
	f, err := create(dir, mode)
	if err != nil {
		return err
	}
	defer f.Close()

	if mode == "heap" {
		// 盡量讓快照貼近最新狀態
		runtime.GC()
	}
	prof := pprof.Lookup(mode)
	if prof == nil {
		return errs.Fatalf("pprof profile %q not found", mode)
	}
	if err := prof.WriteTo(f, 0); err != nil {
		return errs.Wrap(err, "write "+mode+" profile failed")
	}
	return nil
}
