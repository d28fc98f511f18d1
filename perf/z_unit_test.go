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

package perf_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zintix-labs/bowlab/errs"
	"github.com/zintix-labs/bowlab/perf"
)

func TestRunWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	for _, mode := range []string{"cpu", "heap", "allocs"} {
		ran := false
		if err := perf.Run(dir, mode, func() error { ran = true; return nil }); err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		if !ran {
			t.Fatalf("%s: exe not called", mode)
		}
		if _, err := os.Stat(filepath.Join(dir, mode+".pprof")); err != nil {
			t.Fatalf("%s: profile missing: %v", mode, err)
		}
	}
}

func TestRunPassesErrors(t *testing.T) {
	boom := errors.New("boom")
	if err := perf.Run(t.TempDir(), "", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := perf.Run(t.TempDir(), "trace", func() error { return nil }); !errs.IsWarn(err) {
		t.Fatalf("expected warn, got %v", err)
	}
}
