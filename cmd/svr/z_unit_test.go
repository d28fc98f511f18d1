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

package main

import (
	"testing"

	"github.com/zintix-labs/bowlab/server/svrcfg"
)

func TestLoadConfigFlags(t *testing.T) {
	cfg, err := loadConfig([]string{"-addr", ":9000", "-log-mode", "silence", "-max-rolls", "100"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.MaxRolls != 100 || cfg.Log == nil {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigEnvOverridesFlags(t *testing.T) {
	t.Setenv("BOWLAB_ADDR", "127.0.0.1:7000")
	t.Setenv("BOWLAB_LOG_MODE", "prod")
	cfg, err := loadConfig([]string{"-addr", ":9000"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:7000" || cfg.MaxRolls != svrcfg.DefaultMaxRolls {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	if _, err := loadConfig([]string{"-log-mode", "loud"}); err == nil {
		t.Fatalf("expected error for unknown log mode")
	}
	t.Setenv("BOWLAB_MAX_ROLLS", "many")
	if _, err := loadConfig(nil); err == nil {
		t.Fatalf("expected error for bad BOWLAB_MAX_ROLLS")
	}
}
