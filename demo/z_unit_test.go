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

package demo_test

import (
	"reflect"
	"testing"

	"github.com/zintix-labs/bowlab/bowling"
	"github.com/zintix-labs/bowlab/demo"
	"github.com/zintix-labs/bowlab/errs"
)

func TestNames(t *testing.T) {
	want := []string{"gutter", "league", "live", "perfect"}
	if got := demo.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
}

func TestDemoTotals(t *testing.T) {
	cases := map[string]map[bowling.PlayerID]int{
		"perfect": {"ann": 300},
		"gutter":  {"bo": 0},
		"league":  {"ann": 167, "bo": 190},
		"live":    {"ann": 31, "bo": 29},
	}
	for name, want := range cases {
		l, err := demo.Load(demo.Prefix + name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got := bowling.ComputeTotals(l.Rolls); !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: totals = %v, want %v", name, got, want)
		}
	}
}

func TestLiveTurn(t *testing.T) {
	l, err := demo.Load("live")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(l.Roster()) != 3 {
		t.Fatalf("live roster = %+v", l.Roster())
	}
	if got := bowling.RemainingPins(l.CurrentFrame("ann", 4), 4); got != 7 {
		t.Fatalf("ann frame 4 remaining = %d, want 7", got)
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := demo.Load("bogus"); !errs.IsWarn(err) {
		t.Fatalf("expected warn, got %v", err)
	}
}

func TestNewServerConfig(t *testing.T) {
	cfg, err := demo.NewServerConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.Log == nil || cfg.Addr == "" || cfg.MaxRolls <= 0 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
