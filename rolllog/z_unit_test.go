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

package rolllog_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/bowlab/bowling"
	"github.com/zintix-labs/bowlab/errs"
	"github.com/zintix-labs/bowlab/rolllog"
)

func r(pid string, frame, idx, pins int) bowling.Roll {
	return bowling.Roll{PlayerID: bowling.PlayerID(pid), Frame: frame, RollIndex: idx, Pins: pins}
}

func perfect(pid string) []bowling.Roll {
	out := make([]bowling.Roll, 0, 12)
	for f := 1; f < 10; f++ {
		out = append(out, r(pid, f, 1, 10))
	}
	return append(out, r(pid, 10, 1, 10), r(pid, 10, 2, 10), r(pid, 10, 3, 10))
}

func TestValidateAcceptsLegalLogs(t *testing.T) {
	cases := map[string][]bowling.Roll{
		"empty":   nil,
		"perfect": perfect("a"),
		"live two players": {
			r("a", 1, 1, 10), r("b", 1, 1, 3), r("b", 1, 2, 7), r("a", 2, 1, 4),
		},
		"tenth spare bonus": append(tenth("a", 9), r("a", 10, 1, 9), r("a", 10, 2, 1), r("a", 10, 3, 10)),
		"tenth strike then 3,7": append(tenth("a", 9), r("a", 10, 1, 10), r("a", 10, 2, 3), r("a", 10, 3, 7)),
	}
	for name, rolls := range cases {
		if err := rolllog.Validate(rolls); err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
	}
}

// tenth 回傳 frames 1..n 皆為 (0,0) 的紀錄。
func tenth(pid string, n int) []bowling.Roll {
	out := make([]bowling.Roll, 0, 2*n)
	for f := 1; f <= n; f++ {
		out = append(out, r(pid, f, 1, 0), r(pid, f, 2, 0))
	}
	return out
}

func TestValidateRejects(t *testing.T) {
	cases := map[string][]bowling.Roll{
		"negative pins":        {r("a", 1, 1, -1)},
		"too many pins":        {r("a", 1, 1, 11)},
		"frame zero":           {r("a", 0, 1, 1)},
		"frame eleven":         {r("a", 11, 1, 1)},
		"roll index zero":      {r("a", 1, 0, 1)},
		"third roll frame 1":   {r("a", 1, 1, 1), r("a", 1, 2, 1), r("a", 1, 3, 1)},
		"empty player":         {r("", 1, 1, 1)},
		"duplicated roll":      {r("a", 1, 1, 1), r("a", 1, 1, 2)},
		"missing first roll":   {r("a", 1, 2, 1)},
		"frame sum over rack":  {r("a", 1, 1, 7), r("a", 1, 2, 5)},
		"roll after strike":    {r("a", 1, 1, 10), r("a", 1, 2, 0)},
		"tenth bonus not earned": append(tenth("a", 9), r("a", 10, 1, 3), r("a", 10, 2, 4), r("a", 10, 3, 1)),
		"tenth third over rack":  append(tenth("a", 9), r("a", 10, 1, 10), r("a", 10, 2, 3), r("a", 10, 3, 8)),
		"skipped frame":          {r("a", 1, 1, 1), r("a", 1, 2, 1), r("a", 3, 1, 1)},
		"frame left open":        {r("a", 1, 1, 1), r("a", 2, 1, 1)},
	}
	for name, rolls := range cases {
		err := rolllog.Validate(rolls)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !errs.IsWarn(err) {
			t.Fatalf("%s: expected warn level, got %v", name, err)
		}
	}
}

func TestLogValidateRoster(t *testing.T) {
	l := &rolllog.Log{
		Players: []rolllog.Player{{ID: "a", Name: "Ann"}},
		Rolls:   []bowling.Roll{r("b", 1, 1, 3)},
	}
	if err := l.Validate(); !errs.IsWarn(err) {
		t.Fatalf("unknown player should be rejected, got %v", err)
	}

	l = &rolllog.Log{Players: []rolllog.Player{{ID: "a"}, {ID: "a"}}}
	if err := l.Validate(); !errs.IsWarn(err) {
		t.Fatalf("duplicated roster should be rejected, got %v", err)
	}

	var nilLog *rolllog.Log
	if err := nilLog.Validate(); !errs.IsWarn(err) {
		t.Fatalf("nil log should be rejected, got %v", err)
	}
}

func TestRosterDerivedFromRolls(t *testing.T) {
	l := &rolllog.Log{Rolls: []bowling.Roll{r("b", 1, 1, 3), r("a", 1, 1, 3)}}
	got := l.Roster()
	want := []rolllog.Player{{ID: "b", Name: "b"}, {ID: "a", Name: "a"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestLoadEveryFormat(t *testing.T) {
	src := &rolllog.Log{
		Game:    "league night",
		Players: []rolllog.Player{{ID: "a", Name: "Ann"}, {ID: "b", Name: "Bo"}},
		Rolls:   append(perfect("a"), r("b", 1, 1, 5), r("b", 1, 2, 5), r("b", 2, 1, 3)),
	}

	fsys := fstest.MapFS{}
	for _, name := range []string{"g.json", "g.yaml", "g.yml", "g.yaml.zst", "g.json.zst"} {
		var buf bytes.Buffer
		if err := rolllog.Encode(&buf, src, name); err != nil {
			t.Fatalf("encode %s: %v", name, err)
		}
		fsys[name] = &fstest.MapFile{Data: buf.Bytes()}
	}

	for name := range fsys {
		got, err := rolllog.Load(fsys, name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if !reflect.DeepEqual(got, src) {
			t.Fatalf("load %s: got %+v want %+v", name, got, src)
		}
		totals := bowling.ComputeTotals(got.Rolls)
		if totals["a"] != 300 || totals["b"] != 16 {
			t.Fatalf("load %s: totals %v", name, totals)
		}
	}
}

func TestLoadRejects(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.txt":     {Data: []byte("rolls: []")},
		"unknown.yml": {Data: []byte("rolls: []\nscore: 3\n")},
		"broken.json": {Data: []byte("{")},
		"bad.yaml.zst": {Data: []byte("not zstd")},
		"illegal.yaml": {Data: []byte("rolls:\n  - {player_id: a, frame: 1, roll: 1, pins: 12}\n")},
	}
	for name := range fsys {
		if _, err := rolllog.Load(fsys, name); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := rolllog.Load(fsys, "missing.yaml"); errs.LevelOf(err) != errs.Fatal {
		t.Fatalf("missing file should be fatal, got %v", err)
	}
}

func TestDecodeRequest(t *testing.T) {
	body := `{"game":"g","rolls":[{"player_id":"a","frame":1,"roll":1,"pins":10},{"player_id":"a","frame":2,"roll":1,"pins":4}],"turn":{"player":"a","frame":2}}`
	req, err := rolllog.DecodeRequest(httptest.NewRequest(http.MethodPost, "/v1/pins", strings.NewReader(body)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Game != "g" || len(req.Rolls) != 2 {
		t.Fatalf("unexpected log: %+v", req.Log)
	}
	if req.Turn == nil || req.Turn.Player != "a" || req.Turn.Frame != 2 {
		t.Fatalf("unexpected turn: %+v", req.Turn)
	}
	if got := bowling.RemainingPins(req.CurrentFrame(req.Turn.Player, req.Turn.Frame), req.Turn.Frame); got != 6 {
		t.Fatalf("remaining = %d, want 6", got)
	}
}

func TestDecodeRequestRejects(t *testing.T) {
	huge := `{"rolls":[],"game":"` + strings.Repeat("x", rolllog.MaxBody) + `"}`
	cases := map[string]struct {
		method string
		body   string
	}{
		"get":           {http.MethodGet, ""},
		"empty body":    {http.MethodPost, ""},
		"bad json":      {http.MethodPost, "{"},
		"unknown field": {http.MethodPost, `{"rolls":[],"lane":3}`},
		"trailing data": {http.MethodPost, `{"rolls":[]} {"rolls":[]}`},
		"illegal rolls": {http.MethodPost, `{"rolls":[{"player_id":"a","frame":1,"roll":1,"pins":11}]}`},
		"turn frame":    {http.MethodPost, `{"rolls":[],"turn":{"player":"a","frame":11}}`},
		"too large":     {http.MethodPost, huge},
	}
	for name, tc := range cases {
		_, err := rolllog.DecodeRequest(httptest.NewRequest(tc.method, "/v1/totals", strings.NewReader(tc.body)))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !errs.IsWarn(err) {
			t.Fatalf("%s: expected warn level, got %v", name, errs.LevelOf(err))
		}
	}
}
