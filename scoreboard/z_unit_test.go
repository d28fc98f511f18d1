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

package scoreboard_test

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/zintix-labs/bowlab/bowling"
	"github.com/zintix-labs/bowlab/demo"
	"github.com/zintix-labs/bowlab/errs"
	"github.com/zintix-labs/bowlab/rolllog"
	"github.com/zintix-labs/bowlab/scoreboard"
)

func load(t *testing.T, name string) *rolllog.Log {
	t.Helper()
	l, err := demo.Load(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return l
}

func row(t *testing.T, sb *scoreboard.Scoreboard, id bowling.PlayerID) scoreboard.Row {
	t.Helper()
	for _, r := range sb.Rows {
		if r.Player == id {
			return r
		}
	}
	t.Fatalf("no row for %s", id)
	return scoreboard.Row{}
}

func TestBuildCompleteGame(t *testing.T) {
	sb := scoreboard.Build(load(t, "league"), nil)
	if !sb.Complete {
		t.Fatalf("league game should be complete")
	}
	if !reflect.DeepEqual(sb.Winners, []bowling.PlayerID{"bo"}) {
		t.Fatalf("winners = %v", sb.Winners)
	}
	if sb.Remaining != nil {
		t.Fatalf("remaining without turn = %d", *sb.Remaining)
	}
	ann := row(t, sb, "ann")
	if ann.Name != "Ann" || ann.Total != 167 || !ann.Done {
		t.Fatalf("ann row = %+v", ann)
	}
	for i, v := range ann.Running {
		if v == nil {
			t.Fatalf("ann running[%d] is nil in a finished game", i)
		}
	}
	if *ann.Running[bowling.Frames-1] != ann.Total {
		t.Fatalf("last running %d != total %d", *ann.Running[bowling.Frames-1], ann.Total)
	}
}

func TestBuildLiveGame(t *testing.T) {
	sb := scoreboard.Build(load(t, "live"), &scoreboard.Turn{Player: "ann", Frame: 4})
	if sb.Complete || sb.Winners != nil {
		t.Fatalf("live game should not be complete: %+v", sb)
	}
	if sb.Remaining == nil || *sb.Remaining != 7 {
		t.Fatalf("remaining = %v, want 7", sb.Remaining)
	}

	ann := row(t, sb, "ann")
	if ann.Total != 31 || ann.Done {
		t.Fatalf("ann row = %+v", ann)
	}
	// 第 3 格的 strike 還在等第二球 bonus：累計分停在第 2 格
	if ann.Running[0] == nil || *ann.Running[0] != 19 || ann.Running[1] == nil || *ann.Running[1] != 28 {
		t.Fatalf("ann running = %v", ann.Running)
	}
	if ann.Running[2] != nil || ann.Running[3] != nil {
		t.Fatalf("pending strike must stop the running total")
	}

	// 名單上還沒投球的玩家：0 分、空白計分板
	cy := row(t, sb, "cy")
	if cy.Total != 0 || cy.Done || len(cy.Frames) != 0 {
		t.Fatalf("cy row = %+v", cy)
	}
	if !reflect.DeepEqual(cy.Board, bowling.EmptyBoard()) {
		t.Fatalf("cy board = %v", cy.Board)
	}
}

func TestBuildRemaining(t *testing.T) {
	l := load(t, "live")
	// 已結束的格子仍回報站著的瓶數
	if sb := scoreboard.Build(l, &scoreboard.Turn{Player: "bo", Frame: 3}); sb.Remaining == nil || *sb.Remaining != 1 {
		t.Fatalf("bo frame 3 remaining = %v, want 1", sb.Remaining)
	}
	if sb := scoreboard.Build(l, &scoreboard.Turn{Player: "ann", Frame: 3}); sb.Remaining == nil || *sb.Remaining != 0 {
		t.Fatalf("ann frame 3 strike remaining = %v, want 0", sb.Remaining)
	}
	if sb := scoreboard.Build(l, &scoreboard.Turn{Player: "ann", Frame: 0}); sb.Remaining != nil {
		t.Fatalf("out of range frame: remaining = %d, want nil", *sb.Remaining)
	}
	if sb := scoreboard.Build(l, &scoreboard.Turn{Player: "cy", Frame: 1}); sb.Remaining == nil || *sb.Remaining != 10 {
		t.Fatalf("fresh frame should have 10 standing")
	}
}

func TestWinnersTie(t *testing.T) {
	l := load(t, "perfect")
	twin := make([]bowling.Roll, 0, 2*len(l.Rolls))
	for _, r := range l.Rolls {
		twin = append(twin, r)
		r.PlayerID = "cat"
		twin = append(twin, r)
	}
	sb := scoreboard.Build(&rolllog.Log{Rolls: twin}, nil)
	if !sb.Complete || !reflect.DeepEqual(sb.Winners, []bowling.PlayerID{"ann", "cat"}) {
		t.Fatalf("tie winners = %v (complete %v)", sb.Winners, sb.Complete)
	}
}

func TestRenderJSON(t *testing.T) {
	sb := scoreboard.Build(load(t, "live"), &scoreboard.Turn{Player: "ann", Frame: 4})
	var buf bytes.Buffer
	if err := (&scoreboard.JSONRender{}).Write(&buf, sb); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got scoreboard.Scoreboard
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Remaining == nil || *got.Remaining != 7 || len(got.Rows) != 3 {
		t.Fatalf("decoded scoreboard = %+v", got)
	}
	if got.Rows[0].Board[0][0] != bowling.Strike {
		t.Fatalf("ann frame 1 = %v", got.Rows[0].Board[0])
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := (&scoreboard.YAMLRender{}).Write(&buf, scoreboard.Build(load(t, "perfect"), nil)); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "- [X, X, X]") {
		t.Fatalf("tenth frame should be a flow sequence:\n%s", out)
	}
	if !strings.Contains(out, "total: 300") {
		t.Fatalf("missing total:\n%s", out)
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	rd, err := scoreboard.RenderFor("text")
	if err != nil {
		t.Fatalf("render for: %v", err)
	}
	if err := rd.Write(&buf, scoreboard.Build(load(t, "league"), nil)); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"league night", "Ann", "Bo", "| 190", "winner: Bo"} {
		if !strings.Contains(out, want) {
			t.Fatalf("text output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := rd.Write(&buf, scoreboard.Build(load(t, "live"), &scoreboard.Turn{Player: "ann", Frame: 4})); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "turn: ann frame 4, 7 pins standing") {
		t.Fatalf("missing turn line:\n%s", buf.String())
	}
}

func TestRenderForUnknown(t *testing.T) {
	if _, err := scoreboard.RenderFor("csv"); !errs.IsWarn(err) {
		t.Fatalf("expected warn, got %v", err)
	}
}
