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

// Package scoreboard 把引擎的三種輸出組成一份可直接顯示的計分板報表。
//
// Scoreboard 不決定輪到誰：目前的玩家與格數（Turn）由外部的遊戲狀態提供。
package scoreboard

import (
	"github.com/zintix-labs/bowlab/bowling"
	"github.com/zintix-labs/bowlab/rolllog"
)

// Turn 外部遊戲狀態告知的「目前投球者與格數」。
type Turn = rolllog.Turn

// Row 一位玩家的計分列。
//
// Running 是傳統計分板第二列的累計分：只有已結束且分數已確定的格才有值，
// 遇到第一個 pending 或尚未結束的格之後都是 nil。
type Row struct {
	Player  bowling.PlayerID     `json:"player"  yaml:"player"`
	Name    string               `json:"name"    yaml:"name"`
	Board   bowling.Board        `json:"board"   yaml:"board"`
	Running [bowling.Frames]*int `json:"running" yaml:"running"`
	Frames  []bowling.FrameTotal `json:"frames"  yaml:"frames"`
	Total   int                  `json:"total"   yaml:"total"`
	Done    bool                 `json:"done"    yaml:"done"`
}

// Scoreboard 一局的完整計分板。
//
// Remaining 為 nil 表示下一球不設上限（沒有 Turn，或該格已無下一球）。
type Scoreboard struct {
	Game      string             `json:"game,omitempty"    yaml:"game,omitempty"`
	Rows      []Row              `json:"rows"              yaml:"rows"`
	Turn      *Turn              `json:"turn,omitempty"    yaml:"turn,omitempty"`
	Remaining *int               `json:"remaining"         yaml:"remaining"`
	Complete  bool               `json:"complete"          yaml:"complete"`
	Winners   []bowling.PlayerID `json:"winners,omitempty" yaml:"winners,omitempty"`
}

// Build 由 roll log 組出計分板。l 應已通過 Validate。
//
// 名單中沒有任何 roll 的玩家總分為 0、計分板全空。
func Build(l *rolllog.Log, turn *Turn) *Scoreboard {
	totals := bowling.ComputeTotals(l.Rolls)
	boards := bowling.RenderBoard(l.Rolls)
	frames := bowling.FrameTotals(l.Rolls)

	sb := &Scoreboard{Game: l.Game, Turn: turn}
	roster := l.Roster()
	sb.Rows = make([]Row, 0, len(roster))
	for _, p := range roster {
		row := Row{
			Player: p.ID,
			Name:   p.Name,
			Board:  bowling.EmptyBoard(),
			Frames: frames[p.ID],
			Total:  totals[p.ID],
			Done:   bowling.FrameDone(bowling.FrameRolls(l.Rolls, p.ID, bowling.LastFrame), bowling.LastFrame),
		}
		if row.Name == "" {
			row.Name = string(p.ID)
		}
		if b, ok := boards[p.ID]; ok {
			row.Board = b
		}
		if row.Frames == nil {
			row.Frames = []bowling.FrameTotal{}
		}
		row.Running = running(l.Rolls, p.ID, row.Frames)
		sb.Rows = append(sb.Rows, row)
	}

	if turn != nil {
		current := l.CurrentFrame(turn.Player, turn.Frame)
		if pins := bowling.RemainingPins(current, turn.Frame); pins != bowling.Unconstrained {
			sb.Remaining = &pins
		}
	}

	sb.Complete = len(sb.Rows) > 0
	for _, row := range sb.Rows {
		sb.Complete = sb.Complete && row.Done
	}
	if sb.Complete {
		sb.Winners = winners(sb.Rows)
	}
	return sb
}

func running(rolls []bowling.Roll, pid bowling.PlayerID, frames []bowling.FrameTotal) [bowling.Frames]*int {
	var out [bowling.Frames]*int
	for i, ft := range frames {
		// 格數連續才可能填入；遇到 pending 或未結束的格就停
		if ft.Frame != i+1 || ft.Pending {
			break
		}
		if !bowling.FrameDone(bowling.FrameRolls(rolls, pid, ft.Frame), ft.Frame) {
			break
		}
		v := ft.Cumulative
		out[i] = &v
	}
	return out
}

// winners 最高分的玩家，同分時全部列出。
func winners(rows []Row) []bowling.PlayerID {
	best := -1
	var out []bowling.PlayerID
	for _, row := range rows {
		switch {
		case row.Total > best:
			best = row.Total
			out = []bowling.PlayerID{row.Player}
		case row.Total == best:
			out = append(out, row.Player)
		}
	}
	return out
}
