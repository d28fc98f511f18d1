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

// Package rolllog 是 roll log 進入引擎前的邊界層：解碼（JSON / YAML / zstd）與合法性檢查。
//
// 引擎（bowling）假設輸入合法、不做物理檢查；所有拒絕都在這一層發生，
// 並以 errs.Warn 回報，讓 HTTP 邊界映射成 400。
package rolllog

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/zintix-labs/bowlab/bowling"
	"github.com/zintix-labs/bowlab/errs"
)

// Player 名單中的一位玩家。
type Player struct {
	ID   bowling.PlayerID `json:"id"   yaml:"id"`
	Name string           `json:"name" yaml:"name"`
}

// Log 一局的 roll log 與玩家名單。
//
// Players 可以為空，此時名單由 Rolls 中首次出現的順序推得。
type Log struct {
	Game    string         `json:"game,omitempty"    yaml:"game,omitempty"`
	Players []Player       `json:"players,omitempty" yaml:"players,omitempty"`
	Rolls   []bowling.Roll `json:"rolls"             yaml:"rolls"`
}

// Turn 目前投球者與格數。輪到誰由呼叫端的遊戲狀態決定，這裡只負責帶著走。
type Turn struct {
	Player bowling.PlayerID `json:"player" yaml:"player"`
	Frame  int              `json:"frame"  yaml:"frame"`
}

// CurrentFrame 回傳 player 在 frame 的 roll，可直接交給 bowling.RemainingPins。
func (l *Log) CurrentFrame(player bowling.PlayerID, frame int) []bowling.Roll {
	return bowling.FrameRolls(l.Rolls, player, frame)
}

// Roster 回傳名單；未提供名單時以 roll 出現順序推得，名稱即 ID。
func (l *Log) Roster() []Player {
	if len(l.Players) > 0 {
		return slices.Clone(l.Players)
	}
	ids := bowling.Players(l.Rolls)
	out := make([]Player, len(ids))
	for i, id := range ids {
		out[i] = Player{ID: id, Name: string(id)}
	}
	return out
}

// Validate 檢查名單與所有 roll。
func (l *Log) Validate() error {
	if l == nil {
		return errs.NewWarn("nil roll log")
	}
	known := make(map[bowling.PlayerID]struct{}, len(l.Players))
	for _, p := range l.Players {
		if p.ID == "" {
			return errs.NewWarn("roster: empty player id")
		}
		if _, dup := known[p.ID]; dup {
			return errs.Warnf("roster: duplicated player %q", p.ID)
		}
		known[p.ID] = struct{}{}
	}
	if len(known) > 0 {
		for _, r := range l.Rolls {
			if _, ok := known[r.PlayerID]; !ok {
				return errs.Warnf("roll by unknown player %q", r.PlayerID)
			}
		}
	}
	return Validate(l.Rolls)
}

type rollKey struct {
	pid   bowling.PlayerID
	frame int
}

// Validate 檢查 roll log 是否為一局合法保齡球的前綴。
//
// 會拒絕：
//   - pins 不在 0..10、frame 不在 1..10、roll 不在 1..3、第 3 球出現在 1~9 格。
//   - 同一玩家同一格同一球重複、roll index 不連續。
//   - 打倒的瓶數比當時站著的多，或該格已結束仍有下一球。
//   - 前一格尚未結束就出現下一格，或格數有跳號。
func Validate(rolls []bowling.Roll) error {
	frames := make(map[rollKey][]bowling.Roll)
	for _, r := range rolls {
		if err := checkRange(r); err != nil {
			return err
		}
		k := rollKey{pid: r.PlayerID, frame: r.Frame}
		frames[k] = append(frames[k], r)
	}

	lastFrame := make(map[bowling.PlayerID]int)
	for k, rs := range frames {
		slices.SortFunc(rs, func(a, b bowling.Roll) int { return cmp.Compare(a.RollIndex, b.RollIndex) })
		for i, r := range rs {
			if r.RollIndex != i+1 {
				if i > 0 && rs[i-1].RollIndex == r.RollIndex {
					return invalid(r, "duplicated roll")
				}
				return invalid(r, fmt.Sprintf("missing roll %d", i+1))
			}
			if bowling.FrameDone(rs[:i], r.Frame) {
				return invalid(r, "frame already complete")
			}
			// 前面的球都已驗過，這裡不會拿到 Unconstrained
			standing := bowling.RemainingPins(rs[:i], r.Frame)
			if r.Pins > standing {
				return invalid(r, fmt.Sprintf("only %d pins standing", standing))
			}
		}
		lastFrame[k.pid] = max(lastFrame[k.pid], k.frame)
	}

	// 每位玩家的格數必須連續，且除了最後一格之外都已結束。
	for pid, last := range lastFrame {
		for n := 1; n < last; n++ {
			rs, ok := frames[rollKey{pid: pid, frame: n}]
			if !ok {
				return errs.Warnf("player %q: frame %d missing before frame %d", pid, n, last)
			}
			if !bowling.FrameDone(rs, n) {
				return errs.Warnf("player %q: frame %d not complete before frame %d", pid, n, last)
			}
		}
	}
	return nil
}

func checkRange(r bowling.Roll) error {
	switch {
	case r.PlayerID == "":
		return invalid(r, "empty player id")
	case r.Frame < 1 || r.Frame > bowling.Frames:
		return invalid(r, "frame out of range")
	case r.RollIndex < 1 || r.RollIndex > bowling.MaxRollsLastFrame:
		return invalid(r, "roll index out of range")
	case r.RollIndex > bowling.MaxRollsPerFrame && r.Frame != bowling.LastFrame:
		return invalid(r, "third roll outside the last frame")
	case r.Pins < 0 || r.Pins > bowling.RackSize:
		return invalid(r, "pins out of range")
	}
	return nil
}

func invalid(r bowling.Roll, msg string) error {
	return errs.NewWarn("invalid roll: "+msg).
		With(fmt.Sprintf("player=%s frame=%d roll=%d pins=%d", r.PlayerID, r.Frame, r.RollIndex, r.Pins))
}
