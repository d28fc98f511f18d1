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

// Package bowling 是 bowlab 的計分引擎。
//
// 引擎只吃一份 append-only 的 roll log（每一球一筆），並推導出三種結果：
//  1. ComputeTotals / FrameTotals：每位玩家的累計分數（strike/spare 需往後看球）。
//  2. RenderBoard：計分板上的記號（X、/、數字、空白）。
//  3. RemainingPins：下一球最多能打倒幾支瓶（第十格有重新擺瓶的特例）。
//
// 所有函式皆為純函式：不修改輸入、不保留狀態、可併發呼叫，
// 同一份 log 呼叫多次永遠得到相同結果。輸入合法性由邊界層（rolllog）負責。
package bowling

const (
	Frames    = 10 // 每局格數
	LastFrame = Frames
	RackSize  = 10 // 一架球瓶數

	MaxRollsPerFrame  = 2 // 第 1~9 格
	MaxRollsLastFrame = 3

	// Unconstrained 表示 RemainingPins 無法（或不需要）給出上限。
	Unconstrained = -1
)

// PlayerID 在同一局中穩定的玩家識別碼，引擎不解析其內容。
type PlayerID string

// Roll 一次投球。
//
// 同一格內的順序一律由 RollIndex 決定，與 log 中的陣列位置無關。
type Roll struct {
	PlayerID  PlayerID `json:"player_id" yaml:"player_id"`
	Frame     int      `json:"frame"     yaml:"frame"`     // 1..10
	RollIndex int      `json:"roll"      yaml:"roll"`      // 1..3，3 只出現在第十格
	Pins      int      `json:"pins"      yaml:"pins"`      // 0..10
}

// Players 依首次出現的順序回傳 log 中的玩家。
func Players(rolls []Roll) []PlayerID {
	seen := make(map[PlayerID]struct{})
	out := make([]PlayerID, 0, 4)
	for _, r := range rolls {
		if _, ok := seen[r.PlayerID]; ok {
			continue
		}
		seen[r.PlayerID] = struct{}{}
		out = append(out, r.PlayerID)
	}
	return out
}

// FrameRolls 取出某位玩家在某一格已投的球，供 RemainingPins 使用。
func FrameRolls(rolls []Roll, player PlayerID, frame int) []Roll {
	var out []Roll
	for _, r := range rolls {
		if r.PlayerID == player && r.Frame == frame {
			out = append(out, r)
		}
	}
	return out
}
