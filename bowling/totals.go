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

package bowling

// FrameTotal 一格的計分結果。
//
// Pending 為 true 表示 strike/spare 的 bonus 球還沒投出：
// 此時 Score 為 0，且不計入 Cumulative（不是當作 0 分，而是尚未決定）。
// 第九格 strike 例外：第十格第一球出現後就以 strike + 該球計分。
type FrameTotal struct {
	Frame      int  `json:"frame"      yaml:"frame"`
	Score      int  `json:"score"      yaml:"score"`
	Cumulative int  `json:"cumulative" yaml:"cumulative"`
	Pending    bool `json:"pending"    yaml:"pending"`
}

// ComputeTotals 回傳每位玩家目前的累計分數。
//
// 沒有任何 roll 的玩家不會出現在結果中。
func ComputeTotals(rolls []Roll) map[PlayerID]int {
	grouped := GroupFrames(rolls)
	out := make(map[PlayerID]int, len(grouped))
	for pid, frames := range grouped {
		out[pid] = total(scoreFrames(frames))
	}
	return out
}

// FrameTotals 回傳每位玩家逐格的分數與累計，依格數遞增。
func FrameTotals(rolls []Roll) map[PlayerID][]FrameTotal {
	grouped := GroupFrames(rolls)
	out := make(map[PlayerID][]FrameTotal, len(grouped))
	for pid, frames := range grouped {
		out[pid] = scoreFrames(frames)
	}
	return out
}

func total(ft []FrameTotal) int {
	if len(ft) == 0 {
		return 0
	}
	return ft[len(ft)-1].Cumulative
}

func scoreFrames(frames []Frame) []FrameTotal {
	out := make([]FrameTotal, 0, len(frames))
	cum := 0
	for i, f := range frames {
		ft := FrameTotal{Frame: f.Number}
		if score, ok := frameScore(frames, i); ok {
			ft.Score = score
			cum += score
		} else {
			ft.Pending = true
		}
		ft.Cumulative = cum
		out = append(out, ft)
	}
	return out
}

// frameScore 計算 frames[i] 的分數；bonus 球不足時回傳 ok=false。
func frameScore(frames []Frame, i int) (score int, ok bool) {
	f := frames[i]
	base := f.sum()
	if f.Number >= LastFrame {
		// 第十格直接加總，沒有第十一格可以往後看
		return base, true
	}

	need := 0
	switch {
	case len(f.Pins) == 1 && f.Pins[0] == RackSize:
		need = 2
	case len(f.Pins) == 2 && base == RackSize:
		need = 1
	}
	if need == 0 {
		return base, true
	}
	bonus, ok := nextRolls(frames[i+1:], need)
	if !ok {
		if tenthFirstRoll(f, frames[i+1:]) {
			// 第九格 strike 在第十格第一球出現時先以 strike + 該球計入；
			// 第二球出現後重新計算會補上，不會重複累加。
			return base + frames[i+1].Pins[0], true
		}
		return 0, false
	}
	return base + bonus, true
}

// tenthFirstRoll 判斷 f 是第九格 strike 且第十格剛好只投了一球。
func tenthFirstRoll(f Frame, rest []Frame) bool {
	return f.Number == LastFrame-1 && len(f.Pins) == 1 &&
		len(rest) > 0 && rest[0].Number == LastFrame && len(rest[0].Pins) == 1
}

// nextRolls 加總接下來 n 球（跨格，依投球順序）。
func nextRolls(rest []Frame, n int) (int, bool) {
	sum := 0
	for _, f := range rest {
		for _, p := range f.Pins {
			if n == 0 {
				return sum, true
			}
			sum += p
			n--
		}
	}
	return sum, n == 0
}
