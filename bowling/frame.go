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

import (
	"cmp"
	"slices"
)

// Frame 單一玩家在單一格內的投球，Pins 已依 RollIndex 排序。
type Frame struct {
	Number int   `json:"frame" yaml:"frame"`
	Pins   []int `json:"pins"  yaml:"pins"`
}

func (f Frame) sum() int {
	s := 0
	for _, p := range f.Pins {
		s += p
	}
	return s
}

// GroupFrames 把 roll log 依玩家、再依格數遞增整理成具體結構。
//
// 之後所有往後看球（lookahead）的計算都以 frames[i+1:] 的索引存取完成，
// 不依賴 log 的到達順序。輸入 slice 不會被修改。
func GroupFrames(rolls []Roll) map[PlayerID][]Frame {
	byPlayer := make(map[PlayerID]map[int][]Roll)
	for _, r := range rolls {
		frames, ok := byPlayer[r.PlayerID]
		if !ok {
			frames = make(map[int][]Roll, Frames)
			byPlayer[r.PlayerID] = frames
		}
		frames[r.Frame] = append(frames[r.Frame], r)
	}

	out := make(map[PlayerID][]Frame, len(byPlayer))
	for pid, frames := range byPlayer {
		nums := make([]int, 0, len(frames))
		for n := range frames {
			nums = append(nums, n)
		}
		slices.Sort(nums)

		list := make([]Frame, 0, len(nums))
		for _, n := range nums {
			rs := frames[n]
			slices.SortStableFunc(rs, func(a, b Roll) int { return cmp.Compare(a.RollIndex, b.RollIndex) })
			pins := make([]int, len(rs))
			for i, r := range rs {
				pins[i] = r.Pins
			}
			list = append(list, Frame{Number: n, Pins: pins})
		}
		out[pid] = list
	}
	return out
}

// orderedPins 取出指定格的球數並依 RollIndex 排序，其他格的 roll 會被忽略。
func orderedPins(rolls []Roll, frame int) []int {
	rs := make([]Roll, 0, len(rolls))
	for _, r := range rolls {
		if r.Frame == frame {
			rs = append(rs, r)
		}
	}
	slices.SortStableFunc(rs, func(a, b Roll) int { return cmp.Compare(a.RollIndex, b.RollIndex) })
	pins := make([]int, len(rs))
	for i, r := range rs {
		pins[i] = r.Pins
	}
	return pins
}
