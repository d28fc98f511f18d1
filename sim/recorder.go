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

package sim

import (
	"github.com/zintix-labs/bowlab/bowling"
)

// bucketWidth 分數區間寬度；最後一個區間 [250,300] 包含 300。
const bucketWidth = 50

var bucketLabels = []string{"0-49", "50-99", "100-149", "150-199", "200-249", "250-300"}

// gameRecorder 每個 worker 一份，跑完後 merge。
//
// scores 由 Simulator 共享並以局號索引寫入，各 worker 寫的 index 不重疊。
type gameRecorder struct {
	scores  []int
	strikes int
	spares  int
	opens   int
	perfect int
	buckets [6]int
}

func newGameRecorder(scores []int) *gameRecorder {
	return &gameRecorder{scores: scores}
}

// record 第 i 局的 roll。
func (r *gameRecorder) record(i int, rolls []bowling.Roll) {
	total := 0
	for _, t := range bowling.ComputeTotals(rolls) {
		total = t
	}
	r.scores[i] = total
	if total == 300 {
		r.perfect++
	}
	r.buckets[min(total/bucketWidth, len(r.buckets)-1)]++

	for _, frames := range bowling.GroupFrames(rolls) {
		for _, f := range frames {
			switch {
			case len(f.Pins) > 0 && f.Pins[0] == bowling.RackSize:
				r.strikes++
			case len(f.Pins) > 1 && f.Pins[0]+f.Pins[1] == bowling.RackSize:
				r.spares++
			default:
				r.opens++
			}
		}
	}
}

func mergeRecorders(rs []*gameRecorder) *gameRecorder {
	if len(rs) == 0 {
		return &gameRecorder{}
	}
	out := &gameRecorder{scores: rs[0].scores}
	for _, r := range rs {
		out.strikes += r.strikes
		out.spares += r.spares
		out.opens += r.opens
		out.perfect += r.perfect
		for i, n := range r.buckets {
			out.buckets[i] += n
		}
	}
	return out
}
