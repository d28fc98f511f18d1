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
	"math/rand/v2"

	"github.com/zintix-labs/bowlab/bowling"
)

// bowler 以 Profile 與自己的 RNG 投出一局。
type bowler struct {
	p   Profile
	rng *rand.Rand
}

func newBowler(p Profile, seed int64) *bowler {
	u := uint64(seed)
	return &bowler{p: p, rng: rand.New(rand.NewPCG(u, mix63(u^0x9E3779B97F4A7C15)))}
}

// play 投完整局 10 格，回傳的 roll 一定是合法的。
//
// 剩幾支瓶、這格結束了沒，全部交給 bowling.RemainingPins / FrameDone 判斷。
func (b *bowler) play(pid bowling.PlayerID) []bowling.Roll {
	rolls := make([]bowling.Roll, 0, 21)
	for frame := 1; frame <= bowling.Frames; frame++ {
		var current []bowling.Roll
		for !bowling.FrameDone(current, frame) {
			standing := bowling.RemainingPins(current, frame)
			r := bowling.Roll{
				PlayerID:  pid,
				Frame:     frame,
				RollIndex: len(current) + 1,
				Pins:      b.throw(standing),
			}
			current = append(current, r)
			rolls = append(rolls, r)
		}
	}
	return rolls
}

// throw 對 standing 支站著的瓶子投一球。
func (b *bowler) throw(standing int) int {
	if standing <= 0 {
		return 0
	}
	hit := b.p.Spare
	if standing == bowling.RackSize {
		hit = b.p.Strike
	}
	if b.chance(hit) {
		return standing
	}
	// 沒有全倒：逐支判定，最多 standing-1
	n := 0
	for range standing {
		if b.chance(b.p.Skill) {
			n++
		}
	}
	return min(n, standing-1)
}

func (b *bowler) chance(p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	default:
		return b.rng.Float64() < p
	}
}
