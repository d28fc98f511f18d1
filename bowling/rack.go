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

// mark 描述一球在當下球瓶狀態下的結果。
type mark uint8

const (
	markPins    mark = iota // 一般球，記數字
	markStrike              // 打倒整架（新擺的 10 支）
	markSpare               // 清掉同一架剩下的球瓶
	markInvalid             // 比站著的瓶還多，或該格已經結束
)

// rack 從第一原理追蹤一格內的球瓶：
//   - 每一球從站著的瓶數扣掉。
//   - 第 1~9 格：清空或投滿兩球即結束。
//   - 第十格：前兩球內清空就賺到第三球，清空後若還能投則重新擺滿 10 支。
type rack struct {
	last     bool
	standing int
	onRack   int // 目前這一架已投幾球
	thrown   int
	earned   bool // 第十格已賺到第三球
	done     bool
	invalid  bool
}

func newRack(frame int) *rack {
	return &rack{last: frame == LastFrame, standing: RackSize}
}

func (r *rack) throw(pins int) mark {
	if r.done || pins < 0 || pins > r.standing {
		r.invalid = true
		r.done = true
		return markInvalid
	}

	m := markPins
	r.standing -= pins
	if r.standing == 0 {
		if r.onRack == 0 {
			m = markStrike
		} else {
			m = markSpare
		}
	}
	r.onRack++
	r.thrown++

	if !r.last {
		r.done = r.standing == 0 || r.thrown == 2
		return m
	}

	if r.standing == 0 && r.thrown <= 2 {
		r.earned = true
	}
	switch {
	case r.thrown == 3:
		r.done = true
	case r.thrown == 2 && !r.earned:
		r.done = true
	case r.standing == 0:
		// 第十格清空後重新擺瓶
		r.standing = RackSize
		r.onRack = 0
	}
	return m
}

// replay 依序投完 pins，回傳每一球的 mark。
func (r *rack) replay(pins []int) []mark {
	marks := make([]mark, len(pins))
	for i, p := range pins {
		marks[i] = r.throw(p)
	}
	return marks
}

// slots 計分板上該格應保留的格位數。
func (r *rack) slots() int {
	if !r.last {
		// 第 1~9 格只有 strike 會在第一球就清空
		if r.thrown == 1 && r.standing == 0 {
			return 1
		}
		return 2
	}
	if r.thrown < 2 || r.earned {
		return 3
	}
	return 2
}
