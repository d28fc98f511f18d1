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

import "strconv"

// Token 計分板上的一個記號。
type Token string

const (
	Strike Token = "X"
	Spare  Token = "/"
	Empty  Token = "" // 尚未投出
)

// Board 一位玩家的 10 格記號，每格 1~3 個 Token。
type Board [Frames][]Token

// RenderBoard 把 roll log 轉成每位玩家的計分板記號。
//
//   - 一架新瓶被一球打倒 → X（第 1~9 格該格只有一個記號）。
//   - 同一架的第二球清空 → /，不論實際打倒幾支。
//   - 其他球記原始數字（包含 "0"）。
//   - 尚未投出的格位補 Empty。
//
// 第十格逐球追蹤球瓶，因此 strike, strike, 5 會記成 X X 5。
func RenderBoard(rolls []Roll) map[PlayerID]Board {
	grouped := GroupFrames(rolls)
	out := make(map[PlayerID]Board, len(grouped))
	for pid, frames := range grouped {
		b := EmptyBoard()
		for _, f := range frames {
			if f.Number < 1 || f.Number > Frames {
				continue
			}
			b[f.Number-1] = frameTokens(f)
		}
		out[pid] = b
	}
	return out
}

// EmptyBoard 尚未投球的計分板：第 1~9 格兩個空位，第十格三個。
func EmptyBoard() Board {
	var b Board
	for n := 1; n <= Frames; n++ {
		b[n-1] = frameTokens(Frame{Number: n})
	}
	return b
}

func frameTokens(f Frame) []Token {
	rk := newRack(f.Number)
	marks := rk.replay(f.Pins)
	tokens := make([]Token, 0, 3)
	for i, m := range marks {
		tokens = append(tokens, m.token(f.Pins[i]))
	}
	for len(tokens) < rk.slots() {
		tokens = append(tokens, Empty)
	}
	return tokens
}

func (m mark) token(pins int) Token {
	switch m {
	case markStrike:
		return Strike
	case markSpare:
		return Spare
	default:
		return Token(strconv.Itoa(pins))
	}
}
