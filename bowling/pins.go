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

// RemainingPins 回傳目前這一格還站著幾支瓶，也就是下一球能打倒的上限。
//
// current 是該玩家在 frame 已投的球（其他格的 roll 會被忽略），順序取自 RollIndex。
// 第 1~9 格為 10 減去已打倒的瓶數；strike 之後為 0。
// 第十格清空後會重新擺滿：strike 之後、連續兩個 strike 之後、spare 之後都是 10。
// 這一格是否還有下一球由 FrameDone 回答。
//
// 以下情況回傳 Unconstrained，呼叫端應視為「暫不設上限」而非錯誤：
//   - frame 不在 1..10（呼叫端尚未取得遊戲狀態）。
//   - 已投的球在物理上不可能（打倒的比站著的多，或該格結束後還有球）。
func RemainingPins(current []Roll, frame int) int {
	if frame < 1 || frame > Frames {
		return Unconstrained
	}
	rk := newRack(frame)
	rk.replay(orderedPins(current, frame))
	if rk.invalid {
		return Unconstrained
	}
	return rk.standing
}

// FrameDone 判斷這一格是否已不存在下一球。
//
// 只回答「這一格結束了沒」，不決定下一位輪到誰。
func FrameDone(current []Roll, frame int) bool {
	if frame < 1 || frame > Frames {
		return false
	}
	rk := newRack(frame)
	rk.replay(orderedPins(current, frame))
	return rk.done
}
