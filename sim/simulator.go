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

// Package sim 以隨機但合法的整局投球，大量驗證計分引擎並產生分數統計。
package sim

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/bowlab/bowling"
	"github.com/zintix-labs/bowlab/errs"
	"github.com/zintix-labs/bowlab/rolllog"
)

// batch 每次從 jobs 取出的局數
const batch = 256

// Simulator 依 Profile 模擬多局保齡球。
//
// 第 i 局的種子只由 (seed, i) 決定，與 worker 數量及排程無關，
// 因此同一個 seed 不論幾個 worker 都得到相同的報表（Elapsed 除外）。
type Simulator struct {
	profile Profile
	seed    int64
}

// New 以隨機種子建立 Simulator。
func New(p Profile) (*Simulator, error) {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return nil, errs.Wrap(err, "generate seed failed")
	}
	return NewWithSeed(p, seed.Int64())
}

// NewWithSeed seed < 1 時改用隨機種子。
func NewWithSeed(p Profile, seed int64) (*Simulator, error) {
	if err := p.Valid(); err != nil {
		return nil, err
	}
	if seed < 1 {
		return New(p)
	}
	return &Simulator{profile: p, seed: seed}, nil
}

func (s *Simulator) Seed() int64 { return s.seed }

func (s *Simulator) Profile() Profile { return s.profile }

// Game 重現第 i 局，玩家 ID 為 pid。
func (s *Simulator) Game(i int, pid bowling.PlayerID) []bowling.Roll {
	return newBowler(s.profile, gameSeed(s.seed, i)).play(pid)
}

// Sample 把前 n 局組成一份 roll log，每局一位玩家（g0001, g0002, ...）。
func (s *Simulator) Sample(n int) *rolllog.Log {
	l := &rolllog.Log{
		Game:    fmt.Sprintf("sim %s seed %d", s.profile.Name, s.seed),
		Players: make([]rolllog.Player, 0, n),
		Rolls:   make([]bowling.Roll, 0, n*21),
	}
	for i := range n {
		pid := bowling.PlayerID(fmt.Sprintf("g%04d", i+1))
		l.Players = append(l.Players, rolllog.Player{ID: pid, Name: string(pid)})
		l.Rolls = append(l.Rolls, s.Game(i, pid)...)
	}
	return l
}

// Run 以 workers 個 goroutine 模擬 games 局。
func (s *Simulator) Run(games int, workers int, showpb bool) (*Report, error) {
	if games < 1 {
		return nil, errs.NewWarn("games must > 0")
	}
	if workers < 1 {
		return nil, errs.NewWarn("workers must > 0")
	}
	workers = min(workers, games)

	scores := make([]int, games)
	recs := make([]*gameRecorder, workers)
	for w := range recs {
		recs[w] = newGameRecorder(scores)
	}

	bar := pb.StartNew(games)
	if !showpb {
		bar.SetWriter(io.Discard)
	}

	// 作一個緩衝 channel 依序發放局號區段
	jobs := make(chan [2]int, workers*2)
	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := range workers {
		go s.work(wg, recs[w], jobs, bar)
	}
	for lo := 0; lo < games; lo += batch {
		jobs <- [2]int{lo, min(lo+batch, games)}
	}
	close(jobs) // 局號送完，通知所有 worker 不會再有新資料
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	return newReport(s.profile, s.seed, workers, mergeRecorders(recs), used), nil
}

func (s *Simulator) work(wg *sync.WaitGroup, rec *gameRecorder, jobs <-chan [2]int, bar *pb.ProgressBar) {
	defer wg.Done()
	for j := range jobs {
		for i := j[0]; i < j[1]; i++ {
			rec.record(i, s.Game(i, "sim"))
		}
		bar.Add(j[1] - j[0])
	}
}

// ============================================================
// ** 種子 **
// ============================================================

const mask63 = uint64(1<<63) - 1

// gameSeed 第 i 局的種子：在 mod 2^63 的 Weyl 序列上取第 i 項再打散。
func gameSeed(seed int64, i int) int64 {
	x := (uint64(seed) + uint64(i)*0x9E3779B97F4A7C15) & mask63
	return int64(mix63(x)) // 一定非負
}

func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63 // 乘奇數 ⇒ mod 2^63 可逆
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
