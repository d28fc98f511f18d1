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

package svrcfg

import (
	"log/slog"
	"strings"

	"github.com/zintix-labs/bowlab/errs"
	"github.com/zintix-labs/bowlab/server/logger"
)

const (
	DefaultAddr     = ":5808"
	DefaultMaxRolls = 4096
)

type SvrCfg struct {
	Log *slog.Logger
	// Addr 監聽位址，例如 ":5808" 或 "127.0.0.1:8080"
	Addr string
	// MaxRolls 單一請求可帶的 roll 數上限（每位玩家最多 21 球）
	MaxRolls int
}

func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		// 保持安靜、合法
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}

	sc.Addr = strings.TrimSpace(sc.Addr)
	if sc.Addr == "" {
		sc.Addr = DefaultAddr
	}
	if !strings.Contains(sc.Addr, ":") {
		return errs.Warnf("invalid addr %q: missing port", sc.Addr)
	}

	// 21 <= sc.MaxRolls <= 1<<16
	// for 資源管理
	if sc.MaxRolls <= 0 {
		sc.MaxRolls = DefaultMaxRolls
	}
	sc.MaxRolls = max(21, sc.MaxRolls)
	sc.MaxRolls = min(1<<16, sc.MaxRolls)
	return nil
}
