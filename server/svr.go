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

// Package server 組裝 bowlab 的 HTTP 計分服務：middleware、路由與生命週期。
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/bowlab/errs"
	"github.com/zintix-labs/bowlab/server/api"
	"github.com/zintix-labs/bowlab/server/app"
	"github.com/zintix-labs/bowlab/server/logger"
	"github.com/zintix-labs/bowlab/server/netsvr"
	"github.com/zintix-labs/bowlab/server/svrcfg"
)

// New 驗證設定並建立已註冊好路由的 server（尚未監聽）。
func New(sCfg *svrcfg.SvrCfg) (*netsvr.ChiAdapter, error) {
	if sCfg == nil {
		return nil, errs.NewFatal("server config is required")
	}
	if err := sCfg.Valid(); err != nil {
		return nil, err
	}
	svr := netsvr.NewChiServer(sCfg.Addr)
	if !svr.Ready() {
		return nil, errs.Fatalf("server is not ready: addr %q", sCfg.Addr)
	}
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		return nil, errs.Wrap(err, "register routes failed")
	}
	return svr, nil
}

// Run 啟動服務並阻塞到收到 SIGINT / SIGTERM。
func Run(sCfg *svrcfg.SvrCfg) error {
	return RunContext(context.Background(), sCfg)
}

// RunContext 與 Run 相同，ctx 結束時也會優雅關閉。
func RunContext(ctx context.Context, sCfg *svrcfg.SvrCfg) error {
	svr, err := New(sCfg)
	if err != nil {
		// 防止外層傳入的logger不可用
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer closeLog(sCfg.Log)

	a := app.NewWith(sCfg.Log, svr)
	sCfg.Log.Info("[bowlab] listening", slog.String("addr", svr.Address()), slog.Int("max_rolls", sCfg.MaxRolls))
	return a.RunContext(ctx)
}

// closeLog 在結束前把 AsyncHandler 的 queue 寫完。
func closeLog(log *slog.Logger) {
	if ah, ok := log.Handler().(*logger.AsyncHandler); ok {
		ah.Close()
	}
}
