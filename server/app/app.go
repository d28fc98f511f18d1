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

// Package app 提供應用程式生命週期管理（App），負責統一啟動與關閉多個 Component。
package app

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"
)

// DefaultGrace 優雅關閉的等待上限。
const DefaultGrace = 5 * time.Second

// Component 是交給 App 管理的長期運行元件（目前只有 HTTP server）。
// Run 阻塞到元件停止；Shutdown 需遵守 ctx 的期限。
type Component interface {
	Run() error
	Shutdown(ctx context.Context) error
}

// App 負責啟動所有註冊的 Component，並在收到 OS 信號、ctx 結束或任一 Component 結束時，協調優雅關閉。
type App struct {
	comps []Component
	log   *slog.Logger
	grace time.Duration
}

// New 建立一個新的 App 實例；log 為 nil 時使用 slog.Default()。
func New(log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	return &App{log: log, grace: DefaultGrace}
}

// NewWith 是 New 的語法糖，允許在建立時直接註冊多個 Component。
func NewWith(log *slog.Logger, comps ...Component) *App {
	app := New(log)
	for _, c := range comps {
		app.Register(c)
	}
	return app
}

func (a *App) Register(c Component) {
	if c != nil {
		a.comps = append(a.comps, c)
	}
}

func (a *App) Run() error {
	return a.RunContext(context.Background())
}

// RunContext 啟動所有 Component 並阻塞，直到 ctx 結束、收到 SIGINT / SIGTERM，或任一 Component 的 Run 返回。
//
// ctx 結束或收到信號視為正常關閉，回傳 nil；Component 先返回時回傳它的錯誤（可能為 nil）。
func (a *App) RunContext(ctx context.Context) error {
	if len(a.comps) == 0 {
		return errors.New("app: no component registered")
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	// errCh 用於收集任一 Component 首次返回的錯誤
	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	select {
	case <-ctx.Done():
		a.log.Info("app: shutting down", slog.String("reason", context.Cause(ctx).Error()))
		a.gracefulShutdown()
		return nil
	case err := <-errCh:
		if err != nil {
			a.log.Error("app: component stopped", slog.Any("err", err))
		}
		a.gracefulShutdown()
		return err
	}
}

func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.grace)
	defer cancel()
	for _, c := range a.comps {
		if err := c.Shutdown(ctx); err != nil {
			a.log.Warn("app: shutdown failed", slog.Any("err", err))
		}
	}
}
