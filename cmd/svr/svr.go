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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/zintix-labs/bowlab/server"
	"github.com/zintix-labs/bowlab/server/logger"
	"github.com/zintix-labs/bowlab/server/svrcfg"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := server.Run(cfg); err != nil {
		os.Exit(1)
	}
}

// config 先讀 flag，再由環境變數覆蓋（容器部署時只需設定 env）。
type config struct {
	Addr     string `env:"BOWLAB_ADDR"`
	LogMode  string `env:"BOWLAB_LOG_MODE"`
	MaxRolls int    `env:"BOWLAB_MAX_ROLLS"`
}

func loadConfig(args []string) (*svrcfg.SvrCfg, error) {
	cfg := new(config)
	fs := flag.NewFlagSet("svr", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", svrcfg.DefaultAddr, "listen address")
	fs.StringVar(&cfg.LogMode, "log-mode", "dev", "log mode: dev|prod|silence")
	fs.IntVar(&cfg.MaxRolls, "max-rolls", svrcfg.DefaultMaxRolls, "max rolls per request")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	mode, err := logger.ParseMode(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	log, _ := logger.NewAsync(4096, mode)
	return &svrcfg.SvrCfg{
		Log:      log,
		Addr:     cfg.Addr,
		MaxRolls: cfg.MaxRolls,
	}, nil
}
