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

package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/zintix-labs/bowlab/errs"
	"github.com/zintix-labs/bowlab/server/logger"
)

func TestParseMode(t *testing.T) {
	cases := map[string]logger.LogMode{
		"":            logger.ModeDev,
		"dev":         logger.ModeDev,
		"ModeProd":    logger.ModeProd,
		" PROD ":      logger.ModeProd,
		"silence":     logger.ModeSilence,
		"ModeSilence": logger.ModeSilence,
	}
	for in, want := range cases {
		got, err := logger.ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := logger.ParseMode("verbose"); !errs.IsWarn(err) {
		t.Fatalf("expected warn, got %v", err)
	}
}

func TestAsyncHandlerFlushesOnClose(t *testing.T) {
	var buf bytes.Buffer
	ah := logger.NewAsyncHandler(slog.NewTextHandler(&buf, nil), 16)
	log := slog.New(ah).With(slog.String("lane", "3"))
	log.Info("roll", slog.Int("pins", 7))
	ah.Close()

	out := buf.String()
	if !strings.Contains(out, "msg=roll") || !strings.Contains(out, "lane=3") || !strings.Contains(out, "pins=7") {
		t.Fatalf("unexpected log output: %q", out)
	}

	// Close 之後的紀錄直接丟棄
	log.Info("late")
	if ah.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", ah.Dropped())
	}
	if !ah.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should be enabled")
	}
}
