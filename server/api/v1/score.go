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

// Package v1 是無狀態的計分 API：每個請求帶完整 roll log，伺服器不保存任何東西。
package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/zintix-labs/bowlab/bowling"
	"github.com/zintix-labs/bowlab/errs"
	"github.com/zintix-labs/bowlab/rolllog"
	"github.com/zintix-labs/bowlab/scoreboard"
	"github.com/zintix-labs/bowlab/server/httperr"
	"github.com/zintix-labs/bowlab/server/svrcfg"
)

const reqTimeout = 5 * time.Second

// ScoreHandler 處理 /v1 底下所有計分請求。
type ScoreHandler struct {
	log      *slog.Logger
	maxRolls int
}

func NewScoreHandler(sCfg *svrcfg.SvrCfg) (*ScoreHandler, error) {
	if sCfg == nil || sCfg.Log == nil {
		return nil, errs.NewFatal("score handler: nil server config")
	}
	return &ScoreHandler{log: sCfg.Log, maxRolls: sCfg.MaxRolls}, nil
}

// TotalsResponse POST /v1/totals
type TotalsResponse struct {
	Totals map[bowling.PlayerID]int                  `json:"totals"`
	Frames map[bowling.PlayerID][]bowling.FrameTotal `json:"frames"`
}

// BoardResponse POST /v1/board
type BoardResponse struct {
	Boards map[bowling.PlayerID]bowling.Board `json:"boards"`
}

// PinsResponse POST /v1/pins
//
// Remaining 為 -1 時 Unconstrained 為 true（已投的球不合法）；該格是否結束看 FrameDone。
type PinsResponse struct {
	Player        bowling.PlayerID `json:"player"`
	Frame         int              `json:"frame"`
	Remaining     int              `json:"remaining"`
	Unconstrained bool             `json:"unconstrained"`
	FrameDone     bool             `json:"frame_done"`
}

func (h *ScoreHandler) Totals(w http.ResponseWriter, q *http.Request) {
	req, ctx, cancel, ok := h.decode(w, q)
	if !ok {
		return
	}
	defer cancel()
	h.reply(ctx, w, &TotalsResponse{
		Totals: bowling.ComputeTotals(req.Rolls),
		Frames: bowling.FrameTotals(req.Rolls),
	})
}

func (h *ScoreHandler) Board(w http.ResponseWriter, q *http.Request) {
	req, ctx, cancel, ok := h.decode(w, q)
	if !ok {
		return
	}
	defer cancel()
	h.reply(ctx, w, &BoardResponse{Boards: bowling.RenderBoard(req.Rolls)})
}

func (h *ScoreHandler) Pins(w http.ResponseWriter, q *http.Request) {
	req, ctx, cancel, ok := h.decode(w, q)
	if !ok {
		return
	}
	defer cancel()
	if req.Turn == nil {
		httperr.Errs(w, errs.NewWarn("pins: turn is required"))
		return
	}
	current := req.CurrentFrame(req.Turn.Player, req.Turn.Frame)
	pins := bowling.RemainingPins(current, req.Turn.Frame)
	h.reply(ctx, w, &PinsResponse{
		Player:        req.Turn.Player,
		Frame:         req.Turn.Frame,
		Remaining:     pins,
		Unconstrained: pins == bowling.Unconstrained,
		FrameDone:     bowling.FrameDone(current, req.Turn.Frame),
	})
}

// Scoreboard 預設回 JSON；?format=yaml|text 改用對應的 renderer。
func (h *ScoreHandler) Scoreboard(w http.ResponseWriter, q *http.Request) {
	format := strings.ToLower(q.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}
	rd, err := scoreboard.RenderFor(format)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	req, ctx, cancel, ok := h.decode(w, q)
	if !ok {
		return
	}
	defer cancel()
	sb := scoreboard.Build(&req.Log, req.Turn)

	var b bytes.Buffer
	if err := rd.Write(&b, sb); err != nil {
		h.fail(w, "render scoreboard failed", err)
		return
	}
	if err := ctx.Err(); err != nil {
		h.fail(w, "scoreboard timeout", err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Bytes())
}

// decode 解析並檢查請求，失敗時已寫回錯誤。
func (h *ScoreHandler) decode(w http.ResponseWriter, q *http.Request) (*rolllog.Request, context.Context, context.CancelFunc, bool) {
	req, err := rolllog.DecodeRequest(q)
	if err != nil {
		httperr.Errs(w, err)
		return nil, nil, nil, false
	}
	if len(req.Rolls) > h.maxRolls {
		httperr.Errs(w, errs.Warnf("too many rolls: %d > %d", len(req.Rolls), h.maxRolls))
		return nil, nil, nil, false
	}
	// 請求解析完成，設置超時 context
	ctx, cancel := context.WithTimeout(q.Context(), reqTimeout)
	return req, ctx, cancel, true
}

// reply 先寫進 buffer 再送出，保證不會寫到一半才 error。
func (h *ScoreHandler) reply(ctx context.Context, w http.ResponseWriter, v any) {
	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(v); err != nil {
		h.fail(w, "encode response failed", errs.Wrap(err, "encode response failed"))
		return
	}
	if err := ctx.Err(); err != nil {
		h.fail(w, "request timeout", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Bytes())
}

func (h *ScoreHandler) fail(w http.ResponseWriter, msg string, err error) {
	httperr.Log(h.log, msg, err)
	httperr.Errs(w, err)
}

func contentType(format string) string {
	switch format {
	case "yaml", "yml":
		return "application/yaml"
	case "text":
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}
