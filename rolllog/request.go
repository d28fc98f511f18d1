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

package rolllog

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/zintix-labs/bowlab/bowling"
	"github.com/zintix-labs/bowlab/errs"
)

// MaxBody HTTP 請求 body 上限（1MiB）。
const MaxBody = 1 << 20

// Request HTTP 邊界收到的請求：一份 roll log，加上查詢剩餘瓶數時需要的 Turn。
type Request struct {
	Log
	Turn *Turn `json:"turn,omitempty"`
}

// DecodeRequest 會把 HTTP POST body 解碼成 Request，並執行 Validate。
//
// 注意：
//   - body 超過 MaxBody 直接拒絕，不會截斷後再解析。
//   - 不認識的欄位一律拒絕。
//   - Turn 的合法性（誰該投球）不在這裡判斷，只檢查 frame 範圍。
func DecodeRequest(r *http.Request) (*Request, error) {
	if r == nil || r.Body == nil {
		return nil, errs.NewWarn("nil request")
	}
	if r.Method != http.MethodPost {
		return nil, errs.Warnf("method not allowed: %s", r.Method)
	}

	body := http.MaxBytesReader(nil, r.Body, MaxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	req := new(Request)
	if err := dec.Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errs.Warnf("request body exceeds %d bytes", MaxBody)
		}
		if errors.Is(err, io.EOF) {
			return nil, errs.NewWarn("empty request body")
		}
		return nil, errs.Warnf("invalid json: %v", err)
	}
	if dec.More() {
		return nil, errs.NewWarn("invalid json: trailing data after roll log")
	}
	if err := req.Log.Validate(); err != nil {
		return nil, err
	}
	if req.Turn != nil && (req.Turn.Frame < 1 || req.Turn.Frame > bowling.Frames) {
		return nil, errs.Warnf("turn: frame %d out of range", req.Turn.Frame)
	}
	return req, nil
}
