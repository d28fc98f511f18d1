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

// Package errs 定義 bowlab 共用的分級錯誤。
//
// 分級只回答一個問題：呼叫端該怎麼處理？
//   - Warn  : 輸入有問題（例如不合法的 roll），呼叫端應回報給使用者，服務照常運作。
//   - Fatal : 系統或依賴出錯，無法在本層恢復。
//   - Log   : 值得記錄但不影響結果。
package errs

import (
	"errors"
	"fmt"
)

// ErrLevel 錯誤分級
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

func (l ErrLevel) String() string {
	switch l {
	case Fatal:
		return "fatal"
	case Warn:
		return "warn"
	case Log:
		return "log"
	default:
		return ""
	}
}

// E 是 bowlab 的統一錯誤型別。
// Extra 放補充上下文（例如哪一位玩家、哪一格），不影響 Message。
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
}

func (e *E) Error() string {
	s := fmt.Sprintf("errlv=%s %s", e.ErrLv, e.Message)
	if e.Extra != "" {
		s += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		s += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return s
}

// Unwrap 讓 errors.Is / errors.As 可以往下展開。
func (e *E) Unwrap() error { return e.Cause }

func New(lv ErrLevel, msg string) *E { return &E{Message: msg, ErrLv: lv} }

func NewFatal(msg string) *E { return New(Fatal, msg) }

func NewWarn(msg string) *E { return New(Warn, msg) }

func Fatalf(format string, a ...any) *E { return NewFatal(fmt.Sprintf(format, a...)) }

func Warnf(format string, a ...any) *E { return NewWarn(fmt.Sprintf(format, a...)) }

func Logf(format string, a ...any) *E { return New(Log, fmt.Sprintf(format, a...)) }

// With 附加上下文後回傳同一個 *E，方便鏈式呼叫。
func (e *E) With(extra string) *E {
	if e.Extra == "" {
		e.Extra = extra
	} else {
		e.Extra += "; " + extra
	}
	return e
}

// Wrap 以 msg 包裝 cause。
//
// 分級沿用 cause：cause 若已是 *E 則保留其 ErrLv；
// 其他錯誤（標準庫、三方套件）一律視為 Fatal。
// 已知可處理的情境請直接 NewWarn，不要 Wrap。
func Wrap(cause error, msg string) *E {
	r := New(LevelOf(cause), msg)
	if r.ErrLv == None {
		r.ErrLv = Fatal
	}
	r.Cause = cause
	return r
}

// LevelOf 回傳 err 鏈上第一個 *E 的分級，找不到時回傳 None。
func LevelOf(err error) ErrLevel {
	if e, ok := AsErr(err); ok {
		return e.ErrLv
	}
	return None
}

// IsWarn 判斷 err 是否為輸入層級的錯誤。
func IsWarn(err error) bool { return LevelOf(err) == Warn }

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
