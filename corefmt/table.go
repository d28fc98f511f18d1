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

// Package corefmt 提供終端輸出用的格式化工具：以 runewidth 計算寬度的表格與千分位數字。
package corefmt

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang = language.English

// Printer 回傳統一語系的 printer（千分位）。
func Printer() *message.Printer {
	return message.NewPrinter(lang)
}

// Int 以千分位格式化整數。
func Int(n int) string {
	return Printer().Sprintf("%d", n)
}

// Table 純文字表格，欄寬依 runewidth 計算，可正確對齊中日韓文字。
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// String 輸出表格。
func (t *Table) String() string {
	cols := len(t.Header)
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return ""
	}
	widths := make([]int, cols)
	measure := func(row []string) {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}
	measure(t.Header)
	for _, row := range t.Rows {
		measure(row)
	}

	inner := -1
	for _, w := range widths {
		inner += w + 3
	}
	titleW := runewidth.StringWidth(t.Title)
	if titleW > inner {
		// 標題比表格寬時，撐開最後一欄
		widths[cols-1] += titleW - inner
		inner = titleW
	}
	divider := "+"
	for _, w := range widths {
		divider += strings.Repeat("-", w+2) + "+"
	}
	divider += "\n"

	var sb strings.Builder
	if t.Title != "" {
		left := (inner - titleW) / 2
		sb.WriteString("+" + strings.Repeat("-", inner) + "+\n")
		sb.WriteString("|" + Blank(left) + t.Title + Blank(inner-titleW-left) + "|\n")
	}
	sb.WriteString(divider)
	if len(t.Header) > 0 {
		writeRow(&sb, t.Header, widths)
		sb.WriteString(divider)
	}
	for _, row := range t.Rows {
		writeRow(&sb, row, widths)
	}
	sb.WriteString(divider)
	return sb.String()
}

func writeRow(sb *strings.Builder, row []string, widths []int) {
	sb.WriteString("|")
	for i, w := range widths {
		c := ""
		if i < len(row) {
			c = row[i]
		}
		sb.WriteString(" " + c + Blank(w-runewidth.StringWidth(c)) + " |")
	}
	sb.WriteString("\n")
}

// KV 兩欄（名稱 / 值）表格，keys 決定輸出順序。
func KV(title string, keys []string, msg map[string]string) string {
	t := &Table{Title: title, Rows: make([][]string, 0, len(keys))}
	for _, k := range keys {
		t.Rows = append(t.Rows, []string{k, msg[k]})
	}
	return t.String()
}

func Blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
