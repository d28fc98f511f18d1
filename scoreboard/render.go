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

package scoreboard

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/zintix-labs/bowlab/bowling"
	"github.com/zintix-labs/bowlab/corefmt"
	"github.com/zintix-labs/bowlab/errs"
)

// Render 定義計分板的輸出行為
type Render interface {
	Write(w io.Writer, s *Scoreboard) error
}

// RenderFor 依名稱取得 Render：json | yaml | text。
func RenderFor(name string) (Render, error) {
	switch strings.ToLower(name) {
	case "json":
		return &JSONRender{}, nil
	case "yaml", "yml":
		return &YAMLRender{}, nil
	case "text", "":
		return &TextRender{}, nil
	default:
		return nil, errs.Warnf("unknown output format: %s", name)
	}
}

// Json渲染
type JSONRender struct {
	Indent bool
}

func (jr *JSONRender) Write(w io.Writer, s *Scoreboard) error {
	enc := json.NewEncoder(w)
	if jr.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(s)
}

// YAML渲染：最內層的一維陣列（每格的記號）用 flow style，外層維持展開。
type YAMLRender struct{}

func (yr *YAMLRender) Write(w io.Writer, s *Scoreboard) error {
	if err := corefmt.WriteYAML(w, s); err != nil {
		return errs.Wrap(err, "encode scoreboard yaml failed")
	}
	return nil
}

// TextRender 終端機表格：每位玩家兩列，記號列與累計分列。
type TextRender struct{}

// emptySlot 尚未投出的格位
const emptySlot = "."

func (tr *TextRender) Write(w io.Writer, s *Scoreboard) error {
	header := make([]string, 0, bowling.Frames+2)
	header = append(header, "Player")
	for n := 1; n <= bowling.Frames; n++ {
		header = append(header, strconv.Itoa(n))
	}
	header = append(header, "Total")

	t := &corefmt.Table{Title: s.Game, Header: header}
	for _, row := range s.Rows {
		marks := []string{row.Name}
		sums := []string{""}
		for i, f := range row.Board {
			marks = append(marks, frameCell(f))
			if v := row.Running[i]; v != nil {
				sums = append(sums, strconv.Itoa(*v))
			} else {
				sums = append(sums, "")
			}
		}
		marks = append(marks, corefmt.Int(row.Total))
		sums = append(sums, "")
		t.Rows = append(t.Rows, marks, sums)
	}

	out := t.String()
	p := corefmt.Printer()
	if s.Turn != nil {
		out += p.Sprintf("turn: %s frame %d", s.Turn.Player, s.Turn.Frame)
		if s.Remaining != nil {
			out += p.Sprintf(", %d pins standing", *s.Remaining)
		}
		out += "\n"
	}
	if s.Complete {
		names := make([]string, len(s.Winners))
		for i, id := range s.Winners {
			names[i] = s.name(id)
		}
		out += p.Sprintf("winner: %s\n", strings.Join(names, ", "))
	}
	_, err := io.WriteString(w, out)
	return err
}

func frameCell(tokens []bowling.Token) string {
	cells := make([]string, len(tokens))
	for i, tk := range tokens {
		if tk == bowling.Empty {
			cells[i] = emptySlot
			continue
		}
		cells[i] = string(tk)
	}
	return strings.Join(cells, " ")
}

func (s *Scoreboard) name(id bowling.PlayerID) string {
	for _, row := range s.Rows {
		if row.Player == id {
			return row.Name
		}
	}
	return string(id)
}
