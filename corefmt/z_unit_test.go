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

package corefmt_test

import (
	"strings"
	"testing"

	"github.com/zintix-labs/bowlab/corefmt"
)

func TestTableAlignsWideRunes(t *testing.T) {
	tb := &corefmt.Table{
		Title:  "demo",
		Header: []string{"Player", "Total"},
		Rows:   [][]string{{"小明", "300"}, {"Bo", "7"}},
	}
	out := tb.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "| 小明   | 300   |") {
		t.Fatalf("wide runes not aligned:\n%s", out)
	}
}

func TestTableTitleWiderThanBody(t *testing.T) {
	tb := &corefmt.Table{Title: "a very long scoreboard title", Rows: [][]string{{"a", "1"}}}
	lines := strings.Split(strings.TrimRight(tb.String(), "\n"), "\n")
	for _, l := range lines[1:] {
		if len(l) != len(lines[0]) {
			t.Fatalf("ragged table:\n%s", tb.String())
		}
	}
}

func TestInt(t *testing.T) {
	if got := corefmt.Int(1234567); got != "1,234,567" {
		t.Fatalf("got %q", got)
	}
}
