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

// ops 是開發用的任務腳本：go run ./scripts <task>
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// task 一個開發任務：依序執行的指令。
type task struct {
	desc string
	cmds [][]string
	// filter 只顯示 go test 的 ok / FAIL 行
	filter bool
}

var tasks = map[string]task{
	"test": {
		desc:   "clean test cache, run all tests, show ok/FAIL only",
		cmds:   [][]string{{"go", "clean", "-testcache"}, {"go", "test", "./...", "-cover", "-count=1"}},
		filter: true,
	},
	"test-detail": {
		desc: "verbose tests with race detector",
		cmds: [][]string{{"go", "test", "./...", "-v", "-race", "-count=1"}},
	},
	"demos": {
		desc: "validate every embedded demo roll log",
		cmds: [][]string{{"go", "run", "./cmd/bowl", "validate", "demo:gutter", "demo:league", "demo:live", "demo:perfect"}},
	},
	"sim-smoke": {
		desc: "one million simulated games per builtin profile",
		cmds: [][]string{
			{"go", "run", "./cmd/bowl", "sim", "-n", "1000000", "--profile", "pro", "--seed", "1"},
			{"go", "run", "./cmd/bowl", "sim", "-n", "1000000", "--profile", "novice", "--seed", "1"},
		},
	},
}

func main() {
	// 如果沒有送任何參數進來，告訴用戶需要帶上 task
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	t, ok := tasks[os.Args[1]]
	if !ok {
		PrintYellow(fmt.Sprintf("Unknown task: %s", os.Args[1]))
		usage()
		os.Exit(1)
	}
	PrintGreen("running " + os.Args[1])
	for _, args := range t.cmds {
		if err := run(args, t.filter); err != nil {
			PrintRed(fmt.Sprintf("%s: %v", strings.Join(args, " "), err))
			os.Exit(1)
		}
	}
}

func usage() {
	names := make([]string, 0, len(tasks))
	for k := range tasks {
		names = append(names, k)
	}
	sort.Strings(names)
	fmt.Println("Usage: go run ./scripts <task>")
	for _, n := range names {
		fmt.Printf("  %-12s %s\n", n, tasks[n].desc)
	}
}

func run(args []string, filter bool) error {
	cmd := exec.Command(args[0], args[1:]...)
	if !filter {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}

	// 把 stdout/stderr 合併，模擬 "2>&1 | grep -E '^(ok|FAIL)'"
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return err
	}
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "ok"):
			PrintGreen(line)
		case strings.HasPrefix(line, "FAIL"):
			PrintRed(line)
		case strings.Contains(line, "build failed") || strings.Contains(line, "setup failed"):
			// 編譯錯誤不以 ok/FAIL 開頭，過濾太乾淨會看不出原因
			PrintRed(line)
		}
	}
	return cmd.Wait()
}
