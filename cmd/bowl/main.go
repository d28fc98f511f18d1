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

// bowl 是 bowlab 的命令列工具：顯示計分板、檢查 roll log、執行模擬。
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zintix-labs/bowlab/demo"
	"github.com/zintix-labs/bowlab/rolllog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bowl",
		Short:         "Ten-pin bowling scoring toolkit",
		Long:          "bowl scores ten-pin bowling roll logs (JSON or YAML, optionally zstd-compressed) and simulates games.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBoardCmd(), newValidateCmd(), newSimCmd())
	return root
}

// loadLog 讀取檔案或 "demo:<name>" 內建 roll log，並完成合法性檢查。
func loadLog(arg string) (*rolllog.Log, error) {
	if strings.HasPrefix(arg, demo.Prefix) {
		return demo.Load(arg)
	}
	dir, name := filepath.Split(filepath.Clean(arg))
	if dir == "" {
		dir = "."
	}
	return rolllog.Load(os.DirFS(dir), name)
}
