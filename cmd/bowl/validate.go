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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zintix-labs/bowlab/corefmt"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|demo:name>...",
		Short: "Check that roll logs describe legal games",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var failed int
			for _, arg := range args {
				l, err := loadLog(arg)
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", arg, err)
					continue
				}
				fmt.Fprintf(out, "ok   %s: %s rolls, %d players\n", arg, corefmt.Int(len(l.Rolls)), len(l.Roster()))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d roll logs rejected", failed, len(args))
			}
			return nil
		},
	}
}
