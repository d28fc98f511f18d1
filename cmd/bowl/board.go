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
	"github.com/spf13/cobra"
	"github.com/zintix-labs/bowlab/bowling"
	"github.com/zintix-labs/bowlab/errs"
	"github.com/zintix-labs/bowlab/scoreboard"
)

type boardOpts struct {
	format     string
	turnPlayer string
	turnFrame  int
}

func newBoardCmd() *cobra.Command {
	o := new(boardOpts)
	cmd := &cobra.Command{
		Use:   "board <file|demo:name>",
		Short: "Print the scoreboard of a roll log",
		Example: `  bowl board demo:league
  bowl board game.yaml.zst --format yaml
  bowl board demo:live --turn-player ann --turn-frame 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rd, err := scoreboard.RenderFor(o.format)
			if err != nil {
				return err
			}
			l, err := loadLog(args[0])
			if err != nil {
				return err
			}
			turn, err := o.turn()
			if err != nil {
				return err
			}
			return rd.Write(cmd.OutOrStdout(), scoreboard.Build(l, turn))
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.format, "format", "f", "text", "output format: text|json|yaml")
	f.StringVar(&o.turnPlayer, "turn-player", "", "player currently throwing (shows pins standing)")
	f.IntVar(&o.turnFrame, "turn-frame", 0, "frame the current player is in")
	return cmd
}

// turn 兩個旗標要一起給；都沒給時回傳 nil。
func (o *boardOpts) turn() (*scoreboard.Turn, error) {
	switch {
	case o.turnPlayer == "" && o.turnFrame == 0:
		return nil, nil
	case o.turnPlayer == "" || o.turnFrame == 0:
		return nil, errs.NewWarn("--turn-player and --turn-frame must be given together")
	}
	return &scoreboard.Turn{Player: bowling.PlayerID(o.turnPlayer), Frame: o.turnFrame}, nil
}
