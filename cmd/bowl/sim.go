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
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/zintix-labs/bowlab/errs"
	"github.com/zintix-labs/bowlab/perf"
	"github.com/zintix-labs/bowlab/rolllog"
	"github.com/zintix-labs/bowlab/sim"
)

type simOpts struct {
	games     int
	workers   int
	seed      int64
	profile   string
	format    string
	dump      string
	dumpGames int
	progress  bool
	pprof     string
	pprofDir  string
}

func newSimCmd() *cobra.Command {
	o := new(simOpts)
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Simulate random legal games and report score statistics",
		Example: `  bowl sim --games 1000000 --workers 8 --profile league
  bowl sim --profile ./lefty.yaml --seed 42 --format yaml
  bowl sim --profile pro --dump sample.yaml.zst --dump-games 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return perf.Run(o.pprofDir, o.pprof, func() error { return o.run(cmd) })
		},
	}
	f := cmd.Flags()
	f.IntVarP(&o.games, "games", "n", 100000, "number of games to simulate")
	f.IntVarP(&o.workers, "workers", "w", runtime.NumCPU(), "number of workers")
	f.Int64Var(&o.seed, "seed", -1, "int64 seed (< 1 picks a random seed)")
	f.StringVarP(&o.profile, "profile", "p", "league", "builtin profile name or a YAML profile file")
	f.StringVarP(&o.format, "format", "f", "text", "output format: text|json|yaml")
	f.StringVar(&o.dump, "dump", "", "also write the first --dump-games games as a roll log (.json/.yaml, optional .zst)")
	f.IntVar(&o.dumpGames, "dump-games", 10, "number of games written by --dump")
	f.BoolVar(&o.progress, "progress", true, "show progress bar")
	f.StringVar(&o.pprof, "pprof", "", "pprof: '', cpu, heap, allocs")
	f.StringVar(&o.pprofDir, "pprof-dir", perf.DefaultDir, "directory for pprof output")
	return cmd
}

func (o *simOpts) run(cmd *cobra.Command) error {
	rd, err := sim.RenderFor(o.format)
	if err != nil {
		return err
	}
	p, err := o.loadProfile()
	if err != nil {
		return err
	}
	s, err := sim.NewWithSeed(p, o.seed)
	if err != nil {
		return err
	}
	rep, err := s.Run(o.games, o.workers, o.progress)
	if err != nil {
		return err
	}
	if err := rd.Write(cmd.OutOrStdout(), rep); err != nil {
		return errs.Wrap(err, "write report failed")
	}
	if o.dump != "" {
		return o.writeDump(cmd, s)
	}
	return nil
}

func (o *simOpts) loadProfile() (sim.Profile, error) {
	if p, err := sim.Builtin(o.profile); err == nil {
		return p, nil
	}
	dir, name := filepath.Split(filepath.Clean(o.profile))
	if dir == "" {
		dir = "."
	}
	return sim.LoadProfile(os.DirFS(dir), name)
}

func (o *simOpts) writeDump(cmd *cobra.Command, s *sim.Simulator) error {
	if o.dumpGames < 1 {
		return errs.NewWarn("--dump-games must > 0")
	}
	if _, _, err := rolllog.FormatOf(o.dump); err != nil {
		return err
	}
	f, err := os.Create(o.dump)
	if err != nil {
		return errs.Wrap(err, "create dump file failed")
	}
	if err := rolllog.Encode(f, s.Sample(o.dumpGames), o.dump); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errs.Wrap(err, "close dump file failed")
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d games to %s\n", o.dumpGames, o.dump)
	return nil
}
