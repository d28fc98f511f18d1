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

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/zintix-labs/bowlab/corefmt"
	"github.com/zintix-labs/bowlab/errs"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// 信賴區間
type CI struct {
	Lo float64 `json:"lo" yaml:"lo"`
	Hi float64 `json:"hi" yaml:"hi"`
}

// Bucket 分數區間落點
type Bucket struct {
	Range string  `json:"range" yaml:"range"`
	Games int     `json:"games" yaml:"games"`
	Rate  float64 `json:"rate"  yaml:"rate"`
}

// Report 模擬結果報表
type Report struct {
	Profile     Profile       `json:"profile"      yaml:"profile"`
	Seed        int64         `json:"seed"         yaml:"seed"`
	Workers     int           `json:"workers"      yaml:"workers"`
	Games       int           `json:"games"        yaml:"games"`
	Mean        float64       `json:"mean"         yaml:"mean"`
	MeanCI      CI            `json:"mean_ci"      yaml:"mean_ci"`
	Std         float64       `json:"std"          yaml:"std"`
	Min         int           `json:"min"          yaml:"min"`
	Median      float64       `json:"median"       yaml:"median"`
	P90         float64       `json:"p90"          yaml:"p90"`
	Max         int           `json:"max"          yaml:"max"`
	Perfect     int           `json:"perfect"      yaml:"perfect"`
	PerfectCI   CI            `json:"perfect_ci"   yaml:"perfect_ci"`
	StrikeRate  float64       `json:"strike_rate"  yaml:"strike_rate"`
	SpareRate   float64       `json:"spare_rate"   yaml:"spare_rate"`
	OpenRate    float64       `json:"open_rate"    yaml:"open_rate"`
	Buckets     []Bucket      `json:"buckets"      yaml:"buckets"`
	Elapsed     time.Duration `json:"elapsed"      yaml:"elapsed"`
	GamesPerSec int           `json:"games_per_sec" yaml:"games_per_sec"`
}

const confidence = 0.95

// newReport 由 merge 後的 recorder 一次性計算所有統計量。
func newReport(p Profile, seed int64, workers int, r *gameRecorder, used time.Duration) *Report {
	n := len(r.scores)
	rep := &Report{
		Profile: p,
		Seed:    seed,
		Workers: workers,
		Games:   n,
		Perfect: r.perfect,
		Elapsed: used,
	}
	if sec := used.Seconds(); sec > 0 {
		rep.GamesPerSec = int(float64(n) / sec)
	}
	rep.Buckets = make([]Bucket, len(r.buckets))
	for i, c := range r.buckets {
		rep.Buckets[i] = Bucket{Range: bucketLabels[i], Games: c}
	}
	if n == 0 {
		return rep
	}

	xs := make([]float64, n)
	for i, s := range r.scores {
		xs[i] = float64(s)
	}
	slices.Sort(xs)
	rep.Min, rep.Max = int(xs[0]), int(xs[n-1])
	rep.Median = stat.Quantile(0.5, stat.Empirical, xs, nil)
	rep.P90 = stat.Quantile(0.9, stat.Empirical, xs, nil)

	if n == 1 {
		rep.Mean = xs[0]
		rep.MeanCI = CI{Lo: xs[0], Hi: xs[0]}
	} else {
		rep.Mean, rep.Std = stat.MeanStdDev(xs, nil)
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}.Quantile(1 - (1-confidence)/2)
		se := rep.Std / math.Sqrt(float64(n))
		rep.MeanCI = CI{Lo: max(rep.Mean-t*se, 0), Hi: min(rep.Mean+t*se, 300)}
	}
	rep.PerfectCI = proportionCICP(r.perfect, n, confidence)

	frames := float64(r.strikes + r.spares + r.opens)
	if frames > 0 {
		rep.StrikeRate = float64(r.strikes) / frames
		rep.SpareRate = float64(r.spares) / frames
		rep.OpenRate = float64(r.opens) / frames
	}
	for i := range rep.Buckets {
		rep.Buckets[i].Rate = float64(rep.Buckets[i].Games) / float64(n)
	}
	return rep
}

// Clopper–Pearson exact CI for binomial proportion (k successes out of n)
func proportionCICP(k int, n int, confidence float64) CI {
	if n == 0 {
		return CI{0, 1}
	}
	alpha := 1 - confidence
	var ci CI
	if k == 0 {
		ci.Lo = 0
	} else {
		ci.Lo = distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		ci.Hi = distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}.Quantile(1 - alpha/2)
	}
	return ci
}

// ============================================================
// ** 輸出 **
// ============================================================

// ReportRender 定義輸出行為
type ReportRender interface {
	Write(w io.Writer, r *Report) error
}

// RenderFor 依名稱取得 ReportRender：json | yaml | text。
func RenderFor(name string) (ReportRender, error) {
	switch name {
	case "json":
		return &JSONReportRender{}, nil
	case "yaml", "yml":
		return &YAMLReportRender{}, nil
	case "text", "":
		return &TextReportRender{}, nil
	default:
		return nil, errs.Warnf("unknown output format: %s", name)
	}
}

// Json渲染
type JSONReportRender struct{}

func (jr *JSONReportRender) Write(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// YAML渲染
type YAMLReportRender struct{}

func (yr *YAMLReportRender) Write(w io.Writer, r *Report) error {
	return corefmt.WriteYAML(w, r)
}

// TextReportRender 兩張表：摘要與分數分佈。
type TextReportRender struct{}

func (tr *TextReportRender) Write(w io.Writer, r *Report) error {
	p := corefmt.Printer()
	keys := []string{
		"Games", "Workers", "Seed", "Mean", "Mean 95% CI", "Std", "Min", "Median", "P90", "Max",
		"Perfect", "Strike rate", "Spare rate", "Open rate", "Elapsed", "Games/sec",
	}
	msg := map[string]string{
		"Games":       corefmt.Int(r.Games),
		"Workers":     corefmt.Int(r.Workers),
		"Seed":        fmt.Sprint(r.Seed),
		"Mean":        p.Sprintf("%.2f", r.Mean),
		"Mean 95% CI": p.Sprintf("[%.2f, %.2f]", r.MeanCI.Lo, r.MeanCI.Hi),
		"Std":         p.Sprintf("%.2f", r.Std),
		"Min":         corefmt.Int(r.Min),
		"Median":      p.Sprintf("%.1f", r.Median),
		"P90":         p.Sprintf("%.1f", r.P90),
		"Max":         corefmt.Int(r.Max),
		"Perfect":     p.Sprintf("%d (%.4f%%)", r.Perfect, pct(r.Perfect, r.Games)),
		"Strike rate": p.Sprintf("%.2f%%", 100*r.StrikeRate),
		"Spare rate":  p.Sprintf("%.2f%%", 100*r.SpareRate),
		"Open rate":   p.Sprintf("%.2f%%", 100*r.OpenRate),
		"Elapsed":     r.Elapsed.Round(time.Millisecond).String(),
		"Games/sec":   corefmt.Int(r.GamesPerSec),
	}
	title := "profile: " + r.Profile.Name
	if _, err := io.WriteString(w, corefmt.KV(title, keys, msg)); err != nil {
		return err
	}

	dist := &corefmt.Table{Title: "score distribution", Header: []string{"Range", "Games", "Rate"}}
	for _, b := range r.Buckets {
		dist.Rows = append(dist.Rows, []string{b.Range, corefmt.Int(b.Games), p.Sprintf("%.2f%%", 100*b.Rate)})
	}
	_, err := io.WriteString(w, dist.String())
	return err
}

func pct(k, n int) float64 {
	if n == 0 {
		return 0
	}
	return 100 * float64(k) / float64(n)
}
