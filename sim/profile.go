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
	"io/fs"
	"slices"
	"sort"

	"github.com/zintix-labs/bowlab/errs"
	"gopkg.in/yaml.v3"
)

// Profile 描述一位模擬投球者。
//
//   - Strike：新的一排球瓶第一球全倒的機率。
//   - Spare ：第二球把剩下的瓶子全部打倒的機率。
//   - Skill ：沒有全倒時，每一支站著的瓶子被打倒的機率。
type Profile struct {
	Name   string  `json:"name"   yaml:"name"`
	Strike float64 `json:"strike" yaml:"strike"`
	Spare  float64 `json:"spare"  yaml:"spare"`
	Skill  float64 `json:"skill"  yaml:"skill"`
}

var builtin = map[string]Profile{
	"perfect": {Name: "perfect", Strike: 1, Spare: 1, Skill: 1},
	"pro":     {Name: "pro", Strike: 0.6, Spare: 0.85, Skill: 0.8},
	"league":  {Name: "league", Strike: 0.3, Spare: 0.5, Skill: 0.7},
	"novice":  {Name: "novice", Strike: 0.05, Spare: 0.1, Skill: 0.45},
	"gutter":  {Name: "gutter"},
}

// Builtin 依名稱取得內建 Profile。
func Builtin(name string) (Profile, error) {
	p, ok := builtin[name]
	if !ok {
		return Profile{}, errs.Warnf("unknown profile %q (builtin: %v)", name, BuiltinNames())
	}
	return p, nil
}

// BuiltinNames 依字母排序。
func BuiltinNames() []string {
	names := make([]string, 0, len(builtin))
	for k := range builtin {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Valid 三個機率都必須落在 [0,1]。
func (p Profile) Valid() error {
	for _, v := range []struct {
		name string
		p    float64
	}{{"strike", p.Strike}, {"spare", p.Spare}, {"skill", p.Skill}} {
		if v.p < 0 || v.p > 1 || v.p != v.p {
			return errs.Warnf("profile %q: %s must be within [0,1], got %v", p.Name, v.name, v.p)
		}
	}
	return nil
}

// ParseProfile 解析 YAML profile 並檢查。
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, errs.Warnf("invalid profile yaml: %v", err)
	}
	if err := p.Valid(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadProfile 先查內建名稱，找不到時從 fsys 讀取 YAML 檔。
func LoadProfile(fsys fs.FS, name string) (Profile, error) {
	if slices.Contains(BuiltinNames(), name) {
		return Builtin(name)
	}
	if fsys == nil {
		return Builtin(name)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Profile{}, errs.Wrap(err, "read profile failed")
	}
	p, err := ParseProfile(data)
	if err != nil {
		return Profile{}, err
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}
