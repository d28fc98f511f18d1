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

package corefmt

import (
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML 以 2 格縮排輸出 v。
//
// 只要是陣列就維持外層展開；最內層的一維陣列（元素不是陣列或物件）輸出成 flow style：[a, b, c]
func WriteYAML(w io.Writer, v any) error {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return err
	}
	FlowInnerSequences(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// FlowInnerSequences 自頂向下把最內層的 sequence node 標記成 flow style。
func FlowInnerSequences(n *yaml.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			FlowInnerSequences(c)
		}
	case yaml.SequenceNode:
		nested := false
		for _, c := range n.Content {
			if c != nil && (c.Kind == yaml.SequenceNode || c.Kind == yaml.MappingNode) {
				nested = true
			}
			FlowInnerSequences(c)
		}
		if !nested {
			n.Style = yaml.FlowStyle
		}
	}
}
