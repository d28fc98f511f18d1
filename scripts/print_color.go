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

import "github.com/fatih/color"

// Helper
// 腳本中需要打印顏色的情況；非 TTY 時 color 會自動關閉顏色

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

func PrintGreen(msg string)  { _, _ = green.Println(msg) }
func PrintRed(msg string)    { _, _ = red.Println(msg) }
func PrintYellow(msg string) { _, _ = yellow.Println(msg) }
