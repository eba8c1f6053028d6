// Copyright 2015 Google Inc.
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

package printer

import (
	"testing"

	"github.com/openconfig/gnmi/errdiff"
)

func TestConfigSet(t *testing.T) {
	tests := []struct {
		desc    string
		name    string
		value   string
		check   func(*testing.T, *Config)
		wantErr string
	}{{
		desc:  "indentation_string",
		name:  "indentation_string",
		value: "  ",
		check: func(t *testing.T, c *Config) {
			if got := c.indentationString(); got != "  " {
				t.Errorf("indentationString() = %q, want %q", got, "  ")
			}
		},
	}, {
		desc:  "max_width",
		name:  "max_width",
		value: "80",
		check: func(t *testing.T, c *Config) {
			got, ok := c.maxWidth()
			if !ok || got != 80 {
				t.Errorf("maxWidth() = (%d, %v), want (80, true)", got, ok)
			}
		},
	}, {
		desc:  "newline_format_binary_op",
		name:  "newline_format_binary_op",
		value: "2",
		check: func(t *testing.T, c *Config) {
			if got := nf(c.NewlineFormatBinaryOp); got != NFAlways {
				t.Errorf("NewlineFormatBinaryOp = %v, want NFAlways", got)
			}
		},
	}, {
		desc:  "enable_oneline_if",
		name:  "enable_oneline_if",
		value: "true",
		check: func(t *testing.T, c *Config) {
			if !boolOpt(c.EnableOnelineIf) {
				t.Errorf("EnableOnelineIf = false, want true")
			}
		},
	}, {
		desc:    "unknown option",
		name:    "not_a_real_option",
		value:   "1",
		wantErr: "invalid option name",
	}, {
		desc:    "bad bool value",
		name:    "enable_oneline_if",
		value:   "maybe",
		wantErr: "invalid config option value",
	}, {
		desc:    "bad max_width value",
		name:    "max_width",
		value:   "wide",
		wantErr: "invalid config",
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			c := &Config{}
			err := c.Set(tt.name, tt.value)
			if tt.wantErr != "" {
				if diff := errdiff.Substring(err, tt.wantErr); diff != "" {
					t.Error(diff)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set(%q, %q) error = %v", tt.name, tt.value, err)
			}
			tt.check(t, c)
		})
	}
}
