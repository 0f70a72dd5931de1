// Copyright 2025 walteh LLC
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

package mapping

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ⚠️ InvalidPair describes a pair that failed validation
type InvalidPair struct {
	Old    string // Original URL
	New    string // Replacement URL
	Reason string // Why the pair is invalid
}

// 📊 ValidationReport summarizes mapping validation
type ValidationReport struct {
	Valid      bool          // Whether every pair validated
	Total      int           // Total number of pairs
	ValidCount int           // Number of valid pairs
	Invalid    []InvalidPair // Pairs that failed validation
	Warnings   []string      // Non-fatal oddities (identical old/new, ...)
}

// ✅ Validate checks every pair for URL syntax and flags no-op pairs.
// It never mutates the mapping.
func (m *Mapping) Validate() ValidationReport {
	report := ValidationReport{
		Valid: true,
		Total: m.Len(),
	}

	for _, p := range m.pairs {
		valid := true

		if err := validation.Validate(p.Old, validation.Required, is.URL); err != nil {
			report.Invalid = append(report.Invalid, InvalidPair{
				Old:    p.Old,
				New:    p.New,
				Reason: fmt.Sprintf("original url: %v", err),
			})
			valid = false
		}
		if err := validation.Validate(p.New, validation.Required, is.URL); err != nil {
			report.Invalid = append(report.Invalid, InvalidPair{
				Old:    p.Old,
				New:    p.New,
				Reason: fmt.Sprintf("replacement url: %v", err),
			})
			valid = false
		}

		if valid {
			report.ValidCount++
			if p.Old == p.New {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("identical urls, nothing to replace: %s", p.Old))
			}
		}
	}

	if len(report.Invalid) > 0 {
		report.Valid = false
	}
	return report
}
