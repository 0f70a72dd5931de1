// Package report renders replacement results into a human-readable summary.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/imgrc/pkg/operation"
)

// DefaultReportFile is the well-known name the CLI workflow persists the
// report under.
const DefaultReportFile = "replacement_report.txt"

// Build renders results into a deterministic text report. It is a pure
// function of its input.
func Build(results []operation.Result) string {
	var successful, failed []operation.Result
	for _, r := range results {
		if r.Success {
			successful = append(successful, r)
		} else {
			failed = append(failed, r)
		}
	}

	totalReplacements := 0
	for _, r := range successful {
		totalReplacements += r.Replacements
	}

	var b strings.Builder
	rule := strings.Repeat("=", 50)
	subRule := strings.Repeat("-", 30)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "URL Replacement Report")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Total files: %d\n", len(results))
	fmt.Fprintf(&b, "Succeeded: %d\n", len(successful))
	fmt.Fprintf(&b, "Failed: %d\n", len(failed))
	fmt.Fprintf(&b, "Total replacements: %d\n", totalReplacements)
	fmt.Fprintln(&b)

	if len(successful) > 0 {
		fmt.Fprintln(&b, "Successful files:")
		fmt.Fprintln(&b, subRule)
		for _, r := range successful {
			fmt.Fprintf(&b, "  %s -> %d replacements\n", r.SourcePath, r.Replacements)
			if r.BackupPath != "" {
				fmt.Fprintf(&b, "    backup: %s\n", r.BackupPath)
			}
		}
		fmt.Fprintln(&b)
	}

	if len(failed) > 0 {
		fmt.Fprintln(&b, "Failed files:")
		fmt.Fprintln(&b, subRule)
		for _, r := range failed {
			fmt.Fprintf(&b, "  %s - error: %s\n", r.SourcePath, r.Err)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, rule)
	return b.String()
}

// Write builds the report and persists it under dir using the well-known
// file name, returning the path written.
func Write(results []operation.Result, dir string) (string, error) {
	path := filepath.Join(dir, DefaultReportFile)
	if err := os.WriteFile(path, []byte(Build(results)), 0644); err != nil {
		return "", errors.Errorf("writing report: %w", err)
	}
	return path, nil
}
