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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	formatWidth = 10 // Width for document format
	statusWidth = 15 // Width for status text
)

// 🎯 FileOperation represents a file replacement for logging
type FileOperation struct {
	Path         string // File path
	Format       string // Document format (text/markdown/html)
	Status       string // Operation status
	Failed       bool   // Whether the replacement failed
	Replacements int    // Number of replacements made
	HasBackup    bool   // Whether a backup was created
}

// 📦 DirectoryOperation represents a directory run for logging
type DirectoryOperation struct {
	Dir       string // Source directory
	OutputDir string // Output directory, empty when rewriting in place
	Recursive bool   // Whether subdirectories are included
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *DirectoryOperation
	operations []FileOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Failed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.Replacements > 0:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", formatWidth, op.Format)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogFileOperation logs a file replacement
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to operations list
	l.operations = append(l.operations, op)

	// Format and print
	fmt.Fprintln(l.console, l.formatFileOperation(op))

	// Log to zerolog
	l.zlog.Info().
		Str("file", op.Path).
		Str("format", op.Format).
		Str("status", op.Status).
		Bool("failed", op.Failed).
		Bool("has_backup", op.HasBackup).
		Int("replacements", op.Replacements).
		Msg("file replacement")
}

// 📝 StartDirectoryOperation starts a new directory run
func (l *Logger) StartDirectoryOperation(ctx context.Context, op DirectoryOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	// Print directory header
	fmt.Fprintf(l.console, "[rewriting %s]\n",
		color.New(color.FgCyan).Sprint(op.Dir))

	dest := op.OutputDir
	if dest == "" {
		dest = "in place"
	}
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Dir),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(dest))

	// Log to zerolog
	l.zlog.Info().
		Str("dir", op.Dir).
		Str("output_dir", op.OutputDir).
		Bool("recursive", op.Recursive).
		Msg("starting directory replacement")
}

// 📝 EndDirectoryOperation ends the current directory run
func (l *Logger) EndDirectoryOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	replacements := 0
	failed := 0
	for _, op := range l.operations {
		replacements += op.Replacements
		if op.Failed {
			failed++
		}
	}

	// Log summary
	l.zlog.Info().
		Str("dir", l.currentOp.Dir).
		Int("files", len(l.operations)).
		Int("failed", failed).
		Int("replacements", replacements).
		Msg("directory replacement complete")

	l.currentOp = nil
	l.operations = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	imgrcText := color.New(color.Bold, color.FgCyan).Sprint("imgrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", imgrcText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
