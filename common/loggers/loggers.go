// Copyright 2020 The Hugo Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package loggers

import (
	"io"
	"log"
	"os"

	jww "github.com/spf13/jwalterweatherman"
)

// Logger is the logger used by the site tree and its collaborators.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)

	// Warnings returns the number of warnings and errors logged so far.
	Warnings() uint64

	Out() io.Writer
}

type logger struct {
	*jww.Notepad

	out            io.Writer
	warningCounter *jww.Counter
}

func (l *logger) Debugf(format string, v ...any) {
	l.DEBUG.Printf(format, v...)
}

func (l *logger) Infof(format string, v ...any) {
	l.INFO.Printf(format, v...)
}

func (l *logger) Warnf(format string, v ...any) {
	l.WARN.Printf(format, v...)
}

func (l *logger) Errorf(format string, v ...any) {
	l.ERROR.Printf(format, v...)
}

func (l *logger) Warnings() uint64 {
	return l.warningCounter.Count()
}

func (l *logger) Out() io.Writer {
	return l.out
}

// NewDefault creates a logger that writes warnings and above to stdout.
func NewDefault() Logger {
	return newLogger(jww.LevelWarn, jww.LevelError, os.Stdout, io.Discard)
}

// NewWarningLogger creates a logger that writes warnings and above to
// stdout and counts them.
func NewWarningLogger() Logger {
	return NewDefault()
}

// NewErrorLogger creates a logger that writes errors only.
func NewErrorLogger() Logger {
	return newLogger(jww.LevelError, jww.LevelError, os.Stdout, io.Discard)
}

// NewBasicLoggerForWriter creates a logger that writes everything at or
// above t to w.
func NewBasicLoggerForWriter(t jww.Threshold, w io.Writer) Logger {
	return newLogger(t, jww.LevelError, w, io.Discard)
}

// NewDiscardLogger creates a logger that only counts.
func NewDiscardLogger() Logger {
	return newLogger(jww.LevelCritical, jww.LevelError, io.Discard, io.Discard)
}

func newLogger(stdoutThreshold, logThreshold jww.Threshold, outHandle, logHandle io.Writer) *logger {
	warningCounter := &jww.Counter{}

	listeners := []jww.LogListener{
		jww.LogCounter(warningCounter, jww.LevelWarn),
	}

	return &logger{
		Notepad:        jww.NewNotepad(stdoutThreshold, logThreshold, outHandle, logHandle, "", log.Ldate|log.Ltime, listeners...),
		out:            outHandle,
		warningCounter: warningCounter,
	}
}
