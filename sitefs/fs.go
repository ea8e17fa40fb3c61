// Copyright 2019 The Hugo Authors. All rights reserved.
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

// Package sitefs provides the file systems used by the site tools.
package sitefs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Os points to the (real) Os filesystem.
var Os = &afero.OsFs{}

// Fs holds the core filesystems used by the site tools.
type Fs struct {
	// Source holds the records, the config and the page bodies.
	// Note that this will always be a "plain" Afero filesystem:
	// * afero.OsFs when running in production
	// * afero.MemMapFs for many of the tests.
	Source afero.Fs

	// PublishDir is where the page artifacts are written.
	// It's mounted inside publishDir (default public).
	PublishDir afero.Fs

	// WorkingDirReadOnly is a read-only file system
	// restricted to the working dir.
	WorkingDirReadOnly afero.Fs
}

// NewFrom creates a new Fs based on the provided Afero Fs
// as source and destination file systems. A relative publishDir is
// resolved against workingDir.
func NewFrom(fs afero.Fs, workingDir, publishDir string) (*Fs, error) {
	return newFs(fs, fs, workingDir, publishDir)
}

func newFs(source, destination afero.Fs, workingDir, publishDir string) (*Fs, error) {
	absPublishDir := publishDir
	if !filepath.IsAbs(absPublishDir) {
		absPublishDir = filepath.Join(workingDir, publishDir)
	}

	// Make sure we always have the publish folder ready to use.
	if err := destination.MkdirAll(absPublishDir, 0777); err != nil && !os.IsExist(err) {
		return nil, fmt.Errorf("create publish dir %q: %w", absPublishDir, err)
	}

	return &Fs{
		Source:             source,
		PublishDir:         afero.NewBasePathFs(destination, absPublishDir),
		WorkingDirReadOnly: getWorkingDirFsReadOnly(source, workingDir),
	}, nil
}

func getWorkingDirFsReadOnly(base afero.Fs, workingDir string) afero.Fs {
	if workingDir == "" {
		return afero.NewReadOnlyFs(base)
	}
	return afero.NewBasePathFs(afero.NewReadOnlyFs(base), workingDir)
}
