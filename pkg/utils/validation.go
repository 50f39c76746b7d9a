// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package utils holds path checks shared by the hashing code and the CLI.
package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// PathType represents the type of path to validate.
type PathType int

const (
	// PathTypeFile expects a regular file.
	PathTypeFile PathType = iota
	// PathTypeFolder expects a directory.
	PathTypeFolder
)

// PathValidator checks that a named argument points at an existing file or
// directory.
type PathValidator struct {
	fieldName string
	path      string
	pathType  PathType
}

func NewPathValidator(fieldName, path string, pathType PathType) *PathValidator {
	return &PathValidator{
		fieldName: fieldName,
		path:      path,
		pathType:  pathType,
	}
}

// Validate checks that the path is set, exists and has the expected type.
// A missing path yields an error wrapping fs.ErrNotExist.
func (v *PathValidator) Validate() error {
	if v.path == "" {
		return fmt.Errorf("%s is required", v.fieldName)
	}

	info, err := os.Stat(v.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s %q does not exist: %w", v.fieldName, v.path, fs.ErrNotExist)
		}
		return fmt.Errorf("checking %s %q: %w", v.fieldName, v.path, err)
	}

	switch v.pathType {
	case PathTypeFile:
		if info.IsDir() {
			return fmt.Errorf("%s %q is a directory, expected file", v.fieldName, v.path)
		}
	case PathTypeFolder:
		if !info.IsDir() {
			return fmt.Errorf("%s %q is a file, expected directory", v.fieldName, v.path)
		}
	}
	return nil
}

// ValidateFileExists validates that a path exists and is a file.
func ValidateFileExists(fieldName, path string) error {
	return NewPathValidator(fieldName, path, PathTypeFile).Validate()
}

// ValidateFolderExists validates that a path exists and is a directory.
func ValidateFolderExists(fieldName, path string) error {
	return NewPathValidator(fieldName, path, PathTypeFolder).Validate()
}

// ValidateOptionalFile validates a file path only if it's not empty.
func ValidateOptionalFile(fieldName, path string) error {
	if path == "" {
		return nil
	}
	return ValidateFileExists(fieldName, path)
}

// CheckHashableFile checks that path can be hashed as one input: a regular
// file, or a symlink to one when allowSymlinks is set. Broken symlinks,
// directories and special files are rejected.
func CheckHashableFile(path string, allowSymlinks bool) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("cannot hash %q: %w", path, err)
	}

	mode := info.Mode()
	if mode&fs.ModeSymlink != 0 {
		if !allowSymlinks {
			return fmt.Errorf("cannot hash %q because it is a symlink and symlinks are not allowed", path)
		}
		info, err = os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot hash %q, it might be a broken symlink: %w", path, err)
		}
		mode = info.Mode()
	}

	if !mode.IsRegular() {
		return fmt.Errorf("cannot hash %q: not a regular file", path)
	}
	return nil
}
