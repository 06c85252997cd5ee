// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package finder infers a file's type from its extension and enumerates
// translatable files under a path (§4.D), grounded on the teacher's
// filepath.Walk-based discovery in cmd/gen-config/gen_config_discover.go.
package finder

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/archmagece/translocate/internal/errors"
	"github.com/archmagece/translocate/internal/logger"
)

// FileType is the discriminated tag a path resolves to.
type FileType string

const (
	TypeStringCatalog    FileType = "stringCatalog"
	TypeJSONSpecification FileType = "jsonSpecification"
)

// InferType maps a path's extension to a FileType: "xcstrings" → catalog,
// "json" → spec, no extension → catalog, anything else →
// ErrUnhandledFileType.
func InferType(path string) (FileType, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	switch ext {
	case "xcstrings":
		return TypeStringCatalog, nil
	case "json":
		return TypeJSONSpecification, nil
	case "":
		return TypeStringCatalog, nil
	default:
		return "", apperrors.ErrUnhandledFileType
	}
}

func extensionFor(t FileType) string {
	if t == TypeJSONSpecification {
		return ".json"
	}
	return ".xcstrings"
}

// Finder enumerates files matching a FileType under a path (§4.D).
type Finder struct {
	Type FileType
	log  logger.CommonLogger
}

// New constructs a Finder for the given type tag. If typeTag is empty, the
// type is inferred per-path instead (see Find).
func New(typeTag FileType, log logger.CommonLogger) *Finder {
	return &Finder{Type: typeTag, log: log}
}

// Find returns every descendant of path matching f.Type: path itself if
// it's a regular matching file, or every matching file under it if it's a
// directory (walked depth-first, skipping hidden entries). A missing path
// or a directory with no matches returns an empty, non-error result with a
// logged warning (§4.D).
func (f *Finder) Find(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if f.log != nil {
			f.log.Warn("path not found", "path", path)
		}
		return nil, nil
	}

	wantType := f.Type
	if wantType == "" {
		inferred, err := InferType(path)
		if err != nil {
			return nil, err
		}
		wantType = inferred
	}
	wantExt := extensionFor(wantType)

	if !info.IsDir() {
		if strings.EqualFold(filepath.Ext(path), wantExt) || (wantType == TypeStringCatalog && filepath.Ext(path) == "") {
			return []string{path}, nil
		}
		if f.log != nil {
			f.log.Warn("path does not match requested type", "path", path)
		}
		return nil, nil
	}

	var matches []string
	err = filepath.Walk(path, func(p string, entryInfo os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return apperrors.Wrap(walkErr, apperrors.ErrCouldNotSearchDirectory)
		}

		name := entryInfo.Name()
		if entryInfo.IsDir() {
			if p != path && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}

		if strings.EqualFold(filepath.Ext(p), wantExt) {
			matches = append(matches, p)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 && f.log != nil {
		f.log.Warn("no matching files found", "path", path)
	}

	return matches, nil
}
