// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package jsonspec models the JSON specification format (§3) and
// implements the JSON Spec Translator (§4.H): it fans whole-file contents
// across (file × target-locale) pairs and writes into a locale folder tree.
package jsonspec

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/archmagece/translocate/internal/errors"
	"github.com/archmagece/translocate/internal/language"
	"github.com/archmagece/translocate/internal/logger"
	"github.com/archmagece/translocate/internal/provider"
)

// FileLocale names one target locale and the folder it is written under
// (§3).
type FileLocale struct {
	LocaleID   string `json:"locale_id" validate:"required"`
	FolderName string `json:"folder_name"`
}

func (l FileLocale) folder() string {
	if l.FolderName != "" {
		return l.FolderName
	}
	return l.LocaleID
}

// FileSpec names one source file and its translation-fan-out behavior
// (§3).
type FileSpec struct {
	FileURL         string `json:"file_url" validate:"required"`
	Comment         string `json:"comment"`
	SkipTranslation bool   `json:"skip_translation"`
}

// JSONSpecification is the driver document for format H (§3). This package
// implements the spec-level sourceLocale + {locale}-templated schema (the
// Open Question in §9 resolved in favor of the more recent source file).
type JSONSpecification struct {
	SourceLocale FileLocale   `json:"source_locale" validate:"required"`
	Comment      string       `json:"comment"`
	Locales      []FileLocale `json:"locales" validate:"required,dive"`
	Files        []FileSpec   `json:"files" validate:"required,dive"`
}

var validate = validator.New()

// LoadSpecification parses and validates a JSON specification file.
func LoadSpecification(path string) (*JSONSpecification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrFileNotFound)
	}

	var spec JSONSpecification
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrFailedToParseLocale)
	}

	if err := validate.Struct(&spec); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrFailedToParseLocale)
	}

	return &spec, nil
}

// resolvePath substitutes the literal "{locale}" in fileURL with folder,
// relative to specDir (§3 path-template semantics).
func resolvePath(specDir, fileURL, folder string) string {
	resolved := strings.ReplaceAll(fileURL, "{locale}", folder)
	if filepath.IsAbs(resolved) {
		return resolved
	}
	return filepath.Join(specDir, resolved)
}

// Options configures one JSON Spec Translator run (§4.H).
type Options struct {
	Overwrite bool
	// OnlyFiles restricts the driver to FileSpecs whose basename appears
	// here; empty means all files (§6 --only-files).
	OnlyFiles []string
}

// Translator implements §4.H. Unlike the Catalog Translator, this driver
// is serial per file — the worker pool is not required (§4.H closing note).
type Translator struct {
	Provider provider.Provider
	Log      logger.CommonLogger
	Options  Options
}

func New(p provider.Provider, log logger.CommonLogger, opts Options) *Translator {
	return &Translator{Provider: p, Log: log, Options: opts}
}

// TranslateSpec runs §4.H's algorithm. targetLanguages, if non-empty,
// restricts output to those locales. The return value is always 0 — per
// §4.H step 3, per-string counts are not meaningful in this mode.
func (t *Translator) TranslateSpec(ctx context.Context, specPath string, targetLanguages []language.Language) (int, error) {
	spec, err := LoadSpecification(specPath)
	if err != nil {
		return 0, err
	}

	specDir := filepath.Dir(specPath)

	wanted := make(map[string]bool, len(targetLanguages))
	for _, l := range targetLanguages {
		wanted[l.Code()] = true
	}

	sourcePaths := make(map[string]string, len(spec.Files))
	for _, fs := range spec.Files {
		if !t.included(fs) {
			continue
		}
		srcPath := resolvePath(specDir, fs.FileURL, spec.SourceLocale.folder())
		if _, err := os.Stat(srcPath); err != nil {
			return 0, apperrors.Wrap(err, apperrors.ErrFileNotFound)
		}
		sourcePaths[fs.FileURL] = srcPath
	}

	for _, fs := range spec.Files {
		if !t.included(fs) {
			continue
		}

		srcPath := sourcePaths[fs.FileURL]
		srcBytes, err := os.ReadFile(srcPath)
		if err != nil {
			return 0, apperrors.Wrap(err, apperrors.ErrFileNotFound)
		}
		srcText := string(srcBytes)

		for _, locale := range spec.Locales {
			if len(wanted) > 0 && !wanted[locale.LocaleID] {
				continue
			}

			if err := t.translateOneFile(ctx, spec, fs, locale, specDir, srcText); err != nil {
				if t.Log != nil {
					t.Log.Error("failed to translate file", "file", fs.FileURL, "locale", locale.LocaleID, "reason", err.Error())
				}
			}
		}
	}

	return 0, nil
}

func (t *Translator) translateOneFile(ctx context.Context, spec *JSONSpecification, fs FileSpec, locale FileLocale, specDir, srcText string) error {
	outPath := resolvePath(specDir, fs.FileURL, locale.folder())

	if !t.Options.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			if t.Log != nil {
				t.Log.Info("skipping existing output", "file", outPath)
			}
			return nil
		}
	}

	var outText string
	if fs.SkipTranslation {
		outText = srcText
	} else {
		sourceLang, err := language.Parse(spec.SourceLocale.LocaleID)
		if err != nil {
			return err
		}
		targetLang, err := language.Parse(locale.LocaleID)
		if err != nil {
			return err
		}

		comment := strings.TrimSpace(spec.Comment + "\n" + fs.Comment)

		translated, err := t.Provider.Translate(ctx, srcText, sourceLang, targetLang, comment)
		if err != nil {
			return err
		}
		outText = translated
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return err
	}

	return os.WriteFile(outPath, []byte(outText), 0o600)
}

func (t *Translator) included(fs FileSpec) bool {
	if len(t.Options.OnlyFiles) == 0 {
		return true
	}
	base := filepath.Base(fs.FileURL)
	for _, name := range t.Options.OnlyFiles {
		if name == base {
			return true
		}
	}
	return false
}
