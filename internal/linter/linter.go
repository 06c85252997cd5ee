// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package linter rejects obviously broken translations: dropped format
// specifiers, placeholder-brace mismatches, and empty/newline parity (§4.C).
package linter

import (
	"regexp"
	"sort"
	"strings"

	"github.com/archmagece/translocate/internal/language"
)

// formatSpecifierPattern matches printf-style specifiers including
// positional forms, e.g. %@, %d, %lld, %1$@, %.2f.
var formatSpecifierPattern = regexp.MustCompile(`%\d*\$?[0-9.]*(?:ll|l|h)?[@dsfieEgGxXouc%]`)

// Lint enforces the minimum rules of §4.C. source/translation are the
// source and translated strings; the language arguments are accepted to
// match the spec's signature but are not currently used by any rule (no
// rule is locale-sensitive yet).
func Lint(source string, _ language.Language, translation string, _ language.Language) bool {
	if !sameSpecifierMultiset(source, translation) {
		return false
	}
	if !samePlaceholderCount(source, translation) {
		return false
	}
	if !sameEmptyAndNewlineParity(source, translation) {
		return false
	}
	return true
}

func sameSpecifierMultiset(source, translation string) bool {
	return sameMultiset(formatSpecifierPattern.FindAllString(source, -1),
		formatSpecifierPattern.FindAllString(translation, -1))
}

func samePlaceholderCount(source, translation string) bool {
	return strings.Count(source, "{") == strings.Count(translation, "{") &&
		strings.Count(source, "}") == strings.Count(translation, "}")
}

func sameEmptyAndNewlineParity(source, translation string) bool {
	if (source == "") != (translation == "") {
		return false
	}
	leadingNL := func(s string) bool { return strings.HasPrefix(s, "\n") }
	trailingNL := func(s string) bool { return strings.HasSuffix(s, "\n") }
	return leadingNL(source) == leadingNL(translation) && trailingNL(source) == trailingNL(translation)
}

func sameMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]string(nil), a...)
	sb := append([]string(nil), b...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
