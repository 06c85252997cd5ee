// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package catalog models a string-catalog document in memory: a Catalog of
// LocalizableStringGroups, each holding one LocalizableString per language,
// with the load/write/state-machine operations of §3-§4.B.
package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/archmagece/translocate/internal/errors"
	"github.com/archmagece/translocate/internal/language"
)

// State is the per-string state machine value (§3).
type State string

const (
	StateNew         State = "new"
	StateTranslated  State = "translated"
	StateNeedsReview State = "needs_review"
	StateStale       State = "stale"
)

// LocalizableString is one (target language, translated value, state)
// triple within a group.
type LocalizableString struct {
	SourceValue     string
	TargetLanguage  language.Language
	TranslatedValue *string
	State           State

	wrapperExtra orderedJSON // fields inside localizations[lang] other than stringUnit
	unitExtra    orderedJSON // fields inside stringUnit other than state/value
}

// SetTranslation implements the new → translated transition (§3).
func (s *LocalizableString) SetTranslation(v string) {
	s.TranslatedValue = &v
	s.State = StateTranslated
}

// SetNeedsReview implements the translated → needs_review transition.
func (s *LocalizableString) SetNeedsReview() {
	if s.State == StateTranslated {
		s.State = StateNeedsReview
	}
}

// SetTranslated implements the needs_review → translated transition (an
// evaluator's "good" verdict). A needs_review → needs_review rejection is
// simply not calling this; no state field changes.
func (s *LocalizableString) SetTranslated() {
	if s.State == StateNeedsReview {
		s.State = StateTranslated
	}
}

// NeedsTranslation reports whether s should be enumerated by the translator:
// not the source row, and not already translated. Per §3, `stale` is
// treated as `new`.
func (s *LocalizableString) NeedsTranslation(sourceLanguage language.Language) bool {
	if s.TargetLanguage.Equal(sourceLanguage) {
		return false
	}
	return s.State != StateTranslated
}

// LocalizableStringGroup is one key's worth of per-language strings.
type LocalizableStringGroup struct {
	Comment *string

	order   []string // language codes, in file order (a synthesized source row goes first)
	strings map[string]*LocalizableString

	extra orderedJSON // group-level fields other than comment/localizations
}

// Strings returns the group's LocalizableStrings in stable file order.
func (g *LocalizableStringGroup) Strings() []*LocalizableString {
	out := make([]*LocalizableString, 0, len(g.order))
	for _, code := range g.order {
		out = append(out, g.strings[code])
	}
	return out
}

// String returns the group's entry for lang, if present.
func (g *LocalizableStringGroup) String(lang language.Language) (*LocalizableString, bool) {
	s, ok := g.strings[lang.Code()]
	return s, ok
}

func (g *LocalizableStringGroup) setString(lang language.Language, ls *LocalizableString) {
	if g.strings == nil {
		g.strings = make(map[string]*LocalizableString)
	}
	if _, exists := g.strings[lang.Code()]; !exists {
		g.order = append(g.order, lang.Code())
	}
	g.strings[lang.Code()] = ls
}

func (g *LocalizableStringGroup) removeString(lang language.Language) {
	code := lang.Code()
	if _, exists := g.strings[code]; !exists {
		return
	}
	delete(g.strings, code)
	for i, c := range g.order {
		if c == code {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Catalog is the root aggregate (§3).
type Catalog struct {
	SourceLanguage  language.Language
	TargetLanguages map[string]language.Language // set, keyed by Code()

	order  []string // group key order, preserved on write
	groups map[string]*LocalizableStringGroup

	extra orderedJSON // top-level document fields other than sourceLanguage/strings
}

// AllKeys returns group keys in file order.
func (c *Catalog) AllKeys() []string {
	return append([]string(nil), c.order...)
}

// Group returns the group for key, if present.
func (c *Catalog) Group(key string) (*LocalizableStringGroup, bool) {
	g, ok := c.groups[key]
	return g, ok
}

// LocalizableStringsCount sums |group.strings| over all groups (§3).
func (c *Catalog) LocalizableStringsCount() int {
	n := 0
	for _, g := range c.groups {
		n += len(g.strings)
	}
	return n
}

// Load parses a string-catalog file at path. When targetLanguagesOverride
// is non-empty, every group is resized so its target-language set equals
// the override: languages not in the override lose their existing
// translation, languages newly added start in state `new` (§4.B).
func Load(path string, targetLanguagesOverride []language.Language) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrFailedToLoadCatalog)
	}
	return parse(data, targetLanguagesOverride)
}

func parse(data []byte, targetLanguagesOverride []language.Language) (*Catalog, error) {
	doc, err := parseOrderedObject(data)
	if err != nil {
		return nil, err
	}

	sourceLangRaw, ok := doc.get("sourceLanguage")
	if !ok {
		return nil, apperrors.Wrap(nil, apperrors.ErrFailedToParseLocale)
	}
	var sourceCode string
	if err := json.Unmarshal(sourceLangRaw, &sourceCode); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrFailedToParseLocale)
	}
	sourceLang, err := language.Parse(sourceCode)
	if err != nil {
		return nil, err
	}
	doc.delete("sourceLanguage")

	c := &Catalog{
		SourceLanguage:  sourceLang,
		TargetLanguages: make(map[string]language.Language),
		groups:          make(map[string]*LocalizableStringGroup),
	}

	if stringsRaw, ok := doc.get("strings"); ok {
		groupsObj, err := parseOrderedObject(stringsRaw)
		if err != nil {
			return nil, err
		}
		for _, key := range groupsObj.keys {
			group, err := parseGroup(key, groupsObj.values[key], sourceLang)
			if err != nil {
				return nil, err
			}
			c.order = append(c.order, key)
			c.groups[key] = group

			for _, code := range group.order {
				if code == sourceLang.Code() {
					continue
				}
				c.TargetLanguages[code] = group.strings[code].TargetLanguage
			}
		}
	}
	doc.delete("strings")

	c.extra = doc

	if len(targetLanguagesOverride) > 0 {
		c.applyTargetLanguagesOverride(targetLanguagesOverride)
	}

	return c, nil
}

func parseGroup(key string, raw json.RawMessage, sourceLang language.Language) (*LocalizableStringGroup, error) {
	obj, err := parseOrderedObject(raw)
	if err != nil {
		return nil, err
	}

	group := &LocalizableStringGroup{}

	if commentRaw, ok := obj.get("comment"); ok {
		var comment string
		if err := json.Unmarshal(commentRaw, &comment); err == nil {
			group.Comment = &comment
		}
		obj.delete("comment")
	}

	hasSource := false

	if locRaw, ok := obj.get("localizations"); ok {
		locsObj, err := parseOrderedObject(locRaw)
		if err != nil {
			return nil, err
		}

		for _, code := range locsObj.keys {
			lang, err := language.Parse(code)
			if err != nil {
				return nil, err
			}

			wrapperObj, err := parseOrderedObject(locsObj.values[code])
			if err != nil {
				return nil, err
			}

			ls := &LocalizableString{SourceValue: key, TargetLanguage: lang}

			if unitRaw, ok := wrapperObj.get("stringUnit"); ok {
				unitObj, err := parseOrderedObject(unitRaw)
				if err != nil {
					return nil, err
				}

				if stateRaw, ok := unitObj.get("state"); ok {
					var stateStr string
					_ = json.Unmarshal(stateRaw, &stateStr)
					ls.State = State(stateStr)
				}
				if valueRaw, ok := unitObj.get("value"); ok {
					var v string
					_ = json.Unmarshal(valueRaw, &v)
					ls.TranslatedValue = &v
				}
				unitObj.delete("state")
				unitObj.delete("value")
				ls.unitExtra = unitObj
			}
			wrapperObj.delete("stringUnit")
			ls.wrapperExtra = wrapperObj

			group.setString(lang, ls)
			if lang.Equal(sourceLang) {
				hasSource = true
			}
		}
		obj.delete("localizations")
	}

	if !hasSource {
		// The file omitted an explicit source-locale row; synthesize one so
		// the invariant "one LocalizableString per target_languages ∪
		// {source_language}" holds (§3).
		sourceValue := key
		group.setStringAtFront(sourceLang, &LocalizableString{
			SourceValue:     key,
			TargetLanguage:  sourceLang,
			TranslatedValue: &sourceValue,
			State:           StateTranslated,
		})
	}

	group.extra = obj

	return group, nil
}

// setStringAtFront is used only when synthesizing the source-locale row, so
// it consistently sorts first on write.
func (g *LocalizableStringGroup) setStringAtFront(lang language.Language, ls *LocalizableString) {
	if g.strings == nil {
		g.strings = make(map[string]*LocalizableString)
	}
	g.strings[lang.Code()] = ls
	g.order = append([]string{lang.Code()}, g.order...)
}

// applyTargetLanguagesOverride resizes every group's target-language set to
// match override; see Load's doc comment for the discard/add semantics.
func (c *Catalog) applyTargetLanguagesOverride(override []language.Language) {
	wanted := make(map[string]language.Language, len(override))
	for _, l := range override {
		wanted[l.Code()] = l
	}

	newTargets := make(map[string]language.Language, len(wanted))
	for code, l := range wanted {
		newTargets[code] = l
	}
	c.TargetLanguages = newTargets

	for _, key := range c.order {
		group := c.groups[key]

		for _, code := range append([]string(nil), group.order...) {
			if code == c.SourceLanguage.Code() {
				continue
			}
			if _, keep := wanted[code]; !keep {
				group.removeString(language.MustParse(code))
			}
		}

		for code, l := range wanted {
			if _, exists := group.strings[code]; exists {
				continue
			}
			group.setString(l, &LocalizableString{
				SourceValue:    key,
				TargetLanguage: l,
				State:          StateNew,
			})
		}
	}
}

// Write atomically rewrites the catalog to path (write-temp + rename),
// preserving group/localization order and any fields this package does not
// itself model (§4.B, §8 property 3).
func (c *Catalog) Write(path string) error {
	data := c.marshal()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".catalog-*.tmp")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrFailedToSaveTranslation)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.Wrap(err, apperrors.ErrFailedToSaveTranslation)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(err, apperrors.ErrFailedToSaveTranslation)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(err, apperrors.ErrFailedToSaveTranslation)
	}

	return nil
}

// TargetPath resolves the output path for F's overwrite policy (§4.F): the
// input path itself when overwrite is true, otherwise a sibling
// "<stem>.loc.<ext>" file.
func TargetPath(sourcePath string, overwrite bool) string {
	if overwrite {
		return sourcePath
	}
	ext := filepath.Ext(sourcePath)
	stem := strings.TrimSuffix(sourcePath, ext)
	return stem + ".loc" + ext
}

func (c *Catalog) marshal() []byte {
	var buf bytes.Buffer

	known := []fieldKV{
		{"sourceLanguage", mustRaw(c.SourceLanguage.Code())},
		{"strings", c.marshalGroups()},
	}

	writeObject(&buf, known, c.extra)

	return buf.Bytes()
}

func (c *Catalog) marshalGroups() json.RawMessage {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, key)
		buf.WriteByte(':')
		buf.Write(c.groups[key].marshal())
	}

	buf.WriteByte('}')
	return buf.Bytes()
}

func (g *LocalizableStringGroup) marshal() json.RawMessage {
	var buf bytes.Buffer

	var known []fieldKV
	if g.Comment != nil {
		known = append(known, fieldKV{"comment", mustRaw(*g.Comment)})
	}
	known = append(known, fieldKV{"localizations", g.marshalLocalizations()})

	writeObject(&buf, known, g.extra)

	return buf.Bytes()
}

func (g *LocalizableStringGroup) marshalLocalizations() json.RawMessage {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, code := range g.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, code)
		buf.WriteByte(':')
		buf.Write(g.strings[code].marshal())
	}

	buf.WriteByte('}')
	return buf.Bytes()
}

func (s *LocalizableString) marshal() json.RawMessage {
	var buf bytes.Buffer

	known := []fieldKV{{"stringUnit", s.marshalUnit()}}
	writeObject(&buf, known, s.wrapperExtra)

	return buf.Bytes()
}

func (s *LocalizableString) marshalUnit() json.RawMessage {
	var buf bytes.Buffer

	known := []fieldKV{{"state", mustRaw(string(s.State))}}
	if s.TranslatedValue != nil {
		known = append(known, fieldKV{"value", mustRaw(*s.TranslatedValue)})
	}

	writeObject(&buf, known, s.unitExtra)

	return buf.Bytes()
}
