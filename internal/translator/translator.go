// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package translator implements the Catalog Translator (§4.F): it loads a
// catalog, dispatches per-entry translation tasks to a bounded worker pool,
// and applies successful results through a single serial mutation actor
// that also persists the catalog — the same single-writer-goroutine
// pattern the teacher uses for periodic state persistence in
// pkg/github/resumable_clone.go, generalized from a ticker to a channel of
// apply requests.
package translator

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/schollz/progressbar/v3"

	"github.com/archmagece/translocate/internal/catalog"
	apperrors "github.com/archmagece/translocate/internal/errors"
	"github.com/archmagece/translocate/internal/language"
	"github.com/archmagece/translocate/internal/linter"
	"github.com/archmagece/translocate/internal/logger"
	"github.com/archmagece/translocate/internal/provider"
	"github.com/archmagece/translocate/internal/workerpool"
)

// ErrCanceled signals the user declined the mass-translation confirmation
// (§4.F step 2); cmd/translate.go turns it into a clean exit (code 0).
var ErrCanceled = errors.New("translation canceled")

// Options configures one Catalog Translator run (§4.F).
type Options struct {
	Overwrite                      bool
	SetNeedsReviewAfterTranslating bool
	SkipConfirm                    bool
	Concurrency                    int
	MassTranslationThreshold       int
	ShowProgress                   bool
}

// Confirmer asks a yes/no question on a TTY. Overridden in tests to avoid
// driving a real terminal prompt (scenario S3).
type Confirmer func(label string) (bool, error)

func defaultConfirmer(label string) (bool, error) {
	prompt := promptui.Prompt{Label: label, IsConfirm: true, Default: "y"}
	if _, err := prompt.Run(); err != nil {
		return false, nil
	}
	return true, nil
}

// Translator orchestrates §4.F against one catalog file at a time.
type Translator struct {
	Provider provider.Provider
	Log      logger.CommonLogger
	Options  Options
	Confirm  Confirmer
}

// New constructs a Translator, filling unset Options with the spec's
// defaults (N=10, threshold=200).
func New(p provider.Provider, log logger.CommonLogger, opts Options) *Translator {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 10
	}
	if opts.MassTranslationThreshold <= 0 {
		opts.MassTranslationThreshold = 200
	}
	return &Translator{Provider: p, Log: log, Options: opts, Confirm: defaultConfirmer}
}

type task struct {
	key   string
	group *catalog.LocalizableStringGroup
	entry *catalog.LocalizableString
}

// TranslateFile runs §4.F's algorithm against the catalog at path,
// returning the count of newly translated entries.
func (t *Translator) TranslateFile(ctx context.Context, path string, targetLanguages []language.Language) (int, error) {
	cat, err := catalog.Load(path, targetLanguages)
	if err != nil {
		return 0, err
	}

	tasks := t.enumerateTasks(cat)

	if len(tasks) > t.Options.MassTranslationThreshold && !t.Options.SkipConfirm {
		label := fmt.Sprintf("About to translate %d entries, continue", len(tasks))
		ok, err := t.Confirm(label)
		if err != nil {
			return 0, err
		}
		if !ok {
			if t.Log != nil {
				t.Log.Info("Translation canceled")
			}
			return 0, ErrCanceled
		}
	}

	if len(tasks) == 0 {
		return 0, nil
	}

	targetPath := catalog.TargetPath(path, t.Options.Overwrite)

	return t.run(ctx, cat, tasks, targetPath)
}

func (t *Translator) enumerateTasks(cat *catalog.Catalog) []task {
	var tasks []task
	for _, key := range cat.AllKeys() {
		group, _ := cat.Group(key)
		for _, ls := range group.Strings() {
			if ls.NeedsTranslation(cat.SourceLanguage) {
				tasks = append(tasks, task{key: key, group: group, entry: ls})
			}
		}
	}
	return tasks
}

// applyMsg is sent from a worker task to the mutation actor once a
// translation succeeds; done is closed once the actor has applied it and
// persisted the catalog, so the submitting task can release its permit
// only after the write started — not required for correctness, but keeps
// memory bounded under very large catalogs.
type applyMsg struct {
	entry       *catalog.LocalizableString
	translation string
	done        chan struct{}
}

func (t *Translator) run(ctx context.Context, cat *catalog.Catalog, tasks []task, targetPath string) (int, error) {
	applyCh := make(chan applyMsg)
	actorDone := make(chan struct{})

	var translatedCount int
	go t.mutationActor(cat, targetPath, applyCh, actorDone, &translatedCount)

	var bar *progressbar.ProgressBar
	if t.Options.ShowProgress {
		bar = progressbar.Default(int64(len(tasks)))
	}

	pool := workerpool.New[task](workerpool.Config{WorkerCount: t.Options.Concurrency, BufferSize: len(tasks)})
	if err := pool.Start(); err != nil {
		close(applyCh)
		<-actorDone
		return 0, err
	}

	// Each job's context is also canceled with ctx, so an interrupt reaches
	// in-flight tasks and jobs still queued never start.
	work := t.runTask(cat.SourceLanguage, applyCh, bar)
	job := func(jobCtx context.Context, tk task) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		jobCtx, cancel := context.WithCancel(jobCtx)
		defer cancel()
		stop := context.AfterFunc(ctx, cancel)
		defer stop()
		return work(jobCtx, tk)
	}

	submitted := 0
	for _, tk := range tasks {
		if err := pool.Submit(tk, job); err != nil {
			break
		}
		submitted++
	}

	for i := 0; i < submitted; i++ {
		<-pool.Results()
	}
	pool.Stop()

	close(applyCh)
	<-actorDone

	return translatedCount, nil
}

func (t *Translator) runTask(sourceLang language.Language, applyCh chan<- applyMsg, bar *progressbar.ProgressBar) func(context.Context, task) error {
	return func(ctx context.Context, tk task) error {
		translated, err := t.translateOne(ctx, sourceLang, tk)
		if err != nil {
			if t.Log != nil {
				t.Log.Warn("entry not translated", "key", tk.key, "locale", tk.entry.TargetLanguage.Code(), "reason", err.Error())
			}
			return err
		}

		done := make(chan struct{})
		select {
		case applyCh <- applyMsg{entry: tk.entry, translation: translated, done: done}:
			<-done
		case <-ctx.Done():
			return ctx.Err()
		}

		if bar != nil {
			_ = bar.Add(1)
		}

		return nil
	}
}

func (t *Translator) mutationActor(cat *catalog.Catalog, targetPath string, applyCh <-chan applyMsg, done chan<- struct{}, counter *int) {
	defer close(done)

	for msg := range applyCh {
		msg.entry.SetTranslation(msg.translation)
		if t.Options.SetNeedsReviewAfterTranslating {
			msg.entry.SetNeedsReview()
		}
		*counter++

		if err := cat.Write(targetPath); err != nil && t.Log != nil {
			t.Log.ErrorWithStack(err, "failed to save translation")
		}

		close(msg.done)
	}
}

// translateOne calls the provider, lints the result, and retries once on
// either a provider error or a lint rejection (§4.F step 4, §9 retry-once).
func (t *Translator) translateOne(ctx context.Context, sourceLang language.Language, tk task) (string, error) {
	attempt := func() (string, error) {
		out, err := t.Provider.Translate(ctx, tk.entry.SourceValue, sourceLang, tk.entry.TargetLanguage, commentOf(tk.group))
		if err != nil {
			return "", err
		}
		if !linter.Lint(tk.entry.SourceValue, sourceLang, out, tk.entry.TargetLanguage) {
			return "", apperrors.ErrTranslationFailedLinting
		}
		return out, nil
	}

	out, err := attempt()
	if err == nil {
		return out, nil
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	return attempt()
}

func commentOf(g *catalog.LocalizableStringGroup) string {
	if g.Comment == nil {
		return ""
	}
	return *g.Comment
}
