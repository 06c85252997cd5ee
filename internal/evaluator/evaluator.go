// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package evaluator implements the Catalog Evaluator (§4.G): re-evaluates
// entries marked needs_review and flips their state on a "good" verdict,
// using the same mutation-actor/worker-pool shape as internal/translator.
package evaluator

import (
	"context"

	"github.com/archmagece/translocate/internal/catalog"
	apperrors "github.com/archmagece/translocate/internal/errors"
	"github.com/archmagece/translocate/internal/language"
	"github.com/archmagece/translocate/internal/logger"
	"github.com/archmagece/translocate/internal/provider"
	"github.com/archmagece/translocate/internal/workerpool"
)

// Options configures one Catalog Evaluator run (§4.G).
type Options struct {
	Overwrite   bool
	Concurrency int
}

// Evaluator orchestrates §4.G. Constructing one with a Provider that does
// not implement provider.QualityEvaluator fails fast per the spec's
// "review commands fail with evaluationIsNotSupported" rule (§4.A, §4.G).
type Evaluator struct {
	provider provider.QualityEvaluator
	Log      logger.CommonLogger
	Options  Options
}

// New returns an Evaluator, or ErrEvaluationNotSupported if p cannot
// evaluate quality.
func New(p provider.Provider, log logger.CommonLogger, opts Options) (*Evaluator, error) {
	evaluator, ok := provider.SupportsEvaluation(p)
	if !ok {
		return nil, apperrors.ErrEvaluationNotSupported
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 10
	}
	return &Evaluator{provider: evaluator, Log: log, Options: opts}, nil
}

type task struct {
	key   string
	group *catalog.LocalizableStringGroup
	entry *catalog.LocalizableString
}

// ReviewFile runs §4.G against the catalog at path, returning the count of
// entries processed (regardless of verdict). langFilter, if non-empty,
// restricts review to those target languages.
func (e *Evaluator) ReviewFile(ctx context.Context, path string, langFilter []language.Language) (int, error) {
	cat, err := catalog.Load(path, nil)
	if err != nil {
		return 0, err
	}

	wanted := make(map[string]bool, len(langFilter))
	for _, l := range langFilter {
		wanted[l.Code()] = true
	}

	var tasks []task
	for _, key := range cat.AllKeys() {
		group, _ := cat.Group(key)
		for _, ls := range group.Strings() {
			if ls.State != catalog.StateNeedsReview || ls.TranslatedValue == nil {
				continue
			}
			if len(wanted) > 0 && !wanted[ls.TargetLanguage.Code()] {
				continue
			}
			tasks = append(tasks, task{key: key, group: group, entry: ls})
		}
	}

	if len(tasks) == 0 {
		return 0, nil
	}

	targetPath := catalog.TargetPath(path, e.Options.Overwrite)

	return e.run(ctx, cat, tasks, targetPath)
}

type applyMsg struct {
	entry     *catalog.LocalizableString
	approved  bool
	done      chan struct{}
}

func (e *Evaluator) run(ctx context.Context, cat *catalog.Catalog, tasks []task, targetPath string) (int, error) {
	applyCh := make(chan applyMsg)
	actorDone := make(chan struct{})

	var processed int
	go e.mutationActor(cat, targetPath, applyCh, actorDone, &processed)

	pool := workerpool.New[task](workerpool.Config{WorkerCount: e.Options.Concurrency, BufferSize: len(tasks)})
	if err := pool.Start(); err != nil {
		close(applyCh)
		<-actorDone
		return 0, err
	}

	// Each job's context is also canceled with ctx, so an interrupt reaches
	// in-flight tasks and jobs still queued never start.
	work := e.runTask(applyCh)
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

	return processed, nil
}

func (e *Evaluator) runTask(applyCh chan<- applyMsg) func(context.Context, task) error {
	return func(ctx context.Context, tk task) error {
		approved, err := e.evaluateOne(ctx, tk)
		if err != nil {
			if e.Log != nil {
				e.Log.Warn("evaluation failed", "key", tk.key, "locale", tk.entry.TargetLanguage.Code(), "reason", err.Error())
			}
			return err
		}

		done := make(chan struct{})
		select {
		case applyCh <- applyMsg{entry: tk.entry, approved: approved, done: done}:
			<-done
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	}
}

// evaluateOne calls the provider and retries once on transport failure
// (§4.G, §9 retry-once).
func (e *Evaluator) evaluateOne(ctx context.Context, tk task) (bool, error) {
	attempt := func() (bool, error) {
		result, err := e.provider.EvaluateQuality(ctx, tk.entry.SourceValue, *tk.entry.TranslatedValue, tk.entry.TargetLanguage, commentOf(tk.group))
		if err != nil {
			return false, err
		}
		if result.Quality == provider.QualityPoor && e.Log != nil {
			e.Log.Info("translation needs review", "key", tk.key, "locale", tk.entry.TargetLanguage.Code(), "explanation", result.Explanation)
		}
		return result.Quality == provider.QualityGood, nil
	}

	approved, err := attempt()
	if err == nil {
		return approved, nil
	}

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	return attempt()
}

func (e *Evaluator) mutationActor(cat *catalog.Catalog, targetPath string, applyCh <-chan applyMsg, done chan<- struct{}, counter *int) {
	defer close(done)

	for msg := range applyCh {
		if msg.approved {
			msg.entry.SetTranslated()
		}
		*counter++

		// The evaluator persists after every task regardless of verdict —
		// kept as the spec's asymmetry with the translator (§9 open question).
		if err := cat.Write(targetPath); err != nil && e.Log != nil {
			e.Log.ErrorWithStack(err, "failed to save translation")
		}

		close(msg.done)
	}
}

func commentOf(g *catalog.LocalizableStringGroup) string {
	if g.Comment == nil {
		return ""
	}
	return *g.Comment
}
