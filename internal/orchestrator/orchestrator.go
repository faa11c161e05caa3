// Package orchestrator runs the translation pipeline for one article at a
// time: segment the body, translate the prose segments in input order,
// repair markdown spacing, reassemble, and publish the result. Everything
// is strictly sequential; the first failure aborts the run.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/speaktech/transqiita/internal/chunker"
	"github.com/speaktech/transqiita/internal/planner"
	"github.com/speaktech/transqiita/internal/postprocess"
	"github.com/speaktech/transqiita/internal/qiita"
	"github.com/speaktech/transqiita/internal/segment"
	"github.com/speaktech/transqiita/internal/translator"
)

// Publisher is the article host as the pipeline sees it. *qiita.Client
// satisfies it; tests substitute a fake.
type Publisher interface {
	CreateItem(ctx context.Context, req qiita.CreateItemRequest) (*qiita.Item, error)
	UpdateItem(ctx context.Context, id string, req qiita.UpdateItemRequest) (*qiita.Item, error)
}

// Memory deduplicates prose segments within a run. May be nil.
type Memory interface {
	GetSegment(ctx context.Context, sourceText, targetLang string) (string, bool, error)
	SaveSegment(ctx context.Context, sourceText, targetLang, translatedText, service string) error
}

// LanguageChecker verifies (warn-only) that translated titles came back in
// the target language. May be nil.
type LanguageChecker interface {
	DetectISO(text string) (string, bool)
}

// Config carries the publish toggles and pipeline limits.
type Config struct {
	TargetLang    string // defaults to "en"
	MaxChunkRunes int    // defaults to chunker.DefaultMaxRunes
	Private       bool
	Gist          bool
	Tweet         bool
	// Progress receives human-readable progress and warning lines.
	Progress io.Writer
}

type Orchestrator struct {
	svc   translator.Service
	pub   Publisher
	mem   Memory
	check LanguageChecker
	cfg   Config
}

func New(svc translator.Service, pub Publisher, mem Memory, check LanguageChecker, cfg Config) *Orchestrator {
	if cfg.TargetLang == "" {
		cfg.TargetLang = "en"
	}
	if cfg.MaxChunkRunes == 0 {
		cfg.MaxChunkRunes = chunker.DefaultMaxRunes
	}
	if cfg.Progress == nil {
		cfg.Progress = io.Discard
	}
	return &Orchestrator{svc: svc, pub: pub, mem: mem, check: check, cfg: cfg}
}

// Banner is prepended to every published translation. It embeds the
// original article's id, which is how the planner later matches the
// translation back to its original.
func Banner(articleID, articleURL string) string {
	return "**This article is an automatic translation of the article[" +
		articleID + "] below.\n" + articleURL + "**\n\n"
}

// Run translates one candidate and publishes it: a new item for
// StatusNew, an overwrite of the stale translation for StatusUpdated.
func (o *Orchestrator) Run(ctx context.Context, cand planner.Candidate) (*qiita.Item, error) {
	article := cand.Article

	body, err := o.TranslateBody(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("translating body of %s: %w", article.ID, err)
	}

	title, err := o.TranslateTitle(ctx, article.Title)
	if err != nil {
		return nil, fmt.Errorf("translating title of %s: %w", article.ID, err)
	}

	if cand.Status == planner.StatusUpdated {
		return o.pub.UpdateItem(ctx, cand.TranslationID, qiita.UpdateItemRequest{
			Title:   title,
			Body:    body,
			Tags:    article.Tags,
			Private: o.cfg.Private,
		})
	}

	return o.pub.CreateItem(ctx, qiita.CreateItemRequest{
		Title:   title,
		Body:    body,
		Tags:    article.Tags,
		Private: o.cfg.Private,
		Gist:    o.cfg.Gist,
		Tweet:   o.cfg.Tweet,
	})
}

// TranslateBody segments the article body, translates each prose segment
// in order, and reassembles the document with the banner prepended. Code
// segments pass through byte-for-byte.
func (o *Orchestrator) TranslateBody(ctx context.Context, article qiita.Item) (string, error) {
	segs := segment.Split(article.Body)
	texts := segment.Texts(segs)

	for i, s := range segs {
		if s.Kind != segment.KindProse {
			continue
		}
		translated, err := o.translateProse(ctx, s.Text)
		if err != nil {
			return "", err
		}
		texts[i] = translated
	}

	body, err := segment.Reassemble(segs, texts)
	if err != nil {
		return "", err
	}
	return Banner(article.ID, article.URL) + body, nil
}

// TranslateTitle translates the article title and, when a language checker
// is configured, warns if the result does not detect as the target
// language. The warning never fails the run.
func (o *Orchestrator) TranslateTitle(ctx context.Context, title string) (string, error) {
	res, err := o.svc.Translate(ctx, translator.Request{
		Text:       title,
		TargetLang: o.cfg.TargetLang,
	})
	if err != nil {
		return "", err
	}

	if o.check != nil {
		if iso, ok := o.check.DetectISO(res.TranslatedText); ok && !strings.EqualFold(iso, o.cfg.TargetLang) {
			fmt.Fprintf(o.cfg.Progress, "warning: translated title detects as %s, expected %s: %q\n",
				iso, o.cfg.TargetLang, res.TranslatedText)
		}
	}
	return res.TranslatedText, nil
}

// translateProse translates one prose segment, consulting the run memory
// first and splitting over-long runs into chunks translated one request at
// a time, in order.
func (o *Orchestrator) translateProse(ctx context.Context, text string) (string, error) {
	// Whitespace-only spans carry structure, not content.
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	if o.mem != nil {
		if cached, found, err := o.mem.GetSegment(ctx, text, o.cfg.TargetLang); err == nil && found {
			return cached, nil
		}
	}

	var out strings.Builder
	for _, chunk := range chunker.Chunk(text, o.cfg.MaxChunkRunes) {
		res, err := o.svc.Translate(ctx, translator.Request{
			Text:       chunk,
			TargetLang: o.cfg.TargetLang,
		})
		if err != nil {
			return "", err
		}
		out.WriteString(res.TranslatedText)
	}

	cleaned := postprocess.CleanSpacing(out.String())

	if o.mem != nil {
		if err := o.mem.SaveSegment(ctx, text, o.cfg.TargetLang, cleaned, o.svc.Name()); err != nil {
			fmt.Fprintf(o.cfg.Progress, "warning: failed to cache segment: %v\n", err)
		}
	}
	return cleaned, nil
}
