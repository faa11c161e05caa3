// Package planner decides which articles need translating. Fetched items
// are partitioned into originals and already-published translations by
// detecting the title language; translations are matched back to their
// originals through the banner line that every published translation
// carries, which embeds the original article's id.
package planner

import (
	"strings"

	"github.com/speaktech/transqiita/internal/qiita"
)

// TargetISO is the ISO 639-1 code of the translation target. Items whose
// title detects as this language are treated as translations, not
// originals.
const TargetISO = "en"

// LanguageDetector is the planner's view of language detection.
type LanguageDetector interface {
	DetectISO(text string) (string, bool)
}

// Status says whether a candidate has never been translated or has an
// outdated translation.
type Status int

const (
	StatusNew Status = iota
	StatusUpdated
)

func (s Status) String() string {
	if s == StatusUpdated {
		return "UPDATED"
	}
	return "NEW"
}

// Candidate is one article that needs translating.
type Candidate struct {
	// Article is the original to translate.
	Article qiita.Item
	Status  Status
	// TranslationID is the id of the stale translation to overwrite;
	// only set when Status is StatusUpdated.
	TranslationID string
}

// Plan returns translation candidates in the order the originals appear in
// items. Originals whose translation is already up to date are skipped.
func Plan(items []qiita.Item, det LanguageDetector) []Candidate {
	originals, translations := partition(items, det)

	var candidates []Candidate
	for _, origin := range originals {
		translation, found := findTranslation(translations, origin.ID)
		switch {
		case !found:
			candidates = append(candidates, Candidate{Article: origin, Status: StatusNew})
		case translation.UpdatedAt.Before(origin.UpdatedAt):
			candidates = append(candidates, Candidate{
				Article:       origin,
				Status:        StatusUpdated,
				TranslationID: translation.ID,
			})
		}
	}
	return candidates
}

// partition splits items by detected title language: target-language
// titles are translations, everything else is an original. Undetectable
// titles are treated as originals so nothing silently drops out.
func partition(items []qiita.Item, det LanguageDetector) (originals, translations []qiita.Item) {
	for _, item := range items {
		iso, ok := det.DetectISO(item.Title)
		if ok && strings.EqualFold(iso, TargetISO) {
			translations = append(translations, item)
		} else {
			originals = append(originals, item)
		}
	}
	return originals, translations
}

// findTranslation locates the published translation of the article with
// originID by looking for the banner that embeds it.
func findTranslation(translations []qiita.Item, originID string) (qiita.Item, bool) {
	for _, t := range translations {
		if strings.Contains(t.Body, originID) {
			return t, true
		}
	}
	return qiita.Item{}, false
}
