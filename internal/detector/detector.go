// Package detector wraps offline language detection. The planner uses it
// to tell already-translated articles apart from originals without a
// remote call.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"
)

// Detector identifies the language of a text. Building the underlying
// model is expensive; construct once and reuse.
type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector}
}

// DetectISO returns the ISO 639-1 code (upper case, e.g. "EN", "JA") of
// the most likely language of text. ok is false when text is empty or the
// language cannot be determined.
func (d *Detector) DetectISO(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return lang.IsoCode639_1().String(), true
}
