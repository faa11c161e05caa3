// Package translator defines the translation backend abstraction and its
// concrete services. The pipeline only ever sends prose; callers pick a
// backend by name and everything behind Service is swappable.
package translator

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is wrapped into every error returned by a backend whose
// remote service is unreachable or rejected the request. There is no
// internal retry: the first failure aborts the run.
var ErrUnavailable = errors.New("translation service unavailable")

// Request is one translation call. SourceLang may be "auto" or empty to
// let the backend detect the source language.
type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Result is the outcome of a single successful translation call.
type Result struct {
	ServiceName    string        `json:"service_name"`
	TranslatedText string        `json:"translated_text"`
	Latency        time.Duration `json:"latency"`
}

// Service is a translation backend.
type Service interface {
	Name() string
	Translate(ctx context.Context, req Request) (*Result, error)
	IsAvailable(ctx context.Context) error
}
