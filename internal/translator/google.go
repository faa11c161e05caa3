package translator

import (
	"context"
	"fmt"
	"time"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService translates through the Google Cloud Translation API.
type GoogleService struct {
	credentialsFile string
}

// NewGoogleService returns a Google backend. credentialsFile may be empty
// to fall back to application default credentials.
func NewGoogleService(credentialsFile string) *GoogleService {
	return &GoogleService{credentialsFile: credentialsFile}
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) Translate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	targetTag, err := language.Parse(req.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %v", req.TargetLang, err)
	}

	var opts []option.ClientOption
	if s.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentialsFile))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: creating client: %v", ErrUnavailable, err)
	}
	defer client.Close()

	var translations []translate.Translation
	if req.SourceLang == "" || req.SourceLang == "auto" {
		translations, err = client.Translate(ctx, []string{req.Text}, targetTag, nil)
	} else {
		sourceTag, parseErr := language.Parse(req.SourceLang)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid source language %q: %v", req.SourceLang, parseErr)
		}
		translations, err = client.Translate(ctx, []string{req.Text}, targetTag, &translate.Options{
			Source: sourceTag,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(translations) == 0 {
		return nil, fmt.Errorf("%w: no translation returned", ErrUnavailable)
	}

	return &Result{
		ServiceName:    s.Name(),
		TranslatedText: translations[0].Text,
		Latency:        time.Since(start),
	}, nil
}

func (s *GoogleService) IsAvailable(ctx context.Context) error {
	return nil
}
