package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const myMemoryBaseURL = "https://api.mymemory.translated.net"

// MyMemoryService translates through the free MyMemory API. Useful when no
// Google credentials are configured; subject to a daily character quota.
type MyMemoryService struct {
	email   string
	baseURL string
	client  *http.Client
}

// NewMyMemoryService returns a MyMemory backend. email is optional and
// raises the daily quota when set.
func NewMyMemoryService(email string) *MyMemoryService {
	return &MyMemoryService{
		email:   email,
		baseURL: myMemoryBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *MyMemoryService) Name() string {
	return "mymemory"
}

func (s *MyMemoryService) Translate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	sourceLang := req.SourceLang
	if sourceLang == "" || sourceLang == "auto" {
		// MyMemory requires an explicit pair; articles on the platform are
		// overwhelmingly Japanese.
		sourceLang = "ja"
	}

	q := url.Values{}
	q.Set("q", req.Text)
	q.Set("langpair", fmt.Sprintf("%s|%s", sourceLang, req.TargetLang))
	if s.email != "" {
		q.Set("de", s.email)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/get?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var body struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		ResponseStatus  int    `json:"responseStatus"`
		ResponseDetails string `json:"responseDetails"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	if body.ResponseStatus != http.StatusOK {
		return nil, fmt.Errorf("%w: API error %d: %s", ErrUnavailable, body.ResponseStatus, body.ResponseDetails)
	}

	return &Result{
		ServiceName:    s.Name(),
		TranslatedText: body.ResponseData.TranslatedText,
		Latency:        time.Since(start),
	}, nil
}

func (s *MyMemoryService) IsAvailable(ctx context.Context) error {
	return nil
}
