package planner_test

import (
	"testing"
	"time"

	"github.com/speaktech/transqiita/internal/planner"
	"github.com/speaktech/transqiita/internal/qiita"
)

// stubDetector maps exact titles to ISO codes.
type stubDetector map[string]string

func (d stubDetector) DetectISO(text string) (string, bool) {
	iso, ok := d[text]
	return iso, ok
}

func item(id, title, body string, updated time.Time) qiita.Item {
	return qiita.Item{ID: id, Title: title, Body: body, UpdatedAt: updated}
}

func TestPlan_NewArticle(t *testing.T) {
	det := stubDetector{"日本語の記事": "JA"}
	items := []qiita.Item{item("orig1", "日本語の記事", "本文", time.Now())}

	got := planner.Plan(items, det)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Status != planner.StatusNew || got[0].Article.ID != "orig1" {
		t.Errorf("unexpected candidate: %+v", got[0])
	}
	if got[0].TranslationID != "" {
		t.Errorf("NEW candidate must not carry a translation id")
	}
}

func TestPlan_UpToDateTranslationSkipped(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	det := stubDetector{
		"日本語の記事":                 "JA",
		"An English translation": "EN",
	}
	items := []qiita.Item{
		item("orig1", "日本語の記事", "本文", base),
		item("tr1", "An English translation", "banner mentions orig1 here", base.Add(time.Hour)),
	}

	got := planner.Plan(items, det)
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %+v", got)
	}
}

func TestPlan_StaleTranslationIsUpdated(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	det := stubDetector{
		"日本語の記事":                 "JA",
		"An English translation": "EN",
	}
	items := []qiita.Item{
		item("orig1", "日本語の記事", "本文", base.Add(time.Hour)),
		item("tr1", "An English translation", "translated from orig1", base),
	}

	got := planner.Plan(items, det)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Status != planner.StatusUpdated {
		t.Errorf("expected UPDATED, got %v", got[0].Status)
	}
	if got[0].TranslationID != "tr1" {
		t.Errorf("expected translation id tr1, got %q", got[0].TranslationID)
	}
}

func TestPlan_UndetectableTitleTreatedAsOriginal(t *testing.T) {
	det := stubDetector{} // detects nothing
	items := []qiita.Item{item("orig1", "???", "body", time.Now())}

	got := planner.Plan(items, det)
	if len(got) != 1 || got[0].Status != planner.StatusNew {
		t.Errorf("undetectable title must yield a NEW candidate, got %+v", got)
	}
}

func TestPlan_PreservesInputOrder(t *testing.T) {
	det := stubDetector{"a": "JA", "b": "JA", "c": "JA"}
	now := time.Now()
	items := []qiita.Item{
		item("id-a", "a", "", now),
		item("id-b", "b", "", now),
		item("id-c", "c", "", now),
	}

	got := planner.Plan(items, det)
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	for i, want := range []string{"id-a", "id-b", "id-c"} {
		if got[i].Article.ID != want {
			t.Errorf("candidate %d: expected %s, got %s", i, want, got[i].Article.ID)
		}
	}
}

func TestStatusString(t *testing.T) {
	if planner.StatusNew.String() != "NEW" || planner.StatusUpdated.String() != "UPDATED" {
		t.Errorf("unexpected status names: %s / %s", planner.StatusNew, planner.StatusUpdated)
	}
}
