package sheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchStudyItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Date,Category,Title,Link,Source\n" +
			"2026-03-09,macro,CPI 발표 요약,https://example.com/cpi,한국경제\n" +
			"2026-03-10,,오늘의 시장 브리핑,,\n" +
			"2026.03.08,stock,반도체 업황 점검,https://example.com/semi,네이버 증권\n" +
			"2026-03-01,macro,지난주 자료,,\n")) // older than three days, dropped
	}))
	defer srv.Close()

	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	c := &Client{StudyFeedURL: srv.URL}
	items, err := c.FetchStudyItems(context.Background(), now)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3 within the three-day window", len(items))
	}

	// today's item first, then newest first
	if items[0].Title != "오늘의 시장 브리핑" {
		t.Errorf("first item = %q, want today's briefing", items[0].Title)
	}
	if items[1].Title != "CPI 발표 요약" || items[2].Title != "반도체 업황 점검" {
		t.Errorf("order = %q, %q, want newest first after today", items[1].Title, items[2].Title)
	}

	today := items[0]
	if today.Category != "market" {
		t.Errorf("category = %q, want the market default", today.Category)
	}
	if today.Source != defaultFeedSource {
		t.Errorf("source = %q, want the default feed source", today.Source)
	}
	if today.ID == "" || today.Completed {
		t.Errorf("item = %+v, want a fresh uncompleted note with an id", today)
	}
}

func TestFetchStudyItemsDottedDates(t *testing.T) {
	loc := time.UTC
	for _, tt := range []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2026-03-10", time.Date(2026, 3, 10, 0, 0, 0, 0, loc), true},
		{"2026.03.10", time.Date(2026, 3, 10, 0, 0, 0, 0, loc), true},
		{"2026/03/10", time.Date(2026, 3, 10, 0, 0, 0, 0, loc), true},
		{"10-03-2026", time.Time{}, false},
		{"tomorrow", time.Time{}, false},
	} {
		got, ok := parseFeedDate(tt.in, loc)
		if ok != tt.ok || (ok && !got.Equal(tt.want)) {
			t.Errorf("parseFeedDate(%q) = %v,%v, want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
