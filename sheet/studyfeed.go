package sheet

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	stockstudy "github.com/Dream-page/stockstudy"
	"github.com/google/uuid"
)

// Header aliases for the study-feed table.
var (
	feedDateAliases     = []string{"Date", "date", "DATE", "날짜"}
	feedCategoryAliases = []string{"Category", "category", "CATEGORY", "카테고리"}
	feedTitleAliases    = []string{"Title", "title", "TITLE", "제목"}
	feedLinkAliases     = []string{"Link", "link", "LINK", "링크"}
	feedSourceAliases   = []string{"Source", "source", "SOURCE", "출처"}
)

// feedDateLayouts are the date spellings the feed sheet has used over time.
var feedDateLayouts = []string{"2006-01-02", "2006.01.02", "2006/01/02"}

const defaultFeedSource = "네이버 증권"

// maxFeedAge drops feed items older than this many days.
const maxFeedAge = 3

// FetchStudyItems retrieves the study feed, keeps items from the last three
// days, and orders them with today's items first, then newest first.
func (c *Client) FetchStudyItems(ctx context.Context, now time.Time) ([]stockstudy.StudyNote, error) {
	t, err := c.fetchTable(ctx, c.StudyFeedURL, 0)
	if err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	oldest := today.AddDate(0, 0, -maxFeedAge)

	var items []stockstudy.StudyNote
	for _, r := range t.rows() {
		rawDate := r.get(feedDateAliases, 0)
		title := r.get(feedTitleAliases, 2)
		if rawDate == "" || title == "" {
			log.Printf("skipping study feed row, missing date or title: %v", r.record)
			continue
		}

		date, ok := parseFeedDate(rawDate, now.Location())
		if !ok {
			log.Printf("skipping study feed row %q: unparseable date %q", title, rawDate)
			continue
		}
		if date.Before(oldest) {
			continue
		}

		category := strings.ToLower(r.get(feedCategoryAliases, 1))
		if category == "" {
			category = "market"
		}
		source := r.get(feedSourceAliases, 4)
		if source == "" {
			source = defaultFeedSource
		}

		items = append(items, stockstudy.StudyNote{
			ID:        "study-" + uuid.NewString(),
			Title:     title,
			Category:  category,
			Link:      r.get(feedLinkAliases, 3),
			Source:    source,
			Date:      date,
			CreatedAt: now,
		})
	}

	// today's items first, then newest first
	sort.SliceStable(items, func(i, j int) bool {
		iToday, jToday := items[i].Date.Equal(today), items[j].Date.Equal(today)
		if iToday != jToday {
			return iToday
		}
		return items[i].Date.After(items[j].Date)
	})

	log.Printf("fetched %d study items from feed", len(items))
	return items, nil
}

func parseFeedDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range feedDateLayouts {
		if d, err := time.ParseInLocation(layout, s, loc); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
