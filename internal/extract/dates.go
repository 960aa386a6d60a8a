package extract

import (
	"context"
	"strings"
	"time"

	"docblog/internal/models"
)

// HistoryProvider returns the change timestamps recorded for a document,
// oldest first, as RFC 3339 strings. An empty result means no history.
type HistoryProvider interface {
	History(ctx context.Context, id string) ([]string, error)
}

// ResolveDates determines the creation and update dates of doc.
//
// Priority: version history (first change is created, last is updated),
// then the front-matter "date:" line for both, then Draft for both.
// Provider errors, timeouts and malformed timestamps count as no history
// and are never returned.
func ResolveDates(ctx context.Context, doc models.Document, provider HistoryProvider) models.DateResolution {
	if res, ok := fromHistory(ctx, doc.ID, provider); ok {
		return res
	}

	if date, ok := frontMatterDate(doc.Content); ok {
		return models.DateResolution{Created: date, Updated: date, Source: models.SourceFrontMatter}
	}

	return models.DraftDates()
}

func fromHistory(ctx context.Context, id string, provider HistoryProvider) (models.DateResolution, bool) {
	if provider == nil {
		return models.DateResolution{}, false
	}

	stamps, err := provider.History(ctx, id)
	if err != nil || len(stamps) == 0 {
		return models.DateResolution{}, false
	}

	created, ok := DatePortion(stamps[0])
	if !ok {
		return models.DateResolution{}, false
	}

	updated, ok := DatePortion(stamps[len(stamps)-1])
	if !ok {
		return models.DateResolution{}, false
	}

	return models.DateResolution{Created: created, Updated: updated, Source: models.SourceHistory}, true
}

// DatePortion returns the YYYY-MM-DD part of an ISO-8601 timestamp.
func DatePortion(stamp string) (string, bool) {
	date, _, _ := strings.Cut(strings.TrimSpace(stamp), "T")
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", false
	}

	return date, true
}
