package reporter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/actionsum/auraswitch/internal/database"
	"github.com/actionsum/auraswitch/internal/models"
)

const recentLimit = 10

// Reporter summarizes the error journal
type Reporter struct {
	repo *database.Repository
	now  func() time.Time
}

// New creates a new reporter
func New(repo *database.Repository) *Reporter {
	return &Reporter{
		repo: repo,
		now:  time.Now,
	}
}

// GenerateReport generates a report for the specified period
func (r *Reporter) GenerateReport(periodType string) (*models.ErrorReport, error) {
	period, err := getPeriod(periodType, r.now())
	if err != nil {
		return nil, err
	}

	summaries, err := r.repo.GetCategorySummarySince(period.Start)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get category summary")
	}

	var total int
	for _, s := range summaries {
		total += s.EventCount
	}
	if total > 0 {
		for i := range summaries {
			summaries[i].Percentage = float64(summaries[i].EventCount) / float64(total) * 100.0
		}
	}

	recent, err := r.repo.GetErrorsSince(period.Start)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get recent errors")
	}
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &models.ErrorReport{
		Period:      *period,
		Categories:  summaries,
		Recent:      recent,
		TotalErrors: total,
		GeneratedAt: r.now(),
	}, nil
}

// getPeriod calculates the time range for the report
func getPeriod(periodType string, now time.Time) (*models.ReportPeriod, error) {
	var start, end time.Time

	switch periodType {
	case "day", "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 0, 1)

	case "week":
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 7)

	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)

	default:
		return nil, fmt.Errorf("invalid period type: %s (valid: day, week, month)", periodType)
	}

	return &models.ReportPeriod{
		Start: start,
		End:   end,
		Type:  periodType,
	}, nil
}

// FormatReportText formats the report as human-readable text
func (r *Reporter) FormatReportText(report *models.ErrorReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Error Report - %s\n", report.Period.Type)
	fmt.Fprintf(&b, "Period: %s to %s\n",
		report.Period.Start.Format("2006-01-02 15:04"),
		report.Period.End.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Total Errors: %s\n\n", humanize.Comma(int64(report.TotalErrors)))

	if report.TotalErrors == 0 {
		b.WriteString("No errors recorded for this period.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%-12s %10s %9s   %s\n", "Category", "Count", "Percent", "Last Seen")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for _, c := range report.Categories {
		fmt.Fprintf(&b, "%-12s %10d %8.1f%%   %s\n",
			c.Category,
			c.EventCount,
			c.Percentage,
			humanize.RelTime(c.LastSeen, report.GeneratedAt, "ago", "from now"))
	}

	if len(report.Recent) > 0 {
		b.WriteString("\nRecent:\n")
		for _, e := range report.Recent {
			fmt.Fprintf(&b, "  %-16s [%s] %s\n",
				humanize.RelTime(e.Timestamp, report.GeneratedAt, "ago", "from now"),
				e.Category,
				truncate(e.ErrorMsg, 80))
		}
	}

	return b.String()
}

// FormatReportJSON formats the report as JSON
func (r *Reporter) FormatReportJSON(report *models.ErrorReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal JSON")
	}
	return string(data), nil
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
