package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// csvHeader is the fixed column order of the export.
var csvHeader = []string{
	"date",
	"number_of_new_users",
	"anonymous_comments_ratio",
	"comments_count",
	"topic_count_change",
}

// WriteCSV writes the metric rows as CSV. The topic_count_change column is
// empty where the change is undefined.
func WriteCSV(w io.Writer, rows []DailyMetrics) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		change := ""
		if row.TopicCountChange != nil {
			change = strconv.FormatFloat(*row.TopicCountChange, 'f', 2, 64)
		}

		record := []string{
			row.Date.Format(time.DateOnly),
			strconv.Itoa(row.NewUsers),
			strconv.FormatFloat(row.AnonymousCommentsRatio, 'f', 2, 64),
			strconv.Itoa(row.CommentsCount),
			change,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", record[0], err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
