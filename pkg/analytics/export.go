package analytics

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/BinLe1988/reply-assist/models"
)

// 导出格式
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// ErrUnsupportedFormat 不支持的导出格式
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ExportFile 导出结果
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Document 组装导出文档：快照、导出时间与汇总
func (t *Tracker) Document() models.AnalyticsExport {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now().UTC()
	s := t.snapshot.Clone()
	return models.AnalyticsExport{
		AnalyticsSnapshot: s,
		ExportDate:        now.Format("2006-01-02T15:04:05.000Z07:00"),
		Summary: models.AnalyticsSummary{
			UsageRate:      usageRate(s),
			TopPlatform:    topPlatform(s),
			EngagementRate: engagementRate(s),
			DailyUsage:     dailyUsage(s, now, 7),
			PlatformUsage:  platformUsage(s),
		},
	}
}

// Export 按格式导出，format为空时使用json
func (t *Tracker) Export(format string) (*ExportFile, error) {
	doc := t.Document()
	base := "reply-assist-analytics-" + t.now().UTC().Format(dateLayout)

	switch format {
	case "", FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode analytics: %w", err)
		}
		return &ExportFile{FileName: base + ".json", ContentType: "application/json", Data: data}, nil
	case FormatXLSX:
		data, err := workbook(doc)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			FileName:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// workbook 生成Summary、Daily、Platforms三个工作表
func workbook(doc models.AnalyticsExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Export date", doc.ExportDate},
		{"Replies generated", doc.TotalRepliesGenerated},
		{"Replies used", doc.TotalRepliesUsed},
		{"Usage rate (%)", doc.Summary.UsageRate},
		{"Top platform", doc.Summary.TopPlatform},
		{"Engagement rate", doc.Summary.EngagementRate},
		{"Average response time (ms)", doc.AverageResponseTime},
		{"Total likes", doc.EngagementMetrics.TotalLikes},
		{"Total comments", doc.EngagementMetrics.TotalComments},
		{"Total shares", doc.EngagementMetrics.TotalShares},
		{"Sessions", doc.UserActivity.SessionsThisWeek},
		{"Average session duration", doc.UserActivity.AverageSessionDuration},
	}
	if err := writeRows(f, summary, rows); err != nil {
		return nil, err
	}

	daily := [][]interface{}{{"Date", "Day", "Usage"}}
	for _, p := range doc.Summary.DailyUsage {
		daily = append(daily, []interface{}{p.Date, p.Day, p.Usage})
	}
	if err := addSheet(f, "Daily", daily); err != nil {
		return nil, err
	}

	platforms := [][]interface{}{{"Platform", "Count", "Percentage"}}
	for _, p := range doc.Summary.PlatformUsage {
		platforms = append(platforms, []interface{}{p.Platform, p.Count, p.Percentage})
	}
	if err := addSheet(f, "Platforms", platforms); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
