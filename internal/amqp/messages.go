package amqp

import (
	"encoding/json"
	"time"

	"gastos/internal/report"
)

// ReportMessage carries the headline figures of one analysis run.
type ReportMessage struct {
	RunID      string                `json:"run_id"`
	Source     string                `json:"source"`
	Timestamp  time.Time             `json:"timestamp"`
	Stats      report.StatsView      `json:"stats"`
	Categories []report.CategoryView `json:"categories"`
	Top        report.TopView        `json:"top"`
	Dropped    int                   `json:"dropped"`
}

// NewReportMessage builds the message for doc.
func NewReportMessage(doc *report.Document) *ReportMessage {
	s := report.NewSummary(doc)
	ts := doc.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return &ReportMessage{
		RunID:      s.RunID,
		Source:     s.Source,
		Timestamp:  ts,
		Stats:      s.Stats,
		Categories: s.Categories,
		Top:        s.Top,
		Dropped:    s.Normalization.Dropped,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportMessageFromJSON creates a message from JSON bytes
func ReportMessageFromJSON(data []byte) (*ReportMessage, error) {
	var msg ReportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
