package amqp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"gastos/internal/analysis"
	"gastos/internal/core"
	"gastos/internal/report"
)

type fakeChannel struct {
	exchange   string
	queue      string
	bound      [2]string
	published  []amqp091.Publishing
	keys       []string
	declareErr error
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	f.exchange = name
	return f.declareErr
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error) {
	f.queue = name
	return amqp091.Queue{Name: name}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error {
	f.bound = [2]string{key, exchange}
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	f.keys = append(f.keys, exchange+"/"+key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func testDocument(t *testing.T) *report.Document {
	t.Helper()
	ds := core.NewDataset([]core.Expense{
		{Date: core.NewDate(2024, 3, 1), Category: "Comida", Description: "Almuerzo", Amount: decimal.RequireFromString("25.50")},
		{Date: core.NewDate(2024, 3, 2), Category: "Ocio", Description: "Cine", Amount: decimal.RequireFromString("30")},
	})
	a, err := analysis.Analyze(ds, 5)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return &report.Document{
		RunID:       "run-42",
		Source:      "memory",
		GeneratedAt: time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC),
		TopK:        5,
		Analysis:    a,
	}
}

func TestPublisher_Setup(t *testing.T) {
	ch := &fakeChannel{}
	if _, err := newPublisher(ch, "gastos", "gastos.report", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.exchange != "gastos" || ch.queue != "gastos.report" || ch.bound != [2]string{"gastos.report", "gastos"} {
		t.Fatalf("unexpected topology: %+v", ch)
	}

	_, err := newPublisher(&fakeChannel{declareErr: errors.New("denied")}, "gastos", "r", nil)
	if err == nil || !strings.Contains(err.Error(), "declare exchange") {
		t.Fatalf("expected declare error, got %v", err)
	}
}

func TestPublisher_Present(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(ch, "gastos", "gastos.report", nil)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := p.Present(context.Background(), testDocument(t)); err != nil {
		t.Fatalf("present: %v", err)
	}
	if len(ch.published) != 1 || ch.keys[0] != "gastos/gastos.report" {
		t.Fatalf("expected one message on gastos/gastos.report, got %v", ch.keys)
	}

	pub := ch.published[0]
	if pub.DeliveryMode != amqp091.Persistent || pub.ContentType != "application/json" || pub.MessageId != "run-42" {
		t.Fatalf("unexpected publishing %+v", pub)
	}

	msg, err := ReportMessageFromJSON(pub.Body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg.Stats.Sum != "55.50" || len(msg.Categories) != 2 || msg.Categories[0].Category != "Ocio" {
		t.Fatalf("unexpected message %+v", msg)
	}
	if len(msg.Top.Items) != 2 || msg.Top.Items[0].Description != "Cine" {
		t.Fatalf("unexpected top %+v", msg.Top)
	}

	if err := p.Close(); err != nil || !ch.closed {
		t.Fatalf("expected channel closed, err=%v", err)
	}
}

func TestPublisher_PresentError(t *testing.T) {
	ch := &fakeChannel{}
	p, _ := newPublisher(ch, "gastos", "gastos.report", nil)
	ch.publishErr = errors.New("connection closed")

	err := p.Present(context.Background(), testDocument(t))
	if err == nil || !strings.Contains(err.Error(), "publish message") {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestReportMessageFromJSON_Invalid(t *testing.T) {
	if _, err := ReportMessageFromJSON([]byte("{")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestNewReportMessage_DefaultsTimestamp(t *testing.T) {
	doc := testDocument(t)
	doc.GeneratedAt = time.Time{}
	if msg := NewReportMessage(doc); msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}
}
