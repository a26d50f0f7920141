package extract

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rasingollam/AI-Tutor/internal/llm"
)

func testImage() *Image {
	return &Image{Path: "work.jpg", Data: []byte{0xff, 0xd8, 0xff}, MIME: "image/jpeg"}
}

func TestExtractAnswer_LastExpressionWins(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"answers": ["2x=8", "2x/2=8/2", "x=4"]}`),
	})
	x := New(mock, DefaultConfig())

	got, err := x.ExtractAnswer(context.Background(), testImage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "x=4" {
		t.Fatalf("expected last expression x=4, got %q", got)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	msg := mock.Calls[0].Messages[0]
	if len(msg.Images) != 1 || msg.Images[0].MIME != "image/jpeg" {
		t.Fatalf("expected the image to ride on the request, got %+v", msg.Images)
	}
}

func TestExtractAnswer_EmptyImage(t *testing.T) {
	x := New(llm.NewMockProvider(), DefaultConfig())

	_, err := x.ExtractAnswer(context.Background(), nil)
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got: %v", err)
	}

	_, err = x.ExtractAnswer(context.Background(), &Image{MIME: "image/png"})
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError for empty data, got: %v", err)
	}
}

func TestExtractAnswer_NoAnswerInImage(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"answers": ["", "  "]}`),
	})
	x := New(mock, DefaultConfig())

	_, err := x.ExtractAnswer(context.Background(), testImage())
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got: %v", err)
	}
}

func TestExtractAnswer_ProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	x := New(mock, DefaultConfig())

	_, err := x.ExtractAnswer(context.Background(), testImage())
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got: %v", err)
	}
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected wrapped provider error, got: %v", err)
	}
}

func TestExtractAnswer_ScrapesNarratedOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`The work shown leads to the answer: x = 4`),
	})
	x := New(mock, DefaultConfig())

	got, err := x.ExtractAnswer(context.Background(), testImage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "x = 4" {
		t.Fatalf("expected scraped answer, got %q", got)
	}
}

func TestExtractProblem(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"problem_text": "Solve for x: 2x + 3 = 11", "problem_type": "linear_equation", "additional_context": "show your work"}`),
	})
	x := New(mock, DefaultConfig())

	p, err := x.ExtractProblem(context.Background(), testImage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Text != "Solve for x: 2x + 3 = 11" {
		t.Fatalf("unexpected problem text: %q", p.Text)
	}
	if p.Kind != "linear_equation" {
		t.Fatalf("unexpected kind: %q", p.Kind)
	}
}

func TestExtractProblem_EmptyText(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"problem_text": "  ", "problem_type": "unknown", "additional_context": ""}`),
	})
	x := New(mock, DefaultConfig())

	_, err := x.ExtractProblem(context.Background(), testImage())
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got: %v", err)
	}
}

func TestScrapeAnswer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The answer: x = 4", "x = 4"},
		{"Solution: **x=9**", "x=9"},
		{"I see working:\n2x=8\nx=4", "x=4"},
		{"nothing mathematical here", ""},
	}
	for _, tc := range cases {
		if got := scrapeAnswer(tc.in); got != tc.want {
			t.Errorf("scrapeAnswer(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScrapeProblem(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The math problem is:\n2x + 3 = 11", "2x + 3 = 11"},
		{"equation: 5y - 2 = 13", "5y - 2 = 13"},
		{"The problem: think about fractions", ""},
	}
	for _, tc := range cases {
		if got := scrapeProblem(tc.in); got != tc.want {
			t.Errorf("scrapeProblem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
