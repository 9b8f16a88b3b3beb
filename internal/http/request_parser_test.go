package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kakei/internal/core"
)

func TestRequestBodyParser_JSON(t *testing.T) {
	body := `{"date":" 2024-01-10\u0000","category":"food","amount":1200,"memo":"  lunch, 2 people "}`
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !p.IsJSON() {
		t.Error("IsJSON() = false, want true")
	}
	want := core.AddForm{Date: "2024-01-10", Category: "food", Amount: "1200", Memo: "  lunch, 2 people "}
	if got := p.AddForm(); got != want {
		t.Errorf("AddForm() = %+v, want %+v", got, want)
	}
}

func TestRequestBodyParser_FormData(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader("date=2024-01-10&category=rent&amount=50000&memo="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.IsJSON() {
		t.Error("IsJSON() = true, want false")
	}
	if got := p.Get("amount"); got != "50000" {
		t.Errorf("Get(amount) = %q", got)
	}
	if got := p.Get("missing"); got != "" {
		t.Errorf("Get(missing) = %q", got)
	}
}

func TestRequestBodyParser_JSONNumbersKeepPrecision(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"amount":9007199254740993}`, "9007199254740993"},
		{`{"amount":1200}`, "1200"},
		{`{"amount":12.5}`, "12.5"},
		{`{"amount":"300"}`, "300"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(tt.body))
		p := NewRequestBodyParser(req)
		if err := p.Parse(); err != nil {
			t.Fatalf("Parse(%s) error = %v", tt.body, err)
		}
		if got := p.AddForm().Amount; got != tt.want {
			t.Errorf("Amount from %s = %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestRequestBodyParser_TrailingData(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(`{"amount":1} {"amount":2}`))
	if err := NewRequestBodyParser(req).Parse(); err == nil {
		t.Fatal("expected error for trailing data")
	}
}

func TestRequestBodyParser_FormMemoVerbatim(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader("category=+food+&memo=+tea%09break+"))
	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	form := p.AddForm()
	if form.Category != "food" || form.Memo != " tea\tbreak " {
		t.Errorf("AddForm() = %+v", form)
	}
}

func TestRequestBodyParser_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := p.AddForm(); got != (core.AddForm{}) {
		t.Errorf("AddForm() = %+v, want zero", got)
	}
}

func TestRequestBodyParser_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(`{"date":`))
	p := NewRequestBodyParser(req)
	if err := p.Parse(); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if err := p.Parse(); err == nil {
		t.Fatal("second Parse() should return the cached error")
	}
}

func TestIsConfirmed(t *testing.T) {
	tests := []struct {
		name  string
		query string
		body  string
		want  bool
	}{
		{"query yes", "?confirm=yes", "", true},
		{"query true", "?confirm=TRUE", "", true},
		{"query no", "?confirm=no", "", false},
		{"body form", "", "confirm=yes", true},
		{"body json", "", `{"confirm":true}`, true},
		{"absent", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/expenses/1"+tt.query, strings.NewReader(tt.body))
			p := NewRequestBodyParser(req)
			if err := p.Parse(); err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := isConfirmed(req, p); got != tt.want {
				t.Errorf("isConfirmed() = %v, want %v", got, tt.want)
			}
		})
	}
}
