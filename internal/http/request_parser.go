package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"kakei/internal/core"
)

// maxBodyBytes bounds every request body read by the parser.
const maxBodyBytes = 64 << 10

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, commonly used with HTMX.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	if r.Body != nil {
		p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	}
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	body := strings.TrimSpace(string(p.body))
	if body == "" {
		p.formData = url.Values{}
		return nil
	}

	if body[0] == '{' {
		p.jsonData = make(map[string]any)
		dec := json.NewDecoder(strings.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&p.jsonData); err != nil {
			p.jsonData = nil
			p.err = err
			return err
		}
		if _, err := dec.Token(); err != io.EOF {
			p.jsonData = nil
			p.err = errors.New("unexpected data after JSON object")
			return p.err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(body)
	return p.err
}

// Get returns a sanitized string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	return sanitizeInput(p.Raw(key))
}

// Raw returns the value exactly as submitted.
func (p *RequestBodyParser) Raw(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return stringValue(val)
		}
		return ""
	}
	if p.formData != nil {
		return p.formData.Get(key)
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

// AddForm maps the body onto the create form fields. The memo is free text
// and is kept verbatim.
func (p *RequestBodyParser) AddForm() core.AddForm {
	return core.AddForm{
		Date:     p.Get("date"),
		Category: p.Get("category"),
		Amount:   p.Get("amount"),
		Memo:     p.Raw("memo"),
	}
}

// stringValue converts a decoded JSON value to string. Numbers keep their
// literal text.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// parseID reads the {id} path value.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// isConfirmed reports whether the caller acknowledged a destructive action,
// either through the confirm query parameter or the body.
func isConfirmed(r *http.Request, p *RequestBodyParser) bool {
	v := r.URL.Query().Get("confirm")
	if v == "" && p != nil {
		v = p.Get("confirm")
	}
	switch strings.ToLower(v) {
	case "yes", "true", "1":
		return true
	}
	return false
}

// periodOf returns the ledger period sent with a command, from the query or
// the body.
func periodOf(r *http.Request, p *RequestBodyParser) string {
	if v := r.URL.Query().Get("period"); v != "" {
		return sanitizeInput(v)
	}
	if p != nil {
		return p.Get("period")
	}
	return ""
}
