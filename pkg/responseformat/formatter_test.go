package responseformat

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"
)

type payload struct {
	ID         string     `json:"id"`
	RateSpread float64    `json:"ros"`
	Partials   [3]float64 `json:"partials"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", JSON, false},
		{"json", JSON, false},
		{"msgpack", MsgPack, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteResponse(t *testing.T) {
	data := payload{ID: "abc", RateSpread: 0.21, Partials: [3]float64{1, -2, 3.5}}

	tests := []struct {
		name        string
		url         string
		contentType string
		decode      func([]byte, any) error
	}{
		{"default json", "/solve", "application/json", json.Unmarshal},
		{"explicit json", "/solve?format=json", "application/json", json.Unmarshal},
		{"msgpack", "/solve?format=msgpack", "application/x-msgpack", func(b []byte, v any) error {
			dec := msgpack.NewDecoder(bytes.NewReader(b))
			dec.SetCustomStructTag("json")
			return dec.Decode(v)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if err := NewFormatter().WriteResponse(rec, req, http.StatusCreated, data); err != nil {
				t.Fatalf("WriteResponse: %v", err)
			}
			if rec.Code != http.StatusCreated {
				t.Errorf("status = %d", rec.Code)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("CORS header = %q", got)
			}
			var got payload
			if err := tt.decode(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(data, got); diff != "" {
				t.Errorf("body (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/solve", nil)
	if err := NewFormatter().WriteError(rec, req, http.StatusBadRequest, errors.New("bad depth"), "depth"); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body != (ErrorBody{Error: "bad depth", Field: "depth"}) {
		t.Errorf("body = %+v", body)
	}
}

func TestDecode(t *testing.T) {
	var p payload
	if err := Decode(strings.NewReader(`{"id":"x","ros":0.5}`), JSON, &p); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.ID != "x" || p.RateSpread != 0.5 {
		t.Errorf("decoded %+v", p)
	}

	if err := Decode(strings.NewReader(`{"id":"x","speed":1}`), JSON, &p); err == nil {
		t.Error("expected error for unknown field")
	}

	var buf bytes.Buffer
	want := payload{ID: "mp", Partials: [3]float64{0.1, 0.2, 0.3}}
	if err := NewFormatter().Encode(&buf, MsgPack, want); err != nil {
		t.Fatal(err)
	}
	var got payload
	if err := Decode(&buf, MsgPack, &got); err != nil {
		t.Fatalf("Decode msgpack: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("msgpack (-want +got):\n%s", diff)
	}
}

func TestIndented(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter().Indented().Encode(&buf, JSON, payload{ID: "i"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  \"id\": \"i\"") {
		t.Errorf("not indented:\n%s", buf.String())
	}
}
