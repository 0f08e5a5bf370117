package service

import (
	"encoding/json"
	"testing"
)

func TestLoose_Unmarshal(t *testing.T) {
	var in UpdateStockInput
	if err := json.Unmarshal([]byte(`{"id": 3, "newQuantity": null}`), &in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !in.ID.Present() {
		t.Error("expected id to be present")
	}
	if in.NewQuantity.Present() {
		t.Error("expected null newQuantity to count as missing")
	}
}

func TestLoose_Truthy(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", false},
		{"null", false},
		{"false", false},
		{`""`, false},
		{"0", false},
		{"0.0", false},
		{`"0"`, true},
		{"7", true},
		{`"abc"`, true},
		{"true", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Loose(tt.raw).Truthy(); got != tt.want {
				t.Errorf("Truthy(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoose_Blank(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", false},
		{"null", true},
		{`""`, true},
		{`"  "`, true},
		{"0", false},
		{`"0"`, false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Loose(tt.raw).Blank(); got != tt.want {
				t.Errorf("Blank(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoose_Numbers(t *testing.T) {
	tests := []struct {
		raw       string
		wantFloat float64
		wantInt   int
		intOK     bool
		floatOK   bool
	}{
		{raw: "10", wantFloat: 10, wantInt: 10, intOK: true, floatOK: true},
		{raw: `"9.99"`, wantFloat: 9.99, floatOK: true},
		{raw: `" 42 "`, wantFloat: 42, wantInt: 42, intOK: true, floatOK: true},
		{raw: "1e2", wantFloat: 100, wantInt: 100, intOK: true, floatOK: true},
		{raw: "-5", wantFloat: -5, wantInt: -5, intOK: true, floatOK: true},
		{raw: "2.5", wantFloat: 2.5, floatOK: true},
		{raw: `"abc"`},
		{raw: `""`},
		{raw: "true"},
		{raw: "[1]"},
		{raw: "null"},
		{raw: `"1e400"`},
		{raw: "1e309"},
		{raw: "-1e309"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			f, err := Loose(tt.raw).Float()
			if tt.floatOK != (err == nil) {
				t.Fatalf("Float(%q) error = %v, want ok=%v", tt.raw, err, tt.floatOK)
			}
			if tt.floatOK && f != tt.wantFloat {
				t.Errorf("Float(%q) = %v, want %v", tt.raw, f, tt.wantFloat)
			}

			i, err := Loose(tt.raw).Int()
			if tt.intOK != (err == nil) {
				t.Fatalf("Int(%q) error = %v, want ok=%v", tt.raw, err, tt.intOK)
			}
			if tt.intOK && i != tt.wantInt {
				t.Errorf("Int(%q) = %v, want %v", tt.raw, i, tt.wantInt)
			}
		})
	}
}

func TestLoose_Text(t *testing.T) {
	if s, ok := Loose(`"Widget"`).Text(); !ok || s != "Widget" {
		t.Errorf("expected Widget, got %q (%v)", s, ok)
	}
	if _, ok := Loose(`12`).Text(); ok {
		t.Error("expected a number not to be text")
	}
	if _, ok := Loose(nil).Text(); ok {
		t.Error("expected a missing value not to be text")
	}
}
