package models

import (
	"encoding/json"
	"testing"
)

func TestRefOrLiteral_UnmarshalForms(t *testing.T) {
	cases := []struct {
		in      string
		wantRef string
		wantLit string
	}{
		{`"玉米粒"`, "", "玉米粒"},
		{`"12.5"`, "", "12.5"},
		{`12.5`, "", "12.5"},
		{`3`, "", "3"},
		{`{"ref":"mat-001"}`, "mat-001", ""},
		{`null`, "", ""},
	}
	for _, tc := range cases {
		var r RefOrLiteral
		if err := json.Unmarshal([]byte(tc.in), &r); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", tc.in, err)
		}
		if r.Ref != tc.wantRef || r.Literal != tc.wantLit {
			t.Fatalf("Unmarshal(%s) = ref %q literal %q, expected ref %q literal %q",
				tc.in, r.Ref, r.Literal, tc.wantRef, tc.wantLit)
		}
	}
}

func TestRefOrLiteral_MarshalRoundTrip(t *testing.T) {
	cases := []string{
		`"玉米粒"`,
		`12.5`,
		`{"ref":"mat-001"}`,
	}
	for _, in := range cases {
		var r RefOrLiteral
		if err := json.Unmarshal([]byte(in), &r); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", in, err)
		}
		out, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("Marshal error for %s: %v", in, err)
		}
		if string(out) != in {
			t.Fatalf("round trip of %s produced %s", in, string(out))
		}
	}
}

func TestRefOrLiteral_RefObjectRequiresId(t *testing.T) {
	var r RefOrLiteral
	if err := json.Unmarshal([]byte(`{}`), &r); err == nil {
		t.Fatal("expected error for reference object without ref id")
	}
}

func TestRefOrLiteral_Decimal(t *testing.T) {
	cases := []struct {
		r        RefOrLiteral
		expected string
		wantErr  bool
	}{
		{NewLiteral("12.50"), "12.5", false},
		{NewLiteral(""), "0", false},
		{NewLiteral("not a number"), "", true},
		{NewRef("mat-001"), "", true},
	}
	for i, tc := range cases {
		d, err := tc.r.Decimal()
		if tc.wantErr {
			if err == nil {
				t.Fatalf("case %d: expected error", i)
			}
			continue
		}
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		if d.String() != tc.expected {
			t.Fatalf("case %d: expected %s, got %s", i, tc.expected, d.String())
		}
	}
}
