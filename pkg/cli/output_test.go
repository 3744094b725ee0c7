package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"
)

type textResult struct{ msg string }

func (r textResult) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, "result: "+r.msg+"\n")
	return err
}

type junitResult struct{}

func (junitResult) JUnit() JUnitTestSuites {
	return JUnitTestSuites{Suites: []JUnitTestSuite{{
		Name:     "eddf",
		Tests:    2,
		Failures: 1,
		Time:     JUnitSeconds(1500 * time.Millisecond),
		Cases: []JUnitTestCase{
			{Name: "ok", Classname: "eddf"},
			{Name: "rfl", Classname: "eddf", Failure: &JUnitFailure{Message: "expected RFL", Text: "got OK"}},
		},
	}}}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"junit", FormatJUnit, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatText)

	if err := f.FormatTo(&buf, textResult{"OK"}); err != nil {
		t.Fatal(err)
	}
	if err := f.FormatTo(&buf, 42); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "result: OK\n42\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatJSON).FormatTo(&buf, map[string]int{"rules": 3}); err != nil {
		t.Fatal(err)
	}
	var got map[string]int
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if got["rules"] != 3 {
		t.Errorf("rules = %d, want 3", got["rules"])
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented output")
	}
}

func TestJUnitFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJUnit)
	if err := f.FormatTo(&buf, junitResult{}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<testsuites tests="2" failures="1">`,
		`<testsuite name="eddf" tests="2" failures="1" time="1.500">`,
		`<failure message="expected RFL">got OK</failure>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}

	if err := f.FormatTo(&buf, 42); err == nil {
		t.Error("expected an error for a value without a JUnit rendering")
	}
}
