package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func resetLogger() {
	Init(Options{})
}

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantDebug bool
		wantInfo  bool
		wantError bool
	}{
		{name: "default", opts: Options{}, wantDebug: false, wantInfo: true, wantError: true},
		{name: "debug", opts: Options{Debug: true}, wantDebug: true, wantInfo: true, wantError: true},
		{name: "quiet", opts: Options{Quiet: true}, wantDebug: false, wantInfo: false, wantError: true},
		{name: "quiet overrides debug", opts: Options{Debug: true, Quiet: true}, wantDebug: false, wantInfo: false, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.opts.Output = buf
			Init(tt.opts)
			defer resetLogger()

			Debug("debug line")
			Info("info line")
			Error("error line")

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out, "error line"); got != tt.wantError {
				t.Errorf("error logged = %v, want %v", got, tt.wantError)
			}
		})
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("processing file", "file", "a.pdf")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["msg"] != "processing file" {
		t.Errorf("msg = %v", line["msg"])
	}
	if line["file"] != "a.pdf" {
		t.Errorf("file = %v", line["file"])
	}
}

func TestEnabled(t *testing.T) {
	Init(Options{Quiet: true, Output: &bytes.Buffer{}})
	defer resetLogger()

	if Enabled(slog.LevelInfo) {
		t.Error("info should be disabled in quiet mode")
	}
	if !Enabled(slog.LevelError) {
		t.Error("error should be enabled in quiet mode")
	}
}

func TestWith_CarriesAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	With("run", "r1").Warn("move failed")

	out := buf.String()
	if !strings.Contains(out, "move failed") || !strings.Contains(out, "run=r1") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestErrorContext(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	ErrorContext(context.Background(), "report failed")
	if !strings.Contains(buf.String(), "report failed") {
		t.Error("ErrorContext should log message")
	}
}
