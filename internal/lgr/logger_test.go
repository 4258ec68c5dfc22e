package lgr

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "console", want: FormatConsole},
		{input: "JSON", want: FormatJSON},
		{input: "logfmt", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, c := range testCases {
		got, err := ParseFormat(c.input)
		if (err != nil) != c.wantErr || got != c.want {
			t.Errorf("result mismatch, input=%q, got=(%q, %v), want=(%q, wantErr=%v)",
				c.input, got, err, c.want, c.wantErr)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, zapcore.InfoLevel, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	logger.Info("ITEM", zap.String("name", "sysName"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if got, want := len(lines), 1; got != want {
		t.Fatalf("line count mismatch, got=%d, want=%d, output=%s", got, want, buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["msg"] != "ITEM" || entry["name"] != "sysName" || entry["level"] != "info" {
		t.Errorf("entry mismatch, got=%v", entry)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, zapcore.WarnLevel, FormatConsole)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("unhandled data type, using TEXT", zap.String("type", "FooBar"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("entry below level must be dropped: %s", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, `"type": "FooBar"`) {
		t.Errorf("output mismatch: %s", out)
	}
}
