package mib2zabbix

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLookupValueType(t *testing.T) {
	testCases := []struct {
		input  string
		want   ValueType
		wantOK bool
	}{
		{input: "Counter32", want: ValueTypeFloat, wantOK: true},
		{input: "INTEGER", want: ValueTypeFloat, wantOK: true},
		{input: "timeticks", want: ValueTypeFloat, wantOK: true},
		{input: " Gauge32 ", want: ValueTypeFloat, wantOK: true},
		{input: "STRING", want: ValueTypeChar, wantOK: true},
		{input: "OCTET STRING", want: ValueTypeChar, wantOK: true},
		{input: "Hex-STRING", want: ValueTypeChar, wantOK: true},
		{input: "DisplayString", want: ValueTypeChar, wantOK: true},
		{input: "IpAddress", want: ValueTypeText, wantOK: true},
		{input: `""`, want: ValueTypeText, wantOK: true},
		{input: "Wrong Type (should be Gauge32 or Unsigned32)", want: ValueTypeText, wantOK: true},
		{input: "NOTIFICATION-TYPE", want: ValueTypeLog, wantOK: true},
		{input: "TRAP", want: ValueTypeLog, wantOK: true},
		{input: "FooBar", wantOK: false},
		{input: "", wantOK: false},
	}
	for _, c := range testCases {
		got, gotOK := LookupValueType(c.input)
		if got != c.want || gotOK != c.wantOK {
			t.Errorf("result mismatch, input=%q, got=(%s, %v), want=(%s, %v)",
				c.input, got, gotOK, c.want, c.wantOK)
		}
	}
}

func TestTypeMapperUnknownWarnsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := NewTypeMapper(zap.New(core))

	if got, want := m.ValueType("FooBar"), ValueTypeText; got != want {
		t.Errorf("result mismatch, got=%s, want=%s", got, want)
	}
	if got, want := logs.Len(), 1; got != want {
		t.Fatalf("log count mismatch, got=%d, want=%d", got, want)
	}
	entry := logs.All()[0]
	if entry.Level != zapcore.WarnLevel {
		t.Errorf("level mismatch, got=%s, want=%s", entry.Level, zapcore.WarnLevel)
	}
	if got, want := entry.ContextMap()["type"], "FooBar"; got != want {
		t.Errorf("type field mismatch, got=%v, want=%s", got, want)
	}

	m.ValueType("Counter32")
	if got, want := logs.Len(), 1; got != want {
		t.Errorf("known type must not log, got=%d entries, want=%d", got, want)
	}
}
