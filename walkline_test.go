package mib2zabbix

import "testing"

func TestParseWalkLine(t *testing.T) {
	testCases := []struct {
		input  string
		want   Variable
		wantOK bool
	}{
		{
			input:  `.1.3.6.1.2.1.1.5.0 = STRING: "router1"`,
			want:   Variable{OID: ".1.3.6.1.2.1.1.5.0", Type: "STRING", Value: `"router1"`},
			wantOK: true,
		},
		{
			input:  ".1.3.6.1.2.1.2.2.1.10.1 = Counter32: 123456",
			want:   Variable{OID: ".1.3.6.1.2.1.2.2.1.10.1", Type: "Counter32", Value: "123456"},
			wantOK: true,
		},
		{
			input:  ".1.3.6.1.2.1.1.3.0 = Timeticks: (8823) 0:01:28.23",
			want:   Variable{OID: ".1.3.6.1.2.1.1.3.0", Type: "Timeticks", Value: "(8823) 0:01:28.23"},
			wantOK: true,
		},
		{
			input:  `.1.3.6.1.2.1.2.2.1.6.1 = ""`,
			want:   Variable{OID: ".1.3.6.1.2.1.2.2.1.6.1", Type: "STRING", Value: `""`},
			wantOK: true,
		},
		{input: "", wantOK: false},
		{input: "   ", wantOK: false},
		{input: "garbage without separator", wantOK: false},
		{input: ".1.3.6.1.6.3.1 = No more variables left in this MIB View (It is past the end of the MIB tree)", wantOK: false},
		{input: " = STRING: x", wantOK: false},
		{input: "contact=noc@example.com, location=rack 4", wantOK: false},
		{input: `Linux router1 5.10.0 #1 SMP x86_64 = "continued"`, wantOK: false},
		{
			input:  "1.3.6.1.2.1.1.7.0 = INTEGER: 72",
			want:   Variable{OID: "1.3.6.1.2.1.1.7.0", Type: "INTEGER", Value: "72"},
			wantOK: true,
		},
	}
	for _, c := range testCases {
		got, gotOK := ParseWalkLine(c.input)
		if got != c.want || gotOK != c.wantOK {
			t.Errorf("result mismatch, input=%q, got=(%+v, %v), want=(%+v, %v)",
				c.input, got, gotOK, c.want, c.wantOK)
		}
	}
}
