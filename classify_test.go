package mib2zabbix

import "testing"

func TestIsTableSymbol(t *testing.T) {
	testCases := []struct {
		symbol string
		syntax string
		want   bool
	}{
		{symbol: "IF-MIB::ifTable", syntax: "SEQUENCE OF IfEntry", want: true},
		{symbol: "IF-MIB::ifEntry", syntax: "IfEntry", want: true},
		{symbol: "FOO-MIB::fooStats.1", syntax: "Counter32", want: true},
		{symbol: "FOO-MIB::foo", syntax: "FooTable", want: true},
		{symbol: "IF-MIB::ifDescr", syntax: "OCTET STRING", want: false},
		{symbol: "SNMPv2-MIB::sysName", syntax: "OCTET STRING", want: false},
		{symbol: "IF-MIB::iftable", syntax: "", want: false},
	}
	for _, c := range testCases {
		if got := IsTableSymbol(c.symbol, c.syntax); got != c.want {
			t.Errorf("result mismatch, symbol=%s, syntax=%s, got=%v, want=%v",
				c.symbol, c.syntax, got, c.want)
		}
	}
}

func TestWalkTable(t *testing.T) {
	testCases := []struct {
		input     string
		wantTable string
		wantIndex string
		wantOK    bool
	}{
		{
			input:     ".iso.org.dod.internet.mgmt.mib-2.interfaces.ifTable.ifEntry.ifDescr.1",
			wantTable: "ifTable",
			wantIndex: "ifDescr",
			wantOK:    true,
		},
		{
			input:     ".iso.org.dod.internet.mgmt.mib-2.interfaces.IFTABLE",
			wantTable: "IFTABLE",
			wantOK:    true,
		},
		{
			input:  ".iso.org.dod.internet.mgmt.mib-2.system.sysName.0",
			wantOK: false,
		},
		{
			input:  ".iso.org.dod.internet.mgmt.mib-2.interfaces",
			wantOK: false,
		},
		{
			input:  ".1.3.6.1.2.1.2.2.1.2.1",
			wantOK: false,
		},
		{
			input:  "",
			wantOK: false,
		},
	}
	for _, c := range testCases {
		table, index, ok := WalkTable(c.input)
		if table != c.wantTable || index != c.wantIndex || ok != c.wantOK {
			t.Errorf("result mismatch, input=%s, got=(%q, %q, %v), want=(%q, %q, %v)",
				c.input, table, index, ok, c.wantTable, c.wantIndex, c.wantOK)
		}
	}
}

func TestBaseSyntax(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{input: "INTEGER {up(1), down(2), testing(3)}", want: "INTEGER"},
		{input: "OCTET STRING (SIZE(0..255))", want: "OCTET STRING"},
		{input: "  Counter32 ", want: "Counter32"},
		{input: "DisplayString (SIZE (0..255))", want: "DisplayString"},
		{input: "SEQUENCE OF IfEntry", want: "SEQUENCE OF IfEntry"},
		{input: "", want: ""},
	}
	for _, c := range testCases {
		if got := BaseSyntax(c.input); got != c.want {
			t.Errorf("result mismatch, input=%q, got=%q, want=%q", c.input, got, c.want)
		}
	}
}

func TestItemKey(t *testing.T) {
	testCases := []struct {
		fullName string
		oid      string
		want     string
	}{
		{fullName: "IF-MIB::ifNumber.0", oid: ".1.3.6.1.2.1.2.1.0", want: "IF-MIB.ifNumber.0"},
		{fullName: ".1.3.6.1.4.1.9999.1", oid: ".1.3.6.1.4.1.9999.1", want: ".1.3.6.1.4.1.9999.1"},
	}
	for _, c := range testCases {
		if got := itemKey(c.fullName, c.oid); got != c.want {
			t.Errorf("result mismatch, fullName=%s, got=%s, want=%s", c.fullName, got, c.want)
		}
	}
}
