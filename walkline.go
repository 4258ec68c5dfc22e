package mib2zabbix

import "strings"

// Variable is one parsed line of snmpwalk -On output.
type Variable struct {
	OID   string
	Type  string
	Value string
}

const noMoreVariables = "NO MORE VARIABLES LEFT"

// ParseWalkLine parses "OID = TYPE: VALUE". A value without a type,
// "OID = VALUE", gets the type STRING. Blank lines, lines without "=",
// lines whose left side is not a numeric OID (continuations of multi-line
// strings) and the end-of-MIB notice are rejected.
func ParseWalkLine(line string) (Variable, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.Contains(strings.ToUpper(line), noMoreVariables) {
		return Variable{}, false
	}
	oid, rest, ok := strings.Cut(line, "=")
	if !ok {
		return Variable{}, false
	}
	v := Variable{OID: strings.TrimSpace(oid)}
	if !isNumericOID(v.OID) {
		return Variable{}, false
	}
	rest = strings.TrimSpace(rest)
	if typ, value, ok := strings.Cut(rest, ":"); ok {
		v.Type = strings.TrimSpace(typ)
		v.Value = strings.TrimSpace(value)
	} else {
		v.Type = "STRING"
		v.Value = rest
	}
	return v, true
}

// isNumericOID reports whether s looks like ".1.3.6.1" or "1.3.6.1".
func isNumericOID(s string) bool {
	if s == "" || !strings.ContainsAny(s, "0123456789") {
		return false
	}
	for _, r := range s {
		if r != '.' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
