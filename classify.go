package mib2zabbix

import "strings"

// IsTableSymbol reports whether a symbol from a MIB scan belongs to a table.
// The test is purely textual and matches table, entry and column symbols
// alike, as well as any symbol whose name happens to contain ".1".
func IsTableSymbol(symbol, syntax string) bool {
	return strings.Contains(symbol, ".1") ||
		strings.Contains(symbol, "Table") ||
		strings.Contains(symbol, "Entry") ||
		strings.Contains(syntax, "Table")
}

const (
	walkTableSegment = 8
	walkIndexSegment = 10
)

// WalkTable inspects a formatted OID such as
// ".iso.org.dod.internet.mgmt.mib-2.interfaces.ifTable.ifEntry.ifDescr.1".
// Segments are counted after splitting on ".", so the empty string before
// the leading dot is segment 0. When segment 8 ends with "table" in any case,
// the OID is a table member, table is that segment and index is segment 10
// (empty if the OID is shorter).
func WalkTable(formattedOID string) (table, index string, ok bool) {
	parts := strings.Split(formattedOID, ".")
	if len(parts) <= walkTableSegment {
		return "", "", false
	}
	if !strings.HasSuffix(strings.ToUpper(parts[walkTableSegment]), "TABLE") {
		return "", "", false
	}
	if len(parts) > walkIndexSegment {
		index = parts[walkIndexSegment]
	}
	return parts[walkTableSegment], index, true
}

// BaseSyntax reduces a SYNTAX clause to its base type by dropping size and
// range constraints and named-number lists.
//
//	BaseSyntax("INTEGER {up(1), down(2)}") == "INTEGER"
//	BaseSyntax("OCTET STRING (SIZE(0..255))") == "OCTET STRING"
func BaseSyntax(syntax string) string {
	s := strings.TrimSpace(syntax)
	if i := strings.IndexAny(s, "({"); i >= 0 {
		s = s[:i]
	}
	return strings.Join(strings.Fields(s), " ")
}

// itemKey turns "IF-MIB::ifNumber.0" into "IF-MIB.ifNumber.0".
// Names without a module part use the numeric OID instead.
func itemKey(fullName, oid string) string {
	if !strings.Contains(fullName, "::") {
		return oid
	}
	return strings.ReplaceAll(fullName, "::", ".")
}

// localName returns the part of "Module::name" after the module.
func localName(fullName string) string {
	if _, name, ok := strings.Cut(fullName, "::"); ok {
		return name
	}
	return fullName
}

// moduleName returns the part of "Module::name" before "::", or the whole
// string if there is no module part.
func moduleName(fullName string) string {
	module, _, _ := strings.Cut(fullName, "::")
	return module
}

// stripIndex drops everything from the first "." on.
func stripIndex(name string) string {
	base, _, _ := strings.Cut(name, ".")
	return base
}
