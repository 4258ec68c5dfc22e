package mib2zabbix

import (
	"context"
	"strings"
)

// ResolvedObject is what the resolver knows about one symbol or OID.
type ResolvedObject struct {
	// Symbol is the identifier the object was resolved from, either a
	// "Module::name" symbol or a numeric OID.
	Symbol string

	// FullName is the fully qualified name, e.g. "IF-MIB::ifDescr.1".
	FullName string

	Description string

	// Syntax is the SYNTAX clause as printed and Type its base label.
	Syntax string
	Type   string

	// OID is numeric with a leading dot, e.g. ".1.3.6.1.2.1.2.2.1.2.1".
	OID string

	// FormattedOID has every arc labelled,
	// e.g. ".iso.org.dod.internet.mgmt.mib-2.interfaces.ifTable.ifEntry.ifDescr.1".
	FormattedOID string

	IsTableMember bool
}

// FallbackObject stands in for an OID the resolver could not translate.
// The raw OID is used for every name.
func FallbackObject(oid string) ResolvedObject {
	return ResolvedObject{
		Symbol:       oid,
		FullName:     oid,
		OID:          oid,
		FormattedOID: oid,
	}
}

// Resolver translates a symbol or numeric OID.
type Resolver interface {
	Resolve(ctx context.Context, id string) (ResolvedObject, error)
}

// Walker walks an SNMP agent below root and returns one
// "OID = TYPE: VALUE" line per variable.
type Walker interface {
	Walk(ctx context.Context, target string, creds Credentials, root string) ([]string, error)
}

// Item is a scalar Zabbix item. Items are not modified after creation.
type Item struct {
	Name        string
	FullName    string
	Key         string
	OID         string
	ValueType   ValueType
	Description string
}

// ItemPrototype is a table column. The {#SNMPINDEX} placeholder is added to
// its name, OID and key when the template is rendered.
type ItemPrototype Item

// DiscoveryRule groups the columns of one table.
type DiscoveryRule struct {
	// Table is "Module::table".
	Table      string
	Prototypes []ItemPrototype

	lastIndex    string
	hasLastIndex bool
}

// Name returns the table name without its module.
func (r *DiscoveryRule) Name() string {
	return localName(r.Table)
}

// Key returns the discovery rule key, "Module.table".
func (r *DiscoveryRule) Key() string {
	return strings.ReplaceAll(r.Table, "::", ".")
}
