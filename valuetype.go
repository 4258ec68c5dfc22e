package mib2zabbix

import (
	"strings"

	"go.uber.org/zap"
)

// ValueType is the Zabbix item value type.
type ValueType string

const (
	ValueTypeFloat ValueType = "FLOAT"
	ValueTypeChar  ValueType = "CHAR"
	ValueTypeText  ValueType = "TEXT"
	ValueTypeLog   ValueType = "LOG"
)

// keys are upper case
var valueTypes = map[string]ValueType{
	"INTEGER":              ValueTypeFloat,
	"INTEGER32":            ValueTypeFloat,
	"UNSIGNED32":           ValueTypeFloat,
	"COUNTER":              ValueTypeFloat,
	"COUNTER32":            ValueTypeFloat,
	"COUNTER64":            ValueTypeFloat,
	"GAUGE":                ValueTypeFloat,
	"GAUGE32":              ValueTypeFloat,
	"TIMETICKS":            ValueTypeFloat,
	"TICKS":                ValueTypeFloat,
	"UINTEGER32":           ValueTypeFloat,
	"TRUTHVALUE":           ValueTypeFloat,
	"TIMESTAMP":            ValueTypeFloat,
	"INTERFACEINDEX":       ValueTypeFloat,
	"INTERFACEINDEXORZERO": ValueTypeFloat,
	"ROWSTATUS":            ValueTypeFloat,

	"STRING":            ValueTypeChar,
	"OCTET STRING":      ValueTypeChar,
	"OCTETSTR":          ValueTypeChar,
	"HEX-STRING":        ValueTypeChar,
	"OID":               ValueTypeChar,
	"OBJECT IDENTIFIER": ValueTypeChar,
	"OBJECTID":          ValueTypeChar,
	"DISPLAYSTRING":     ValueTypeChar,
	"SNMPADMINSTRING":   ValueTypeChar,
	"PHYSADDRESS":       ValueTypeChar,
	"MACADDRESS":        ValueTypeChar,

	"IPADDR":          ValueTypeText,
	"IPADDRESS":       ValueTypeText,
	"NETADDDR":        ValueTypeText,
	"NETWORK ADDRESS": ValueTypeText,
	"OPAQUE":          ValueTypeText,
	"BITS":            ValueTypeText,
	"BIT STRING":      ValueTypeText,
	`""`:              ValueTypeText,

	// printed by net-snmp when the agent's type disagrees with the MIB
	"WRONG TYPE (SHOULD BE GAUGE32 OR UNSIGNED32)": ValueTypeText,

	"TRAP":              ValueTypeLog,
	"NOTIF":             ValueTypeLog,
	"NOTIFICATION":      ValueTypeLog,
	"TRAP-TYPE":         ValueTypeLog,
	"NOTIFICATION-TYPE": ValueTypeLog,
}

// LookupValueType returns the value type for an SNMP type label.
// The match is case-insensitive and exact apart from surrounding spaces.
func LookupValueType(label string) (ValueType, bool) {
	vt, ok := valueTypes[strings.ToUpper(strings.TrimSpace(label))]
	return vt, ok
}

// TypeMapper maps type labels to value types, falling back to TEXT for
// labels it does not know.
type TypeMapper struct {
	logger *zap.Logger
}

func NewTypeMapper(logger *zap.Logger) *TypeMapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TypeMapper{logger: logger}
}

// ValueType never fails. An unknown label is logged once per call as a warning.
func (m *TypeMapper) ValueType(label string) ValueType {
	if vt, ok := LookupValueType(label); ok {
		return vt
	}
	m.logger.Warn("unhandled data type, using TEXT", zap.String("type", label))
	return ValueTypeText
}
