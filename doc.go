// Package mib2zabbix converts SNMP object definitions into Zabbix template XML.
//
// Objects come either from MIB modules scanned with snmptranslate
// (DefinitionBuilder) or from a live walk of a device (WalkBuilder).
// Both fold resolved objects into an Aggregator, which a Template renders
// in the Zabbix 6.0 export format.
//
// OID resolution and walking live behind the Resolver and Walker interfaces.
// The implementations shelling out to net-snmp are in internal/netsnmp and the
// gosnmp based walker is in internal/snmpwalk.
package mib2zabbix
