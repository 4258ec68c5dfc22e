package mib2zabbix

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
	"testing"
)

type parsedExport struct {
	Version   string `xml:"version"`
	Templates []struct {
		UUID        string   `xml:"uuid"`
		Template    string   `xml:"template"`
		Name        string   `xml:"name"`
		Description string   `xml:"description"`
		Groups      []string `xml:"groups>group>name"`
		Items       []struct {
			UUID        string `xml:"uuid"`
			Name        string `xml:"name"`
			SNMPOID     string `xml:"snmp_oid"`
			Key         string `xml:"key"`
			ValueType   string `xml:"value_type"`
			Description string `xml:"description"`
			History     string `xml:"history"`
			Trends      string `xml:"trends"`
			Status      string `xml:"status"`
			Delay       string `xml:"delay"`
		} `xml:"items>item"`
		Rules []struct {
			UUID       string `xml:"uuid"`
			Name       string `xml:"name"`
			Key        string `xml:"key"`
			SNMPOID    string `xml:"snmp_oid"`
			Status     string `xml:"status"`
			Prototypes []struct {
				UUID    string `xml:"uuid"`
				Name    string `xml:"name"`
				SNMPOID string `xml:"snmp_oid"`
				Key     string `xml:"key"`
				Trends  string `xml:"trends"`
				Status  string `xml:"status"`
			} `xml:"item_prototypes>item_prototype"`
		} `xml:"discovery_rules>discovery_rule"`
	} `xml:"templates>template"`
}

func renderAndParse(t *testing.T, tmpl *Template) (string, *parsedExport) {
	t.Helper()
	b, err := tmpl.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	var doc parsedExport
	if err := xml.Unmarshal(b, &doc); err != nil {
		t.Fatalf("rendered XML does not parse: %s\n%s", err, b)
	}
	return string(b), &doc
}

func sampleAggregator() *Aggregator {
	a := NewAggregator()
	a.AddScalar(Item{
		Name:        "sysName",
		Key:         "SNMPv2-MIB.sysName.0",
		OID:         ".1.3.6.1.2.1.1.5.0",
		ValueType:   ValueTypeChar,
		Description: "name <of> node\nsecond line",
	})
	a.AddWalkColumn("IF-MIB::ifTable", "ifDescr", ItemPrototype{
		Name:      "ifDescr",
		Key:       "IF-MIB.ifDescr",
		OID:       ".1.3.6.1.2.1.2.2.1.2",
		ValueType: ValueTypeChar,
	})
	return a
}

func TestTemplateRender(t *testing.T) {
	opts := DefaultRenderOptions()
	tmpl := NewTemplate("router1", "Templates", "generated", sampleAggregator(), opts)
	raw, doc := renderAndParse(t, tmpl)

	if !strings.HasPrefix(raw, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("missing XML header: %s", raw)
	}
	if strings.Contains(raw, "\n\n") {
		t.Errorf("output must not contain blank lines: %s", raw)
	}
	if !strings.Contains(raw, "name &lt;of&gt; node") {
		t.Errorf("description not escaped: %s", raw)
	}
	if strings.Contains(raw, "<snmp_oid>discovery[") {
		t.Errorf("discovery payload must be off by default: %s", raw)
	}

	if got, want := doc.Version, "6.0"; got != want {
		t.Errorf("version mismatch, got=%s, want=%s", got, want)
	}
	if got, want := len(doc.Templates), 1; got != want {
		t.Fatalf("template count mismatch, got=%d, want=%d", got, want)
	}
	tpl := doc.Templates[0]
	if got, want := tpl.Name, "router1 SNMP"; got != want {
		t.Errorf("name mismatch, got=%s, want=%s", got, want)
	}
	if got, want := tpl.Template, "router1 SNMP"; got != want {
		t.Errorf("template mismatch, got=%s, want=%s", got, want)
	}
	if got, want := fmt.Sprint(tpl.Groups), "[Templates]"; got != want {
		t.Errorf("groups mismatch, got=%s, want=%s", got, want)
	}

	if got, want := len(tpl.Items), 1; got != want {
		t.Fatalf("item count mismatch, got=%d, want=%d", got, want)
	}
	item := tpl.Items[0]
	if item.History != "7d" || item.Trends != "365d" || item.Delay != "60" || item.Status != "DISABLED" {
		t.Errorf("item settings mismatch, got=%+v", item)
	}
	if got, want := item.Description, "name <of> node\nsecond line"; got != want {
		t.Errorf("description mismatch, got=%q, want=%q", got, want)
	}
	if got, want := item.ValueType, "CHAR"; got != want {
		t.Errorf("value type mismatch, got=%s, want=%s", got, want)
	}

	if got, want := len(tpl.Rules), 1; got != want {
		t.Fatalf("rule count mismatch, got=%d, want=%d", got, want)
	}
	rule := tpl.Rules[0]
	if rule.Name != "ifTable" || rule.Key != "IF-MIB.ifTable" || rule.Status != "DISABLED" {
		t.Errorf("rule mismatch, got=%+v", rule)
	}
	if got, want := len(rule.Prototypes), 1; got != want {
		t.Fatalf("prototype count mismatch, got=%d, want=%d", got, want)
	}
	p := rule.Prototypes[0]
	if got, want := p.Name, "ifDescr.{#SNMPINDEX}"; got != want {
		t.Errorf("prototype name mismatch, got=%s, want=%s", got, want)
	}
	if got, want := p.SNMPOID, ".1.3.6.1.2.1.2.2.1.2.{#SNMPINDEX}"; got != want {
		t.Errorf("prototype oid mismatch, got=%s, want=%s", got, want)
	}
	if got, want := p.Key, "IF-MIB.ifDescr[{#SNMPINDEX}]"; got != want {
		t.Errorf("prototype key mismatch, got=%s, want=%s", got, want)
	}
	if p.Trends != "365d" || p.Status != "DISABLED" {
		t.Errorf("prototype settings mismatch, got=%+v", p)
	}
}

func TestTemplateRenderUUIDs(t *testing.T) {
	_, doc := renderAndParse(t, NewTemplate("x", "Templates", "", sampleAggregator(), DefaultRenderOptions()))
	tpl := doc.Templates[0]
	uuids := []string{tpl.UUID, tpl.Items[0].UUID, tpl.Rules[0].UUID, tpl.Rules[0].Prototypes[0].UUID}
	re := regexp.MustCompile(`^[0-9a-f]{32}$`)
	seen := make(map[string]bool)
	for _, id := range uuids {
		if !re.MatchString(id) {
			t.Errorf("malformed uuid %q", id)
		}
		if seen[id] {
			t.Errorf("duplicated uuid %q", id)
		}
		seen[id] = true
	}
}

func TestTemplateRenderEnabledItems(t *testing.T) {
	opts := DefaultRenderOptions()
	opts.EnableItems = true
	opts.HistoryDays = 14
	opts.CheckDelay = "5m"
	_, doc := renderAndParse(t, NewTemplate("x", "Templates", "", sampleAggregator(), opts))
	item := doc.Templates[0].Items[0]
	if item.Status != "ENABLED" || item.History != "14d" || item.Delay != "5m" {
		t.Errorf("item settings mismatch, got=%+v", item)
	}
	if got, want := doc.Templates[0].Rules[0].Prototypes[0].Status, "DISABLED"; got != want {
		t.Errorf("prototype status mismatch, got=%s, want=%s", got, want)
	}
}

func TestTemplateRenderEmpty(t *testing.T) {
	raw, doc := renderAndParse(t, NewTemplate("empty", "Templates", "", NewAggregator(), DefaultRenderOptions()))
	if strings.Contains(raw, "<items>") || strings.Contains(raw, "<discovery_rules>") {
		t.Errorf("empty template must not have items or rules: %s", raw)
	}
	if got, want := len(doc.Templates), 1; got != want {
		t.Errorf("template count mismatch, got=%d, want=%d", got, want)
	}
}

func TestTemplateRenderDiscoveryOID(t *testing.T) {
	opts := DefaultRenderOptions()
	opts.DiscoveryOIDs = true
	_, doc := renderAndParse(t, NewTemplate("x", "Templates", "", sampleAggregator(), opts))
	if got, want := doc.Templates[0].Rules[0].SNMPOID, "discovery[{#IFDESCR},.1.3.6.1.2.1.2.2.1.2]"; got != want {
		t.Errorf("discovery oid mismatch, got=%s, want=%s", got, want)
	}
}

func TestDiscoveryOIDLimit(t *testing.T) {
	var prototypes []ItemPrototype
	for i := 0; i < 40; i++ {
		prototypes = append(prototypes, ItemPrototype{
			Name: fmt.Sprintf("column-%d", i),
			OID:  fmt.Sprintf(".1.3.6.1.4.1.99999.1.1.%d", i),
		})
	}
	got := DiscoveryOID(prototypes)
	if len(got) > 500 {
		t.Errorf("payload too long, len=%d", len(got))
	}
	if !strings.HasPrefix(got, "discovery[{#COLUMN_0},.1.3.6.1.4.1.99999.1.1.0,{#COLUMN_1},") {
		t.Errorf("payload must keep accumulation order, got=%s", got)
	}
	if !strings.HasSuffix(got, "]") || strings.HasSuffix(got, ",]") {
		t.Errorf("payload malformed, got=%s", got)
	}
	if strings.Contains(got, "{#COLUMN_39}") {
		t.Errorf("entries beyond the limit must be dropped, got=%s", got)
	}

	if got, want := DiscoveryOID(nil), "discovery[]"; got != want {
		t.Errorf("result mismatch, got=%s, want=%s", got, want)
	}
}
