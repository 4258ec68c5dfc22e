package mib2zabbix

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/hnakamur/mib2zabbix/internal/slicex"
)

const (
	exportVersion = "6.0"
	itemType      = "SNMP_AGENT"
	statusEnabled = "ENABLED"
	// also the status of every discovery rule and item prototype
	statusDisabled = "DISABLED"

	snmpIndexMacro = "{#SNMPINDEX}"

	// maximum length of the discovery[...] payload in a discovery rule
	discoveryOIDLimit = 500
)

// RenderOptions controls the intervals, retention and status written into a
// template.
type RenderOptions struct {
	CheckDelay     string `yaml:"check_delay" validate:"required"`
	DiscoveryDelay string `yaml:"discovery_delay" validate:"required"`
	HistoryDays    int    `yaml:"history" validate:"min=0"`
	TrendsDays     int    `yaml:"trends" validate:"min=0"`
	EnableItems    bool   `yaml:"enable_items"`

	// DiscoveryOIDs makes each discovery rule carry a
	// discovery[{#MACRO},oid,...] payload built from its prototypes.
	DiscoveryOIDs bool `yaml:"discovery_oids"`
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		CheckDelay:     "60",
		DiscoveryDelay: "3600",
		HistoryDays:    7,
		TrendsDays:     365,
	}
}

// Template is a Zabbix template ready to be rendered.
type Template struct {
	Name        string
	Group       string
	Description string
	Items       []Item
	Rules       []*DiscoveryRule
	Options     RenderOptions
}

// NewTemplate takes the items and rules collected in agg.
func NewTemplate(name, group, description string, agg *Aggregator, opts RenderOptions) *Template {
	return &Template{
		Name:        name,
		Group:       group,
		Description: description,
		Items:       agg.Items(),
		Rules:       agg.Rules(),
		Options:     opts,
	}
}

// Render writes the template as a Zabbix export document.
func (t *Template) Render(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(t.export()); err != nil {
		return fmt.Errorf("encode template %q: %w", t.Name, err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ExportName is the technical name of the template in Zabbix.
func (t *Template) ExportName() string {
	return t.Name + " SNMP"
}

func (t *Template) Bytes() ([]byte, error) {
	var b bytes.Buffer
	if err := t.Render(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

type exportDoc struct {
	XMLName   xml.Name       `xml:"zabbix_export"`
	Version   string         `xml:"version"`
	Templates []templateElem `xml:"templates>template"`
}

type templateElem struct {
	UUID           string      `xml:"uuid"`
	Template       string      `xml:"template"`
	Name           string      `xml:"name"`
	Description    string      `xml:"description"`
	Groups         []groupElem `xml:"groups>group"`
	Items          []itemElem  `xml:"items>item,omitempty"`
	DiscoveryRules []ruleElem  `xml:"discovery_rules>discovery_rule,omitempty"`
}

type groupElem struct {
	Name string `xml:"name"`
}

type itemElem struct {
	UUID        string `xml:"uuid"`
	Name        string `xml:"name"`
	Type        string `xml:"type"`
	SNMPOID     string `xml:"snmp_oid"`
	Key         string `xml:"key"`
	ValueType   string `xml:"value_type,omitempty"`
	Description string `xml:"description"`
	History     string `xml:"history"`
	Trends      string `xml:"trends"`
	Status      string `xml:"status"`
	Delay       string `xml:"delay"`
}

type ruleElem struct {
	UUID           string          `xml:"uuid"`
	Name           string          `xml:"name"`
	Delay          string          `xml:"delay"`
	Key            string          `xml:"key"`
	SNMPOID        string          `xml:"snmp_oid,omitempty"`
	Status         string          `xml:"status"`
	Type           string          `xml:"type"`
	ItemPrototypes []prototypeElem `xml:"item_prototypes>item_prototype,omitempty"`
}

type prototypeElem struct {
	UUID        string `xml:"uuid"`
	Name        string `xml:"name"`
	Type        string `xml:"type"`
	SNMPOID     string `xml:"snmp_oid"`
	Key         string `xml:"key"`
	ValueType   string `xml:"value_type,omitempty"`
	Delay       string `xml:"delay"`
	History     string `xml:"history"`
	Trends      string `xml:"trends"`
	Description string `xml:"description"`
	Status      string `xml:"status"`
}

func (t *Template) export() *exportDoc {
	return &exportDoc{
		Version: exportVersion,
		Templates: []templateElem{{
			UUID:           newUUID(),
			Template:       t.ExportName(),
			Name:           t.ExportName(),
			Description:    t.Description,
			Groups:         []groupElem{{Name: t.Group}},
			Items:          slicex.Map(t.Items, t.itemElem),
			DiscoveryRules: slicex.Map(t.Rules, t.ruleElem),
		}},
	}
}

func (t *Template) itemElem(item Item) itemElem {
	status := statusDisabled
	if t.Options.EnableItems {
		status = statusEnabled
	}
	return itemElem{
		UUID:        newUUID(),
		Name:        item.Name,
		Type:        itemType,
		SNMPOID:     item.OID,
		Key:         item.Key,
		ValueType:   string(item.ValueType),
		Description: item.Description,
		History:     days(t.Options.HistoryDays),
		Trends:      days(t.Options.TrendsDays),
		Status:      status,
		Delay:       t.Options.CheckDelay,
	}
}

func (t *Template) ruleElem(r *DiscoveryRule) ruleElem {
	e := ruleElem{
		UUID:           newUUID(),
		Name:           r.Name(),
		Delay:          t.Options.DiscoveryDelay,
		Key:            r.Key(),
		Status:         statusDisabled,
		Type:           itemType,
		ItemPrototypes: slicex.Map(r.Prototypes, t.prototypeElem),
	}
	if t.Options.DiscoveryOIDs {
		e.SNMPOID = DiscoveryOID(r.Prototypes)
	}
	return e
}

func (t *Template) prototypeElem(p ItemPrototype) prototypeElem {
	return prototypeElem{
		UUID:        newUUID(),
		Name:        p.Name + "." + snmpIndexMacro,
		Type:        itemType,
		SNMPOID:     p.OID + "." + snmpIndexMacro,
		Key:         p.Key + "[" + snmpIndexMacro + "]",
		ValueType:   string(p.ValueType),
		Delay:       t.Options.CheckDelay,
		History:     days(t.Options.HistoryDays),
		Trends:      days(t.Options.TrendsDays),
		Description: p.Description,
		Status:      statusDisabled,
	}
}

func days(n int) string {
	return fmt.Sprintf("%dd", n)
}

// DiscoveryOID builds "discovery[{#IFDESCR},.1.3.6.1.2.1.2.2.1.2,...]" from
// prototypes in order. Entries that would make the result longer than 500
// characters are left out, along with every entry after them.
func DiscoveryOID(prototypes []ItemPrototype) string {
	const prefix, suffix = "discovery[", "]"
	var b strings.Builder
	b.WriteString(prefix)
	n := 0
	for _, p := range prototypes {
		entry := "{#" + macroName(p.Name) + "}," + p.OID
		sep := ""
		if n > 0 {
			sep = ","
		}
		if b.Len()+len(sep)+len(entry)+len(suffix) > discoveryOIDLimit {
			break
		}
		b.WriteString(sep)
		b.WriteString(entry)
		n++
	}
	b.WriteString(suffix)
	return b.String()
}

// macroName upper-cases name and replaces characters Zabbix does not allow in
// LLD macros with "_".
func macroName(name string) string {
	return strings.Map(func(r rune) rune {
		r = unicode.ToUpper(r)
		if ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, name)
}
