package mib2zabbix

import (
	"slices"
	"testing"
)

func prototypeNames(r *DiscoveryRule) []string {
	names := make([]string, len(r.Prototypes))
	for i, p := range r.Prototypes {
		names[i] = p.Name
	}
	return names
}

func TestAggregatorAddWalkColumn(t *testing.T) {
	a := NewAggregator()
	steps := []struct {
		table string
		index string
		name  string
		want  bool
	}{
		{table: "IF-MIB::ifTable", index: "ifDescr", name: "ifDescr.1", want: true},
		{table: "IF-MIB::ifTable", index: "ifDescr", name: "ifDescr.2", want: false},
		{table: "IF-MIB::ifTable", index: "ifType", name: "ifType.1", want: true},
		{table: "IP-MIB::ipAddrTable", index: "ipAdEntAddr", name: "ipAdEntAddr.1", want: true},
		{table: "IF-MIB::ifTable", index: "ifType", name: "ifType.2", want: false},
		{table: "IF-MIB::ifTable", index: "ifDescr", name: "ifDescr.3", want: true},
	}
	for i, s := range steps {
		if got := a.AddWalkColumn(s.table, s.index, ItemPrototype{Name: s.name}); got != s.want {
			t.Errorf("result mismatch, step=%d, got=%v, want=%v", i, got, s.want)
		}
	}

	rules := a.Rules()
	if got, want := len(rules), 2; got != want {
		t.Fatalf("rule count mismatch, got=%d, want=%d", got, want)
	}
	if got, want := rules[0].Table, "IF-MIB::ifTable"; got != want {
		t.Errorf("first rule mismatch, got=%s, want=%s", got, want)
	}
	if got, want := prototypeNames(rules[0]), []string{"ifDescr.1", "ifType.1", "ifDescr.3"}; !slices.Equal(got, want) {
		t.Errorf("prototypes mismatch, got=%v, want=%v", got, want)
	}
	if got, want := prototypeNames(rules[1]), []string{"ipAdEntAddr.1"}; !slices.Equal(got, want) {
		t.Errorf("prototypes mismatch, got=%v, want=%v", got, want)
	}
}

func TestAggregatorAddColumnKeepsDuplicates(t *testing.T) {
	a := NewAggregator()
	a.AddColumn("FOO-MIB::fooTable", ItemPrototype{Name: "fooStats"})
	a.AddColumn("FOO-MIB::fooTable", ItemPrototype{Name: "fooStats"})
	a.AddRule("FOO-MIB::barTable")
	a.AddRule("FOO-MIB::fooTable")

	rules := a.Rules()
	if got, want := len(rules), 2; got != want {
		t.Fatalf("rule count mismatch, got=%d, want=%d", got, want)
	}
	if got, want := len(rules[0].Prototypes), 2; got != want {
		t.Errorf("prototype count mismatch, got=%d, want=%d", got, want)
	}
	if got, want := len(rules[1].Prototypes), 0; got != want {
		t.Errorf("empty rule must stay empty, got=%d, want=%d", got, want)
	}
}

func TestAggregatorItemsOrder(t *testing.T) {
	a := NewAggregator()
	for _, name := range []string{"sysDescr", "sysUpTime", "sysName"} {
		a.AddScalar(Item{Name: name})
	}
	var got []string
	for _, item := range a.Items() {
		got = append(got, item.Name)
	}
	if want := []string{"sysDescr", "sysUpTime", "sysName"}; !slices.Equal(got, want) {
		t.Errorf("result mismatch, got=%v, want=%v", got, want)
	}
}
