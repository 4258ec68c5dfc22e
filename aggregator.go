package mib2zabbix

import "slices"

// Aggregator collects items and discovery rules in first-seen order.
type Aggregator struct {
	items   []Item
	rules   []*DiscoveryRule
	byTable map[string]*DiscoveryRule
}

func NewAggregator() *Aggregator {
	return &Aggregator{byTable: make(map[string]*DiscoveryRule)}
}

func (a *Aggregator) AddScalar(item Item) {
	a.items = append(a.items, item)
}

// AddRule returns the rule for table, creating an empty one on first use.
func (a *Aggregator) AddRule(table string) *DiscoveryRule {
	if r, ok := a.byTable[table]; ok {
		return r
	}
	r := &DiscoveryRule{Table: table}
	a.byTable[table] = r
	a.rules = append(a.rules, r)
	return r
}

// AddColumn appends p to the rule for table unconditionally.
func (a *Aggregator) AddColumn(table string, p ItemPrototype) {
	r := a.AddRule(table)
	r.Prototypes = append(r.Prototypes, p)
}

// AddWalkColumn appends p unless the prototype most recently appended to the
// same table has the same index. It reports whether p was appended.
func (a *Aggregator) AddWalkColumn(table, index string, p ItemPrototype) bool {
	r := a.AddRule(table)
	if r.hasLastIndex && r.lastIndex == index {
		return false
	}
	r.Prototypes = append(r.Prototypes, p)
	r.lastIndex = index
	r.hasLastIndex = true
	return true
}

func (a *Aggregator) Items() []Item {
	return slices.Clone(a.items)
}

func (a *Aggregator) Rules() []*DiscoveryRule {
	return slices.Clone(a.rules)
}
