package mib2zabbix

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// DefinitionBuilder folds the objects of a MIB module scan into an Aggregator.
type DefinitionBuilder struct {
	agg    *Aggregator
	types  *TypeMapper
	logger *zap.Logger
}

func NewDefinitionBuilder(logger *zap.Logger) *DefinitionBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefinitionBuilder{
		agg:    NewAggregator(),
		types:  NewTypeMapper(logger),
		logger: logger,
	}
}

func (b *DefinitionBuilder) Aggregator() *Aggregator {
	return b.agg
}

// Run resolves each symbol and adds it. Symbols without a module part or
// that fail to resolve are skipped.
func (b *DefinitionBuilder) Run(ctx context.Context, r Resolver, symbols []string) error {
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !strings.Contains(symbol, "::") {
			b.logger.Debug("skip symbol without module", zap.String("symbol", symbol))
			continue
		}
		obj, err := r.Resolve(ctx, symbol)
		if err != nil {
			b.logger.Debug("skip unresolvable symbol", zap.String("symbol", symbol), zap.Error(err))
			continue
		}
		b.Add(obj)
	}
	return nil
}

// Add classifies obj and adds it as a scalar item, a table column or an
// empty table.
func (b *DefinitionBuilder) Add(obj ResolvedObject) {
	module, name, ok := strings.Cut(obj.Symbol, "::")
	if !ok {
		return
	}
	obj.IsTableMember = IsTableSymbol(obj.Symbol, obj.Syntax)
	if obj.IsTableMember {
		table := module + "::" + stripIndex(name)
		b.agg.AddRule(table)
		if !strings.Contains(obj.Symbol, ".1") {
			b.logger.Info("TABLE", zap.String("table", table))
			return
		}
		p := ItemPrototype{
			Name:        shortName(obj.FullName),
			FullName:    obj.FullName,
			Key:         itemKey(obj.FullName, obj.OID),
			OID:         obj.OID,
			ValueType:   b.types.ValueType(obj.Type),
			Description: obj.Description,
		}
		b.agg.AddColumn(table, p)
		b.logger.Info("ITEM_PROTOTYPE", zap.String("table", table), zap.String("name", obj.FullName))
		return
	}

	item := Item{
		Name:        localName(obj.FullName),
		FullName:    obj.FullName,
		Key:         itemKey(obj.FullName, obj.OID),
		OID:         obj.OID,
		ValueType:   b.types.ValueType(obj.Type),
		Description: obj.Description,
	}
	b.agg.AddScalar(item)
	b.logger.Info("ITEM", zap.String("name", obj.FullName), zap.String("oid", obj.OID))
}

const sysNameOID = ".1.3.6.1.2.1.1.5.0"

// WalkBuilder folds the variables of a live walk into an Aggregator.
type WalkBuilder struct {
	agg          *Aggregator
	types        *TypeMapper
	logger       *zap.Logger
	templateName string
}

func NewWalkBuilder(logger *zap.Logger) *WalkBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalkBuilder{
		agg:    NewAggregator(),
		types:  NewTypeMapper(logger),
		logger: logger,
	}
}

func (b *WalkBuilder) Aggregator() *Aggregator {
	return b.agg
}

// TemplateName returns the device's sysName.0 if the walk contained it.
func (b *WalkBuilder) TemplateName() string {
	return b.templateName
}

// Run parses and adds every walk line. Malformed lines are skipped and OIDs
// the resolver fails on are kept under their numeric form.
func (b *WalkBuilder) Run(ctx context.Context, r Resolver, lines []string) error {
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, ok := ParseWalkLine(line)
		if !ok {
			continue
		}
		obj, err := r.Resolve(ctx, v.OID)
		if err != nil {
			b.logger.Debug("use raw OID", zap.String("oid", v.OID), zap.Error(err))
			obj = FallbackObject(v.OID)
		}
		b.Add(v, obj)
	}
	return nil
}

// Add adds one walked variable. Table members keep one prototype per run of
// equal index segments.
func (b *WalkBuilder) Add(v Variable, obj ResolvedObject) {
	if table, index, ok := WalkTable(obj.FormattedOID); ok {
		tableName := moduleName(obj.FullName) + "::" + table
		name := index
		if name == "" {
			name = "column"
		}
		p := ItemPrototype{
			Name:        name,
			FullName:    obj.FullName,
			Key:         columnKey(obj.FullName, v.OID),
			OID:         columnOID(v.OID, obj.FormattedOID),
			ValueType:   b.types.ValueType(v.Type),
			Description: obj.Description,
		}
		if b.agg.AddWalkColumn(tableName, index, p) {
			b.logger.Info("ITEM_PROTOTYPE", zap.String("table", tableName), zap.String("name", name))
		}
		return
	}

	if v.OID == sysNameOID && v.Value != "" {
		b.templateName = unquote(v.Value)
	}
	item := Item{
		Name:        shortName(obj.FullName),
		FullName:    obj.FullName,
		Key:         itemKey(obj.FullName, v.OID),
		OID:         v.OID,
		ValueType:   b.types.ValueType(v.Type),
		Description: obj.Description,
	}
	b.agg.AddScalar(item)
	b.logger.Info("ITEM", zap.String("name", item.Name), zap.String("oid", v.OID))
}

// columnKey turns "IF-MIB::ifDescr.1" into "IF-MIB.ifDescr".
func columnKey(fullName, oid string) string {
	if !strings.Contains(fullName, "::") {
		return oid
	}
	return moduleName(fullName) + "." + stripIndex(localName(fullName))
}

// columnOID removes the row index arcs from a walked OID. Up to the column
// each formatted segment names exactly one arc, so the column is the 10th
// arc whatever the index encodes.
func columnOID(oid, formattedOID string) string {
	if len(strings.Split(formattedOID, ".")) <= walkIndexSegment+1 {
		return oid
	}
	arcs := strings.Split(strings.TrimPrefix(oid, "."), ".")
	if len(arcs) <= walkIndexSegment {
		return oid
	}
	col := strings.Join(arcs[:walkIndexSegment], ".")
	if strings.HasPrefix(oid, ".") {
		return "." + col
	}
	return col
}

// shortName turns "IF-MIB::ifDescr.1" into "ifDescr". Names without a
// module part are returned unchanged.
func shortName(fullName string) string {
	if !strings.Contains(fullName, "::") {
		return fullName
	}
	return stripIndex(localName(fullName))
}
