package netsnmp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/hnakamur/mib2zabbix"
)

var ErrModuleNotFound = errors.New("MIB module not found or has no objects")

// Translator resolves symbols and OIDs with snmptranslate.
type Translator struct {
	runner  Runner
	logger  *zap.Logger
	mibDirs []string
	mibs    []string
}

type TranslatorOpt func(t *Translator)

// WithMIBDirs adds directories to the MIB search path (-M).
func WithMIBDirs(dirs ...string) TranslatorOpt {
	return func(t *Translator) {
		t.mibDirs = append(t.mibDirs, dirs...)
	}
}

// WithMIBs loads extra MIB modules or files (-m).
func WithMIBs(mibs ...string) TranslatorOpt {
	return func(t *Translator) {
		t.mibs = append(t.mibs, mibs...)
	}
}

func WithLogger(logger *zap.Logger) TranslatorOpt {
	return func(t *Translator) {
		t.logger = logger
	}
}

func NewTranslator(runner Runner, opts ...TranslatorOpt) *Translator {
	t := &Translator{runner: runner}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}
	return t
}

func (t *Translator) args(extraMIBs []string, args ...string) []string {
	var a []string
	if len(t.mibDirs) > 0 {
		a = append(a, "-M", "+"+strings.Join(t.mibDirs, ":"))
	}
	if mibs := append(append([]string(nil), t.mibs...), extraMIBs...); len(mibs) > 0 {
		a = append(a, "-m", "+"+strings.Join(mibs, ":"))
	}
	return append(a, args...)
}

// translate returns the trimmed output, or ErrNoOutput if there is none.
func (t *Translator) translate(ctx context.Context, args ...string) (string, error) {
	out, err := t.runner.Run(ctx, snmptranslate, t.args(nil, args...)...)
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(out))
	if s == "" {
		return "", ErrNoOutput
	}
	return s, nil
}

// Symbols lists the "MODULE::name" labels of every object defined by module.
func (t *Translator) Symbols(ctx context.Context, module string) ([]string, error) {
	out, err := t.runner.Run(ctx, snmptranslate, t.args([]string{module}, "-TB", ".")...)
	if err != nil {
		return nil, fmt.Errorf("list symbols of %s: %w", module, err)
	}
	prefix := module + "::"
	var symbols []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, prefix) {
			symbols = append(symbols, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, module)
	}
	t.logger.Debug("symbols listed", zap.String("module", module), zap.Int("count", len(symbols)))
	return symbols, nil
}

// ResolveRoot returns the numeric form of the walk root.
func (t *Translator) ResolveRoot(ctx context.Context, oid string) (string, error) {
	numeric, err := t.translate(ctx, "-On", oid)
	if err != nil {
		return "", fmt.Errorf("resolve root OID %s: %w", oid, err)
	}
	return numeric, nil
}

// Resolve translates a symbol or numeric OID. It fails only when the
// numeric OID cannot be obtained; the other attributes fall back to id or
// stay empty.
func (t *Translator) Resolve(ctx context.Context, id string) (mib2zabbix.ResolvedObject, error) {
	obj := mib2zabbix.ResolvedObject{Symbol: id}

	numeric, err := t.translate(ctx, "-On", id)
	if err != nil {
		return obj, fmt.Errorf("resolve %s: %w", id, err)
	}
	obj.OID = numeric

	obj.FullName = id
	if full, err := t.translate(ctx, id); err == nil {
		obj.FullName = full
	}

	if detail, err := t.translate(ctx, "-Td", id); err == nil {
		obj.Description = ParseDescription(detail)
		obj.Syntax = ParseSyntax(detail)
		obj.Type = mib2zabbix.BaseSyntax(obj.Syntax)
	}

	obj.FormattedOID = id
	if formatted, err := t.translate(ctx, "-Of", id); err == nil {
		obj.FormattedOID = formatted
	}
	return obj, nil
}

var (
	descriptionRegex = regexp.MustCompile(`(?s)DESCRIPTION\s+"([^"]*)"`)
	syntaxRegex      = regexp.MustCompile(`(?m)^\s*SYNTAX\s+(.+?)\s*$`)
	eventMacroRegex  = regexp.MustCompile(`(?m)^\s*\S+\s+(NOTIFICATION-TYPE|TRAP-TYPE)\s*$`)
)

// ParseDescription extracts the DESCRIPTION text from snmptranslate -Td
// output with runs of whitespace, newlines included, collapsed to one space.
func ParseDescription(detail string) string {
	m := descriptionRegex.FindStringSubmatch(detail)
	if m == nil {
		return ""
	}
	return strings.Join(strings.Fields(m[1]), " ")
}

// ParseSyntax extracts the SYNTAX clause from snmptranslate -Td output.
// Notifications and traps have no SYNTAX clause; their macro name is
// returned instead.
func ParseSyntax(detail string) string {
	if m := syntaxRegex.FindStringSubmatch(detail); m != nil {
		return m[1]
	}
	if m := eventMacroRegex.FindStringSubmatch(detail); m != nil {
		return m[1]
	}
	return ""
}
