// Package snmpwalk walks SNMP agents natively with gosnmp and prints the
// variables the way snmpwalk -On does.
package snmpwalk

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gosnmp/gosnmp"
	"go.uber.org/zap"

	"github.com/hnakamur/mib2zabbix"
)

const (
	defaultTimeout        = 5 * time.Second
	defaultRetries        = 3
	defaultMaxRepetitions = 25
)

// Walker implements mib2zabbix.Walker with gosnmp.
type Walker struct {
	logger  *zap.Logger
	timeout time.Duration
	retries int
}

type WalkerOpt func(w *Walker)

func WithTimeout(d time.Duration) WalkerOpt {
	return func(w *Walker) {
		if d > 0 {
			w.timeout = d
		}
	}
}

func WithRetries(n int) WalkerOpt {
	return func(w *Walker) {
		if n >= 0 {
			w.retries = n
		}
	}
}

func New(logger *zap.Logger, opts ...WalkerOpt) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Walker{logger: logger, timeout: defaultTimeout, retries: defaultRetries}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Walker) Walk(ctx context.Context, target string, creds mib2zabbix.Credentials, root string) ([]string, error) {
	g, err := newClient(ctx, target, creds, w.timeout, w.retries)
	if err != nil {
		return nil, err
	}
	if err := g.Connect(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", target, err)
	}
	defer g.Conn.Close()

	w.logger.Info("walking", zap.String("target", target), zap.String("root", root),
		zap.String("version", g.Version.String()))
	var pdus []gosnmp.SnmpPDU
	if g.Version == gosnmp.Version1 {
		pdus, err = g.WalkAll(root)
	} else {
		pdus, err = g.BulkWalkAll(root)
	}
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", target, err)
	}

	lines := make([]string, 0, len(pdus))
	for _, pdu := range pdus {
		line, ok := FormatPDU(pdu)
		if !ok {
			w.logger.Debug("skip variable", zap.String("oid", pdu.Name), zap.String("type", pdu.Type.String()))
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

var authProtocols = map[string]gosnmp.SnmpV3AuthProtocol{
	"MD5": gosnmp.MD5,
	"SHA": gosnmp.SHA,
}

var privProtocols = map[string]gosnmp.SnmpV3PrivProtocol{
	"DES": gosnmp.DES,
	"AES": gosnmp.AES,
}

var msgFlags = map[string]gosnmp.SnmpV3MsgFlags{
	"noauthnopriv": gosnmp.NoAuthNoPriv,
	"authnopriv":   gosnmp.AuthNoPriv,
	"authpriv":     gosnmp.AuthPriv,
}

func newClient(ctx context.Context, target string, creds mib2zabbix.Credentials, timeout time.Duration, retries int) (*gosnmp.GoSNMP, error) {
	port := creds.Port
	if port == 0 {
		port = 161
	}
	g := &gosnmp.GoSNMP{
		Target:         target,
		Port:           uint16(port),
		Transport:      "udp",
		Timeout:        timeout,
		Retries:        retries,
		MaxRepetitions: defaultMaxRepetitions,
		Context:        ctx,
	}

	switch creds.NormalizedVersion() {
	case "1":
		g.Version = gosnmp.Version1
		g.Community = creds.Community
	case "2c":
		g.Version = gosnmp.Version2c
		g.Community = creds.Community
	case "3":
		flags, ok := msgFlags[strings.ToLower(creds.SecurityLevel)]
		if !ok {
			return nil, fmt.Errorf("bad security level %q", creds.SecurityLevel)
		}
		params := &gosnmp.UsmSecurityParameters{UserName: creds.Username}
		if flags != gosnmp.NoAuthNoPriv {
			proto, ok := authProtocols[strings.ToUpper(creds.AuthProtocol)]
			if !ok {
				return nil, fmt.Errorf("bad auth protocol %q", creds.AuthProtocol)
			}
			params.AuthenticationProtocol = proto
			params.AuthenticationPassphrase = creds.AuthPassphrase
		}
		if flags == gosnmp.AuthPriv {
			proto, ok := privProtocols[strings.ToUpper(creds.PrivProtocol)]
			if !ok {
				return nil, fmt.Errorf("bad privacy protocol %q", creds.PrivProtocol)
			}
			params.PrivacyProtocol = proto
			params.PrivacyPassphrase = creds.PrivPassphrase
		}
		g.Version = gosnmp.Version3
		g.SecurityModel = gosnmp.UserSecurityModel
		g.MsgFlags = flags
		g.SecurityParameters = params
		g.ContextName = creds.Context
	default:
		return nil, fmt.Errorf("bad SNMP version %q", creds.Version)
	}
	return g, nil
}

// FormatPDU renders pdu as "OID = TYPE: VALUE" with the type labels used by
// snmpwalk. Exceptions such as noSuchObject are not rendered.
func FormatPDU(pdu gosnmp.SnmpPDU) (string, bool) {
	oid := pdu.Name
	if !strings.HasPrefix(oid, ".") {
		oid = "." + oid
	}

	var typ, value string
	switch pdu.Type {
	case gosnmp.OctetString:
		b, _ := pdu.Value.([]byte)
		if isPrintable(b) {
			typ, value = "STRING", `"`+string(b)+`"`
		} else {
			typ, value = "Hex-STRING", hexString(b)
		}
	case gosnmp.Integer:
		typ, value = "INTEGER", gosnmp.ToBigInt(pdu.Value).String()
	case gosnmp.Counter32:
		typ, value = "Counter32", gosnmp.ToBigInt(pdu.Value).String()
	case gosnmp.Gauge32:
		typ, value = "Gauge32", gosnmp.ToBigInt(pdu.Value).String()
	case gosnmp.Counter64:
		typ, value = "Counter64", gosnmp.ToBigInt(pdu.Value).String()
	case gosnmp.Uinteger32:
		typ, value = "UInteger32", gosnmp.ToBigInt(pdu.Value).String()
	case gosnmp.TimeTicks:
		typ, value = "Timeticks", formatTimeTicks(gosnmp.ToBigInt(pdu.Value).Uint64())
	case gosnmp.ObjectIdentifier:
		typ, value = "OID", fmt.Sprint(pdu.Value)
	case gosnmp.IPAddress:
		typ, value = "IpAddress", fmt.Sprint(pdu.Value)
	case gosnmp.BitString:
		b, _ := pdu.Value.([]byte)
		typ, value = "BITS", hexString(b)
	case gosnmp.Opaque, gosnmp.OpaqueFloat, gosnmp.OpaqueDouble:
		typ, value = "Opaque", fmt.Sprint(pdu.Value)
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return "", false
	default:
		typ, value = strings.ToUpper(pdu.Type.String()), fmt.Sprint(pdu.Value)
	}
	return oid + " = " + typ + ": " + value, true
}

func isPrintable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func hexString(b []byte) string {
	var s strings.Builder
	for i, c := range b {
		if i > 0 {
			s.WriteByte(' ')
		}
		fmt.Fprintf(&s, "%02X", c)
	}
	return s.String()
}

// formatTimeTicks prints hundredths of a second as "(8823) 0:01:28.23".
func formatTimeTicks(ticks uint64) string {
	cs := ticks % 100
	secs := ticks / 100
	days := secs / 86400
	h := secs % 86400 / 3600
	m := secs % 3600 / 60
	s := secs % 60
	if days > 0 {
		return fmt.Sprintf("(%d) %d days, %d:%02d:%02d.%02d", ticks, days, h, m, s, cs)
	}
	return fmt.Sprintf("(%d) %d:%02d:%02d.%02d", ticks, h, m, s, cs)
}
