package netsnmp

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/hnakamur/mib2zabbix"
)

// CommandWalker walks an agent with snmpwalk -On.
type CommandWalker struct {
	runner Runner
	logger *zap.Logger
}

func NewCommandWalker(runner Runner, logger *zap.Logger) *CommandWalker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandWalker{runner: runner, logger: logger}
}

func (w *CommandWalker) Walk(ctx context.Context, target string, creds mib2zabbix.Credentials, root string) ([]string, error) {
	w.logger.Info("walking", zap.String("target", target), zap.String("root", root),
		zap.String("version", creds.NormalizedVersion()))
	out, err := w.runner.Run(ctx, snmpwalk, WalkArgs(target, creds, root)...)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", target, err)
	}

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// WalkArgs builds the snmpwalk arguments. Version "2" is passed as "2c" and
// empty SNMPv3 options are left out.
func WalkArgs(target string, creds mib2zabbix.Credentials, root string) []string {
	version := creds.NormalizedVersion()
	args := []string{"-v", version, "-On"}
	if version == "3" {
		for _, o := range []struct{ flag, value string }{
			{"-l", creds.SecurityLevel},
			{"-u", creds.Username},
			{"-n", creds.Context},
			{"-a", creds.AuthProtocol},
			{"-A", creds.AuthPassphrase},
			{"-x", creds.PrivProtocol},
			{"-X", creds.PrivPassphrase},
		} {
			if o.value != "" {
				args = append(args, o.flag, o.value)
			}
		}
	} else {
		args = append(args, "-c", creds.Community)
	}

	host := target
	if creds.Port != 0 {
		host = target + ":" + strconv.Itoa(creds.Port)
	}
	return append(args, host, root)
}
