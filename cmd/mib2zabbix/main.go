package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hnakamur/mib2zabbix/internal/config"
	"github.com/hnakamur/mib2zabbix/internal/lgr"
)

const envPrefix = "MIB2ZABBIX_"

var (
	logger  = zap.NewNop()
	profile = &config.Profile{}
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	logLevel := zapcore.InfoLevel
	app := &cli.App{
		Name:    "mib2zabbix",
		Usage:   "generate Zabbix templates from SNMP MIB modules or device walks",
		Version: Version(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML profile with SNMP credentials and template defaults",
				EnvVars: []string{envPrefix + "CONFIG"},
			},
			&cli.GenericFlag{
				Name:    "log-level",
				Value:   &logLevel,
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: []string{envPrefix + "LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   lgr.FormatConsole,
				Usage:   "log format (console or json)",
				EnvVars: []string{envPrefix + "LOG_FORMAT"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "mib",
				Usage:     "generate a template from the objects of MIB modules",
				UsageText: "mib2zabbix mib --module IF-MIB [--mib-file FILE] [--mib-dir DIR] [options]",
				Flags: concatFlags(
					[]cli.Flag{
						&cli.StringSliceFlag{
							Name:     "module",
							Usage:    "MIB module to scan (repeatable)",
							Required: true,
						},
					},
					mibFlags(),
					commonFlags(),
				),
				Action: mibAction,
			},
			{
				Name:      "walk",
				Usage:     "generate a template from a walk of a device",
				UsageText: "mib2zabbix walk --ip HOST [--oid OID] [snmp options] [options]",
				Flags:     concatFlags(walkFlags(), mibFlags(), commonFlags()),
				Action:    walkAction,
			},
		},
		Before: func(cCtx *cli.Context) error {
			level := *cCtx.Generic("log-level").(*zapcore.Level)
			l, err := lgr.New(cCtx.App.ErrWriter, level, cCtx.String("log-format"))
			if err != nil {
				return err
			}
			logger = l

			profile = &config.Profile{}
			if path := cCtx.String("config"); path != "" {
				p, err := config.Load(path)
				if err != nil {
					return err
				}
				profile = p
				logger.Debug("profile loaded", zap.String("path", path))
			}
			return nil
		},
		After: func(cCtx *cli.Context) error {
			_ = logger.Sync()
			return nil
		},
	}

	return app.Run(args)
}

func concatFlags(flags ...[]cli.Flag) []cli.Flag {
	var ret []cli.Flag
	for _, f := range flags {
		ret = append(ret, f...)
	}
	return ret
}

func mibFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "mib-file",
			Aliases: []string{"m"},
			Usage:   "MIB file or module to load (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:    "mib-dir",
			Aliases: []string{"M"},
			Usage:   "directory added to the MIB search path (repeatable)",
		},
	}
}

// commonFlags are accepted by every subcommand.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "filename",
			Aliases: []string{"f"},
			Value:   "stdout",
			Usage:   `output file, or "stdout"`,
		},
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"N"},
			Usage:   `template name, " SNMP" is appended`,
		},
		&cli.StringFlag{
			Name:    "group",
			Aliases: []string{"G"},
			Value:   "Templates",
			Usage:   "template group",
		},
		&cli.BoolFlag{
			Name:    "enable-items",
			Aliases: []string{"e"},
			Usage:   "create items enabled",
		},
		&cli.StringFlag{
			Name:  "check-delay",
			Value: "60",
			Usage: "item update interval",
		},
		&cli.StringFlag{
			Name:  "disc-delay",
			Value: "3600",
			Usage: "discovery rule update interval",
		},
		&cli.IntFlag{
			Name:  "history",
			Value: 7,
			Usage: "days to keep item history",
		},
		&cli.IntFlag{
			Name:  "trends",
			Value: 365,
			Usage: "days to keep item trends",
		},
		&cli.StringFlag{
			Name:    "zabbix-url",
			Usage:   "import the template into this Zabbix frontend (ex. http://example.com/zabbix)",
			EnvVars: []string{envPrefix + "ZABBIX_URL"},
		},
		&cli.StringFlag{
			Name:    "virtual-host",
			Usage:   "virtual host on Zabbix server",
			EnvVars: []string{envPrefix + "ZABBIX_VIRTUAL_HOST"},
		},
		&cli.StringFlag{
			Name:    "username",
			Usage:   "Zabbix login username",
			EnvVars: []string{envPrefix + "ZABBIX_USERNAME"},
		},
		&cli.StringFlag{
			Name:    "password",
			Usage:   "Zabbix login password (shows prompt if both of this and token are empty)",
			EnvVars: []string{envPrefix + "ZABBIX_PASSWORD"},
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "Zabbix API token",
			EnvVars: []string{envPrefix + "ZABBIX_API_TOKEN"},
		},
	}
}

func walkFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "ip",
			Usage:    "address of the device to walk",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "oid",
			Aliases: []string{"o"},
			Value:   ".1.3.6.1",
			Usage:   "root OID of the walk",
		},
		&cli.StringFlag{
			Name:  "walker",
			Value: "snmpwalk",
			Usage: `"snmpwalk" to run the net-snmp tool or "gosnmp" to walk natively`,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: 5 * time.Second,
			Usage: "request timeout of the gosnmp walker",
		},
		&cli.IntFlag{
			Name:  "retries",
			Value: 3,
			Usage: "request retries of the gosnmp walker",
		},
		&cli.StringFlag{
			Name:    "snmp-version",
			Aliases: []string{"v"},
			Value:   "2c",
			Usage:   "SNMP version (1, 2c or 3)",
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Value:   161,
			Usage:   "SNMP port",
		},
		&cli.StringFlag{
			Name:    "community",
			Aliases: []string{"c"},
			Value:   "public",
			Usage:   "SNMP v1/v2c community",
			EnvVars: []string{envPrefix + "COMMUNITY"},
		},
		&cli.StringFlag{
			Name:    "security-level",
			Aliases: []string{"L"},
			Usage:   "SNMPv3 security level (noAuthNoPriv, authNoPriv or authPriv)",
		},
		&cli.StringFlag{
			Name:    "context",
			Aliases: []string{"n"},
			Usage:   "SNMPv3 context name",
		},
		&cli.StringFlag{
			Name:    "security-name",
			Aliases: []string{"u"},
			Usage:   "SNMPv3 security name",
		},
		&cli.StringFlag{
			Name:    "auth-protocol",
			Aliases: []string{"a"},
			Usage:   "SNMPv3 authentication protocol (MD5 or SHA)",
		},
		&cli.StringFlag{
			Name:    "auth-passphrase",
			Aliases: []string{"A"},
			Usage:   "SNMPv3 authentication passphrase (shows prompt if empty and needed)",
			EnvVars: []string{envPrefix + "AUTH_PASSPHRASE"},
		},
		&cli.StringFlag{
			Name:    "priv-protocol",
			Aliases: []string{"x"},
			Usage:   "SNMPv3 privacy protocol (DES or AES)",
		},
		&cli.StringFlag{
			Name:    "priv-passphrase",
			Aliases: []string{"X"},
			Usage:   "SNMPv3 privacy passphrase (shows prompt if empty and needed)",
			EnvVars: []string{envPrefix + "PRIV_PASSPHRASE"},
		},
		&cli.BoolFlag{
			Name:  "discovery-oids",
			Usage: "fill discovery rules with a discovery[{#MACRO},oid,...] SNMP OID",
		},
	}
}

func Version() string {
	// This code is copied from
	// https://blog.lufia.org/entry/2020/12/18/002238

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	return info.Main.Version
}
