package main

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hnakamur/mib2zabbix"
	"github.com/hnakamur/mib2zabbix/internal/config"
	"github.com/hnakamur/mib2zabbix/internal/slicex"
)

type zabbixOptions struct {
	URL         string `flag:"zabbix-url" validate:"omitempty,url"`
	VirtualHost string `flag:"virtual-host"`
	Username    string `flag:"username"`
	Password    string `flag:"password"`
	Token       string `flag:"token"`
}

type options struct {
	Filename string                   `flag:"filename" validate:"required"`
	Name     string                   `flag:"name"`
	Group    string                   `flag:"group" validate:"required"`
	Render   mib2zabbix.RenderOptions `flag:"render"`
	Zabbix   zabbixOptions            `flag:"zabbix"`
}

type mibOptions struct {
	options

	Modules  []string `flag:"module" validate:"required,min=1,dive,required"`
	MIBFiles []string `flag:"mib-file"`
	MIBDirs  []string `flag:"mib-dir"`
}

type walkOptions struct {
	options

	IP       string                 `flag:"ip" validate:"required"`
	OID      string                 `flag:"oid" validate:"required"`
	Walker   string                 `flag:"walker" validate:"oneof=snmpwalk gosnmp"`
	Timeout  time.Duration          `flag:"timeout" validate:"min=0"`
	Retries  int                    `flag:"retries" validate:"min=0"`
	Creds    mib2zabbix.Credentials `flag:"snmp"`
	MIBFiles []string               `flag:"mib-file"`
	MIBDirs  []string               `flag:"mib-dir"`
}

func (o *walkOptions) Validate() error {
	return o.Creds.Validate()
}

// The helpers below give an explicitly set flag precedence over the profile,
// and the profile precedence over flag defaults.

func stringOpt(cCtx *cli.Context, name, fromProfile string) string {
	if !cCtx.IsSet(name) && fromProfile != "" {
		return fromProfile
	}
	return cCtx.String(name)
}

func intOpt(cCtx *cli.Context, name string, fromProfile int) int {
	if !cCtx.IsSet(name) && fromProfile != 0 {
		return fromProfile
	}
	return cCtx.Int(name)
}

func boolOpt(cCtx *cli.Context, name string, fromProfile bool) bool {
	if !cCtx.IsSet(name) {
		return fromProfile
	}
	return cCtx.Bool(name)
}

func durationOpt(cCtx *cli.Context, name string, fromProfile time.Duration) time.Duration {
	if !cCtx.IsSet(name) && fromProfile != 0 {
		return fromProfile
	}
	return cCtx.Duration(name)
}

func newOptions(cCtx *cli.Context, p *config.Profile) options {
	return options{
		Filename: cCtx.String("filename"),
		Name:     cCtx.String("name"),
		Group:    stringOpt(cCtx, "group", p.Template.Group),
		Render: mib2zabbix.RenderOptions{
			CheckDelay:     stringOpt(cCtx, "check-delay", p.Template.CheckDelay),
			DiscoveryDelay: stringOpt(cCtx, "disc-delay", p.Template.DiscoveryDelay),
			HistoryDays:    intOpt(cCtx, "history", p.Template.HistoryDays),
			TrendsDays:     intOpt(cCtx, "trends", p.Template.TrendsDays),
			EnableItems:    boolOpt(cCtx, "enable-items", p.Template.EnableItems),
		},
		Zabbix: zabbixOptions{
			URL:         stringOpt(cCtx, "zabbix-url", p.Zabbix.URL),
			VirtualHost: stringOpt(cCtx, "virtual-host", p.Zabbix.VirtualHost),
			Username:    stringOpt(cCtx, "username", p.Zabbix.Username),
			Password:    stringOpt(cCtx, "password", p.Zabbix.Password),
			Token:       stringOpt(cCtx, "token", p.Zabbix.Token),
		},
	}
}

func newMIBOptions(cCtx *cli.Context, p *config.Profile) (*mibOptions, error) {
	o := &mibOptions{
		options:  newOptions(cCtx, p),
		Modules:  cCtx.StringSlice("module"),
		MIBFiles: slicex.ConcatDeDup(p.SNMP.MIBFiles, cCtx.StringSlice("mib-file")),
		MIBDirs:  mibDirs(cCtx, p),
	}
	if err := config.Validate(o); err != nil {
		return nil, err
	}
	return o, nil
}

func newWalkOptions(cCtx *cli.Context, p *config.Profile) *walkOptions {
	c := p.SNMP.Credentials
	return &walkOptions{
		options: newOptions(cCtx, p),
		IP:      cCtx.String("ip"),
		OID:     cCtx.String("oid"),
		Walker:  stringOpt(cCtx, "walker", p.SNMP.Walker),
		Timeout: durationOpt(cCtx, "timeout", p.SNMP.Timeout),
		Retries: intOpt(cCtx, "retries", p.SNMP.Retries),
		Creds: mib2zabbix.Credentials{
			Version:        stringOpt(cCtx, "snmp-version", c.Version),
			Port:           intOpt(cCtx, "port", c.Port),
			Community:      stringOpt(cCtx, "community", c.Community),
			Context:        stringOpt(cCtx, "context", c.Context),
			SecurityLevel:  stringOpt(cCtx, "security-level", c.SecurityLevel),
			Username:       stringOpt(cCtx, "security-name", c.Username),
			AuthProtocol:   stringOpt(cCtx, "auth-protocol", c.AuthProtocol),
			AuthPassphrase: stringOpt(cCtx, "auth-passphrase", c.AuthPassphrase),
			PrivProtocol:   stringOpt(cCtx, "priv-protocol", c.PrivProtocol),
			PrivPassphrase: stringOpt(cCtx, "priv-passphrase", c.PrivPassphrase),
		},
		MIBFiles: slicex.ConcatDeDup(p.SNMP.MIBFiles, cCtx.StringSlice("mib-file")),
		MIBDirs:  mibDirs(cCtx, p),
	}
}

// mibDirs puts the directories given on the command line before those of the
// profile.
func mibDirs(cCtx *cli.Context, p *config.Profile) []string {
	return slicex.Uniq(append(cCtx.StringSlice("mib-dir"), p.SNMP.MIBDirs...))
}
