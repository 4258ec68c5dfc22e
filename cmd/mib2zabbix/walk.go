package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hnakamur/mib2zabbix"
	"github.com/hnakamur/mib2zabbix/internal/config"
	"github.com/hnakamur/mib2zabbix/internal/netsnmp"
	"github.com/hnakamur/mib2zabbix/internal/snmpwalk"
)

const defaultWalkTemplateName = "SNMP Template"

func walkAction(cCtx *cli.Context) error {
	opts := newWalkOptions(cCtx, profile)
	if err := promptPassphrases(&opts.Creds); err != nil {
		return err
	}
	if err := config.Validate(opts); err != nil {
		return err
	}

	tools := []string{"snmptranslate"}
	if opts.Walker == "snmpwalk" {
		tools = append(tools, "snmpwalk")
	}
	if err := netsnmp.CheckTools(tools...); err != nil {
		return err
	}

	runner := netsnmp.NewExecRunner(logger)
	translator := netsnmp.NewTranslator(runner,
		netsnmp.WithMIBDirs(opts.MIBDirs...),
		netsnmp.WithMIBs(opts.MIBFiles...),
		netsnmp.WithLogger(logger))
	root, err := translator.ResolveRoot(cCtx.Context, opts.OID)
	if err != nil {
		return err
	}

	var walker mib2zabbix.Walker
	if opts.Walker == "gosnmp" {
		walker = snmpwalk.New(logger, snmpwalk.WithTimeout(opts.Timeout), snmpwalk.WithRetries(opts.Retries))
	} else {
		walker = netsnmp.NewCommandWalker(runner, logger)
	}
	lines, err := walker.Walk(cCtx.Context, opts.IP, opts.Creds, root)
	if err != nil {
		return err
	}
	logger.Info("processing OIDs", zap.String("root", root), zap.Int("lines", len(lines)))

	b := mib2zabbix.NewWalkBuilder(logger)
	if err := b.Run(cCtx.Context, translator, lines); err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		name = b.TemplateName()
	}
	if name == "" {
		name = defaultWalkTemplateName
	}
	opts.Render.DiscoveryOIDs = boolOpt(cCtx, "discovery-oids", profile.Template.DiscoveryOIDs)
	desc := fmt.Sprintf("Template generated by mib2zabbix from a walk of %s", opts.IP)
	tmpl := mib2zabbix.NewTemplate(name, opts.Group, desc, b.Aggregator(), opts.Render)
	return publish(cCtx, &opts.options, tmpl)
}

// promptPassphrases asks for the SNMPv3 passphrases the security level needs
// but that were not given. Without a terminal nothing is asked and
// validation reports what is missing.
func promptPassphrases(creds *mib2zabbix.Credentials) error {
	if !stdinIsTerminal() {
		return nil
	}
	if creds.NeedsAuth() && creds.AuthPassphrase == "" {
		p, err := readSecret("Enter SNMPv3 authentication passphrase:")
		if err != nil {
			return err
		}
		creds.AuthPassphrase = string(p)
	}
	if creds.NeedsPriv() && creds.PrivPassphrase == "" {
		p, err := readSecret("Enter SNMPv3 privacy passphrase:")
		if err != nil {
			return err
		}
		creds.PrivPassphrase = string(p)
	}
	return nil
}
