package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hnakamur/mib2zabbix"
	"github.com/hnakamur/mib2zabbix/internal/netsnmp"
	"github.com/hnakamur/mib2zabbix/internal/slicex"
)

func mibAction(cCtx *cli.Context) error {
	opts, err := newMIBOptions(cCtx, profile)
	if err != nil {
		return err
	}
	if dups := slicex.Dups(opts.Modules); len(dups) > 0 {
		return fmt.Errorf(`duplicated modules are set with "--module": %s`, strings.Join(dups, ", "))
	}
	if err := netsnmp.CheckTools("snmptranslate"); err != nil {
		return err
	}

	translator := netsnmp.NewTranslator(netsnmp.NewExecRunner(logger),
		netsnmp.WithMIBDirs(opts.MIBDirs...),
		netsnmp.WithMIBs(opts.MIBFiles...),
		netsnmp.WithLogger(logger))

	var symbols []string
	for _, module := range opts.Modules {
		s, err := translator.Symbols(cCtx.Context, module)
		if err != nil {
			return err
		}
		symbols = append(symbols, s...)
	}
	logger.Info("processing MIB", zap.Strings("modules", opts.Modules), zap.Int("symbols", len(symbols)))

	b := mib2zabbix.NewDefinitionBuilder(logger)
	if err := b.Run(cCtx.Context, translator, symbols); err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		name = strings.Join(opts.Modules, " ")
	}
	desc := "Template generated from MIB " + strings.Join(opts.Modules, ", ")
	tmpl := mib2zabbix.NewTemplate(name, opts.Group, desc, b.Aggregator(), opts.Render)
	return publish(cCtx, &opts.options, tmpl)
}
