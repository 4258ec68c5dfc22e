package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hnakamur/mib2zabbix"
	"github.com/hnakamur/mib2zabbix/internal/zbxapi"
)

const stdoutFilename = "stdout"

// publish writes the template and imports it when a Zabbix URL is set.
func publish(cCtx *cli.Context, opts *options, tmpl *mib2zabbix.Template) error {
	b, err := tmpl.Bytes()
	if err != nil {
		return err
	}
	if opts.Filename == stdoutFilename {
		if _, err := cCtx.App.Writer.Write(b); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(opts.Filename, b, 0o644); err != nil {
			return err
		}
		logger.Info("template written", zap.String("file", opts.Filename),
			zap.Int("items", len(tmpl.Items)), zap.Int("discoveryRules", len(tmpl.Rules)))
	}

	if opts.Zabbix.URL == "" {
		return nil
	}
	return importTemplate(cCtx.Context, &opts.Zabbix, tmpl.ExportName(), b)
}

func importTemplate(ctx context.Context, z *zabbixOptions, name string, source []byte) error {
	clientOpts := []zbxapi.ClientOpt{zbxapi.WithLogger(logger)}
	if z.VirtualHost != "" {
		clientOpts = append(clientOpts, zbxapi.WithHost(z.VirtualHost))
	}
	if z.Token != "" {
		clientOpts = append(clientOpts, zbxapi.WithAPIToken(z.Token))
	}
	c, err := zbxapi.NewClient(z.URL, clientOpts...)
	if err != nil {
		return err
	}
	if z.Token == "" {
		if err := login(ctx, c, z); err != nil {
			return err
		}
	}

	if err := c.ImportTemplate(ctx, source); err != nil {
		return err
	}
	t, err := c.GetTemplateByName(ctx, name)
	if err != nil {
		return err
	}
	logger.Info("template imported", zap.String("url", z.URL), zap.String("template", t.Host),
		zap.String("templateid", t.TemplateID))
	return nil
}

func login(ctx context.Context, c *zbxapi.Client, z *zabbixOptions) error {
	if z.Username == "" {
		return errors.New(`"--token" or "--username" must be set`)
	}

	password := z.Password
	if password == "" {
		p, err := readSecret("Enter password for Zabbix:")
		if err != nil {
			return err
		}
		password = string(p)
	}

	return c.Login(ctx, z.Username, password)
}
