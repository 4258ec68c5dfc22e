// Package config loads the optional YAML profile and validates options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hnakamur/mib2zabbix"
)

// Profile holds defaults for the command line flags.
type Profile struct {
	SNMP     SNMPProfile     `yaml:"snmp"`
	Template TemplateProfile `yaml:"template"`
	Zabbix   ZabbixProfile   `yaml:"zabbix"`
}

type SNMPProfile struct {
	mib2zabbix.Credentials `yaml:",inline"`

	MIBDirs  []string      `yaml:"mib_dirs"`
	MIBFiles []string      `yaml:"mib_files"`
	Walker   string        `yaml:"walker"`
	Timeout  time.Duration `yaml:"timeout"`
	Retries  int           `yaml:"retries"`
}

type TemplateProfile struct {
	mib2zabbix.RenderOptions `yaml:",inline"`

	Group string `yaml:"group"`
}

type ZabbixProfile struct {
	URL         string `yaml:"url"`
	VirtualHost string `yaml:"virtual_host"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	Token       string `yaml:"token"`
}

// Load reads a profile. Unknown keys are rejected.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}

func Parse(data []byte) (*Profile, error) {
	p := &Profile{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return p, nil
}
