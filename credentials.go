package mib2zabbix

import (
	"errors"
	"strings"
)

// Credentials holds what is needed to query an SNMP agent.
type Credentials struct {
	Version   string `yaml:"version" validate:"oneof=1 2 2c 3"`
	Port      int    `yaml:"port" validate:"min=1,max=65535"`
	Community string `yaml:"community" validate:"required_unless=Version 3"`
	Context   string `yaml:"context"`

	SecurityLevel  string `yaml:"security_level" validate:"omitempty,oneof=noAuthNoPriv authNoPriv authPriv"`
	Username       string `yaml:"username" validate:"required_if=Version 3"`
	AuthProtocol   string `yaml:"auth_protocol" validate:"omitempty,oneof=MD5 SHA md5 sha"`
	AuthPassphrase string `yaml:"auth_passphrase"`
	PrivProtocol   string `yaml:"priv_protocol" validate:"omitempty,oneof=DES AES des aes"`
	PrivPassphrase string `yaml:"priv_passphrase"`
}

// DefaultCredentials returns SNMP v2c with the "public" community on port 161.
func DefaultCredentials() Credentials {
	return Credentials{Version: "2c", Port: 161, Community: "public"}
}

// NormalizedVersion returns "2c" for "2" and the version as is otherwise.
func (c *Credentials) NormalizedVersion() string {
	if c.Version == "2" {
		return "2c"
	}
	return c.Version
}

// NeedsAuth reports whether the security level requires authentication.
func (c *Credentials) NeedsAuth() bool {
	return c.NormalizedVersion() == "3" &&
		(strings.EqualFold(c.SecurityLevel, "authNoPriv") || strings.EqualFold(c.SecurityLevel, "authPriv"))
}

// NeedsPriv reports whether the security level requires privacy.
func (c *Credentials) NeedsPriv() bool {
	return c.NormalizedVersion() == "3" && strings.EqualFold(c.SecurityLevel, "authPriv")
}

// Validate checks the SNMPv3 fields that depend on the security level.
func (c *Credentials) Validate() error {
	if c.NormalizedVersion() != "3" {
		return nil
	}
	if c.SecurityLevel == "" {
		return errors.New("security level is required for SNMPv3")
	}
	if c.NeedsAuth() && (c.AuthProtocol == "" || c.AuthPassphrase == "") {
		return errors.New("auth protocol and passphrase are required for " + c.SecurityLevel)
	}
	if c.NeedsPriv() && (c.PrivProtocol == "" || c.PrivPassphrase == "") {
		return errors.New("privacy protocol and passphrase are required for authPriv")
	}
	return nil
}
