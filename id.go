package mib2zabbix

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// newUUID returns a random UUID as 32 lowercase hex digits without dashes,
// which is the form Zabbix uses in export files.
func newUUID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
