package config

import (
	"os"
	"strings"
)

// StrictVhcSingleRow makes the synchronizer treat more than one engine-owned
// row per (job, vhc item) as a hard error instead of silently keeping the
// first and deleting the rest.
//
// Set via env:
// - STRICT_VHC_SINGLE_ROW=true
func StrictVhcSingleRow() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("STRICT_VHC_SINGLE_ROW")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
