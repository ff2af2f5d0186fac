package db

import (
	"net/url"
	"os"
	"strings"
)

// Connection string sources, in precedence order.
const (
	SourceFlag   = "--connection"
	SourceEnv    = "DATABASE_URL"
	SourceConfig = "config file"
)

// ResolveConnectionString picks the first non-empty connection string from
// the --connection flag, the DATABASE_URL environment variable and the
// config file. It returns the winning source, or "" when none is set.
func ResolveConnectionString(flag, configured string) (connString, source string) {
	switch {
	case flag != "":
		return flag, SourceFlag
	case os.Getenv("DATABASE_URL") != "":
		return os.Getenv("DATABASE_URL"), SourceEnv
	case configured != "":
		return configured, SourceConfig
	default:
		return "", ""
	}
}

// Redact hides the password of a URI connection string for logging.
// Key/value strings are reduced to their non-secret keys.
func Redact(connString string) string {
	if strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://") {
		u, err := url.Parse(connString)
		if err != nil {
			return "<unparseable connection string>"
		}
		return u.Redacted()
	}

	fields := strings.Fields(connString)
	kept := fields[:0]
	for _, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "password=") {
			kept = append(kept, "password=xxxxx")
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
