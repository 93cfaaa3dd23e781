package app

import (
	"net/url"
	"strings"
)

const binaryParametersKey = "binary_parameters"

// normalizeDBURL sets lib/pq binary_parameters=yes so the driver skips the
// unnamed prepare that transaction-pooling proxies reject. Both DSN forms lib/pq
// accepts are handled and an explicit setting is never overridden.
func normalizeDBURL(raw string, binaryParameters bool) string {
	dsn := strings.TrimSpace(raw)
	if !binaryParameters || dsn == "" {
		return raw
	}

	if u, ok := parsePostgresURL(dsn); ok {
		q := u.Query()
		if q.Has(binaryParametersKey) {
			return dsn
		}
		q.Set(binaryParametersKey, "yes")
		u.RawQuery = q.Encode()
		return u.String()
	}

	if _, ok := dsnValue(dsn, binaryParametersKey); ok {
		return dsn
	}
	return dsn + " " + binaryParametersKey + "=yes"
}

// dbNameFromURL feeds the db.name span attribute; empty when the DSN has none.
func dbNameFromURL(raw string) string {
	dsn := strings.TrimSpace(raw)
	if u, ok := parsePostgresURL(dsn); ok {
		return strings.TrimSpace(strings.TrimPrefix(u.Path, "/"))
	}
	name, _ := dsnValue(dsn, "dbname")
	return name
}

func parsePostgresURL(dsn string) (*url.URL, bool) {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil, false
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, false
	}
	return u, true
}

func dsnValue(dsn, key string) (string, bool) {
	for _, field := range strings.Fields(dsn) {
		k, v, ok := strings.Cut(field, "=")
		if ok && k == key {
			return strings.Trim(v, `"'`), true
		}
	}
	return "", false
}
