package dialect

import (
	"sort"
	"strings"
)

// registry maps the canonical lower-case dialect name used in config files
// and CLI flags to a constructor. Dialect instances are immutable and safe
// to share, so the registry hands out cached singletons.
var registry = map[string]Dialect{
	"generic":    NewGeneric(),
	"ansi":       NewAnsi(),
	"postgresql": NewPostgreSQL(),
	"postgres":   NewPostgreSQL(),
	"mssql":      NewMsSQL(),
	"sqlserver":  NewMsSQL(),
	"mysql":      NewMySQL(),
	"sqlite":     NewSQLite(),
	"snowflake":  NewSnowflake(),
	"hive":       NewHive(),
	"redshift":   NewRedshift(),
	"bigquery":   NewBigQuery(),
	"duckdb":     NewDuckDb(),
	"clickhouse": NewClickHouse(),
	"databricks": NewDatabricks(),
	"oracle":     NewOracle(),
}

// GetDialect resolves a dialect by name, falling back to Generic for an
// unrecognized or empty name.
func GetDialect(name string) Dialect {
	if d, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d
	}
	return NewGeneric()
}

// Names returns the sorted set of names accepted by GetDialect, used by the
// CLI's --help output and config validation.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
