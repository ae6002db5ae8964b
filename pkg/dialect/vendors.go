package dialect

// PostgreSQL enables dollar-quoting, CONNECT BY is absent but most other
// extensions apply.
type PostgreSQL struct{ base }

func NewPostgreSQL() PostgreSQL {
	return PostgreSQL{base{
		name: "postgresql",
		features: Features{
			SupportsTrailingCommas:            false,
			SupportsGroupByExpression:         true,
			SupportsFilterDuringAggregation:   true,
			SupportsWindowClauseNamedWindowRef: true,
			SupportsSelectWildcardExcept:       false,
			SupportsDollarQuotedStrings:        true,
			SupportsEscapedStringLiteral:       true,
			AllowExtractCustom:                 true,
			SupportsCreateIndexWithClause:      true,
			SupportsExplainWithUtilityOptions:  true,
		},
	}}
}

// MsSQL is SQL Server's T-SQL dialect.
type MsSQL struct{ base }

func (MsSQL) IsDelimitedIdentifierStart(c rune) bool {
	return c == '"' || c == '['
}

func NewMsSQL() MsSQL {
	return MsSQL{base{
		name: "mssql",
		features: Features{
			SupportsTrailingCommas: false,
		},
	}}
}

// MySQL allows backslash escapes inside string literals and backtick
// delimited identifiers.
type MySQL struct{ base }

func (MySQL) IsDelimitedIdentifierStart(c rune) bool {
	return c == '`'
}

func (MySQL) DelimitedIdentifierEnd(start rune) rune { return start }

func NewMySQL() MySQL {
	return MySQL{base{
		name: "mysql",
		features: Features{
			SupportsTrailingCommas:        false,
			SupportsNamedFunctionArgsWithEqOp: false,
			SupportsMySQLBackslashEscapes: true,
		},
	}}
}

// SQLite.
type SQLite struct{ base }

func (SQLite) IsDelimitedIdentifierStart(c rune) bool {
	return c == '"' || c == '`' || c == '['
}

func NewSQLite() SQLite {
	return SQLite{base{
		name: "sqlite",
		features: Features{
			SupportsTrailingCommas: false,
		},
	}}
}

// Snowflake recognizes // comments and $$ dollar-quoted bodies.
type Snowflake struct{ base }

func NewSnowflake() Snowflake {
	return Snowflake{base{
		name: "snowflake",
		features: Features{
			SupportsTrailingCommas:             true,
			SupportsGroupByExpression:          true,
			SupportsFilterDuringAggregation:    true,
			SupportsWindowClauseNamedWindowRef: true,
			SupportsSelectWildcardExcept:       true,
			SupportsDollarQuotedStrings:        true,
			SupportsDoubleSlashComments:        true,
			SupportsMatchRecognize:             true,
			SupportsConnectBy:                  true,
		},
	}}
}

// Hive.
type Hive struct{ base }

func NewHive() Hive {
	return Hive{base{
		name: "hive",
		features: Features{
			SupportsTrailingCommas: false,
		},
	}}
}

// Redshift is PostgreSQL-derived.
type Redshift struct{ base }

func NewRedshift() Redshift {
	return Redshift{base{
		name: "redshift",
		features: Features{
			SupportsGroupByExpression:    true,
			SupportsCreateIndexWithClause: false,
		},
	}}
}

// BigQuery uses backtick identifiers and # line comments.
type BigQuery struct{ base }

func (BigQuery) IsDelimitedIdentifierStart(c rune) bool { return c == '`' }

func NewBigQuery() BigQuery {
	return BigQuery{base{
		name: "bigquery",
		features: Features{
			SupportsTrailingCommas:       true,
			SupportsSelectWildcardExcept: true,
			SupportsHashComments:         true,
			SupportMapLiteralSyntax:      true,
		},
	}}
}

// DuckDb supports the `:=` assignment operator and trailing commas
// everywhere.
type DuckDb struct{ base }

func NewDuckDb() DuckDb {
	return DuckDb{base{
		name: "duckdb",
		features: Features{
			SupportsTrailingCommas:            true,
			SupportsGroupByExpression:         true,
			SupportsFilterDuringAggregation:   true,
			SupportsSelectWildcardExcept:      true,
			SupportsParenthesizedSetVariables: true,
			SupportsDuckAssignment:            true,
			SupportsCreateIndexWithClause:     true,
		},
	}}
}

// ClickHouse.
type ClickHouse struct{ base }

func NewClickHouse() ClickHouse {
	return ClickHouse{base{
		name: "clickhouse",
		features: Features{
			SupportsTrailingCommas:   true,
			SupportMapLiteralSyntax:  true,
			SupportsDictionarySyntax: true,
		},
	}}
}

// Databricks is Spark SQL flavored.
type Databricks struct{ base }

func NewDatabricks() Databricks {
	return Databricks{base{
		name: "databricks",
		features: Features{
			SupportsTrailingCommas:    true,
			SupportsGroupByExpression: true,
		},
	}}
}

// Oracle.
type Oracle struct{ base }

func NewOracle() Oracle {
	return Oracle{base{
		name: "oracle",
		features: Features{
			SupportsConnectBy:       true,
			SupportsMatchRecognize:  true,
			RequireIntervalQualifier: true,
		},
	}}
}
