package dialect

// Generic is the most permissive dialect: most optional grammar extensions
// are turned on. It is the sensible default when the caller does not know,
// or does not care, which vendor produced a query.
type Generic struct{ base }

// NewGeneric returns the permissive baseline dialect.
func NewGeneric() Generic {
	return Generic{base{
		name: "generic",
		features: Features{
			SupportsTrailingCommas:             true,
			SupportsGroupByExpression:          true,
			SupportsFilterDuringAggregation:    true,
			SupportsDictionarySyntax:           true,
			SupportsWindowClauseNamedWindowRef: true,
			SupportsNamedFunctionArgsWithEqOp:  true,
			SupportsMatchRecognize:             true,
			SupportsConnectBy:                  true,
			SupportsSelectWildcardExcept:       true,
			SupportsParenthesizedSetVariables:  true,
			SupportMapLiteralSyntax:            true,
			SupportsCreateIndexWithClause:      true,
			SupportsExplainWithUtilityOptions:  true,
			AllowExtractCustom:                 true,
			AllowExtractSingleQuotes:           true,
			SupportsDollarQuotedStrings:        true,
			SupportsEscapedStringLiteral:       true,
			SupportsHashComments:               true,
			SupportsDoubleSlashComments:        true,
		},
	}}
}

// Ansi is the restrictive standard-SQL dialect: no vendor extensions.
type Ansi struct{ base }

func NewAnsi() Ansi {
	return Ansi{base{name: "ansi"}}
}
