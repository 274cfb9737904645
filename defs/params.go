package defs

var (
	// ParamMapInitialCapacity defines the initial capacity of the local layer of a parameter map
	//
	// Most messages carry only a few parameters of their own and inherit the rest
	ParamMapInitialCapacity = 4

	// TextIndent is the indentation per group level in tree-text output
	TextIndent = "  "

	// TextMaxValueSize defines the default length in bytes after which a parameter value is truncated in tree-text output
	//
	// 0 = unlimited
	TextMaxValueSize = 0

	// SelectorMaxLength defines the maximum length in bytes of a selector or matcher expression accepted by parsers
	//
	// Longer expressions are rejected with a syntax error pointing at the first character beyond the limit
	SelectorMaxLength = 64 * 1024
)
