package defs

// Common labels for logging and metrics
const (
	LabelComponent  = "component"
	LabelPart       = "part"
	LabelExpression = "expression"
	LabelFile       = "file"
)

// Standard level names and severities
//
// Custom levels may use any severity in between
const (
	LevelNameTrace = "TRACE"
	LevelNameDebug = "DEBUG"
	LevelNameInfo  = "INFO"
	LevelNameWarn  = "WARN"
	LevelNameError = "ERROR"

	SeverityLowest  = 0
	SeverityTrace   = 100
	SeverityDebug   = 200
	SeverityInfo    = 300
	SeverityWarn    = 400
	SeverityError   = 500
	SeverityHighest = 1<<31 - 1
)
