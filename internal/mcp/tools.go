package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools(server *sdk.Server) {
	sdk.AddTool(server, &sdk.Tool{
		Name: "import_export_file",
		Description: "Import a JSON export of glucose and insulin readings into the " +
			"local store. Re-importing the same file is safe: readings are keyed by " +
			"timestamp and duplicates are overwritten.",
	}, s.handleImportExportFile)

	sdk.AddTool(server, &sdk.Tool{
		Name: "analyze_glucose",
		Description: "Compute the full glycemic summary over stored readings: time in " +
			"range, trailing windows, hourly and calendar breakdowns, variability, " +
			"estimated HbA1c, risk indices, incidents and insulin totals. Dates are " +
			"YYYY-MM-DD and optional; omit both to analyze everything stored.",
	}, s.handleAnalyzeGlucose)

	sdk.AddTool(server, &sdk.Tool{
		Name: "get_time_in_range",
		Description: "Time-in-range percentages: the overall breakdown, trailing " +
			"windows (28/14/7/3 days where supported by the data), and an hourly " +
			"profile optionally merged into wider blocks.",
		InputSchema: timeInRangeSchema,
	}, s.handleGetTimeInRange)

	sdk.AddTool(server, &sdk.Tool{
		Name: "get_glucose_breakdown",
		Description: "Time-in-range grouped by calendar unit: per date, per day of " +
			"week (with Workday and Weekend aggregates), or per Monday-anchored week.",
		InputSchema: breakdownSchema,
	}, s.handleGetGlucoseBreakdown)

	sdk.AddTool(server, &sdk.Tool{
		Name: "get_risk_indices",
		Description: "Clinical risk view of stored readings: LBGI/HBGI/BGRI, J-Index, " +
			"coefficient of variation with its Flux grade, and high/low incident counts.",
	}, s.handleGetRiskIndices)

	sdk.AddTool(server, &sdk.Tool{
		Name: "get_insulin_summary",
		Description: "Insulin view: daily basal/bolus totals, an hourly timeline for " +
			"a given date, and insulin-on-board at a given instant (linear decay).",
	}, s.handleGetInsulinSummary)
}

// Hand-built schemas for the tools whose arguments carry enums the Go type
// system cannot express.
var timeInRangeSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"start_date": {
			Type:        "string",
			Description: "Inclusive lower bound, YYYY-MM-DD. Optional.",
		},
		"end_date": {
			Type:        "string",
			Description: "Inclusive upper bound, YYYY-MM-DD. Optional.",
		},
		"group_hours": {
			Type:        "integer",
			Description: "Width of hourly blocks. 0 or 1 keeps single-hour rows.",
			Enum:        []any{0, 1, 2, 3, 4, 6, 8, 12},
		},
	},
}

var breakdownSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"group_by": {
			Type:        "string",
			Description: "Calendar unit to group by.",
			Enum:        []any{"date", "weekday", "week"},
		},
		"start_date": {
			Type:        "string",
			Description: "Inclusive lower bound, YYYY-MM-DD. Optional.",
		},
		"end_date": {
			Type:        "string",
			Description: "Inclusive upper bound, YYYY-MM-DD. Optional.",
		},
	},
	Required: []string{"group_by"},
}
