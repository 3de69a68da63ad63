package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRunID       = "run_id"
	FieldSource      = "source"
	FieldPath        = "path"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldRows        = "rows"
	FieldValid       = "valid"
	FieldDropped     = "dropped"
	FieldRowIndex    = "row_index"
	FieldField       = "field"
	FieldValue       = "value"
	FieldCategories  = "categories"
	FieldDays        = "days"
	FieldTopK        = "top_k"
	FieldPresenter   = "presenter"
	FieldExchange    = "exchange"
	FieldRoutingKey  = "routing_key"
	FieldEncoding    = "encoding"
	FieldSpreadsheet = "spreadsheet_id"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentSource   = "source"
	ComponentLedger   = "ledger"
	ComponentAnalysis = "analysis"
	ComponentReport   = "report"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentSheets   = "sheets"
)

// Operations defines standard operation names
const (
	OpLoad      = "load"
	OpNormalize = "normalize"
	OpAnalyze   = "analyze"
	OpPresent   = "present"
	OpPublish   = "publish"
	OpImport    = "import"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithNormalization adds the row counters of a normalization pass
func (f LogFields) WithNormalization(total, valid, dropped int) LogFields {
	f[FieldRows] = total
	f[FieldValid] = valid
	f[FieldDropped] = dropped
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
