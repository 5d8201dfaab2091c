package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldApplicant is the structured log field key for the applicant id.
	FieldApplicant = "applicant_id"
	// FieldAction is the structured log field key for the pipeline action name.
	FieldAction = "action"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns standard zap fields describing the applicant and the
// pipeline action being applied. Empty values are ignored to keep log
// entries compact when information is missing.
func CommonFields(applicantID, action string) []zap.Field {
	return StringFields(
		StringField{Key: FieldApplicant, Value: applicantID},
		StringField{Key: FieldAction, Value: action},
	)
}

// WithCommonFields attaches the common pipeline fields to the provided logger.
// If the logger is nil, a no-op logger is created to avoid panics.
func WithCommonFields(logger *zap.Logger, applicantID, action string) *zap.Logger {
	fields := CommonFields(applicantID, action)
	return WithFields(logger, fields...)
}
