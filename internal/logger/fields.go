package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldStrategy is the structured log field key for the scoring strategy name.
	FieldStrategy = "strategy"
	// FieldModel is the structured log field key for the remote model identifier.
	FieldModel = "model"
	// FieldSubject is the structured log field key for the scored subject id.
	FieldSubject = "subject_id"
	// FieldTarget is the structured log field key for the scored target id.
	FieldTarget = "target_id"
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

// WithFields safely attaches the provided fields to the logger, defaulting to
// a no-op logger when nil is passed.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// PairFields returns the standard fields identifying a scored (subject, target)
// pair. Empty ids are omitted to keep entries compact.
func PairFields(subjectID, targetID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldSubject, Value: subjectID},
		StringField{Key: FieldTarget, Value: targetID},
	)
}

// Truncate shortens the provided string to the specified rune limit, appending
// an ellipsis when truncated. Used to keep prompt/response previews readable
// in log output.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
