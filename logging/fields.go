package logging

import (
	"go.uber.org/zap"
)

// Field keys shared by the catalog, cover and HTTP layers.
const (
	FieldSeed      = "seed"
	FieldLocale    = "locale"
	FieldPage      = "page"
	FieldCount     = "count"
	FieldIndex     = "index"
	FieldRequestID = "request_id"
)

// PageFields describes a catalog page request.
//
//	logger.Debug("generating page", logging.PageFields("42", "en-US", 0, 20)...)
func PageFields(seed, locale string, page, count int) []zap.Field {
	return []zap.Field{
		zap.String(FieldSeed, seed),
		zap.String(FieldLocale, locale),
		zap.Int(FieldPage, page),
		zap.Int(FieldCount, count),
	}
}

// BookFields identifies a single generated record.
func BookFields(seed string, index int) []zap.Field {
	return []zap.Field{
		zap.String(FieldSeed, seed),
		zap.Int(FieldIndex, index),
	}
}

// RequestID tags an entry with the HTTP request identifier.
func RequestID(id string) zap.Field {
	return zap.String(FieldRequestID, id)
}
