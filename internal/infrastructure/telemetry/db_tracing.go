package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterDBTracing installs the otelgorm plugin so each query becomes a span
// under the request span. Query variables are never recorded. A row-count
// attribute is added after every statement.
func RegisterDBTracing(db *gorm.DB, dbSystem string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName(dbSystem),
		otelgorm.WithoutQueryVariables(),
	)); err != nil {
		return err
	}

	cb := db.Callback()
	for _, reg := range []func() error{
		func() error { return cb.Create().After("gorm:create").Register("remeals:rows_create", annotateRows) },
		func() error { return cb.Query().After("gorm:query").Register("remeals:rows_query", annotateRows) },
		func() error { return cb.Update().After("gorm:update").Register("remeals:rows_update", annotateRows) },
		func() error { return cb.Delete().After("gorm:delete").Register("remeals:rows_delete", annotateRows) },
	} {
		if err := reg(); err != nil {
			return err
		}
	}

	logger.Info("Database tracing enabled", zap.String("db_system", dbSystem))
	return nil
}

func annotateRows(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}
	span := trace.SpanFromContext(db.Statement.Context)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
}
