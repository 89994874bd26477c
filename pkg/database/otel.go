package database

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var (
	dbQueriesTotal     metric.Int64Counter
	dbQueryDuration    metric.Float64Histogram
	dbTransactionTotal metric.Int64Counter

	quotedValue = regexp.MustCompile(`'[^']*'`)
)

const (
	keySpan  = "otel:span"
	keyStart = "otel:start_time"
)

// InitDatabaseMetrics registers the query and transaction instruments.
func InitDatabaseMetrics(meter metric.Meter) error {
	var err error

	dbQueriesTotal, err = meter.Int64Counter(
		"db.queries.total",
		metric.WithDescription("Total number of database queries"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return err
	}

	dbQueryDuration, err = meter.Float64Histogram(
		"db.query.duration",
		metric.WithDescription("Database query duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0),
	)
	if err != nil {
		return err
	}

	dbTransactionTotal, err = meter.Int64Counter(
		"db.transactions.total",
		metric.WithDescription("Total number of database transactions"),
		metric.WithUnit("{transaction}"),
	)
	return err
}

// RecordTransaction counts a finished transaction by name and outcome.
func RecordTransaction(ctx context.Context, name string, err error) {
	if dbTransactionTotal == nil {
		return
	}
	status := "commit"
	if err != nil {
		status = "rollback"
	}
	dbTransactionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("db.transaction", name),
		attribute.String("db.status", status),
	))
}

// OTELPlugin traces every GORM statement.
type OTELPlugin struct {
	tracer trace.Tracer
	config PluginConfig
}

type PluginConfig struct {
	ServiceName   string
	DBName        string
	EnableMetrics bool
	MaxSQLLength  int
}

func DefaultPluginConfig() PluginConfig {
	return PluginConfig{
		ServiceName:   "tripplanner",
		EnableMetrics: true,
		MaxSQLLength:  500,
	}
}

func NewOTELPlugin(config PluginConfig) *OTELPlugin {
	if config.ServiceName == "" {
		config.ServiceName = "tripplanner"
	}
	if config.MaxSQLLength <= 0 {
		config.MaxSQLLength = 500
	}

	return &OTELPlugin{
		tracer: otel.Tracer(config.ServiceName + ".gorm"),
		config: config,
	}
}

func (p *OTELPlugin) Name() string {
	return "otel_plugin"
}

func (p *OTELPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	hooks := []struct {
		before, after func(string) error
	}{
		{
			before: func(n string) error { return cb.Query().Before("gorm:query").Register(n, p.before) },
			after:  func(n string) error { return cb.Query().After("gorm:query").Register(n, p.after) },
		},
		{
			before: func(n string) error { return cb.Create().Before("gorm:create").Register(n, p.before) },
			after:  func(n string) error { return cb.Create().After("gorm:create").Register(n, p.after) },
		},
		{
			before: func(n string) error { return cb.Update().Before("gorm:update").Register(n, p.before) },
			after:  func(n string) error { return cb.Update().After("gorm:update").Register(n, p.after) },
		},
		{
			before: func(n string) error { return cb.Delete().Before("gorm:delete").Register(n, p.before) },
			after:  func(n string) error { return cb.Delete().After("gorm:delete").Register(n, p.after) },
		},
		{
			before: func(n string) error { return cb.Row().Before("gorm:row").Register(n, p.before) },
			after:  func(n string) error { return cb.Row().After("gorm:row").Register(n, p.after) },
		},
		{
			before: func(n string) error { return cb.Raw().Before("gorm:raw").Register(n, p.before) },
			after:  func(n string) error { return cb.Raw().After("gorm:raw").Register(n, p.after) },
		},
	}

	names := []string{"query", "create", "update", "delete", "row", "raw"}
	for i, h := range hooks {
		if err := h.before("otel:before_" + names[i]); err != nil {
			return err
		}
		if err := h.after("otel:after_" + names[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *OTELPlugin) before(db *gorm.DB) {
	ctx, span := p.tracer.Start(db.Statement.Context, "db."+tableName(db),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.DBSystemPostgreSQL,
			attribute.String("db.name", p.config.DBName),
			attribute.String("db.table", tableName(db)),
		),
	)

	db.InstanceSet(keyStart, time.Now())
	db.InstanceSet(keySpan, span)
	db.Statement.Context = ctx
}

func (p *OTELPlugin) after(db *gorm.DB) {
	v, ok := db.InstanceGet(keySpan)
	if !ok {
		return
	}
	span, ok := v.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	operation := operationName(db.Statement.SQL.String())
	span.SetName(operation + " " + tableName(db))
	span.SetAttributes(
		semconv.DBStatement(p.statement(db.Statement.SQL.String())),
		attribute.String("db.operation", operation),
		attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
	)

	switch {
	case db.Error == nil:
		span.SetStatus(codes.Ok, "")
	case errors.Is(db.Error, gorm.ErrRecordNotFound):
		span.SetStatus(codes.Ok, "record not found")
	default:
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if !p.config.EnableMetrics || dbQueriesTotal == nil {
		return
	}
	var elapsed float64
	if s, ok := db.InstanceGet(keyStart); ok {
		if start, ok := s.(time.Time); ok {
			elapsed = time.Since(start).Seconds()
		}
	}
	status := "success"
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("db.operation", operation),
		attribute.String("db.table", tableName(db)),
		attribute.String("db.status", status),
	)
	dbQueriesTotal.Add(db.Statement.Context, 1, attrs)
	dbQueryDuration.Record(db.Statement.Context, elapsed, attrs)
}

// statement truncates the SQL and masks quoted literals.
func (p *OTELPlugin) statement(sql string) string {
	if len(sql) > p.config.MaxSQLLength {
		sql = sql[:p.config.MaxSQLLength] + "..."
	}
	return quotedValue.ReplaceAllString(sql, "'?'")
}

func tableName(db *gorm.DB) string {
	if db.Statement.Table != "" {
		return db.Statement.Table
	}
	return "unknown"
}

func operationName(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	switch {
	case sql == "":
		return "UNKNOWN"
	case strings.HasPrefix(sql, "SELECT"):
		return "SELECT"
	case strings.HasPrefix(sql, "INSERT"):
		return "INSERT"
	case strings.HasPrefix(sql, "UPDATE"):
		return "UPDATE"
	case strings.HasPrefix(sql, "DELETE"):
		return "DELETE"
	default:
		return "QUERY"
	}
}

// WithDefaultOTELPlugin installs the plugin with default settings.
func WithDefaultOTELPlugin(db *gorm.DB, serviceName, dbName string) error {
	config := DefaultPluginConfig()
	config.ServiceName = serviceName
	config.DBName = dbName
	return db.Use(NewOTELPlugin(config))
}
