// Package dispatch routes named-connection operations to the right adapter
// operator. It owns the default operation timeout and the generated file
// paths for backups and exports; it holds no locks of its own.
package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/databridge-io/databridge/internal/export"
	"github.com/databridge-io/databridge/internal/registry"
	"github.com/databridge-io/databridge/pkg/adapter"
)

// DefaultTimeout bounds driver calls when the caller's context carries no
// deadline of its own.
const DefaultTimeout = 30 * time.Second

// Config carries the dispatcher settings.
type Config struct {
	Timeout   time.Duration
	BackupDir string
	ExportDir string
}

// Dispatcher executes operations against registered connections.
type Dispatcher struct {
	reg *registry.Registry
	cfg Config
}

// New creates a dispatcher over the given registry. A zero timeout falls
// back to DefaultTimeout.
func New(reg *registry.Registry, cfg Config) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = "backups"
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "exports"
	}
	return &Dispatcher{reg: reg, cfg: cfg}
}

// opContext applies the default timeout unless the caller already set a
// deadline.
func (d *Dispatcher) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.cfg.Timeout)
}

// RunQuery executes a parameterized statement on the named connection.
func (d *Dispatcher) RunQuery(ctx context.Context, name, statement string, params map[string]any) (*adapter.QueryResult, error) {
	if strings.TrimSpace(statement) == "" {
		return nil, adapter.NewInvalidInputError("query", "must not be empty")
	}
	record, err := d.reg.Lookup(name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := d.opContext(ctx)
	defer cancel()
	return record.Conn.QueryOperations().Execute(ctx, statement, params)
}

// GetSchema discovers tables, columns, indexes and foreign keys on the
// named connection.
func (d *Dispatcher) GetSchema(ctx context.Context, name string) (adapter.SchemaInfo, error) {
	record, err := d.reg.Lookup(name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := d.opContext(ctx)
	defer cancel()
	return record.Conn.SchemaOperations().DiscoverSchema(ctx)
}

// StatsReport is the performance snapshot for one connection.
type StatsReport struct {
	Version string               `json:"version"`
	Tables  *adapter.QueryResult `json:"tables"`
}

// GetStats returns the server version and per-table statistics of the
// named connection.
func (d *Dispatcher) GetStats(ctx context.Context, name string) (*StatsReport, error) {
	record, err := d.reg.Lookup(name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := d.opContext(ctx)
	defer cancel()

	meta := record.Conn.MetadataOperations()
	version, err := meta.Version(ctx)
	if err != nil {
		return nil, err
	}
	tables, err := meta.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsReport{Version: version, Tables: tables}, nil
}

// Backup dumps the named connection's database to destPath. An empty
// destPath produces a generated file under the configured backup
// directory; the effective path is returned either way.
func (d *Dispatcher) Backup(ctx context.Context, name, destPath string) (string, error) {
	record, err := d.reg.Lookup(name)
	if err != nil {
		return "", err
	}
	if destPath == "" {
		destPath = filepath.Join(d.cfg.BackupDir, generatedName(name, "sql"))
	}

	ctx, cancel := d.opContext(ctx)
	defer cancel()
	if err := record.Conn.BackupOperations().Backup(ctx, destPath); err != nil {
		return "", err
	}
	return destPath, nil
}

// ExportResult carries either an in-memory payload (json, csv) or the path
// of a written workbook (xlsx).
type ExportResult struct {
	Format      export.Format
	ContentType string
	Payload     []byte
	Path        string
}

// Export runs the statement on the named connection and serializes the
// result in the requested format. XLSX output lands in the configured
// export directory.
func (d *Dispatcher) Export(ctx context.Context, name, statement string, params map[string]any, formatName string) (*ExportResult, error) {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	result, err := d.RunQuery(ctx, name, statement, params)
	if err != nil {
		return nil, err
	}

	switch format {
	case export.FormatJSON:
		payload, err := export.JSON(result)
		if err != nil {
			return nil, err
		}
		return &ExportResult{Format: format, ContentType: "application/json", Payload: payload}, nil
	case export.FormatCSV:
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, result); err != nil {
			return nil, err
		}
		return &ExportResult{Format: format, ContentType: "text/csv", Payload: buf.Bytes()}, nil
	default:
		path := filepath.Join(d.cfg.ExportDir, generatedName(name, "xlsx"))
		if err := export.WriteXLSX(path, result); err != nil {
			return nil, err
		}
		return &ExportResult{Format: format, Path: path}, nil
	}
}

func generatedName(connection, ext string) string {
	stamp := time.Now().UTC().Format("20060102T150405")
	return fmt.Sprintf("%s-%s-%s.%s", connection, stamp, uuid.NewString()[:8], ext)
}
