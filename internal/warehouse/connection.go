package warehouse

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/orchid-commerce/medallion/internal/config"
)

// Warehouse is the MySQL-backed table store the pipeline publishes to.
// The pipeline itself never reads it back; stages exchange data in
// memory and the warehouse is the durable output for BI and the
// data-quality monitor.
type Warehouse struct {
	*sql.DB
}

// NewConnection creates a new warehouse connection using the provided config
func NewConnection(cfg *config.WarehouseConfig) (*Warehouse, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping warehouse: %w", err)
	}

	return &Warehouse{db}, nil
}

// HealthCheck performs a simple health check on the warehouse
func (w *Warehouse) HealthCheck() error {
	return w.Ping()
}

// Setup creates every pipeline table that does not exist yet.
func (w *Warehouse) Setup() error {
	var statements []string
	statements = append(statements, bronzeStatements...)
	statements = append(statements, silverStatements...)
	statements = append(statements, goldStatements...)
	statements = append(statements, controlStatements...)

	for _, ddl := range statements {
		if _, err := w.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create warehouse tables: %w", err)
		}
	}
	return nil
}
