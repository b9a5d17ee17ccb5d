package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/darianmavgo/json2csv/converters"
	"github.com/darianmavgo/json2csv/converters/common"

	_ "modernc.org/sqlite"
)

func init() {
	converters.Register("sqlite", &sqliteDriver{})
}

type sqliteDriver struct{}

func (d *sqliteDriver) Extension() string { return ".db" }

func (d *sqliteDriver) WriteTable(table *common.Table, w io.Writer, config *common.ConversionConfig) error {
	return ImportToSQLite(table, w, config)
}

// ImportToSQLite writes table as a SQLite database to the provided io.Writer.
// If writer is a regular *os.File, the database is built directly in that file.
// Otherwise, it uses a temporary file for construction and copies it to the writer.
func ImportToSQLite(table *common.Table, writer io.Writer, config *common.ConversionConfig) error {
	cfg := config.OrDefault()

	var dbPath string
	var useTemp bool = true

	// Check if writer is a file we can use directly
	if f, ok := writer.(*os.File); ok {
		stat, err := f.Stat()
		// Ensure it's a regular file (not stdout/pipe)
		if err == nil && stat.Mode().IsRegular() {
			dbPath = f.Name()
			useTemp = false
			if cfg.Verbose {
				log.Printf("[JSON2CSV] Using direct file: %s", dbPath)
			}
		}
	}

	if useTemp {
		tmpFile, err := os.CreateTemp("", "json2csv-*.db")
		if err != nil {
			return common.NewError(common.IO, "", fmt.Errorf("failed to create temp file: %w", err))
		}
		dbPath = tmpFile.Name()
		tmpFile.Close() // Close it so sql.Open can use it
		defer os.Remove(dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Limit to 1 connection to avoid locking issues and improve tx.Stmt performance
	db.SetMaxOpenConns(1)

	err = populateDB(db, table, cfg)
	db.Close()
	if err != nil {
		return err
	}

	if useTemp {
		f, err := os.Open(dbPath)
		if err != nil {
			return common.NewError(common.IO, dbPath, err)
		}
		defer f.Close()

		if _, err := io.Copy(writer, f); err != nil {
			return common.NewError(common.IO, "", fmt.Errorf("failed to write to output: %w", err))
		}
	}
	return nil
}

// populateDB creates the table and inserts every row, committing every
// BatchSize rows.
func populateDB(db *sql.DB, table *common.Table, cfg *common.ConversionConfig) error {
	tableName := common.GenTableNames([]string{cfg.TableName})[0]
	columns := common.GenColumnNames(table.Header)

	var sample []common.Value
	if len(table.Rows) > 0 {
		sample = table.Rows[0]
	}
	colTypes := common.InferColumnTypes(sample, len(columns))

	createTableSQL := common.GenCreateTableSQLWithTypes(tableName, columns, colTypes)
	if cfg.Verbose {
		log.Printf("[JSON2CSV] %s", createTableSQL)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	insertSQL, err := common.GenInsertSQL(tableName, columns)
	if err != nil {
		return fmt.Errorf("failed to generate insert statement for table %s: %w", tableName, err)
	}
	mainStmt, err := db.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement for table %s: %w", tableName, err)
	}
	defer mainStmt.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt := tx.Stmt(mainStmt)

	args := make([]interface{}, len(columns))
	for i, row := range table.Rows {
		for j, val := range row {
			args[j] = sqlValue(val)
		}
		if _, err := stmt.Exec(args...); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("failed to insert row %d in table %s: %w", i, tableName, err)
		}

		if (i+1)%cfg.BatchSize == 0 {
			stmt.Close()
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit transaction for table %s: %w", tableName, err)
			}
			tx, err = db.Begin()
			if err != nil {
				return fmt.Errorf("failed to begin transaction: %w", err)
			}
			stmt = tx.Stmt(mainStmt)
		}
	}

	stmt.Close()
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for table %s: %w", tableName, err)
	}
	if cfg.Verbose {
		log.Printf("[JSON2CSV] Finished table %s, total rows: %d", tableName, len(table.Rows))
	}
	return nil
}

// sqlValue hands the number and boolean text to SQLite as-is; column
// affinity converts it. Null placeholders are already text by now.
func sqlValue(v common.Value) interface{} {
	if v.Kind() == common.KindBool {
		if v.String() == "true" {
			return 1
		}
		return 0
	}
	return v.String()
}
