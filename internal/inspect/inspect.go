package inspect

import (
	"fmt"
	"io"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Inspector dumps every table of a SQLite database as plain text.
type Inspector struct {
	out io.Writer
}

// New creates an inspector writing its report to out
func New(out io.Writer) *Inspector {
	return &Inspector{out: out}
}

// DumpFile opens the database file read-only, dumps all tables, and closes
// the connection on every path.
func (i *Inspector) DumpFile(path string) error {
	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("access connection: %w", err)
	}
	defer sqlDB.Close()

	return i.Dump(gdb)
}

// Dump prints every table of the connected database in catalog order
func (i *Inspector) Dump(gdb *gorm.DB) error {
	tables, err := i.tables(gdb)
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}

	if len(tables) == 0 {
		fmt.Fprintln(i.out, "No tables found in database.")
		return nil
	}

	for _, table := range tables {
		if err := i.dumpTable(gdb, table); err != nil {
			return fmt.Errorf("dump table %s: %w", table, err)
		}
	}
	return nil
}

// tables reads table names from the engine catalog
func (i *Inspector) tables(gdb *gorm.DB) ([]string, error) {
	var names []string
	err := gdb.Raw(`SELECT name FROM sqlite_master WHERE type = 'table'`).Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (i *Inspector) dumpTable(gdb *gorm.DB, table string) error {
	fmt.Fprintf(i.out, "\n--- Table: %s ---\n", table)

	rows, err := gdb.Raw("SELECT * FROM " + quoteIdent(table)).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	var printed []string
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for idx := range values {
			ptrs[idx] = &values[idx]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}

		cells := make([]string, len(values))
		for idx, v := range values {
			cells[idx] = formatValue(v)
		}
		printed = append(printed, strings.Join(cells, " | "))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(printed) == 0 {
		fmt.Fprintln(i.out, "(Empty)")
		return nil
	}

	header := strings.Join(columns, " | ")
	fmt.Fprintln(i.out, header)
	fmt.Fprintln(i.out, strings.Repeat("-", len(header)))
	for _, line := range printed {
		fmt.Fprintln(i.out, line)
	}
	return nil
}

func formatValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(value)
	default:
		return fmt.Sprint(value)
	}
}

// quoteIdent quotes a table name so catalog entries with unusual names
// cannot break the query.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
