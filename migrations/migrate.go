package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate applies all pending migrations. The embedded SQL uses a
// {{prefix}} token wherever a table name appears, so one migration set
// serves every environment prefix (dev_/test_/prod_).
func Migrate(db *sql.DB, tablePrefix string) error {
	goose.SetBaseFS(newTemplateFS(embedMigrations, tablePrefix))

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migration error setting dialect: %w", err)
	}

	goose.SetTableName(tablePrefix + "goose_db_version")

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// templateFS serves the embedded migration files with the {{prefix}}
// token substituted on read.
type templateFS struct {
	base   embed.FS
	prefix string
}

func newTemplateFS(base embed.FS, prefix string) templateFS {
	return templateFS{base: base, prefix: prefix}
}

func (t templateFS) Open(name string) (fs.File, error) {
	f, err := t.base.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		return f, nil
	}
	f.Close()

	data, err := t.base.ReadFile(name)
	if err != nil {
		return nil, err
	}

	rendered := strings.ReplaceAll(string(data), "{{prefix}}", t.prefix)
	return newMemFile(info, []byte(rendered)), nil
}

func (t templateFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return t.base.ReadDir(name)
}

func (t templateFS) ReadFile(name string) ([]byte, error) {
	data, err := t.base.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return []byte(strings.ReplaceAll(string(data), "{{prefix}}", t.prefix)), nil
}
