package migrate

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"

	"github.com/pressly/goose/v3"
)

// Step is one schema migration resolved into executable form: the literal Up
// SQL for offline rendering and the individual statements for online
// execution.
type Step struct {
	Version    int64
	Source     string
	SQL        string
	Statements []string
}

// Collect resolves the migration files in fsys into a single linear sequence
// ordered by version. Ordering and version parsing are delegated to goose so
// the on-disk format stays interchangeable with its tooling.
func Collect(fsys fs.FS) ([]Step, error) {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	migrations, err := goose.CollectMigrations(".", 0, math.MaxInt64)
	if err != nil {
		return nil, errors.Join(ErrCollect, err)
	}

	steps := make([]Step, 0, len(migrations))
	for _, m := range migrations {
		name := strings.TrimPrefix(m.Source, "./")

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.Join(ErrCollect, err)
		}

		sql, statements, err := parseUp(name, data)
		if err != nil {
			return nil, errors.Join(ErrParse, err)
		}

		steps = append(steps, Step{
			Version:    m.Version,
			Source:     name,
			SQL:        sql,
			Statements: statements,
		})
	}

	return steps, nil
}

// parseUp extracts the Up section of a goose-format migration file as raw SQL
// text plus split statements. Statements end at a trailing semicolon unless
// wrapped in a StatementBegin/StatementEnd block.
func parseUp(name string, data []byte) (string, []string, error) {
	var (
		section    strings.Builder
		buf        strings.Builder
		statements []string
		inUp       bool
		inBlock    bool
		sawUp      bool
	)

	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			statements = append(statements, s)
		}
		buf.Reset()
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if rest, ok := strings.CutPrefix(trimmed, "-- +goose "); ok {
			switch directive := strings.TrimSpace(rest); directive {
			case "Up":
				inUp, sawUp = true, true
			case "Down":
				inUp = false
			case "StatementBegin":
				if inUp {
					inBlock = true
				}
			case "StatementEnd":
				if inUp && inBlock {
					inBlock = false
					flush()
				}
			case "NO TRANSACTION":
				// All steps run inside one transaction; a step that opts out
				// would silently break the all-or-nothing guarantee.
				return "", nil, fmt.Errorf("%s: NO TRANSACTION is not supported", name)
			}
			continue
		}

		if !inUp {
			continue
		}

		section.WriteString(line)
		section.WriteByte('\n')

		if inBlock {
			buf.WriteString(line)
			buf.WriteByte('\n')
			continue
		}

		// Blank lines and comments between statements carry no SQL.
		if buf.Len() == 0 && (trimmed == "" || strings.HasPrefix(trimmed, "--")) {
			continue
		}

		buf.WriteString(line)
		buf.WriteByte('\n')

		if strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("%s: %w", name, err)
	}

	if !sawUp {
		return "", nil, fmt.Errorf("%s: missing -- +goose Up section", name)
	}
	if inBlock {
		return "", nil, fmt.Errorf("%s: unterminated StatementBegin block", name)
	}
	flush()

	return strings.TrimSpace(section.String()), statements, nil
}
