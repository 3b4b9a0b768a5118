package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/lollipopkit/distil/binchunk"
)

const sqliteSchema = `
CREATE TABLE header (
	version      TEXT NOT NULL,
	format       INTEGER NOT NULL,
	endianness   INTEGER NOT NULL,
	int_size     INTEGER NOT NULL,
	size_t_size  INTEGER NOT NULL,
	instr_size   INTEGER NOT NULL,
	number_size  INTEGER NOT NULL,
	integral     INTEGER NOT NULL,
	stripped     INTEGER NOT NULL
);
CREATE TABLE functions (
	id                INTEGER PRIMARY KEY,
	parent            INTEGER REFERENCES functions(id),
	path              TEXT NOT NULL,
	source            TEXT NOT NULL,
	line_defined      INTEGER NOT NULL,
	last_line_defined INTEGER NOT NULL,
	upvalue_count     INTEGER NOT NULL,
	param_count       INTEGER NOT NULL,
	is_vararg         INTEGER NOT NULL,
	max_stack_size    INTEGER NOT NULL
);
CREATE TABLE instructions (
	function INTEGER NOT NULL REFERENCES functions(id),
	pc       INTEGER NOT NULL,
	op       INTEGER NOT NULL,
	name     TEXT NOT NULL,
	a        INTEGER NOT NULL,
	b        INTEGER NOT NULL,
	c        INTEGER NOT NULL,
	line     INTEGER,
	PRIMARY KEY (function, pc)
);
CREATE TABLE constants (
	function INTEGER NOT NULL REFERENCES functions(id),
	idx      INTEGER NOT NULL,
	kind     TEXT NOT NULL,
	value,
	PRIMARY KEY (function, idx)
);
CREATE TABLE locals (
	function INTEGER NOT NULL REFERENCES functions(id),
	idx      INTEGER NOT NULL,
	name     TEXT NOT NULL,
	startpc  INTEGER NOT NULL,
	endpc    INTEGER NOT NULL,
	PRIMARY KEY (function, idx)
);
CREATE TABLE upvalues (
	function INTEGER NOT NULL REFERENCES functions(id),
	idx      INTEGER NOT NULL,
	name     TEXT NOT NULL,
	PRIMARY KEY (function, idx)
);
`

// SQLite writes res into a new database at path. Functions are numbered
// in depth-first order starting at 0 for main.
func SQLite(ctx context.Context, path string, res *binchunk.Result) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := insertResult(ctx, tx, res); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertResult(ctx context.Context, tx *sql.Tx, res *binchunk.Result) error {
	h := res.Header
	_, err := tx.ExecContext(ctx, `INSERT INTO header VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.Version, h.Format, h.Endianness, h.Sizes.Int, h.Sizes.SizeT,
		h.Sizes.Instruction, h.Sizes.Number, h.Integral, res.Config.StripDebugging)
	if err != nil {
		return fmt.Errorf("insert header: %w", err)
	}

	// ids[depth] is the id of the function currently open at that depth
	var ids []int64
	var next int64
	return res.Main.Walk(func(path []int, c *binchunk.Chunk) error {
		id := next
		next++
		ids = append(ids[:len(path)], id)

		var parent any
		if len(path) > 0 {
			parent = ids[len(path)-1]
		}
		if err := insertFunction(ctx, tx, id, parent, path, c); err != nil {
			return fmt.Errorf("function %s: %w", binchunk.FormatPath(path), err)
		}
		return nil
	})
}

func insertFunction(ctx context.Context, tx *sql.Tx, id int64, parent any, path []int, c *binchunk.Chunk) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO functions VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, parent, binchunk.FormatPath(path), c.SourceName, c.LineDefined, c.LastLineDefined,
		c.UpvalueCount, c.ParamCount, c.IsVararg, c.MaxStackSize)
	if err != nil {
		return err
	}

	for pc, ins := range c.Instructions {
		var line any
		if pc < len(c.LinePositions) {
			line = c.LinePositions[pc]
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO instructions VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, pc, int(ins.Op), ins.Op.String(), ins.A, ins.B, ins.C, line)
		if err != nil {
			return err
		}
	}
	for i, k := range c.Constants {
		_, err = tx.ExecContext(ctx, `INSERT INTO constants VALUES (?, ?, ?, ?)`,
			id, i, k.Kind.String(), k.Value())
		if err != nil {
			return err
		}
	}
	for i, l := range c.Locals {
		_, err = tx.ExecContext(ctx, `INSERT INTO locals VALUES (?, ?, ?, ?, ?)`,
			id, i, l.Name, l.StartPC, l.EndPC)
		if err != nil {
			return err
		}
	}
	for i, u := range c.Upvalues {
		_, err = tx.ExecContext(ctx, `INSERT INTO upvalues VALUES (?, ?, ?)`, id, i, u)
		if err != nil {
			return err
		}
	}
	return nil
}
