package iosource

import (
	"fmt"
	"strings"

	"github.com/gnames/instcat/pkg/source"
)

// dialect keeps SQL differences between databases.
type dialect struct {
	// driver is the database/sql driver name. PostgreSQL goes through
	// pgxpool and has none.
	driver string

	// placeholder returns the n-th (1-based) bind parameter.
	placeholder func(n int) string
}

// rowColumn is selected when no raw columns are needed.
const rowColumn = "_row"

var dialects = map[string]dialect{
	"postgres":  {placeholder: dollarArg},
	"sqlite":    {driver: "sqlite", placeholder: questionArg},
	"duckdb":    {driver: "duckdb", placeholder: questionArg},
	"sqlserver": {driver: "sqlserver", placeholder: atArg},
}

func dollarArg(n int) string { return fmt.Sprintf("$%d", n) }

func questionArg(int) string { return "?" }

func atArg(n int) string { return fmt.Sprintf("@p%d", n) }

// quoteIdent quotes an identifier with double quotes. SQL Server accepts
// them as well with QUOTED_IDENTIFIER on, which is its default.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// buildSelect creates a query that returns q.Columns in order under their
// raw names. The table is used verbatim, so it can be a view or a table
// function such as read_parquet('objects.parquet').
func buildSelect(d dialect, st settings, q source.Query) (string, []any, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT ")
	if len(q.Columns) == 0 {
		// rows still have to be counted
		sb.WriteString("1 AS ")
		sb.WriteString(quoteIdent(rowColumn))
	}
	for i, name := range q.Columns {
		expr, ok := st.colMap[name]
		if !ok {
			return "", nil, fmt.Errorf("column '%s' is not in the column map", name)
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(expr)
		sb.WriteString(" AS ")
		sb.WriteString(quoteIdent(name))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(st.table)

	var where []string
	if c := strings.TrimSpace(q.Constraint); c != "" {
		where = append(where, "("+c+")")
	}
	if q.Obs != nil && q.Obs.Bounds != nil {
		cond, bargs, err := boundsCondition(d, st, q.Obs.Bounds, len(args))
		if err != nil {
			return "", nil, err
		}
		where = append(where, cond)
		args = append(args, bargs...)
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	return sb.String(), args, nil
}

// boundsCondition restricts rows to a box on the sky. A box with
// RAMin > RAMax wraps around RA 0.
func boundsCondition(
	d dialect,
	st settings,
	b *source.BoxBounds,
	argCount int,
) (string, []any, error) {
	ra, ok := st.colMap[st.ra]
	if !ok {
		return "", nil, fmt.Errorf("RA column '%s' is not in the column map", st.ra)
	}
	dec, ok := st.colMap[st.dec]
	if !ok {
		return "", nil, fmt.Errorf("dec column '%s' is not in the column map", st.dec)
	}

	arg := func() string {
		argCount++
		return d.placeholder(argCount)
	}

	raJoin := "AND"
	if b.RAMin > b.RAMax {
		raJoin = "OR"
	}
	raCond := fmt.Sprintf("(%s >= %s %s %s <= %s)", ra, arg(), raJoin, ra, arg())
	decCond := fmt.Sprintf("%s BETWEEN %s AND %s", dec, arg(), arg())
	args := []any{b.RAMin, b.RAMax, b.DecMin, b.DecMax}
	return raCond + " AND " + decCond, args, nil
}

// probeQuery returns no rows, only column names.
func probeQuery(table string) string {
	return "SELECT * FROM " + table + " WHERE 1 = 0"
}
