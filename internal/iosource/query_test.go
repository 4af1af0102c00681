package iosource

import (
	"testing"

	"github.com/gnames/instcat/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelect(t *testing.T) {
	st := settings{
		table: "objects",
		colMap: map[string]string{
			"id":         `"id"`,
			"ra":         "ra",
			"dec":        "decl",
			"galacticAv": "ebv*3.1",
		},
		ra:  "ra",
		dec: "dec",
	}
	box := &source.ObsMetadata{Bounds: &source.BoxBounds{
		RAMin: 10, RAMax: 20, DecMin: -5, DecMax: 5,
	}}
	wrap := &source.ObsMetadata{Bounds: &source.BoxBounds{
		RAMin: 350, RAMax: 10, DecMin: -5, DecMax: 5,
	}}

	tests := []struct {
		msg     string
		dialect string
		q       source.Query
		sql     string
		args    int
	}{
		{
			msg:     "plain",
			dialect: "sqlite",
			q:       source.Query{Columns: []string{"id", "galacticAv"}},
			sql:     `SELECT "id" AS "id", ebv*3.1 AS "galacticAv" FROM objects`,
		},
		{
			msg:     "constraint",
			dialect: "duckdb",
			q: source.Query{
				Columns:    []string{"dec"},
				Constraint: "id < 10 OR id > 20",
			},
			sql: `SELECT decl AS "dec" FROM objects WHERE (id < 10 OR id > 20)`,
		},
		{
			msg:     "box postgres",
			dialect: "postgres",
			q:       source.Query{Columns: []string{"id"}, Obs: box},
			sql: `SELECT "id" AS "id" FROM objects WHERE ` +
				`(ra >= $1 AND ra <= $2) AND decl BETWEEN $3 AND $4`,
			args: 4,
		},
		{
			msg:     "wrapped box sqlserver",
			dialect: "sqlserver",
			q: source.Query{
				Columns:    []string{"id"},
				Obs:        wrap,
				Constraint: "id > 0",
			},
			sql: `SELECT "id" AS "id" FROM objects WHERE (id > 0) AND ` +
				`(ra >= @p1 OR ra <= @p2) AND decl BETWEEN @p3 AND @p4`,
			args: 4,
		},
		{
			msg:     "no columns",
			dialect: "sqlite",
			q:       source.Query{},
			sql:     `SELECT 1 AS "_row" FROM objects`,
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			sql, args, err := buildSelect(dialects[v.dialect], st, v.q)
			require.NoError(t, err)
			assert.Equal(t, v.sql, sql, v.msg)
			assert.Len(t, args, v.args, v.msg)
		})
	}
}

func TestBuildSelectErrors(t *testing.T) {
	st := settings{
		table:  "objects",
		colMap: map[string]string{"id": "id"},
		ra:     "ra",
		dec:    "dec",
	}
	_, _, err := buildSelect(dialects["sqlite"], st,
		source.Query{Columns: []string{"umag"}})
	assert.Error(t, err, "Unmapped column")

	_, _, err = buildSelect(dialects["sqlite"], st, source.Query{
		Columns: []string{"id"},
		Obs:     &source.ObsMetadata{Bounds: &source.BoxBounds{}},
	})
	assert.Error(t, err, "Bounds without RA column")
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"id"`, quoteIdent("id"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}
