package store

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The journal insert runs only against a live database, so drift between
// its column list and the migration DDL would never fail a unit test.
// Cross-check them here instead.
func TestJournalInsertMatchesSchema(t *testing.T) {
	ddl, err := os.ReadFile("../../database/migrations/0001_init.up.sql")
	require.NoError(t, err)

	table := tableDDL(t, string(ddl), "ledger_entries")

	for _, col := range insertColumns(t, journalInsert) {
		assert.Contains(t, table, col, "column %q missing from ledger_entries DDL", col)
	}

	// every journal row is a single positive movement, so the DDL's
	// positivity check must stay satisfiable
	assert.Contains(t, table, "CHECK (amount > 0)")
}

// tableDDL returns the body of one CREATE TABLE statement.
func tableDDL(t *testing.T, ddl, table string) string {
	t.Helper()

	marker := "CREATE TABLE " + table + " ("
	start := strings.Index(ddl, marker)
	require.NotEqual(t, -1, start, "no CREATE TABLE for %s", table)

	end := strings.Index(ddl[start:], ");")
	require.NotEqual(t, -1, end)

	return ddl[start : start+end]
}

// insertColumns returns the column list of an INSERT statement.
func insertColumns(t *testing.T, stmt string) []string {
	t.Helper()

	m := regexp.MustCompile(`INSERT INTO \w+ \(([^)]+)\)`).FindStringSubmatch(stmt)
	require.NotNil(t, m, "no column list in %q", stmt)

	cols := strings.Split(m[1], ",")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}

	return cols
}
