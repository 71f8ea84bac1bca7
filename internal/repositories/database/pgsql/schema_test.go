package pgsql

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Item quantities are decimals end to end (fractional units such as 1.5 kg
// are valid); an integer column would make pgx unable to encode the
// parameter on insert.
func TestItemQuantityColumnsAreNumeric(t *testing.T) {
	migrationFiles := []string{
		"000002_create_sales.up.sql",
		"000003_create_purchase_orders.up.sql",
	}
	quantityColumn := regexp.MustCompile(`(?m)^\s*quantity\s+(\S+)`)

	for _, name := range migrationFiles {
		content, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", name))
		require.NoError(t, err, "migration %s should be readable", name)

		matches := quantityColumn.FindAllStringSubmatch(string(content), -1)
		require.NotEmpty(t, matches, "migration %s should declare a quantity column", name)
		for _, m := range matches {
			require.True(t, strings.HasPrefix(m[1], "NUMERIC"),
				"quantity column in %s must be NUMERIC, got %s", name, m[1])
		}
	}
}
