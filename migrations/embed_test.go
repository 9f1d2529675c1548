package migrations_test

import (
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rfm-api/migrations"
)

func TestFS_VersionesConsecutivasConUpYDown(t *testing.T) {
	src, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer src.Close()

	v, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)

	count := 0
	for {
		count++
		up, _, err := src.ReadUp(v)
		require.NoError(t, err, "versión %d sin .up.sql", v)
		up.Close()

		down, _, err := src.ReadDown(v)
		require.NoError(t, err, "versión %d sin .down.sql", v)
		body, err := io.ReadAll(down)
		require.NoError(t, err)
		down.Close()
		assert.Contains(t, string(body), "DROP TABLE")

		next, err := src.Next(v)
		if err != nil {
			break
		}
		assert.Equal(t, v+1, next, "las versiones deben ser consecutivas")
		v = next
	}
	assert.Equal(t, 5, count)
}
