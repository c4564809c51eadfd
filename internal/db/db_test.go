package db

import (
	"testing"

	"github.com/atsresumie/latex-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleColumnRoundTrip(t *testing.T) {
	cfg := types.DefaultStyleConfig()
	cfg.PageSize = types.PageA4
	cfg.FontFamily = types.FontCharter

	data, err := encodeStyle(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pageSize":"a4"`)

	decoded, err := decodeStyle(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestDecodeStyle_PartialColumnKeepsDefaults(t *testing.T) {
	cfg, err := decodeStyle([]byte(`{"baseFontSizePt": 10}`))
	require.NoError(t, err)

	want := types.DefaultStyleConfig()
	want.BaseFontSizePt = 10
	assert.Equal(t, want, cfg)

	cfg, err = decodeStyle(nil)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultStyleConfig(), cfg)

	_, err = decodeStyle([]byte(`{`))
	assert.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	sql, err := migrations.ReadFile("migrations/" + entries[0].Name())
	require.NoError(t, err)
	assert.Contains(t, string(sql), "CREATE TABLE IF NOT EXISTS documents")
}
