package state

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/vendcore/internal/catalog"
	"github.com/temoto/vendcore/log2"
)

func TestReadConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	write("main.hcl", `
include "local.hcl" {}
include "absent.hcl" { optional = true }
money { coin "penny" { count = 3 } }`)
	write("local.hcl", `inventory { item "pepsi" { count = 9 } }`)

	log := log2.NewTest(t, log2.LDebug)
	c, err := ReadConfigFile(log, filepath.Join(dir, "main.hcl"))
	require.NoError(t, err)
	s, err := c.Seed()
	require.NoError(t, err)
	assert.Equal(t, map[catalog.Denomination]uint{catalog.Penny: 3}, s.Cash)
	assert.Equal(t, map[catalog.Product]uint{catalog.Pepsi: 9}, s.Items)

	c = MustReadConfig(log, filepath.Join(dir, "local.hcl"))
	s, err = c.Seed()
	require.NoError(t, err)
	assert.Empty(t, s.Cash)
	assert.Equal(t, map[catalog.Product]uint{catalog.Pepsi: 9}, s.Items)

	_, err = ReadConfigFile(log, filepath.Join(dir, "nope.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config required name=nope.hcl")
}

func TestOsFullReader(t *testing.T) {
	t.Parallel()

	fs, err := NewOsFullReader("/base")
	require.NoError(t, err)
	assert.Equal(t, "/base/sub/x.hcl", fs.Normalize("sub/../sub/x.hcl"))
	assert.Equal(t, "/etc/x.hcl", fs.Normalize("/etc/x.hcl"))
	b, err := fs.ReadAll(filepath.Join(t.TempDir(), "missing"))
	assert.NoError(t, err)
	assert.Nil(t, b)
}
