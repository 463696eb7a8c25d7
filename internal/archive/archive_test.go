package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndReadZip(t *testing.T) {
	in := []Entry{
		{Name: "backup.json", Data: []byte(`{"version":"1.0"}`)},
		{Name: "README.txt", Data: []byte("restore with the app")},
	}

	buf, err := CreateZip(in)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	out, err := ReadZip(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "backup.json", out[0].Name)
	assert.Equal(t, in[0].Data, out[0].Data)
	assert.Equal(t, "README.txt", out[1].Name)
	assert.Equal(t, in[1].Data, out[1].Data)
}

func TestCreateZipEmpty(t *testing.T) {
	buf, err := CreateZip(nil)
	require.NoError(t, err)

	out, err := ReadZip(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestReadZipRejectsGarbage(t *testing.T) {
	_, err := ReadZip([]byte("not a zip archive"))
	assert.Error(t, err)
}
