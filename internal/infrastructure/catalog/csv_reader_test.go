package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadProducts_UTF8ConCabecera(t *testing.T) {
	in := "name,type,price,stock\nKenya AA,bean,18000,40\n Tiramisú , DESSERT ,9500,0\n"
	rows, err := ReadProducts(strings.NewReader(in), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Kenya AA", rows[0].Name)
	assert.Equal(t, "BEAN", rows[0].Type)
	assert.Equal(t, int64(18000), *rows[0].Price)
	assert.Equal(t, "Tiramisú", rows[1].Name)
	assert.Equal(t, int64(0), *rows[1].Stock)
}

func TestReadProducts_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Café de Nariño,BEAN,15000,12\n")
	require.NoError(t, err)

	rows, err := ReadProducts(bytes.NewReader([]byte(encoded)), "latin1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café de Nariño", rows[0].Name)
}

func TestReadProducts_Errores(t *testing.T) {
	_, err := ReadProducts(strings.NewReader("x,BEAN,abc,1\n"), "")
	assert.ErrorContains(t, err, "price")

	_, err = ReadProducts(strings.NewReader("x,BEAN,1\n"), "")
	assert.Error(t, err, "número de columnas incorrecto")

	_, err = ReadProducts(strings.NewReader(""), "ebcdic")
	assert.ErrorContains(t, err, "charset")
}
