// Package catalog lee catálogos de productos exportados por sistemas externos (CSV).
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
)

// Charsets aceptados para el archivo de entrada.
const (
	CharsetUTF8        = "utf-8"
	CharsetLatin1      = "iso-8859-1"
	CharsetWindows1252 = "windows-1252"
)

var expectedHeader = []string{"name", "type", "price", "stock"}

// decoder envuelve r según el charset; las exportaciones de POS antiguos suelen venir en Latin-1.
func decoder(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", CharsetUTF8, "utf8":
		return r, nil
	case CharsetLatin1, "latin1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case CharsetWindows1252, "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado %q", charset)
	}
}

// ReadProducts decodifica filas name,type,price,stock. La cabecera es opcional.
// Los valores no se validan aquí: cada fila pasa por el alta normal de productos.
func ReadProducts(r io.Reader, charset string) ([]dto.CreateProductRequest, error) {
	in, err := decoder(r, charset)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = len(expectedHeader)
	reader.TrimLeadingSpace = true

	var out []dto.CreateProductRequest
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), expectedHeader[0]) {
			continue
		}
		price, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("csv línea %d: price %q no es entero", line, record[2])
		}
		stock, err := strconv.ParseInt(strings.TrimSpace(record[3]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("csv línea %d: stock %q no es entero", line, record[3])
		}
		out = append(out, dto.CreateProductRequest{
			Name:  strings.TrimSpace(record[0]),
			Type:  strings.ToUpper(strings.TrimSpace(record[1])),
			Price: &price,
			Stock: &stock,
		})
	}
	return out, nil
}
