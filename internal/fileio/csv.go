package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"profit-service/internal/profit/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV reads CSV with headerRow (1-based), auto-detecting the encoding and
// the separator. Windows-1252 and ISO-8859-1 are converted to UTF-8;
// ';' is used when the file starts with more of them than commas.
func readCSV(r io.Reader, headerRow int) (*model.Table, error) {
	br := bufio.NewReader(r)

	peek, _ := br.Peek(4096)
	if bytes.HasPrefix(peek, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
		peek = peek[len(utf8BOM):]
	}

	var dec io.Reader = br
	switch detectCharset(peek) {
	case "windows-1252":
		dec = transform.NewReader(br, charmap.Windows1252.NewDecoder())
	case "iso-8859-1":
		dec = transform.NewReader(br, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.Comma = detectComma(peek)

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i := range rec {
			rec[i] = normalizeCell(rec[i])
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return &model.Table{}, nil
	}
	return toTable(stringRows(rows), headerRow), nil
}

// detectCharset tells UTF-8 apart from the single-byte latin encodings that
// Excel on Windows produces. Anything that is not valid UTF-8 is decoded as
// Windows-1252 unless chardet is sure it is ISO-8859-1.
func detectCharset(peek []byte) string {
	if isUTF8(peek) {
		return "utf-8"
	}
	det, err := chardet.NewTextDetector().DetectBest(peek)
	if err == nil && det != nil && strings.EqualFold(det.Charset, "iso-8859-1") {
		return "iso-8859-1"
	}
	return "windows-1252"
}

func isUTF8(b []byte) bool {
	// the peek may end in the middle of a rune
	for i := 0; i < utf8.UTFMax && len(b) > 0 && !utf8.Valid(b); i++ {
		b = b[:len(b)-1]
	}
	return utf8.Valid(b)
}

// detectComma looks at the peeked lines rather than the first one only:
// exports often start with a title row.
func detectComma(peek []byte) rune {
	if bytes.Count(peek, []byte{';'}) > bytes.Count(peek, []byte{','}) {
		return ';'
	}
	return ','
}
