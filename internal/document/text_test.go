package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/abitbot/abit-advisor-go/internal/errors"
)

// writeMinimalPDF assembles a valid single-font PDF with one page per
// entry of pageTexts. An empty entry produces a page with an empty
// content stream. Offsets in the xref table are computed while the
// body is written, so the file is well-formed for any page count.
func writeMinimalPDF(t *testing.T, pageTexts []string) string {
	t.Helper()

	var buf bytes.Buffer
	offsets := []int{0} // object 0 is the free head

	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")

	n := len(pageTexts)
	fontObj := 3 + 2*n

	kids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), n))

	for i, text := range pageTexts {
		pageNum := 3 + 2*i
		contentNum := pageNum + 1
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>\nendobj\n",
			pageNum, fontObj, contentNum))

		var stream string
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			contentNum, len(stream), stream))
	}

	writeObj(fmt.Sprintf("%d 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n", fontObj))

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets), xrefStart)

	path := filepath.Join(t.TempDir(), "plan.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestExtractTextSinglePage(t *testing.T) {
	t.Parallel()
	path := writeMinimalPDF(t, []string{"Machine Learning Fundamentals"})

	text, err := ExtractText(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Machine Learning Fundamentals")
}

func TestExtractTextPreservesPageOrder(t *testing.T) {
	t.Parallel()
	path := writeMinimalPDF(t, []string{"Semester 1: Mathematics", "Semester 2: Deep Learning"})

	text, err := ExtractText(path)
	require.NoError(t, err)

	first := strings.Index(text, "Semester 1")
	second := strings.Index(text, "Semester 2")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Contains(t, text, "\n")
}

func TestExtractTextEmptyPageYieldsEmptyLine(t *testing.T) {
	t.Parallel()
	path := writeMinimalPDF(t, []string{"Intro", "", "Outro"})

	text, err := ExtractText(path)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Intro")
	assert.Empty(t, lines[1])
	assert.Contains(t, lines[2], "Outro")
}

func TestExtractTextMissingFile(t *testing.T) {
	t.Parallel()
	_, err := ExtractText(filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)

	var openErr *domerrors.DocumentOpenError
	require.ErrorAs(t, err, &openErr)
}

func TestExtractTextCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	_, err := ExtractText(path)
	require.Error(t, err)

	var openErr *domerrors.DocumentOpenError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, path, openErr.Path)
}
