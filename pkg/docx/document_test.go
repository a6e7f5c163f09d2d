package docx

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocument(t *testing.T) {
	body := paragraphXML("first") + paragraphXML("second") +
		`<w:tbl><w:tr><w:tc>` + paragraphXML("cell text") + `</w:tc></w:tr></w:tbl>`
	doc := loadTestDocument(t, body)

	paragraphs := doc.Paragraphs()
	require.Len(t, paragraphs, 2)
	assert.Equal(t, "first", paragraphs[0].Text())
	assert.Equal(t, "second", paragraphs[1].Text())

	tables := doc.Tables()
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Rows(), 1)
	require.Len(t, tables[0].Rows()[0].Cells(), 1)
	assert.Equal(t, "cell text", tables[0].Rows()[0].Cells()[0].Text())
}

func TestLoadDocument_NotZip(t *testing.T) {
	_, err := LoadDocument([]byte("not a zip archive"))
	assert.Error(t, err)
}

func TestLoadDocument_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)
	writer, err := zipWriter.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = writer.Write([]byte(testContentTypes))
	require.NoError(t, err)
	require.NoError(t, zipWriter.Close())

	_, err = LoadDocument(buf.Bytes())
	assert.ErrorIs(t, err, ErrMissingDocumentXML)
}

// 未修改的文档保存后再加载，内容保持一致；模板之外的条目原样保留
func TestDocument_BytesRoundTrip(t *testing.T) {
	original := buildTestDocx(t, paragraphXML("Serial 014501"))
	doc, err := LoadDocument(original)
	require.NoError(t, err)

	data, err := doc.Bytes()
	require.NoError(t, err)

	reloaded, err := LoadDocument(data)
	require.NoError(t, err)
	assert.Equal(t, "Serial 014501", reloaded.Paragraphs()[0].Text())

	// 非 document.xml 的条目保持原始字节
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"}, names)
}

// 每次加载得到独立的文档，互不影响 (模板的写时复制语义)
func TestLoadDocument_IndependentCopies(t *testing.T) {
	template := buildTestDocx(t, paragraphXML("Serial 014501"))

	doc1, err := LoadDocument(template)
	require.NoError(t, err)
	doc2, err := LoadDocument(template)
	require.NoError(t, err)

	require.True(t, ReplaceInParagraph(doc1.Paragraphs()[0], "014501", "999999"))

	assert.Equal(t, "Serial 999999", doc1.Paragraphs()[0].Text())
	assert.Equal(t, "Serial 014501", doc2.Paragraphs()[0].Text())
}
