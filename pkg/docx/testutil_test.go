package docx

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

const testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const testRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// buildTestDocx 用给定的 body 内容构造一个最小化的 DOCX 字节流
func buildTestDocx(t *testing.T, bodyXML string) []byte {
	t.Helper()

	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		bodyXML +
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	entries := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", testContentTypes},
		{"_rels/.rels", testRels},
		{"word/document.xml", documentXML},
	}
	for _, entry := range entries {
		writer, err := zipWriter.Create(entry.name)
		require.NoError(t, err)
		_, err = writer.Write([]byte(entry.content))
		require.NoError(t, err)
	}
	require.NoError(t, zipWriter.Close())

	return buf.Bytes()
}

// loadTestDocument 从 body 内容构造并加载文档
func loadTestDocument(t *testing.T, bodyXML string) *Document {
	t.Helper()
	doc, err := LoadDocument(buildTestDocx(t, bodyXML))
	require.NoError(t, err)
	return doc
}

// paragraphXML 构造单 Run 段落的 XML
func paragraphXML(runs ...string) string {
	result := "<w:p>"
	for _, text := range runs {
		result += `<w:r><w:t>` + text + `</w:t></w:r>`
	}
	return result + "</w:p>"
}
