package docx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendCertificate_ParagraphFirst(t *testing.T) {
	base := loadTestDocument(t, paragraphXML("cert one"))
	cert := loadTestDocument(t, paragraphXML("cert two"))

	AppendCertificate(base, cert)

	paragraphs := base.Paragraphs()
	require.Len(t, paragraphs, 2)
	assert.Equal(t, "cert one", paragraphs[0].Text())
	assert.Equal(t, "cert two", paragraphs[1].Text())

	// 追加的第一个段落携带分页属性
	assert.False(t, hasPageBreakBefore(paragraphs[0].node))
	assert.True(t, hasPageBreakBefore(paragraphs[1].node))

	// cert 的 sectPr 不被复制，base 仍然只有一个且位于正文末尾
	sectPrs := base.body.ChildrenByTag("w:sectPr")
	require.Len(t, sectPrs, 1)
	last := base.body.Children[len(base.body.Children)-1]
	assert.Equal(t, "w:sectPr", last.Tag)
}

func TestAppendCertificate_TableFirst(t *testing.T) {
	base := loadTestDocument(t, paragraphXML("cert one"))
	cert := loadTestDocument(t, `<w:tbl><w:tr><w:tc>`+paragraphXML("table cert")+`</w:tc></w:tr></w:tbl>`)

	AppendCertificate(base, cert)

	// 表格不能携带 pageBreakBefore，插入合成的空分页段落
	require.Len(t, base.Tables(), 1)
	paragraphs := base.Paragraphs()
	require.Len(t, paragraphs, 2)
	breakPara := paragraphs[1]
	assert.Equal(t, "", breakPara.Text())
	assert.True(t, hasPageBreakBefore(breakPara.node))

	// 分页段落位于表格之前
	breakIdx := base.body.IndexOfChild(breakPara.node)
	tableIdx := base.body.IndexOfChild(base.Tables()[0].node)
	assert.Less(t, breakIdx, tableIdx)
}

// 合并文档数量属性：N 份证书产生 N 份块结构和 N-1 个分页标记
func TestAppendCertificate_Count(t *testing.T) {
	template := buildTestDocx(t, paragraphXML("body"))
	base, err := LoadDocument(template)
	require.NoError(t, err)

	const n = 5
	for i := 1; i < n; i++ {
		cert, err := LoadDocument(template)
		require.NoError(t, err)
		AppendCertificate(base, cert)
	}

	assert.Len(t, base.Paragraphs(), n)
	assert.Equal(t, n-1, strings.Count(base.body.XML(), "w:pageBreakBefore"))
}

func TestAppendCertificate_DeepCopy(t *testing.T) {
	base := loadTestDocument(t, paragraphXML("base"))
	cert := loadTestDocument(t, paragraphXML("Serial 014501"))

	AppendCertificate(base, cert)

	// 追加后修改源文档，不影响合并结果
	require.True(t, ReplaceInParagraph(cert.Paragraphs()[0], "014501", "000000"))
	assert.Equal(t, "Serial 014501", base.Paragraphs()[1].Text())
}

func TestRemoveBlankPages_AdjacentBreaks(t *testing.T) {
	// 空分页段落后面紧跟另一个分页段落，前者被删除
	body := paragraphXML("content") +
		`<w:p><w:pPr><w:pageBreakBefore w:val="true"/></w:pPr></w:p>` +
		`<w:p><w:pPr><w:pageBreakBefore w:val="true"/></w:pPr><w:r><w:t>next page</w:t></w:r></w:p>`
	doc := loadTestDocument(t, body)

	RemoveBlankPages(doc)

	paragraphs := doc.Paragraphs()
	require.Len(t, paragraphs, 2)
	assert.Equal(t, "content", paragraphs[0].Text())
	assert.Equal(t, "next page", paragraphs[1].Text())
}

func TestRemoveBlankPages_ConsecutiveEmpty(t *testing.T) {
	body := paragraphXML("content") + `<w:p/><w:p/>`
	doc := loadTestDocument(t, body)

	RemoveBlankPages(doc)

	// 连续空段落只保留一个
	assert.Len(t, doc.Paragraphs(), 2)
}

func TestRemoveBlankPages_LoneBreakRun(t *testing.T) {
	body := paragraphXML("content") +
		`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`
	doc := loadTestDocument(t, body)

	RemoveBlankPages(doc)

	paragraphs := doc.Paragraphs()
	require.Len(t, paragraphs, 1)
	assert.Equal(t, "content", paragraphs[0].Text())
}

func TestRemoveBlankPages_KeepsContent(t *testing.T) {
	body := paragraphXML("first") +
		`<w:p><w:pPr><w:pageBreakBefore w:val="true"/></w:pPr><w:r><w:t>second</w:t></w:r></w:p>`
	doc := loadTestDocument(t, body)

	RemoveBlankPages(doc)

	require.Len(t, doc.Paragraphs(), 2)
}

func TestRemoveBlankPages_KeepsDrawing(t *testing.T) {
	body := `<w:p><w:r><w:drawing/></w:r></w:p>` + paragraphXML("text")
	doc := loadTestDocument(t, body)

	RemoveBlankPages(doc)

	assert.Len(t, doc.Paragraphs(), 2)
}
