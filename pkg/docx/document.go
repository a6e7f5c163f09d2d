package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPartName = "word/document.xml"

// ErrMissingDocumentXML DOCX 包中缺少 word/document.xml
var ErrMissingDocumentXML = errors.New("DOCX文件中缺少 word/document.xml")

// zipPart ZIP 包中的一个条目，保持原始顺序和压缩方式
type zipPart struct {
	name   string
	data   []byte
	method uint16
}

// Document 内存中的 DOCX 文档
// 每次生成证书时都从模板字节重新加载，互不影响；
// 除 word/document.xml 外的所有条目原样保留
type Document struct {
	parts []zipPart
	tree  *Node // document.xml 的节点树 (合成根)
	body  *Node // w:body 元素
}

// LoadDocument 从 DOCX 字节流加载文档
func LoadDocument(data []byte) (*Document, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("打开DOCX文件失败: %w", err)
	}

	doc := &Document{}
	for _, file := range reader.File {
		fileReader, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("打开条目 %s 失败: %w", file.Name, err)
		}
		content, err := io.ReadAll(fileReader)
		fileReader.Close()
		if err != nil {
			return nil, fmt.Errorf("读取条目 %s 失败: %w", file.Name, err)
		}

		doc.parts = append(doc.parts, zipPart{
			name:   file.Name,
			data:   content,
			method: file.Method,
		})

		if file.Name == documentPartName {
			tree, err := ParseXML(content)
			if err != nil {
				return nil, fmt.Errorf("解析 document.xml 失败: %w", err)
			}
			doc.tree = tree
		}
	}

	if doc.tree == nil {
		return nil, ErrMissingDocumentXML
	}

	docElem := doc.tree.FindChild("w:document")
	if docElem == nil {
		return nil, fmt.Errorf("document.xml 中缺少 w:document 元素")
	}
	doc.body = docElem.FindChild("w:body")
	if doc.body == nil {
		return nil, fmt.Errorf("document.xml 中缺少 w:body 元素")
	}

	return doc, nil
}

// Bytes 将文档序列化为 DOCX 字节流
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for _, part := range d.parts {
		content := part.data
		if part.name == documentPartName {
			var sb strings.Builder
			d.tree.WriteXML(&sb)
			content = []byte(sb.String())
		}

		writer, err := zipWriter.CreateHeader(&zip.FileHeader{
			Name:   part.name,
			Method: part.method,
		})
		if err != nil {
			return nil, fmt.Errorf("创建ZIP条目 %s 失败: %w", part.name, err)
		}
		if _, err := writer.Write(content); err != nil {
			return nil, fmt.Errorf("写入ZIP条目 %s 失败: %w", part.name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("关闭ZIP文件失败: %w", err)
	}
	return buf.Bytes(), nil
}

// Body 返回 w:body 元素，供文档合并等树级操作使用
func (d *Document) Body() *Node {
	return d.body
}

// Paragraphs 返回正文顶层的所有段落
func (d *Document) Paragraphs() []*Paragraph {
	var paragraphs []*Paragraph
	for _, node := range d.body.ChildrenByTag("w:p") {
		paragraphs = append(paragraphs, &Paragraph{node: node})
	}
	return paragraphs
}

// Tables 返回正文顶层的所有表格
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, node := range d.body.ChildrenByTag("w:tbl") {
		tables = append(tables, &Table{node: node})
	}
	return tables
}
