package docx

import "strings"

// Table 文档中的一个表格
type Table struct {
	node *Node
}

// Rows 返回表格的所有行 (w:tr)
func (t *Table) Rows() []*Row {
	var rows []*Row
	for _, node := range t.node.ChildrenByTag("w:tr") {
		rows = append(rows, &Row{node: node})
	}
	return rows
}

// Row 表格中的一行
type Row struct {
	node *Node
}

// Cells 返回该行的所有单元格 (w:tc)
func (r *Row) Cells() []*Cell {
	var cells []*Cell
	for _, node := range r.node.ChildrenByTag("w:tc") {
		cells = append(cells, &Cell{node: node})
	}
	return cells
}

// Cell 表格中的一个单元格，由若干段落组成
type Cell struct {
	node *Node
}

// Paragraphs 返回单元格的所有直接段落
func (c *Cell) Paragraphs() []*Paragraph {
	var paragraphs []*Paragraph
	for _, node := range c.node.ChildrenByTag("w:p") {
		paragraphs = append(paragraphs, &Paragraph{node: node})
	}
	return paragraphs
}

// Text 返回单元格的完整文本，段落之间以换行分隔
func (c *Cell) Text() string {
	var parts []string
	for _, p := range c.Paragraphs() {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}
