package docx

import "strings"

// Paragraph 文档中的一个段落，由若干 Run 顺序组成
// 不变式：按顺序拼接所有 Run 的文本即为段落的完整文本
type Paragraph struct {
	node *Node
}

// Runs 返回段落的所有 Run (直接子元素 w:r)
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, node := range p.node.ChildrenByTag("w:r") {
		runs = append(runs, &Run{node: node})
	}
	return runs
}

// Text 返回段落的完整文本 (所有 Run 文本的顺序拼接)
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, run := range p.Runs() {
		sb.WriteString(run.Text())
	}
	return sb.String()
}

// Run 共享同一格式的连续文本片段
type Run struct {
	node *Node
}

// Text 返回 Run 的文本内容 (所有 w:t 子元素的拼接)
func (r *Run) Text() string {
	var sb strings.Builder
	for _, t := range r.node.ChildrenByTag("w:t") {
		sb.WriteString(t.InnerText())
	}
	return sb.String()
}

// SetText 重写 Run 的文本内容
// 所有 w:t 子元素被替换为单个 w:t，w:rPr 等格式属性保持不变；
// 文本带有首尾空白时自动添加 xml:space="preserve"
func (r *Run) SetText(text string) {
	// 找到第一个 w:t 的位置，新文本插入在同一位置；
	// 没有 w:t 时插入在 w:rPr 之后
	insertAt := -1
	for i, c := range r.node.Children {
		if c.Kind == ElementNode && c.Tag == "w:t" {
			insertAt = i
			break
		}
	}
	if insertAt == -1 {
		insertAt = len(r.node.Children)
		if rPr := r.node.FindChild("w:rPr"); rPr != nil {
			insertAt = r.node.IndexOfChild(rPr) + 1
		}
	}

	// 移除现有的所有 w:t
	for _, t := range r.node.ChildrenByTag("w:t") {
		idx := r.node.IndexOfChild(t)
		if idx < insertAt {
			insertAt--
		}
		r.node.RemoveChild(t)
	}

	attr := ""
	if text != strings.TrimSpace(text) {
		attr = ` xml:space="preserve"`
	}
	newT := &Node{
		Kind: ElementNode,
		Tag:  "w:t",
		Attr: attr,
		Children: []*Node{
			{Kind: TextNode, Text: text},
		},
	}
	r.node.InsertChildAt(insertAt, newT)
}
