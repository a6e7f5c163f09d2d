package docx

// RemoveHighlighting 移除文档中所有 Run 的突出显示 (荧光笔) 格式
// 以树访问器的方式遍历整个 document.xml，段落、表格单元格
// 以及嵌套表格中的 Run 一并处理
func RemoveHighlighting(d *Document) {
	d.tree.Walk(func(n *Node) {
		if n.Tag != "w:rPr" {
			return
		}
		for _, highlight := range n.ChildrenByTag("w:highlight") {
			n.RemoveChild(highlight)
		}
	})
}
