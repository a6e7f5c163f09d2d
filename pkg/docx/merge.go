package docx

import "strings"

// newPageBreakParagraph 构造一个只携带 pageBreakBefore 属性的空段落
// 表格自身不能携带该属性，追加以表格开头的证书时用它来分页
func newPageBreakParagraph() *Node {
	return &Node{
		Kind: ElementNode,
		Tag:  "w:p",
		Children: []*Node{
			{
				Kind: ElementNode,
				Tag:  "w:pPr",
				Children: []*Node{
					{Kind: ElementNode, Tag: "w:pageBreakBefore", Attr: ` w:val="true"`, SelfClose: true},
				},
			},
		},
	}
}

// setPageBreakBefore 在段落上设置分页属性，没有 w:pPr 时先创建
func setPageBreakBefore(paragraph *Node) {
	pPr := paragraph.FindChild("w:pPr")
	if pPr == nil {
		pPr = &Node{Kind: ElementNode, Tag: "w:pPr"}
		paragraph.InsertChildAt(0, pPr)
	}
	if pPr.FindChild("w:pageBreakBefore") != nil {
		return
	}
	pPr.AppendChild(&Node{
		Kind:      ElementNode,
		Tag:       "w:pageBreakBefore",
		Attr:      ` w:val="true"`,
		SelfClose: true,
	})
}

// AppendCertificate 将 cert 的全部正文内容追加到 base 末尾，
// 并在追加内容的第一个块前插入分页标记
// cert 的 sectPr 不会被复制；追加位置在 base 自身的 sectPr 之前，
// 保证合并后的文档仍然以节属性结尾
func AppendCertificate(base, cert *Document) {
	var elements []*Node
	for _, child := range cert.body.Children {
		if child.Kind == ElementNode && child.Tag == "w:sectPr" {
			continue
		}
		elements = append(elements, child.Clone())
	}
	if len(elements) == 0 {
		return
	}

	// 找到第一个块级元素，设置分页
	for _, elem := range elements {
		if elem.Kind != ElementNode {
			continue
		}
		if elem.Tag == "w:p" {
			setPageBreakBefore(elem)
		} else if elem.Tag == "w:tbl" {
			elements = append([]*Node{newPageBreakParagraph()}, elements...)
		}
		break
	}

	insertAt := len(base.body.Children)
	if sectPr := base.body.FindChild("w:sectPr"); sectPr != nil {
		insertAt = base.body.IndexOfChild(sectPr)
	}
	for i, elem := range elements {
		base.body.InsertChildAt(insertAt+i, elem)
	}
}

// RemoveBlankPages 移除合并文档中产生的空白页
// 基于相邻性的启发式清理：只删除紧邻另一个分页段落或空段落的
// 仅含分页标记的空段落；属于尽力而为的外观修正，
// 合并结果的正确性不依赖这次清理
func RemoveBlankPages(d *Document) {
	body := d.body

	// 第一遍：删除造成空白页的空分页段落和连续空段落
	paragraphs := body.ChildrenByTag("w:p")
	var toRemove []*Node

	for i, para := range paragraphs {
		hasContent := strings.TrimSpace(para.InnerText()) != ""
		hasPageBreak := hasPageBreakMark(para)

		if hasPageBreak && !hasContent {
			// 下一个段落也以分页开头时，这个空分页段落会产生空白页
			if i+1 < len(paragraphs) && hasPageBreakBefore(paragraphs[i+1]) {
				toRemove = append(toRemove, para)
				continue
			}
		}

		if !hasContent && !hasPageBreak {
			if paragraphHasVisibleContent(para) {
				continue
			}
			// 前一个兄弟元素也是空段落时，删除其中一个
			idx := body.IndexOfChild(para)
			if idx > 0 {
				prev := body.Children[idx-1]
				if prev.Kind == ElementNode && prev.Tag == "w:p" &&
					strings.TrimSpace(prev.InnerText()) == "" {
					toRemove = append(toRemove, para)
				}
			}
		}
	}

	for _, para := range toRemove {
		body.RemoveChild(para)
	}

	// 第二遍：删除只含一个分页 Run 的孤立空段落
	for _, para := range body.ChildrenByTag("w:p") {
		if strings.TrimSpace(para.InnerText()) != "" {
			continue
		}

		runs := para.ChildrenByTag("w:r")
		onlyHasBreak := false
		for _, run := range runs {
			for _, br := range run.ChildrenByTag("w:br") {
				if br.AttrValue("w:type") == "page" {
					onlyHasBreak = true
				}
			}
			if run.FindChild("w:drawing") != nil {
				onlyHasBreak = false
				break
			}
		}

		if onlyHasBreak && len(runs) <= 1 {
			body.RemoveChild(para)
		}
	}
}

// hasPageBreakBefore 段落属性中是否带有 pageBreakBefore
func hasPageBreakBefore(para *Node) bool {
	pPr := para.FindChild("w:pPr")
	return pPr != nil && pPr.FindChild("w:pageBreakBefore") != nil
}

// hasPageBreakMark 段落是否携带任何形式的分页标记
// (pageBreakBefore 属性或 Run 内的 w:br w:type="page")
func hasPageBreakMark(para *Node) bool {
	if hasPageBreakBefore(para) {
		return true
	}
	found := false
	para.Walk(func(n *Node) {
		if n.Tag == "w:br" && n.AttrValue("w:type") == "page" {
			found = true
		}
	})
	return found
}

// paragraphHasVisibleContent 段落的 Run 中是否有可见内容 (文本或图片)
func paragraphHasVisibleContent(para *Node) bool {
	for _, run := range para.ChildrenByTag("w:r") {
		if run.FindChild("w:drawing") != nil {
			return true
		}
		for _, t := range run.ChildrenByTag("w:t") {
			if strings.TrimSpace(t.InnerText()) != "" {
				return true
			}
		}
	}
	return false
}
