package docx

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// NodeKind 节点类型
type NodeKind int

const (
	// ElementNode XML 元素节点
	ElementNode NodeKind = iota
	// TextNode 文本节点
	TextNode
	// RawNode 原样透传的节点 (XML声明、注释、CDATA等)
	RawNode
)

// Node 表示 document.xml 节点树中的一个节点
// 标签名和属性文本按原始字节保留 (如 "w:p"、` w:val="true"`)，
// 保证未修改的节点写回后与 Word 生成的原始 XML 保持一致；
// encoding/xml 无法往返保留命名空间前缀，因此这里不使用它
type Node struct {
	Kind      NodeKind
	Tag       string  // 元素的原始标签名，含前缀
	Attr      string  // 起始标签中标签名之后的原始属性文本 (含前导空格)
	SelfClose bool    // <w:br/> 形式的自闭合元素
	Text      string  // 文本节点内容 (已反转义)
	Raw       string  // 透传节点的原始内容
	Children  []*Node
}

// ParseXML 将 XML 字节流解析为节点树，返回合成的根节点
// 根节点本身不对应任何元素，其子节点为顶层内容 (XML声明、w:document 等)
func ParseXML(data []byte) (*Node, error) {
	root := &Node{Kind: ElementNode}
	stack := []*Node{root}

	i := 0
	for i < len(data) {
		if data[i] != '<' {
			next := bytes.IndexByte(data[i:], '<')
			if next < 0 {
				next = len(data) - i
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{
				Kind: TextNode,
				Text: unescapeText(string(data[i : i+next])),
			})
			i += next
			continue
		}

		rest := data[i:]
		switch {
		case bytes.HasPrefix(rest, []byte("<?")):
			end := bytes.Index(rest, []byte("?>"))
			if end < 0 {
				return nil, fmt.Errorf("XML声明未闭合 (偏移 %d)", i)
			}
			appendRaw(stack, string(rest[:end+2]))
			i += end + 2

		case bytes.HasPrefix(rest, []byte("<!--")):
			end := bytes.Index(rest, []byte("-->"))
			if end < 0 {
				return nil, fmt.Errorf("注释未闭合 (偏移 %d)", i)
			}
			appendRaw(stack, string(rest[:end+3]))
			i += end + 3

		case bytes.HasPrefix(rest, []byte("<![CDATA[")):
			end := bytes.Index(rest, []byte("]]>"))
			if end < 0 {
				return nil, fmt.Errorf("CDATA未闭合 (偏移 %d)", i)
			}
			appendRaw(stack, string(rest[:end+3]))
			i += end + 3

		case bytes.HasPrefix(rest, []byte("<!")):
			end := bytes.IndexByte(rest, '>')
			if end < 0 {
				return nil, fmt.Errorf("声明未闭合 (偏移 %d)", i)
			}
			appendRaw(stack, string(rest[:end+1]))
			i += end + 1

		case bytes.HasPrefix(rest, []byte("</")):
			end := bytes.IndexByte(rest, '>')
			if end < 0 {
				return nil, fmt.Errorf("结束标签未闭合 (偏移 %d)", i)
			}
			tag := strings.TrimSpace(string(rest[2:end]))
			if len(stack) < 2 {
				return nil, fmt.Errorf("多余的结束标签 </%s>", tag)
			}
			open := stack[len(stack)-1]
			if open.Tag != tag {
				return nil, fmt.Errorf("标签不匹配: <%s> 对应 </%s>", open.Tag, tag)
			}
			stack = stack[:len(stack)-1]
			i += end + 1

		default:
			end := findTagEnd(rest)
			if end < 0 {
				return nil, fmt.Errorf("起始标签未闭合 (偏移 %d)", i)
			}
			inner := string(rest[1:end])
			selfClose := strings.HasSuffix(inner, "/")
			if selfClose {
				inner = inner[:len(inner)-1]
			}

			tag := inner
			attr := ""
			if sp := strings.IndexAny(inner, " \t\r\n"); sp >= 0 {
				tag = inner[:sp]
				attr = inner[sp:]
			}

			node := &Node{
				Kind:      ElementNode,
				Tag:       tag,
				Attr:      attr,
				SelfClose: selfClose,
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
			if !selfClose {
				stack = append(stack, node)
			}
			i += end + 1
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("存在未闭合的标签: <%s>", stack[len(stack)-1].Tag)
	}
	return root, nil
}

// findTagEnd 查找起始标签的 '>'，跳过属性值引号内的内容
func findTagEnd(data []byte) int {
	var quote byte
	for i := 1; i < len(data); i++ {
		c := data[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '>':
			return i
		}
	}
	return -1
}

func appendRaw(stack []*Node, raw string) {
	parent := stack[len(stack)-1]
	parent.Children = append(parent.Children, &Node{Kind: RawNode, Raw: raw})
}

// WriteXML 将节点树序列化为 XML
func (n *Node) WriteXML(sb *strings.Builder) {
	switch n.Kind {
	case TextNode:
		sb.WriteString(escapeText(n.Text))
	case RawNode:
		sb.WriteString(n.Raw)
	case ElementNode:
		if n.Tag == "" {
			// 合成根节点，只序列化子节点
			for _, c := range n.Children {
				c.WriteXML(sb)
			}
			return
		}
		sb.WriteByte('<')
		sb.WriteString(n.Tag)
		sb.WriteString(n.Attr)
		if n.SelfClose {
			sb.WriteString("/>")
			return
		}
		sb.WriteByte('>')
		for _, c := range n.Children {
			c.WriteXML(sb)
		}
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteByte('>')
	}
}

// XML 序列化为字符串
func (n *Node) XML() string {
	var sb strings.Builder
	n.WriteXML(&sb)
	return sb.String()
}

// FindChild 返回第一个指定标签的直接子元素，没有时返回 nil
func (n *Node) FindChild(tag string) *Node {
	for _, c := range n.Children {
		if c.Kind == ElementNode && c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildrenByTag 返回所有指定标签的直接子元素
func (n *Node) ChildrenByTag(tag string) []*Node {
	var result []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode && c.Tag == tag {
			result = append(result, c)
		}
	}
	return result
}

// RemoveChild 移除指定的直接子节点
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}

// InsertChildAt 在指定位置插入子节点
func (n *Node) InsertChildAt(index int, child *Node) {
	if index < 0 {
		index = 0
	}
	if index > len(n.Children) {
		index = len(n.Children)
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[index+1:], n.Children[index:])
	n.Children[index] = child
}

// AppendChild 追加子节点
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// IndexOfChild 返回直接子节点的下标，不存在时返回 -1
func (n *Node) IndexOfChild(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// Clone 深拷贝节点树
func (n *Node) Clone() *Node {
	clone := &Node{
		Kind:      n.Kind,
		Tag:       n.Tag,
		Attr:      n.Attr,
		SelfClose: n.SelfClose,
		Text:      n.Text,
		Raw:       n.Raw,
	}
	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			clone.Children[i] = c.Clone()
		}
	}
	return clone
}

// Walk 深度优先遍历所有元素节点 (含自身)
func (n *Node) Walk(fn func(*Node)) {
	if n.Kind == ElementNode {
		fn(n)
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// InnerText 拼接所有后代文本节点的内容
func (n *Node) InnerText() string {
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	if n.Kind == TextNode {
		sb.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.collectText(sb)
	}
}

// AttrValue 返回指定属性的值，不存在时返回空串
func (n *Node) AttrValue(name string) string {
	attr := n.Attr
	i := 0
	for i < len(attr) {
		// 跳过空白
		for i < len(attr) && isSpace(attr[i]) {
			i++
		}
		if i >= len(attr) {
			break
		}
		// 属性名
		nameStart := i
		for i < len(attr) && attr[i] != '=' && !isSpace(attr[i]) {
			i++
		}
		attrName := attr[nameStart:i]
		for i < len(attr) && isSpace(attr[i]) {
			i++
		}
		if i >= len(attr) || attr[i] != '=' {
			continue
		}
		i++
		for i < len(attr) && isSpace(attr[i]) {
			i++
		}
		if i >= len(attr) || (attr[i] != '"' && attr[i] != '\'') {
			continue
		}
		quote := attr[i]
		i++
		valueStart := i
		for i < len(attr) && attr[i] != quote {
			i++
		}
		if i >= len(attr) {
			break
		}
		if attrName == name {
			return unescapeText(attr[valueStart:i])
		}
		i++
	}
	return ""
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeText 转义文本节点内容
func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>") {
		return s
	}
	return textEscaper.Replace(s)
}

// unescapeText 反转义 XML 实体引用
func unescapeText(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			sb.WriteByte(s[i])
			i++
			continue
		}
		entity := s[i+1 : i+end]
		switch {
		case entity == "amp":
			sb.WriteByte('&')
		case entity == "lt":
			sb.WriteByte('<')
		case entity == "gt":
			sb.WriteByte('>')
		case entity == "quot":
			sb.WriteByte('"')
		case entity == "apos":
			sb.WriteByte('\'')
		case strings.HasPrefix(entity, "#x") || strings.HasPrefix(entity, "#X"):
			if v, err := strconv.ParseInt(entity[2:], 16, 32); err == nil {
				sb.WriteRune(rune(v))
			} else {
				sb.WriteString(s[i : i+end+1])
			}
		case strings.HasPrefix(entity, "#"):
			if v, err := strconv.ParseInt(entity[1:], 10, 32); err == nil {
				sb.WriteRune(rune(v))
			} else {
				sb.WriteString(s[i : i+end+1])
			}
		default:
			// 未知实体原样保留
			sb.WriteString(s[i : i+end+1])
		}
		i += end + 1
	}
	return sb.String()
}
