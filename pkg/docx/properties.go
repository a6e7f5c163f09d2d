package docx

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	customPartName       = "docProps/custom.xml"
	contentTypesPartName = "[Content_Types].xml"
	rootRelsPartName     = "_rels/.rels"

	// OOXML 规定的自定义属性 fmtid，所有属性共用
	customPropsFmtID = "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}"

	customPropsContentType = "application/vnd.openxmlformats-officedocument.custom-properties+xml"
	customPropsRelType     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/custom-properties"
)

// SetCustomProperty 写入一个字符串类型的自定义文档属性，同名属性会被覆盖
// docProps/custom.xml 不存在时自动创建并注册内容类型和包关系
func (d *Document) SetCustomProperty(name, value string) error {
	idx := d.partIndex(customPartName)
	if idx < 0 {
		return d.createCustomPart(name, value)
	}

	tree, err := ParseXML(d.parts[idx].data)
	if err != nil {
		return fmt.Errorf("解析 %s 失败: %w", customPartName, err)
	}
	props := tree.FindChild("Properties")
	if props == nil {
		return fmt.Errorf("%s 中缺少 Properties 元素", customPartName)
	}

	if existing := findProperty(props, name); existing != nil {
		setPropertyValue(existing, value)
	} else {
		props.AppendChild(newProperty(name, value, nextPID(props)))
	}

	d.parts[idx].data = []byte(tree.XML())
	return nil
}

// CustomProperty 读取自定义属性的值，不存在时返回空串
func (d *Document) CustomProperty(name string) (string, error) {
	idx := d.partIndex(customPartName)
	if idx < 0 {
		return "", nil
	}
	tree, err := ParseXML(d.parts[idx].data)
	if err != nil {
		return "", fmt.Errorf("解析 %s 失败: %w", customPartName, err)
	}
	props := tree.FindChild("Properties")
	if props == nil {
		return "", nil
	}
	if prop := findProperty(props, name); prop != nil {
		if lpwstr := prop.FindChild("vt:lpwstr"); lpwstr != nil {
			return lpwstr.InnerText(), nil
		}
	}
	return "", nil
}

func (d *Document) partIndex(name string) int {
	for i, part := range d.parts {
		if part.name == name {
			return i
		}
	}
	return -1
}

// createCustomPart 创建 docProps/custom.xml 并写入第一个属性
func (d *Document) createCustomPart(name, value string) error {
	root := &Node{Kind: ElementNode}
	root.AppendChild(&Node{Kind: RawNode, Raw: `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`})

	props := &Node{
		Kind: ElementNode,
		Tag:  "Properties",
		Attr: ` xmlns="http://schemas.openxmlformats.org/officeDocument/2006/custom-properties"` +
			` xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"`,
	}
	// pid 从 2 开始，1 被规范保留
	props.AppendChild(newProperty(name, value, 2))
	root.AppendChild(props)

	if err := d.registerContentType(); err != nil {
		return err
	}
	if err := d.registerPackageRelationship(); err != nil {
		return err
	}

	d.parts = append(d.parts, zipPart{
		name: customPartName,
		data: []byte(root.XML()),
	})
	return nil
}

// registerContentType 在 [Content_Types].xml 中登记自定义属性部件
func (d *Document) registerContentType() error {
	idx := d.partIndex(contentTypesPartName)
	if idx < 0 {
		return fmt.Errorf("DOCX文件中缺少 %s", contentTypesPartName)
	}
	tree, err := ParseXML(d.parts[idx].data)
	if err != nil {
		return fmt.Errorf("解析 %s 失败: %w", contentTypesPartName, err)
	}
	types := tree.FindChild("Types")
	if types == nil {
		return fmt.Errorf("%s 中缺少 Types 元素", contentTypesPartName)
	}

	for _, override := range types.ChildrenByTag("Override") {
		if override.AttrValue("PartName") == "/"+customPartName {
			return nil
		}
	}

	types.AppendChild(&Node{
		Kind:      ElementNode,
		Tag:       "Override",
		Attr:      fmt.Sprintf(` PartName="/%s" ContentType="%s"`, customPartName, customPropsContentType),
		SelfClose: true,
	})
	d.parts[idx].data = []byte(tree.XML())
	return nil
}

// registerPackageRelationship 在包级关系中登记自定义属性部件
func (d *Document) registerPackageRelationship() error {
	idx := d.partIndex(rootRelsPartName)
	if idx < 0 {
		return fmt.Errorf("DOCX文件中缺少 %s", rootRelsPartName)
	}
	tree, err := ParseXML(d.parts[idx].data)
	if err != nil {
		return fmt.Errorf("解析 %s 失败: %w", rootRelsPartName, err)
	}
	rels := tree.FindChild("Relationships")
	if rels == nil {
		return fmt.Errorf("%s 中缺少 Relationships 元素", rootRelsPartName)
	}

	maxID := 0
	for _, rel := range rels.ChildrenByTag("Relationship") {
		if rel.AttrValue("Type") == customPropsRelType {
			return nil
		}
		id := rel.AttrValue("Id")
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}

	rels.AppendChild(&Node{
		Kind: ElementNode,
		Tag:  "Relationship",
		Attr: fmt.Sprintf(` Id="rId%d" Type="%s" Target="%s"`,
			maxID+1, customPropsRelType, customPartName),
		SelfClose: true,
	})
	d.parts[idx].data = []byte(tree.XML())
	return nil
}

func findProperty(props *Node, name string) *Node {
	for _, prop := range props.ChildrenByTag("property") {
		if prop.AttrValue("name") == name {
			return prop
		}
	}
	return nil
}

func setPropertyValue(prop *Node, value string) {
	prop.Children = []*Node{{
		Kind:     ElementNode,
		Tag:      "vt:lpwstr",
		Children: []*Node{{Kind: TextNode, Text: value}},
	}}
}

func newProperty(name, value string, pid int) *Node {
	prop := &Node{
		Kind: ElementNode,
		Tag:  "property",
		Attr: fmt.Sprintf(` fmtid="%s" pid="%d" name="%s"`, customPropsFmtID, pid, escapeAttr(name)),
	}
	setPropertyValue(prop, value)
	return prop
}

// nextPID 返回当前最大 pid 加一，空属性表从 2 开始
func nextPID(props *Node) int {
	max := 1
	for _, prop := range props.ChildrenByTag("property") {
		if pid, err := strconv.Atoi(prop.AttrValue("pid")); err == nil && pid > max {
			max = pid
		}
	}
	return max + 1
}

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// escapeAttr 转义属性值内容
func escapeAttr(s string) string {
	if !strings.ContainsAny(s, `&<>"`) {
		return s
	}
	return attrEscaper.Replace(s)
}
