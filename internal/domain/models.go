package domain

import "github.com/allanpk716/cert_generator/pkg/docx"

// MappingType 字段映射的定位方式
type MappingType string

const (
	// MappingParagraph 按段落下标定位
	MappingParagraph MappingType = "paragraph"
	// MappingTableCell 按 (表格, 行, 单元格) 下标定位
	MappingTableCell MappingType = "table_cell"
	// MappingManual 在整个文档中按字面文本搜索
	MappingManual MappingType = "manual"
)

// FieldMapping 一条替换指令：在指定位置把模式中的数字替换为递增后的值
// 单数字映射是 Numbers 只有一个元素的特例，两种情况走同一条代码路径
type FieldMapping struct {
	Type MappingType

	// Type == MappingParagraph 时有效
	ParagraphIndex int

	// Type == MappingTableCell 时有效
	TableIndex int
	RowIndex   int
	CellIndex  int

	// FullMatch 包含序列号的完整字面文本 (如 "1687/2526/1")
	FullMatch string
	// Numbers 需要递增的数字子串，按配置顺序排列
	Numbers []string
	// Suggested 自动检测时的建议标记，仅供展示，不影响替换
	Suggested bool
}

// PrimaryNumber 返回主数字 (第一个)，用于生成输出文件名
func (m FieldMapping) PrimaryNumber() string {
	if len(m.Numbers) == 0 {
		return ""
	}
	return m.Numbers[0]
}

// DetectedField 自动检测出的候选字段
type DetectedField struct {
	Location  string       // 人类可读的位置描述 (如 "段落 3")
	Text      string       // 所在段落/单元格的完整文本
	Mapping   FieldMapping // 可直接用于生成的映射
	Suggested bool         // 所在行是否含有证书相关关键词
}

// MappingResult 单条映射在一个批次中的累计命中情况
type MappingResult struct {
	Mapping      FieldMapping
	Replacements int // 整个批次中实际发生替换的位置总数
}

// GenerateResult 一个批次的生成统计
type GenerateResult struct {
	Certificates int
	Results      []MappingResult // 与映射列表一一对应
}

// Accumulate 把单份证书的每条映射命中次数并入批次统计
func (r *GenerateResult) Accumulate(counts []int) {
	for i, c := range counts {
		if i < len(r.Results) {
			r.Results[i].Replacements += c
		}
	}
}

// ZeroMatches 返回整个批次中一次都未命中的映射
// 拼写错误的手动模式会静默产生零替换，调用方靠这里发现问题
func (r *GenerateResult) ZeroMatches() []FieldMapping {
	var zero []FieldMapping
	for _, res := range r.Results {
		if res.Replacements == 0 {
			zero = append(zero, res.Mapping)
		}
	}
	return zero
}

// Generator 证书生成器接口
type Generator interface {
	// GenerateOne 从模板生成第 index 份证书 (0 起始)
	GenerateOne(template []byte, mappings []FieldMapping, index int) (*docx.Document, error)
	// GenerateCombined 生成包含 count 份证书的合并文档
	GenerateCombined(template []byte, mappings []FieldMapping, count int) ([]byte, *GenerateResult, error)
	// GenerateArchive 生成包含 count 份独立证书的 ZIP 包
	GenerateArchive(template []byte, mappings []FieldMapping, count int) ([]byte, *GenerateResult, error)
}
