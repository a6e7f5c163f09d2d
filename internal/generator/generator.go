package generator

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/allanpk716/cert_generator/internal/domain"
	"github.com/allanpk716/cert_generator/internal/serial"
	"github.com/allanpk716/cert_generator/pkg/docx"
)

// generator 证书生成器实现
type generator struct {
	logger         *zap.Logger
	replaceHeaders bool
	projectName    string
}

// Option 生成器选项
type Option func(*generator)

// WithHeaderReplacement 是否同时替换页眉页脚中的序列号 (默认开启)
func WithHeaderReplacement(enabled bool) Option {
	return func(g *generator) {
		g.replaceHeaders = enabled
	}
}

// WithProjectName 设置项目名，非空时每份证书会写入项目名和序列号
// 两个自定义文档属性，便于事后核对证书归属
func WithProjectName(name string) Option {
	return func(g *generator) {
		g.projectName = name
	}
}

// NewGenerator 创建新的证书生成器
func NewGenerator(logger *zap.Logger, opts ...Option) domain.Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &generator{
		logger:         logger,
		replaceHeaders: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// PreviewText 计算映射在第 index 份证书中的替换文本 (纯函数，供预览使用)
// 对每个数字取其在模式中最右一次出现的位置，按位置从右到左替换，
// 先完成的替换改变长度时不会影响更靠左的已计算位置
func PreviewText(m domain.FieldMapping, index int) (string, error) {
	result := m.FullMatch

	type numberPosition struct {
		pos    int
		number string
	}
	var positions []numberPosition
	for _, number := range m.Numbers {
		if pos := strings.LastIndex(result, number); pos != -1 {
			positions = append(positions, numberPosition{pos: pos, number: number})
		}
	}

	// 按位置降序，从右到左替换
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].pos > positions[j].pos
	})

	for _, np := range positions {
		newNumber, err := serial.Increment(np.number, index, true)
		if err != nil {
			return "", fmt.Errorf("映射 %q 中的数字无效: %w", m.FullMatch, err)
		}
		result = result[:np.pos] + newNumber + result[np.pos+len(np.number):]
	}

	return result, nil
}

// GenerateOne 从模板生成第 index 份证书 (0 起始)
// 每次调用都从模板字节重新加载文档，模板本身永不被修改
func (g *generator) GenerateOne(template []byte, mappings []domain.FieldMapping, index int) (*docx.Document, error) {
	doc, _, err := g.generateOne(template, mappings, index)
	return doc, err
}

// generateOne 生成单份证书并返回每条映射的命中次数
func (g *generator) generateOne(template []byte, mappings []domain.FieldMapping, index int) (*docx.Document, []int, error) {
	doc, err := docx.LoadDocument(template)
	if err != nil {
		return nil, nil, fmt.Errorf("加载模板失败: %w", err)
	}

	// 替换前先清除所有突出显示格式
	docx.RemoveHighlighting(doc)

	counts := make([]int, len(mappings))
	for mi, mapping := range mappings {
		newText, err := PreviewText(mapping, index)
		if err != nil {
			return nil, nil, err
		}
		counts[mi] = g.applyMapping(doc, mapping, mapping.FullMatch, newText)
	}

	if err := g.stampProperties(doc, mappings, index); err != nil {
		return nil, nil, err
	}

	return doc, counts, nil
}

// stampProperties 把项目名和本份证书的主序列号写入自定义文档属性
func (g *generator) stampProperties(doc *docx.Document, mappings []domain.FieldMapping, index int) error {
	if g.projectName == "" {
		return nil
	}
	if err := doc.SetCustomProperty("CertificateProject", g.projectName); err != nil {
		return fmt.Errorf("写入文档属性失败: %w", err)
	}
	if len(mappings) == 0 || mappings[0].PrimaryNumber() == "" {
		return nil
	}
	number, err := serial.Increment(mappings[0].PrimaryNumber(), index, true)
	if err != nil {
		return err
	}
	if err := doc.SetCustomProperty("CertificateSerial", number); err != nil {
		return fmt.Errorf("写入文档属性失败: %w", err)
	}
	return nil
}

// applyMapping 按映射的定位方式应用替换，返回命中次数
// 指定下标的位置不存在或不含旧文本时静默跳过：模板的不同变体
// 可能没有对应的段落或行，这是有意的宽松策略
func (g *generator) applyMapping(doc *docx.Document, mapping domain.FieldMapping, oldText, newText string) int {
	count := 0

	switch mapping.Type {
	case domain.MappingParagraph:
		paragraphs := doc.Paragraphs()
		if mapping.ParagraphIndex >= 0 && mapping.ParagraphIndex < len(paragraphs) {
			if docx.ReplaceInParagraph(paragraphs[mapping.ParagraphIndex], oldText, newText) {
				count++
			}
		}

	case domain.MappingTableCell:
		tables := doc.Tables()
		if mapping.TableIndex >= 0 && mapping.TableIndex < len(tables) {
			rows := tables[mapping.TableIndex].Rows()
			if mapping.RowIndex >= 0 && mapping.RowIndex < len(rows) {
				cells := rows[mapping.RowIndex].Cells()
				if mapping.CellIndex >= 0 && mapping.CellIndex < len(cells) {
					if docx.ReplaceInCell(cells[mapping.CellIndex], oldText, newText) {
						count++
					}
				}
			}
		}

	case domain.MappingManual:
		// 在整个文档中搜索字面文本
		for _, p := range doc.Paragraphs() {
			if docx.ReplaceInParagraph(p, oldText, newText) {
				count++
			}
		}
		for _, table := range doc.Tables() {
			for _, row := range table.Rows() {
				for _, cell := range row.Cells() {
					if strings.Contains(cell.Text(), oldText) {
						if docx.ReplaceInCell(cell, oldText, newText) {
							count++
						}
					}
				}
			}
		}

	default:
		g.logger.Warn("未知的映射类型，跳过", zap.String("type", string(mapping.Type)))
	}

	return count
}
