package detect

import (
	"fmt"
	"strings"

	"github.com/allanpk716/cert_generator/internal/domain"
	"github.com/allanpk716/cert_generator/internal/serial"
	"github.com/allanpk716/cert_generator/pkg/docx"
)

// keywords 序列号相关的关键词，所在行包含这些词时检测结果标记为建议
var keywords = []string{
	"certificate", "serial", "number", "identification", "id", "no.", "no:", "ref",
}

// DetectSerialFields 自动检测文档中潜在的序列号字段
// 对每个非空段落和单元格的文本运行模式识别，结合关键词相邻性
// 启发式给出建议标记；结果仅供选择参考，不影响替换逻辑
func DetectSerialFields(doc *docx.Document) []domain.DetectedField {
	var fields []domain.DetectedField

	for paraIdx, paragraph := range doc.Paragraphs() {
		text := paragraph.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields = append(fields, detectInText(text, fmt.Sprintf("段落 %d", paraIdx+1), domain.FieldMapping{
			Type:           domain.MappingParagraph,
			ParagraphIndex: paraIdx,
		})...)
	}

	for tableIdx, table := range doc.Tables() {
		for rowIdx, row := range table.Rows() {
			for cellIdx, cell := range row.Cells() {
				text := cell.Text()
				if strings.TrimSpace(text) == "" {
					continue
				}
				location := fmt.Sprintf("表格 %d, 行 %d, 单元格 %d", tableIdx+1, rowIdx+1, cellIdx+1)
				fields = append(fields, detectInText(text, location, domain.FieldMapping{
					Type:       domain.MappingTableCell,
					TableIndex: tableIdx,
					RowIndex:   rowIdx,
					CellIndex:  cellIdx,
				})...)
			}
		}
	}

	return fields
}

// detectInText 在一段文本中识别序列号模式，base 给出定位信息
func detectInText(text, location string, base domain.FieldMapping) []domain.DetectedField {
	patterns := serial.FindPatterns(text)
	if len(patterns) == 0 {
		return nil
	}

	suggested := hasKeyword(text)

	var fields []domain.DetectedField
	for _, pattern := range patterns {
		mapping := base
		mapping.FullMatch = pattern.FullMatch
		mapping.Numbers = []string{pattern.Number}
		mapping.Suggested = suggested

		fields = append(fields, domain.DetectedField{
			Location:  location,
			Text:      text,
			Mapping:   mapping,
			Suggested: suggested,
		})
	}
	return fields
}

// hasKeyword 文本中是否出现序列号相关关键词 (不区分大小写)
func hasKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
