package generator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/allanpk716/cert_generator/internal/domain"
	"github.com/allanpk716/cert_generator/pkg/docx"
)

// GenerateCombined 生成包含 count 份证书的合并文档
// 第 0 份作为基础文档，后续每份的正文内容整体追加，
// 追加内容的第一个块前插入分页标记；组装完成后执行空白页清理
func (g *generator) GenerateCombined(template []byte, mappings []domain.FieldMapping, count int) ([]byte, *domain.GenerateResult, error) {
	if err := ValidateTemplate(template); err != nil {
		return nil, nil, fmt.Errorf("模板验证失败: %w", err)
	}

	result := newGenerateResult(mappings, count)

	g.logger.Info("开始生成合并文档", zap.Int("count", count))

	base, counts, err := g.generateOne(template, mappings, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("生成第 1 份证书失败: %w", err)
	}
	result.Accumulate(counts)

	for i := 1; i < count; i++ {
		cert, counts, err := g.generateOne(template, mappings, i)
		if err != nil {
			return nil, nil, fmt.Errorf("生成第 %d 份证书失败: %w", i+1, err)
		}
		result.Accumulate(counts)
		docx.AppendCertificate(base, cert)
	}

	// 组装过程可能产生空白页，做一次尽力而为的清理
	docx.RemoveBlankPages(base)

	data, err := base.Bytes()
	if err != nil {
		return nil, nil, fmt.Errorf("序列化合并文档失败: %w", err)
	}

	if g.replaceHeaders {
		// 合并文档只有一个页眉，按基础证书 (第 0 份) 的序列号替换
		data, err = applyHeaderFooter(data, mappings, 0)
		if err != nil {
			return nil, nil, fmt.Errorf("替换合并文档页眉页脚失败: %w", err)
		}
	}

	g.logger.Info("合并文档生成完成",
		zap.Int("count", count),
		zap.Int("zeroMatchMappings", len(result.ZeroMatches())))

	return data, result, nil
}
