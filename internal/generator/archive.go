package generator

import (
	"archive/zip"
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/allanpk716/cert_generator/internal/domain"
	"github.com/allanpk716/cert_generator/internal/serial"
)

// CertificateFileName 按约定生成单份证书的文件名:
// Certificate_<递增后的主序列号>.docx，主序列号取第一条映射的第一个数字
func CertificateFileName(mappings []domain.FieldMapping, index int) (string, error) {
	if len(mappings) == 0 {
		return "", fmt.Errorf("映射列表为空")
	}
	primary := mappings[0].PrimaryNumber()
	incremented, err := serial.Increment(primary, index, true)
	if err != nil {
		return "", fmt.Errorf("生成文件名失败: %w", err)
	}
	return fmt.Sprintf("Certificate_%s.docx", incremented), nil
}

// GenerateArchive 生成包含 count 份独立证书的 ZIP 包
// 任何一份证书生成失败都会中止整个批次，不产生部分结果
func (g *generator) GenerateArchive(template []byte, mappings []domain.FieldMapping, count int) ([]byte, *domain.GenerateResult, error) {
	if err := ValidateTemplate(template); err != nil {
		return nil, nil, fmt.Errorf("模板验证失败: %w", err)
	}

	result := newGenerateResult(mappings, count)

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	g.logger.Info("开始批量生成证书", zap.Int("count", count))

	for i := 0; i < count; i++ {
		doc, counts, err := g.generateOne(template, mappings, i)
		if err != nil {
			return nil, nil, fmt.Errorf("生成第 %d 份证书失败: %w", i+1, err)
		}
		result.Accumulate(counts)

		data, err := doc.Bytes()
		if err != nil {
			return nil, nil, fmt.Errorf("序列化第 %d 份证书失败: %w", i+1, err)
		}

		if g.replaceHeaders {
			data, err = applyHeaderFooter(data, mappings, i)
			if err != nil {
				return nil, nil, fmt.Errorf("替换第 %d 份证书页眉页脚失败: %w", i+1, err)
			}
		}

		fileName, err := CertificateFileName(mappings, i)
		if err != nil {
			return nil, nil, err
		}

		writer, err := zipWriter.Create(fileName)
		if err != nil {
			return nil, nil, fmt.Errorf("创建ZIP条目 %s 失败: %w", fileName, err)
		}
		if _, err := writer.Write(data); err != nil {
			return nil, nil, fmt.Errorf("写入ZIP条目 %s 失败: %w", fileName, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, nil, fmt.Errorf("关闭ZIP文件失败: %w", err)
	}

	g.logger.Info("批量生成完成",
		zap.Int("count", count),
		zap.Int("zeroMatchMappings", len(result.ZeroMatches())))

	return buf.Bytes(), result, nil
}

// newGenerateResult 初始化与映射列表对齐的统计
func newGenerateResult(mappings []domain.FieldMapping, count int) *domain.GenerateResult {
	result := &domain.GenerateResult{Certificates: count}
	for _, m := range mappings {
		result.Results = append(result.Results, domain.MappingResult{Mapping: m})
	}
	return result
}
