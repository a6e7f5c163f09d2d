package generator

import (
	"bytes"
	"fmt"

	"github.com/nguyenthenguyen/docx"

	"github.com/allanpk716/cert_generator/internal/domain"
)

// applyHeaderFooter 把每条映射的替换同步应用到页眉和页脚
// 证书模板经常在页眉里重复证书编号，正文替换引擎只处理
// word/document.xml，这里在序列化后的字节流上补一遍页眉页脚
func applyHeaderFooter(data []byte, mappings []domain.FieldMapping, index int) ([]byte, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("打开证书文档失败: %w", err)
	}
	defer reader.Close()

	editable := reader.Editable()
	changed := false
	for _, mapping := range mappings {
		newText, err := PreviewText(mapping, index)
		if err != nil {
			return nil, err
		}
		if newText == mapping.FullMatch {
			continue
		}
		if err := editable.ReplaceHeader(mapping.FullMatch, newText); err == nil {
			changed = true
		}
		if err := editable.ReplaceFooter(mapping.FullMatch, newText); err == nil {
			changed = true
		}
	}

	if !changed {
		return data, nil
	}

	var buf bytes.Buffer
	if err := editable.Write(&buf); err != nil {
		return nil, fmt.Errorf("写出证书文档失败: %w", err)
	}
	return buf.Bytes(), nil
}
