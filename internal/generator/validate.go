package generator

import (
	"bytes"
	"fmt"

	"github.com/nguyenthenguyen/docx"
)

// ValidateTemplate 验证模板字节流是一个 Word 能打开的 DOCX 文档
// 批量生成前先快速失败，避免处理到一半才发现模板损坏
func ValidateTemplate(template []byte) error {
	if len(template) == 0 {
		return fmt.Errorf("模板内容为空")
	}

	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return fmt.Errorf("无法打开模板文档: %w", err)
	}
	defer reader.Close()

	return nil
}
