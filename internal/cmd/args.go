package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// validateTemplatePath 检查模板路径是 .docx 文件且存在
func validateTemplatePath(path string) error {
	if path == "" {
		return fmt.Errorf("模板文件路径不能为空")
	}

	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return fmt.Errorf("模板必须是 .docx 文件: %s", path)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("模板文件不存在: %s", path)
	}
	if err != nil {
		return fmt.Errorf("访问模板文件失败: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("模板路径是目录而不是文件: %s", path)
	}

	return nil
}

// defaultArchiveName 根据项目名生成 ZIP 输出文件名
func defaultArchiveName(projectName string) string {
	name := strings.TrimSpace(projectName)
	if name == "" {
		return "certificates.zip"
	}
	return strings.ReplaceAll(name, " ", "_") + "_certificates.zip"
}
