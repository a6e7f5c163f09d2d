package cmd

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// writeCertificateDir 把 ZIP 批次解包为输出目录下的独立证书文件
func writeCertificateDir(logger *zap.Logger, archive []byte, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return fmt.Errorf("读取证书批次失败: %w", err)
	}

	for i, entry := range reader.File {
		data, err := readZipEntry(entry)
		if err != nil {
			return fmt.Errorf("读取证书 %s 失败: %w", entry.Name, err)
		}

		outputFile := filepath.Join(outputDir, filepath.Base(entry.Name))
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("写入证书文件失败: %w", err)
		}

		logger.Info("证书写入完成",
			zap.Int("index", i+1),
			zap.Int("total", len(reader.File)),
			zap.String("file", outputFile))
	}

	return nil
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
