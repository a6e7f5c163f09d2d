package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	// AppName 应用名称
	AppName = "cert-generator"
	// AppVersion 应用版本
	AppVersion = "1.0.0"
)

var verbose bool

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:          AppName,
	Short:        "从 Word 模板批量生成序列号递增的证书",
	Long:         "cert-generator 从 DOCX 模板批量生成证书，自动递增模板中配置的序列号，\n支持独立文件 ZIP 打包、分页合并和目录输出三种方式。",
	Version:      AppVersion,
	SilenceUsage: true,
}

// Execute 运行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出")
}

// newLogger 按详细程度创建日志器
func newLogger() (*zap.Logger, error) {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("创建日志器失败: %w", err)
		}
		return logger, nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("创建日志器失败: %w", err)
	}
	return logger, nil
}
