package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/allanpk716/cert_generator/internal/config"
	"github.com/allanpk716/cert_generator/internal/domain"
	"github.com/allanpk716/cert_generator/internal/generator"
)

const (
	// OutputModeZip 每份证书一个文件，打包为 ZIP
	OutputModeZip = "zip"
	// OutputModeCombined 所有证书合并为一个分页文档
	OutputModeCombined = "combined"
	// OutputModeDir 每份证书写为输出目录下的独立文件
	OutputModeDir = "dir"
)

var (
	generateConfigFile string
	generateOutput     string
	generateMode       string
	generateCount      int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "按配置文件批量生成证书",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateConfigFile, "config", "c", "", "任务配置文件路径 (JSON 或 YAML)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "输出文件路径 (默认按模式自动生成)")
	generateCmd.Flags().StringVarP(&generateMode, "mode", "m", OutputModeZip, "输出模式: zip、combined 或 dir")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 0, "覆盖配置中的证书数量")
	_ = generateCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	switch generateMode {
	case OutputModeZip, OutputModeCombined, OutputModeDir:
	default:
		return fmt.Errorf("输出模式必须是 %s、%s 或 %s，当前值: %s",
			OutputModeZip, OutputModeCombined, OutputModeDir, generateMode)
	}

	configManager := config.NewConfigManager()
	cfg, err := configManager.LoadConfig(generateConfigFile)
	if err != nil {
		return fmt.Errorf("加载配置文件失败: %w", err)
	}

	count := cfg.Count
	if generateCount > 0 {
		if generateCount > config.MaxCertificates {
			return fmt.Errorf("证书数量不能超过 %d", config.MaxCertificates)
		}
		count = generateCount
	}

	if err := validateTemplatePath(cfg.Template); err != nil {
		return err
	}
	template, err := os.ReadFile(cfg.Template)
	if err != nil {
		return fmt.Errorf("读取模板文件失败: %w", err)
	}

	logger.Info("加载配置完成",
		zap.String("config", generateConfigFile),
		zap.String("project", cfg.ProjectName),
		zap.Int("fields", len(cfg.Fields)),
		zap.Int("count", count))

	mappings := configManager.GetFieldMappings(cfg)
	gen := generator.NewGenerator(logger,
		generator.WithHeaderReplacement(cfg.HeaderReplacementEnabled()),
		generator.WithProjectName(cfg.ProjectName))

	outputPath := generateOutput
	if outputPath == "" {
		outputPath = defaultOutputPath(generateMode, cfg.ProjectName)
	}

	var (
		data   []byte
		result *domain.GenerateResult
	)
	if generateMode == OutputModeCombined {
		data, result, err = gen.GenerateCombined(template, mappings, count)
	} else {
		data, result, err = gen.GenerateArchive(template, mappings, count)
	}
	if err != nil {
		return fmt.Errorf("生成证书失败: %w", err)
	}
	reportZeroMatches(logger, result)

	if generateMode == OutputModeDir {
		if err := writeCertificateDir(logger, data, outputPath); err != nil {
			return err
		}
	} else {
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("创建输出目录失败: %w", err)
			}
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("写入输出文件失败: %w", err)
		}
	}

	logger.Info("生成完成",
		zap.Int("count", count),
		zap.String("output", outputPath))
	return nil
}

// reportZeroMatches 提示在所有证书中都没有命中的映射，通常意味着配置文本有拼写错误
func reportZeroMatches(logger *zap.Logger, result *domain.GenerateResult) {
	for _, mapping := range result.ZeroMatches() {
		logger.Warn("映射在所有证书中都没有命中",
			zap.String("text", mapping.FullMatch),
			zap.String("type", string(mapping.Type)))
	}
}

func defaultOutputPath(mode, projectName string) string {
	switch mode {
	case OutputModeCombined:
		return "certificates_combined.docx"
	case OutputModeDir:
		return "certificates"
	default:
		return defaultArchiveName(projectName)
	}
}
