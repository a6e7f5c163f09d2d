package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/allanpk716/cert_generator/internal/config"
	"github.com/allanpk716/cert_generator/internal/generator"
)

var previewConfigFile string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "预览每条映射在各份证书中的替换结果",
	Long: `按配置计算第 1、2、3 份和最后一份证书的替换后文本，
不读取模板文件，用于在批量生成前确认数字递增是否符合预期。`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewConfigFile, "config", "c", "", "任务配置文件路径 (JSON 或 YAML)")
	_ = previewCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	configManager := config.NewConfigManager()
	cfg, err := configManager.LoadConfig(previewConfigFile)
	if err != nil {
		return fmt.Errorf("加载配置文件失败: %w", err)
	}

	mappings := configManager.GetFieldMappings(cfg)
	indexes := previewIndexes(cfg.Count)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	header := []string{"字段"}
	for _, idx := range indexes {
		header = append(header, fmt.Sprintf("证书 #%d", idx+1))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, m := range mappings {
		row := []string{m.FullMatch}
		for _, idx := range indexes {
			text, err := generator.PreviewText(m, idx)
			if err != nil {
				return fmt.Errorf("计算预览失败 (字段 %q): %w", m.FullMatch, err)
			}
			row = append(row, text)
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// previewIndexes 选取展示的证书下标：前三份加最后一份，去重
func previewIndexes(count int) []int {
	var indexes []int
	for i := 0; i < count && i < 3; i++ {
		indexes = append(indexes, i)
	}
	if count > 3 {
		indexes = append(indexes, count-1)
	}
	return indexes
}
