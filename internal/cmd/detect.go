package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/allanpk716/cert_generator/internal/detect"
	"github.com/allanpk716/cert_generator/pkg/docx"
)

var detectCmd = &cobra.Command{
	Use:   "detect <模板文件>",
	Short: "扫描模板中可能需要递增的序列号字段",
	Long: `扫描 docx 模板的段落和表格单元格，找出符合序列号模式的数字，
含有证书相关关键词的位置会标记为建议字段。
输出可直接整理进任务配置文件的 fields 列表。`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	if err := validateTemplatePath(args[0]); err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("读取模板文件失败: %w", err)
	}

	doc, err := docx.LoadDocument(data)
	if err != nil {
		return fmt.Errorf("解析模板文件失败: %w", err)
	}

	fields := detect.DetectSerialFields(doc)
	if len(fields) == 0 {
		cmd.Println("未检测到序列号字段")
		return nil
	}

	cmd.Printf("检测到 %d 个候选字段:\n\n", len(fields))
	for i, field := range fields {
		marker := " "
		if field.Suggested {
			marker = "*"
		}
		cmd.Printf("%s %2d. [%s] %s\n", marker, i+1, field.Location, field.Mapping.FullMatch)
		cmd.Printf("       数字: %s\n", strings.Join(field.Mapping.Numbers, ", "))
		cmd.Printf("       上下文: %s\n", truncate(field.Text, 60))
	}
	cmd.Println("\n带 * 的字段所在行含有证书相关关键词")
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
