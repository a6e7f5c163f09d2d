package cmd

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/spf13/cobra"
)

var sampleOutput string

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "生成一个可以直接试用的示例模板",
	Long: `生成包含示例序列号的 DOCX 模板，配合 detect 命令可以
快速体验完整的批量生成流程。`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "sample_template.docx", "示例模板输出路径")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("创建示例文档失败: %w", err)
	}
	defer doc.Close()

	doc.AddParagraph("校 准 证 书")
	doc.AddParagraph("Certificate No. CERT/014501")
	doc.AddParagraph("委托单位: 示例公司")
	doc.AddParagraph("器具编号: 1687/2526/1")
	doc.AddParagraph("以上编号每生成一份证书自动递增，正文其余内容保持不变。")

	if err := doc.SaveTo(sampleOutput); err != nil {
		return fmt.Errorf("保存示例模板失败: %w", err)
	}

	cmd.Printf("示例模板已生成: %s\n", sampleOutput)
	return nil
}
