package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/allanpk716/cert_generator/internal/domain"
	"github.com/allanpk716/cert_generator/internal/serial"
)

// MaxCertificates 单个批次允许生成的最大证书数量
const MaxCertificates = 20000

// Field 表示一个需要递增的字段配置项
type Field struct {
	// Type 定位方式: paragraph / table_cell / manual，留空默认 manual
	Type string `json:"type" yaml:"type"`

	// Text 包含序列号的完整搜索文本
	Text string `json:"text" yaml:"text"`
	// Numbers 需要递增的数字，必须都是 Text 的子串
	Numbers []string `json:"numbers" yaml:"numbers"`

	ParagraphIndex int `json:"paragraph_index" yaml:"paragraph_index"`
	TableIndex     int `json:"table_index" yaml:"table_index"`
	RowIndex       int `json:"row_index" yaml:"row_index"`
	CellIndex      int `json:"cell_index" yaml:"cell_index"`
}

// Config 表示完整的生成任务配置
type Config struct {
	ProjectName    string  `json:"project_name" yaml:"project_name"`
	Template       string  `json:"template" yaml:"template"`
	Count          int     `json:"count" yaml:"count"`
	Fields         []Field `json:"fields" yaml:"fields"`
	ReplaceHeaders *bool   `json:"replace_headers,omitempty" yaml:"replace_headers,omitempty"`
}

// HeaderReplacementEnabled 页眉页脚替换开关，默认开启
func (c *Config) HeaderReplacementEnabled() bool {
	return c.ReplaceHeaders == nil || *c.ReplaceHeaders
}

// ConfigManager 配置管理接口
type ConfigManager interface {
	LoadConfig(filePath string) (*Config, error)
	ValidateConfig(config *Config) error
	GetFieldMappings(config *Config) []domain.FieldMapping
}

// configManager 配置管理器实现
type configManager struct{}

// NewConfigManager 创建新的配置管理器
func NewConfigManager() ConfigManager {
	return &configManager{}
}

// LoadConfig 从文件加载配置，按扩展名识别 JSON 或 YAML 格式
func (cm *configManager) LoadConfig(filePath string) (*Config, error) {
	if filePath == "" {
		return nil, fmt.Errorf("配置文件路径不能为空")
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("配置文件不存在: %s", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("解析JSON配置失败: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("解析YAML配置失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("配置文件必须是 JSON 或 YAML 格式，当前扩展名: %s", ext)
	}

	if err := cm.ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return &config, nil
}

// ValidateConfig 验证配置的有效性
func (cm *configManager) ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("配置不能为空")
	}

	if config.Template == "" {
		return fmt.Errorf("模板路径不能为空")
	}

	if config.Count < 1 || config.Count > MaxCertificates {
		return fmt.Errorf("证书数量必须在 1 到 %d 之间，当前值: %d", MaxCertificates, config.Count)
	}

	if len(config.Fields) == 0 {
		return fmt.Errorf("字段列表不能为空")
	}

	for i, field := range config.Fields {
		if err := validateField(field); err != nil {
			return fmt.Errorf("第 %d 个字段无效: %w", i+1, err)
		}
	}

	return nil
}

// validateField 验证单个字段配置
func validateField(field Field) error {
	switch field.Type {
	case "", string(domain.MappingManual), string(domain.MappingParagraph), string(domain.MappingTableCell):
	default:
		return fmt.Errorf("未知的字段类型: %s", field.Type)
	}

	if field.Text == "" {
		return fmt.Errorf("搜索文本不能为空")
	}
	if len(field.Numbers) == 0 {
		return fmt.Errorf("数字列表不能为空")
	}

	for _, number := range field.Numbers {
		if !strings.Contains(field.Text, number) {
			return fmt.Errorf("数字 %q 不在搜索文本 %q 中", number, field.Text)
		}
		if _, err := serial.Increment(number, 0, true); err != nil {
			return err
		}
	}

	return nil
}

// GetFieldMappings 将字段配置转换为替换映射
func (cm *configManager) GetFieldMappings(config *Config) []domain.FieldMapping {
	if config == nil {
		return nil
	}

	var mappings []domain.FieldMapping
	for _, field := range config.Fields {
		mappingType := domain.MappingType(field.Type)
		if field.Type == "" {
			mappingType = domain.MappingManual
		}

		mappings = append(mappings, domain.FieldMapping{
			Type:           mappingType,
			ParagraphIndex: field.ParagraphIndex,
			TableIndex:     field.TableIndex,
			RowIndex:       field.RowIndex,
			CellIndex:      field.CellIndex,
			FullMatch:      field.Text,
			Numbers:        append([]string(nil), field.Numbers...),
		})
	}
	return mappings
}
