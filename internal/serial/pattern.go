package serial

import "regexp"

// PatternType 序列号模式的识别规则类型
type PatternType string

const (
	// PatternSlash 斜杠后跟数字的模式 (如 /014501)
	PatternSlash PatternType = "slash_number"
	// PatternStandalone 独立数字模式 (如 014501)
	PatternStandalone PatternType = "standalone_number"
)

// Pattern 表示在文本中识别到的一个序列号模式
type Pattern struct {
	FullMatch string      // 匹配到的完整文本 (斜杠模式包含斜杠)
	Number    string      // 其中的数字部分
	Start     int         // 在文本中的起始偏移
	End       int         // 在文本中的结束偏移
	Type      PatternType // 识别规则
}

var (
	// 斜杠后跟3位以上数字，以单词边界结尾
	slashPattern = regexp.MustCompile(`/(\d{3,})\b`)
	// 4位以上的独立数字
	standalonePattern = regexp.MustCompile(`\b(\d{4,})\b`)
)

// FindPatterns 在文本中查找所有潜在的序列号模式
// 斜杠规则优先：独立数字若已被斜杠规则捕获则丢弃（按数字内容去重）
func FindPatterns(text string) []Pattern {
	var patterns []Pattern

	for _, idx := range slashPattern.FindAllStringSubmatchIndex(text, -1) {
		patterns = append(patterns, Pattern{
			FullMatch: text[idx[0]:idx[1]],
			Number:    text[idx[2]:idx[3]],
			Start:     idx[0],
			End:       idx[1],
			Type:      PatternSlash,
		})
	}

	for _, idx := range standalonePattern.FindAllStringSubmatchIndex(text, -1) {
		number := text[idx[2]:idx[3]]
		if containsNumber(patterns, number) {
			continue
		}
		patterns = append(patterns, Pattern{
			FullMatch: text[idx[0]:idx[1]],
			Number:    number,
			Start:     idx[0],
			End:       idx[1],
			Type:      PatternStandalone,
		})
	}

	return patterns
}

// containsNumber 检查数字是否已被之前的规则捕获
func containsNumber(patterns []Pattern, number string) bool {
	for _, p := range patterns {
		if p.Number == number {
			return true
		}
	}
	return false
}
