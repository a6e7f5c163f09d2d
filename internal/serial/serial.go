package serial

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidSerial 序列号不是合法的非负整数字符串
var ErrInvalidSerial = errors.New("序列号必须是非负整数")

// Increment 递增序列号字符串，保持原有格式
// preserveWidth 为 true 时结果左侧补零到原始位宽；
// 递增后位数超过原始位宽时结果直接变长，不截断。
// 位数不设上限，超出 int64 范围的序列号同样支持
func Increment(serial string, delta int, preserveWidth bool) (string, error) {
	value, err := parseSerial(serial)
	if err != nil {
		return "", err
	}

	value.Add(value, big.NewInt(int64(delta)))
	if value.Sign() < 0 {
		return "", fmt.Errorf("序列号 %q 递增 %d 后为负数: %w", serial, delta, ErrInvalidSerial)
	}

	result := value.String()
	if preserveWidth && len(result) < len(serial) {
		result = strings.Repeat("0", len(serial)-len(result)) + result
	}
	return result, nil
}

// ReplaceLast 只替换文本中最后一次出现的 old
// 用于处理类似 "1687/2526/1" 的情况：要替换的是最后的 "1"，
// 而不是 "1687" 中的 "1"
func ReplaceLast(text, old, new string) string {
	lastPos := strings.LastIndex(text, old)
	if lastPos == -1 {
		return text
	}
	return text[:lastPos] + new + text[lastPos+len(old):]
}

// parseSerial 解析序列号字符串为非负大整数，允许前导零
func parseSerial(serial string) (*big.Int, error) {
	if serial == "" {
		return nil, fmt.Errorf("序列号为空: %w", ErrInvalidSerial)
	}
	for _, c := range serial {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("无效的序列号 %q: %w", serial, ErrInvalidSerial)
		}
	}

	value, ok := new(big.Int).SetString(serial, 10)
	if !ok {
		return nil, fmt.Errorf("无效的序列号 %q: %w", serial, ErrInvalidSerial)
	}
	return value, nil
}
