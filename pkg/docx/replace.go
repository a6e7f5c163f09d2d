package docx

import (
	"errors"
	"strings"
)

// ErrSpanNotFound 字符区间没有落在任何 Run 的范围内
var ErrSpanNotFound = errors.New("字符区间不在任何Run范围内")

// spanResolution 字符区间到 Run 列表的映射结果
type spanResolution struct {
	runIndex   int // 区间起点所在 Run 的下标
	intraStart int // 起点在该 Run 内的偏移
	residual   int // 尚需从后续 Run 消费的字符数，0 表示区间完整落在一个 Run 内
}

// resolveSpan 将段落拼接文本上的字符区间 [charStart, charEnd) 映射到 Run 列表
// 通过累加各 Run 长度建立偏移表，定位起点所在的 Run
func resolveSpan(runs []*Run, charStart, charEnd int) (spanResolution, error) {
	pos := 0
	for i, run := range runs {
		runStart := pos
		runEnd := pos + len(run.Text())
		if runStart <= charStart && charStart < runEnd {
			residual := charEnd - runEnd
			if residual < 0 {
				residual = 0
			}
			return spanResolution{
				runIndex:   i,
				intraStart: charStart - runStart,
				residual:   residual,
			}, nil
		}
		pos = runEnd
	}
	return spanResolution{}, ErrSpanNotFound
}

// applyReplacement 按映射结果就地重写 Run 内容
// 跨 Run 时替换文本完整写入起始 Run (不拆分)，被完全覆盖的后续 Run
// 清空文本但保留格式，最后一个被部分覆盖的 Run 保留剩余后缀
func applyReplacement(runs []*Run, res spanResolution, oldText, newText string) {
	run := runs[res.runIndex]
	text := run.Text()
	before := text[:res.intraStart]

	if res.residual == 0 {
		// 区间完整落在一个 Run 内
		after := text[res.intraStart+len(oldText):]
		run.SetText(before + newText + after)
		return
	}

	// 跨 Run：起始 Run 写入前缀加完整替换文本
	run.SetText(before + newText)

	remaining := res.residual
	for j := res.runIndex + 1; j < len(runs) && remaining > 0; j++ {
		next := runs[j]
		nextText := next.Text()
		if remaining >= len(nextText) {
			next.SetText("")
			remaining -= len(nextText)
		} else {
			next.SetText(nextText[remaining:])
			remaining = 0
		}
	}
}

// ReplaceInParagraph 在段落中替换文本并保持格式
// 优先走单 Run 快速路径 (绝大多数文档都命中)，旧文本跨多个 Run 时
// 回退到区间映射替换；段落中不含旧文本时不做任何修改
// 返回是否发生了替换
func ReplaceInParagraph(p *Paragraph, oldText, newText string) bool {
	fullText := p.Text()
	if !strings.Contains(fullText, oldText) {
		return false
	}

	runs := p.Runs()
	if len(runs) == 0 {
		return false
	}

	// 快速路径：旧文本完整位于某个 Run 内
	for _, run := range runs {
		if strings.Contains(run.Text(), oldText) {
			run.SetText(strings.ReplaceAll(run.Text(), oldText, newText))
			return true
		}
	}

	// 旧文本跨多个 Run
	start := strings.Index(fullText, oldText)
	end := start + len(oldText)

	res, err := resolveSpan(runs, start, end)
	if err != nil {
		// 拼接文本中存在但 Run 结构对不上，保守放弃
		return false
	}
	applyReplacement(runs, res, oldText, newText)
	return true
}

// ReplaceInCell 在单元格的每个段落中替换文本
// 返回是否发生了替换
func ReplaceInCell(c *Cell, oldText, newText string) bool {
	replaced := false
	for _, p := range c.Paragraphs() {
		if ReplaceInParagraph(p, oldText, newText) {
			replaced = true
		}
	}
	return replaced
}
