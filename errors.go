package drip

import "strconv"

// ErrKind 解析错误类别
type ErrKind uint8

const (
	// KindUnexpectedEOF 输入流在语法仍需要更多字节时结束
	// （字符串中途、对象/数组中途、字面量关键字中途、等值时的空白跳过中途）
	KindUnexpectedEOF ErrKind = iota + 1
	// KindUnexpectedChar 当前位置的字节不匹配任何语法分支
	// （非法的值起始字节、错误的分隔符、关键字拼写错误、数字扫描失败）
	KindUnexpectedChar
	// KindDuplicateKey 对象字面量中出现已插入过的键。
	// 先插入者生效，重复键确定性拒绝（区别于畸形输入类错误）。
	KindDuplicateKey
	// KindDepthExceeded 嵌套深度超过 MaxDepth（资源类错误）
	KindDepthExceeded
)

// String 返回类别名称
func (k ErrKind) String() string {
	switch k {
	case KindUnexpectedEOF:
		return "unexpected EOF"
	case KindUnexpectedChar:
		return "unexpected character"
	case KindDuplicateKey:
		return "duplicate key"
	case KindDepthExceeded:
		return "depth exceeded"
	default:
		return "unknown"
	}
}

// ExitCode 返回该类别对应的进程退出码（CLI 用）
func (k ErrKind) ExitCode() int {
	switch k {
	case KindUnexpectedEOF:
		return CodeUnexpectedEOF
	case KindUnexpectedChar:
		return CodeUnexpectedChar
	case KindDuplicateKey:
		return CodeDuplicateKey
	case KindDepthExceeded:
		return CodeDepthExceeded
	default:
		return 1
	}
}

// SyntaxError 解析错误：类别 + 出错字节偏移 + 可选的上下文窗口。
//
// 窗口在输入源支持 io.Seeker 时由回溯 seek 捕获（尽力而为，
// 不支持时静默跳过），Context() 将其渲染为两行文本：
// 控制字符转成两字符转义的源码片段，及其下方指向出错列的脱字符。
type SyntaxError struct {
	Kind   ErrKind
	Offset int64  // 出错位置的字节偏移
	Msg    string // 人类可读描述

	window      []byte // 出错位置周边的源码字节（可能为空）
	windowStart int64  // window[0] 在输入流中的偏移
}

// Error 实现 error 接口
func (e *SyntaxError) Error() string {
	s := "drip: " + e.Msg + " at offset " + strconv.FormatInt(e.Offset, 10)
	if ctx := e.Context(); ctx != "" {
		s += "\ncontext:\n" + ctx
	}
	return s
}

// Context 渲染上下文窗口。无窗口时返回空串。
func (e *SyntaxError) Context() string {
	if len(e.window) == 0 {
		return ""
	}
	caret := int(e.Offset - e.windowStart)
	if caret < 0 {
		caret = 0
	}
	if caret > len(e.window) {
		caret = len(e.window)
	}
	return formatContext(e.window, caret)
}

// formatContext 渲染 (源码窗口, 出错列) → 两行文本。
// 纯函数，不依赖进程退出等副作用。
//
//	\n\t\t{ "foo" "bar" },\n\t
//	             ^
func formatContext(window []byte, caret int) string {
	line := make([]byte, 0, len(window)+8)
	col := -1
	for i, c := range window {
		if i == caret {
			col = len(line)
		}
		switch c {
		case '\n':
			line = append(line, '\\', 'n')
		case '\r':
			line = append(line, '\\', 'r')
		case '\t':
			line = append(line, '\\', 't')
		default:
			if c < 0x20 {
				line = append(line, '\\', 'x', hexDigit[c>>4], hexDigit[c&0xF])
			} else {
				line = append(line, c)
			}
		}
	}
	if col < 0 {
		col = len(line)
	}
	out := make([]byte, 0, len(line)+col+2)
	out = append(out, line...)
	out = append(out, '\n')
	for i := 0; i < col; i++ {
		out = append(out, ' ')
	}
	out = append(out, '^')
	return string(out)
}

var hexDigit = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
