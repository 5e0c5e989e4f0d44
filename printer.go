package drip

import (
	"strconv"
	"sync"
)

// Printer 值树格式化输出器（纯树遍历，追加到 []byte）。
//
// 输出格式:
//   - 对象键带引号、": " 分隔，每个成员一行
//   - 数组每个元素一行
//   - 数字固定 6 位小数（1 → "1.000000"）
//   - 布尔输出 true/false，null 输出 null
//   - 字符串字节原样置于引号之间（解析时转义未解码，
//     这里也就无需再转义）
//   - 每层嵌套增加调用方指定的缩进量
//
// 用法:
//
//	pr := drip.AcquirePrinter(2)
//	defer drip.ReleasePrinter(pr)
//	os.Stdout.Write(pr.Print(v))
type Printer struct {
	buf    []byte
	indent int
}

// ─── Pool ───

var printerPool = sync.Pool{
	New: func() any { return &Printer{buf: make([]byte, 0, 256)} },
}

// AcquirePrinter 从池中获取 Printer，indent 为每层缩进空格数
func AcquirePrinter(indent int) *Printer {
	p := printerPool.Get().(*Printer)
	p.buf = p.buf[:0]
	p.indent = indent
	return p
}

// ReleasePrinter 归还 Printer 到池中
func ReleasePrinter(p *Printer) {
	// 保留小 buffer，释放大 buffer（防内存泄漏）
	if cap(p.buf) > 1<<16 {
		p.buf = make([]byte, 0, 256)
	}
	printerPool.Put(p)
}

// Print 格式化 v，返回的字节生命周期绑定到 Printer
func (p *Printer) Print(v *Value) []byte {
	p.buf = appendValue(p.buf[:0], v, 0, p.indent)
	return p.buf
}

// String 返回最近一次 Print 的文本
func (p *Printer) String() string {
	return string(p.buf)
}

// AppendIndent 将 v 的格式化文本追加到 dst，每层缩进 indent 空格
func AppendIndent(dst []byte, v *Value, indent int) []byte {
	return appendValue(dst, v, 0, indent)
}

// appendValue 递归访问者，cur 为当前嵌套层级
func appendValue(dst []byte, v *Value, cur, indent int) []byte {
	switch v.Type() {
	case TypeString:
		dst = append(dst, '"')
		dst = append(dst, v.s...)
		dst = append(dst, '"')
	case TypeNumber:
		dst = strconv.AppendFloat(dst, v.f, 'f', 6, 64)
	case TypeBool:
		if v.b {
			dst = append(dst, "true"...)
		} else {
			dst = append(dst, "false"...)
		}
	case TypeNull:
		dst = append(dst, "null"...)
	case TypeObject:
		dst = appendObject(dst, v.o, cur, indent)
	case TypeArray:
		dst = appendArray(dst, v.a, cur, indent)
	}
	return dst
}

func appendObject(dst []byte, o *Object, cur, indent int) []byte {
	if o.Len() == 0 {
		return append(dst, '{', '}')
	}
	dst = append(dst, '{', '\n')
	i, last := 0, o.Len()-1
	o.Each(func(key string, member *Value) bool {
		dst = appendPad(dst, (cur+1)*indent)
		dst = append(dst, '"')
		dst = append(dst, key...)
		dst = append(dst, '"', ':', ' ')
		dst = appendValue(dst, member, cur+1, indent)
		if i != last {
			dst = append(dst, ',')
		}
		dst = append(dst, '\n')
		i++
		return true
	})
	dst = appendPad(dst, cur*indent)
	return append(dst, '}')
}

func appendArray(dst []byte, elems []*Value, cur, indent int) []byte {
	if len(elems) == 0 {
		return append(dst, '[', ']')
	}
	dst = append(dst, '[', '\n')
	for i, elem := range elems {
		dst = appendPad(dst, (cur+1)*indent)
		dst = appendValue(dst, elem, cur+1, indent)
		if i != len(elems)-1 {
			dst = append(dst, ',')
		}
		dst = append(dst, '\n')
	}
	dst = appendPad(dst, cur*indent)
	return append(dst, ']')
}

func appendPad(dst []byte, n int) []byte {
	for i := 0; i < n; i++ {
		dst = append(dst, ' ')
	}
	return dst
}
