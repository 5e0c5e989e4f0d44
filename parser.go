package drip

import (
	"fmt"
	"io"
	"strconv"

	"github.com/uniyakcom/drip/arena"
)

// Parser 流式 JSON 解析器（arena 承载，可复用）。
//
// 递归下降：每个语法产生式一个方法，相互递归本身就是状态机，
// 调用栈深度即嵌套深度（由 MaxDepth 封顶）。游标只需逐字节
// 读取和单字节回退，整棵值树在返回前已完全物化。
//
// 一次解析的全部分配（值节点、对象表、表项、字符串缓冲）都
// 走同一组 bump 分配器，随下一次 Parse 整体失效；Parser 因此
// 不是并发安全的，并发场景每个 goroutine 各用一个（或走
// AcquireParser/ReleaseParser）。
//
// 用法:
//
//	var p Parser
//	v, err := p.ParseReader(f)
type Parser struct {
	r    reader
	a    *arena.Arena       // 字符串/键名字节
	vals *arena.Slab[Value] // 值节点
	objs *arena.Slab[Object]
	ents *arena.Slab[entry]

	depth  int
	numBuf []byte // 数字字面量暂存（跨解析复用）
}

// reset 绑定新输入源并整体释放上一轮的分配
func (p *Parser) reset(src io.Reader) {
	if p.a == nil {
		p.a = arena.New(0)
		p.vals = arena.NewSlab[Value](0)
		p.objs = arena.NewSlab[Object](0)
		p.ents = arena.NewSlab[entry](0)
	} else {
		p.a.Reset()
		p.vals.Reset()
		p.objs.Reset()
		p.ents.Reset()
	}
	p.r.reset(src)
	p.depth = 0
}

// ParseReader 解析一个完整 JSON 文档：恰好一个根值，
// 之后只允许空白。返回的值树生命周期绑定到 Parser。
func (p *Parser) ParseReader(src io.Reader) (*Value, error) {
	p.reset(src)
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	// 尾部只允许空白
	for {
		c, err := p.r.readByte()
		if err == io.EOF {
			return v, nil
		}
		if err != nil {
			return nil, fmt.Errorf("drip: read: %w", err)
		}
		if !isSpace(c) {
			p.r.unread()
			return nil, p.syntaxErr(KindUnexpectedChar, p.r.off, fmt.Sprintf("unexpected trailing data %q", c))
		}
	}
}

// ParseValue 从字节流中消费恰好一个 JSON 值，流中剩余内容
// 留给调用方。与 ParseReader 一样复用 arena。
func (p *Parser) ParseValue(src io.Reader) (*Value, error) {
	p.reset(src)
	return p.parseValue()
}

// ─── 语法产生式 ───

// parseValue 跳过空白后检视一个字节，按值起始字节分发。
// 数字、true/false/null 的首字节先回退，让对应的读取器
// 看到完整字面量。'-' 不是合法的值起始字节。
func (p *Parser) parseValue() (*Value, error) {
	if p.depth >= MaxDepth {
		return nil, p.syntaxErr(KindDepthExceeded, p.r.off, fmt.Sprintf("nesting deeper than %d", MaxDepth))
	}
	p.depth++
	defer func() { p.depth-- }()

	if err := p.skipSpace("while expecting a value"); err != nil {
		return nil, err
	}
	c, err := p.next("while expecting a value")
	if err != nil {
		return nil, err
	}
	switch c {
	case '{':
		return p.parseObject()
	case '"':
		return p.parseString()
	case '[':
		return p.parseArray()
	case 't', 'f':
		p.r.unread()
		return p.parseBoolean()
	case 'n':
		p.r.unread()
		return p.parseNull()
	default:
		if c >= '0' && c <= '9' {
			p.r.unread()
			return p.parseNumber()
		}
		p.r.unread()
		return nil, p.syntaxErr(KindUnexpectedChar, p.r.off, fmt.Sprintf("unexpected symbol %q", c))
	}
}

// parseObject 游标在 '{' 之后。
// 成员循环: 键字符串、':'、递归一个值、插入哈希表，
// ',' 继续 '}' 结束。重复键确定性拒绝（KindDuplicateKey）。
func (p *Parser) parseObject() (*Value, error) {
	v := p.vals.Get()
	v.t = TypeObject
	v.o = p.objs.Get()
	for {
		if err := p.skipSpace("in object"); err != nil {
			return nil, err
		}
		c, err := p.next("in object")
		if err != nil {
			return nil, err
		}
		switch c {
		case '}':
			return v, nil
		case '"':
		default:
			p.r.unread()
			return nil, p.syntaxErr(KindUnexpectedChar, p.r.off, `expected '"'`)
		}

		key, err := p.readString()
		if err != nil {
			return nil, err
		}

		if err := p.skipSpace("in object"); err != nil {
			return nil, err
		}
		c, err = p.next("in object")
		if err != nil {
			return nil, err
		}
		if c != ':' {
			p.r.unread()
			return nil, p.syntaxErr(KindUnexpectedChar, p.r.off, "expected ':'")
		}

		member, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		e := p.ents.Get()
		e.key = key
		e.val = member
		if !v.o.insertEntry(e) {
			return nil, p.syntaxErr(KindDuplicateKey, p.r.off, fmt.Sprintf("duplicate key %q", key))
		}

		if err := p.skipSpace("in object"); err != nil {
			return nil, err
		}
		c, err = p.next("in object")
		if err != nil {
			return nil, err
		}
		switch c {
		case ',':
		case '}':
			return v, nil
		default:
			p.r.unread()
			return nil, p.syntaxErr(KindUnexpectedChar, p.r.off, "expected ',' or '}'")
		}
	}
}

// parseArray 游标在 '[' 之后。
// ']' 结束，',' 作为分隔符直接跳过，其余回退一个字节后
// 递归解析一个元素，追加进按倍增长的切片。
func (p *Parser) parseArray() (*Value, error) {
	v := p.vals.Get()
	v.t = TypeArray
	elems := make([]*Value, 0, arrayBufSize)
	for {
		if err := p.skipSpace("in array"); err != nil {
			return nil, err
		}
		c, err := p.next("in array")
		if err != nil {
			return nil, err
		}
		switch c {
		case ']':
			v.a = elems
			return v, nil
		case ',':
		default:
			p.r.unread()
			elem, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
	}
}

// parseString 游标在开引号之后
func (p *Parser) parseString() (*Value, error) {
	s, err := p.readString()
	if err != nil {
		return nil, err
	}
	v := p.vals.Get()
	v.t = TypeString
	v.s = s
	return v, nil
}

// readString 把字节复制进 arena 缓冲，直到未转义的引号。
// 反斜杠置位 escaped 标志，让下一个字节原样复制——转义序列
// 按字面保留为两个字节，不做语义解码。结束后缓冲收缩到
// 实际用量。
func (p *Parser) readString() (string, error) {
	buf := p.a.Alloc(stringBufSize)
	n := 0
	escaped := false
	for {
		c, err := p.next("in string")
		if err != nil {
			return "", err
		}
		if n == len(buf) {
			buf = p.a.Grow(buf, len(buf)*2)
		}
		if escaped {
			escaped = false
			buf[n] = c
			n++
			continue
		}
		switch c {
		case '\\':
			escaped = true
			buf[n] = c
			n++
		case '"':
			return b2s(p.a.Trim(buf, n)), nil
		default:
			buf[n] = c
			n++
		}
	}
}

// isNumByte 浮点字面量字符集（scanf 式: 符号、整数、小数、指数）
func isNumByte(c byte) bool {
	return c >= '0' && c <= '9' ||
		c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

// parseNumber 贪心扫描浮点字面量字符集，遇到集外字节回退，
// 交给 strconv 做与 locale 无关的精确解析。扫描失败报
// KindUnexpectedChar；流在字面量中途结束不与扫描失败区分
// （能解析多少算多少，残缺的指数等同拼写错误）。
func (p *Parser) parseNumber() (*Value, error) {
	start := p.r.off
	p.numBuf = p.numBuf[:0]
	for {
		c, err := p.r.readByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("drip: read: %w", err)
		}
		if !isNumByte(c) {
			p.r.unread()
			break
		}
		p.numBuf = append(p.numBuf, c)
	}
	f, err := strconv.ParseFloat(b2s(p.numBuf), 64)
	if err != nil {
		return nil, p.syntaxErr(KindUnexpectedChar, start, fmt.Sprintf("invalid number %q", p.numBuf))
	}
	v := p.vals.Get()
	v.t = TypeNumber
	v.f = f
	return v, nil
}

// parseBoolean 游标在字面量首字节（已回退）。
// 首字节决定期望的关键字，逐字节比对。
func (p *Parser) parseBoolean() (*Value, error) {
	c, err := p.next("in literal")
	if err != nil {
		return nil, err
	}
	p.r.unread()
	lit := "false"
	if c == 't' {
		lit = "true"
	}
	if err := p.expectLiteral(lit); err != nil {
		return nil, err
	}
	v := p.vals.Get()
	v.t = TypeBool
	v.b = c == 't'
	return v, nil
}

// parseNull 游标在字面量首字节（已回退）
func (p *Parser) parseNull() (*Value, error) {
	if err := p.expectLiteral("null"); err != nil {
		return nil, err
	}
	v := p.vals.Get()
	v.t = TypeNull
	return v, nil
}

// expectLiteral 逐字节比对关键字；拼写错误报在字面量起始处
func (p *Parser) expectLiteral(lit string) error {
	start := p.r.off
	for i := 0; i < len(lit); i++ {
		c, err := p.next("in literal")
		if err != nil {
			return err
		}
		if c != lit[i] {
			return p.syntaxErr(KindUnexpectedChar, start, "unexpected symbol")
		}
	}
	return nil
}

// skipSpace 消费连续的空白字节，把第一个非空白字节退回。
// 此时语法仍在等一个 token，流结束是 KindUnexpectedEOF。
func (p *Parser) skipSpace(context string) error {
	for {
		c, err := p.next(context)
		if err != nil {
			return err
		}
		if !isSpace(c) {
			p.r.unread()
			return nil
		}
	}
}

// isSpace 空白判定（与 C isspace 一致）
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// ─── 错误构造 ───

// next 读取一个字节；流结束转为带位置的 KindUnexpectedEOF
func (p *Parser) next(context string) (byte, error) {
	c, err := p.r.readByte()
	if err == io.EOF {
		return 0, p.syntaxErr(KindUnexpectedEOF, p.r.off, "unexpected EOF "+context)
	}
	if err != nil {
		return 0, fmt.Errorf("drip: read: %w", err)
	}
	return c, nil
}

// syntaxErr 构造 SyntaxError 并尽力捕获上下文窗口
func (p *Parser) syntaxErr(kind ErrKind, off int64, msg string) *SyntaxError {
	e := &SyntaxError{Kind: kind, Offset: off, Msg: msg}
	e.window, e.windowStart = p.r.window(off)
	return e
}
