// Package drip 流式 JSON 解码器：逐字节读取字节流，产出 arena 承载的类型化值树。
//
// 设计原则:
//   - 流式解析: 基于单字节回退（pushback）的递归下降，不做整体 tokenize，
//     输入只需是 io.Reader；io.Seeker 额外解锁出错上下文窗口
//   - arena 承载: 一次解析产生的所有值、字符串缓冲都来自同一组 bump 分配器，
//     随 Parser 复用整体失效，没有逐节点释放
//   - 转义原样保留: 字符串中的反斜杠序列按字面两个字节复制，不做解码
//     （\uXXXX 同样不展开），这是刻意的范围限制而非缺陷
//   - 定长桶哈希表: 对象成员存入 32 桶 djb2 链式哈希表，重复键拒绝插入
//   - 类型化错误: 解析失败返回 *SyntaxError（错误类别 + 字节偏移 + 上下文窗口），
//     由调用方决定如何呈现；CLI 按类别映射为不同退出码
//
// 用法:
//
//	v, err := drip.Parse(`{"a": 1, "b": [true, false, null]}`)
//	if err != nil {
//	    var se *drip.SyntaxError
//	    if errors.As(err, &se) {
//	        fmt.Println(se.Context()) // 出错位置的上下文窗口 + 脱字符
//	    }
//	    return err
//	}
//	fmt.Println(v.GetFloat64("a"))      // 1
//	fmt.Println(v.Get("b").Len())       // 3
//
//	// 格式化输出（每层缩进 2 空格）
//	out := drip.AppendIndent(nil, v, 2)
//
// 复用 Parser 时注意: 返回的值树生命周期绑定到 Parser，
// 下一次 Parse 调用后之前的值树整体失效。
package drip

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ─── 一次性解析入口（每次新建 Parser，值树生命周期不受限） ───

// Parse 解析 JSON 字符串，返回根值
func Parse(s string) (*Value, error) {
	var p Parser
	return p.ParseReader(strings.NewReader(s))
}

// ParseBytes 解析 JSON 字节切片
func ParseBytes(b []byte) (*Value, error) {
	var p Parser
	return p.ParseReader(bytes.NewReader(b))
}

// ParseReader 从字节流解析一个完整 JSON 文档。
// r 实现 io.Seeker 时，解析错误会附带出错位置的上下文窗口。
func ParseReader(r io.Reader) (*Value, error) {
	var p Parser
	return p.ParseReader(r)
}

// ParseFile 解析 JSON 文件
func ParseFile(path string) (*Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("drip: open %s: %w", path, err)
	}
	defer f.Close()

	var p Parser
	v, err := p.ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("drip: parse %s: %w", path, err)
	}
	return v, nil
}

// ─── ParserPool（复用 arena，高吞吐场景） ───

// ParserPool 并发安全的 Parser 池。
// 注意: 从池中取出的 Parser 产出的值树在归还后失效。
var ParserPool = sync.Pool{
	New: func() any { return new(Parser) },
}

// AcquireParser 从池中获取 Parser
func AcquireParser() *Parser {
	return ParserPool.Get().(*Parser)
}

// ReleaseParser 归还 Parser 到池中。
// 归还后之前解析出的值树不得再读。
func ReleaseParser(p *Parser) {
	ParserPool.Put(p)
}
