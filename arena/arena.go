// Package arena 提供 chunk 化的 bump 分配器（内存池）。
//
// 一次解析过程中的所有字符串、键名缓冲都从同一个 Arena 取得，
// 解析结束后整体 Reset 复用，没有逐个释放的概念。
//
// 分配契约（解析器依赖的全部能力）:
//   - Alloc(n): bump 分配 n 字节
//   - Grow(buf, n): 将最近一次分配（tail）原地扩容，放不下时搬迁
//   - Trim(buf, n): 将 tail 收缩到实际用量，归还多余字节
//   - Reset(): O(1) 整体释放，chunk 保留复用
//
// 用法:
//
//	a := arena.New(0)          // 默认 chunk 大小
//	buf := a.Alloc(16)
//	buf = a.Grow(buf, 32)      // tail 原地扩容
//	buf = a.Trim(buf, 20)      // 收缩到实际长度
//	a.Reset()                  // 整体复用
package arena

// DefaultChunkSize 默认 chunk 大小（64 KiB）
const DefaultChunkSize = 1 << 16

// Arena chunk 化 bump 分配器。非并发安全：
// 一个 Arena 同一时刻只属于一次解析（单一所有者）。
type Arena struct {
	full      [][]byte // 已写满的 chunk（保留引用，防止存活数据被回收）
	cur       []byte   // 当前 chunk
	off       int      // cur 中下一次分配的起点
	tailOff   int      // 最近一次分配在 cur 中的起点
	chunkSize int
	stats     Stats
}

// Stats Arena 累计分配统计
type Stats struct {
	Allocs int64 // Alloc 调用次数
	Bytes  int64 // 累计分配字节数（含 Grow 增量）
	Chunks int   // 当前持有的 chunk 数
}

// New 创建 Arena。chunkSize <= 0 时使用 DefaultChunkSize。
func New(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Arena{chunkSize: chunkSize}
}

// Alloc bump 分配 n 字节，返回的切片 cap 被钳制为 n，
// 防止调用方 append 越界写入后续分配。
func (a *Arena) Alloc(n int) []byte {
	if n < 0 {
		return nil
	}
	if a.off+n > len(a.cur) {
		a.newChunk(n)
	}
	buf := a.cur[a.off : a.off+n : a.off+n]
	a.tailOff = a.off
	a.off += n
	a.stats.Allocs++
	a.stats.Bytes += int64(n)
	return buf
}

// Grow 将 buf 扩容到 n 字节并返回新切片。
//
// buf 必须是本 Arena 最近一次分配（tail）；满足且当前 chunk
// 放得下时原地扩容（零拷贝），否则搬迁到一块新分配并复制内容。
// 传入非 tail 的切片同样安全，只是必定走搬迁路径。
func (a *Arena) Grow(buf []byte, n int) []byte {
	if n <= len(buf) {
		return buf[:n]
	}
	if a.isTail(buf) && a.tailOff+n <= len(a.cur) {
		a.stats.Bytes += int64(n - len(buf))
		a.off = a.tailOff + n
		return a.cur[a.tailOff : a.off : a.off]
	}
	nb := a.Alloc(n)
	copy(nb, buf)
	return nb
}

// Trim 将 buf 收缩到 n 字节。buf 为 tail 时多余字节归还给
// Arena，供后续分配复用（"收缩到实际用量"）。
func (a *Arena) Trim(buf []byte, n int) []byte {
	if n >= len(buf) {
		return buf
	}
	if a.isTail(buf) {
		a.off = a.tailOff + n
		a.stats.Bytes -= int64(len(buf) - n)
		return a.cur[a.tailOff : a.off : a.off]
	}
	return buf[:n:n]
}

// Reset O(1) 整体释放。已写满的 chunk 丢给 GC，当前 chunk
// 保留复用。之前分配的所有切片自此失效，不得再读。
func (a *Arena) Reset() {
	a.full = nil
	a.off = 0
	a.tailOff = 0
}

// Used 返回当前 chunk 内已占用的字节数（测试与诊断用）。
func (a *Arena) Used() int { return a.off }

// Stats 返回累计分配统计
func (a *Arena) Stats() Stats {
	s := a.stats
	s.Chunks = len(a.full)
	if a.cur != nil {
		s.Chunks++
	}
	return s
}

// isTail 判断 buf 是否为最近一次分配（地址级判定，长度巧合不会误判）
func (a *Arena) isTail(buf []byte) bool {
	if len(buf) == 0 || a.off == 0 || len(a.cur) == 0 {
		return false
	}
	return a.tailOff+len(buf) == a.off && &a.cur[a.tailOff] == &buf[0]
}

// newChunk 切换到一块至少能容纳 n 字节的新 chunk
func (a *Arena) newChunk(n int) {
	size := a.chunkSize
	if n > size {
		size = n
	}
	if a.cur != nil {
		a.full = append(a.full, a.cur)
	}
	a.cur = make([]byte, size)
	a.off = 0
	a.tailOff = 0
}
