package arena

// defaultPerChunk Slab 默认每 chunk 元素数
const defaultPerChunk = 256

// Slab 类型化 bump 分配器。
//
// 与 Arena 的字节分配互补：值树节点这类带指针的类型不能
// 从原始字节内存上切（GC 不可见），Slab 用 []T chunk 承载，
// 地址稳定（chunk 写满后另起新块，绝不搬迁已发出的元素）。
//
// 生命周期与 Arena 相同：Reset 整体复用，之前 Get 到的指针
// 全部失效。非并发安全。
type Slab[T any] struct {
	chunks   [][]T
	ci       int // 当前写入的 chunk 下标
	perChunk int
}

// NewSlab 创建 Slab。perChunk <= 0 时使用默认值。
func NewSlab[T any](perChunk int) *Slab[T] {
	if perChunk <= 0 {
		perChunk = defaultPerChunk
	}
	return &Slab[T]{perChunk: perChunk}
}

// Get 取出一个零值元素的指针
func (s *Slab[T]) Get() *T {
	for {
		if s.ci == len(s.chunks) {
			s.chunks = append(s.chunks, make([]T, 0, s.perChunk))
		}
		c := s.chunks[s.ci]
		if len(c) == cap(c) {
			s.ci++
			continue
		}
		c = c[:len(c)+1]
		s.chunks[s.ci] = c
		p := &c[len(c)-1]
		var zero T
		*p = zero // chunk 复用后槽位里可能残留上一轮的数据
		return p
	}
}

// Len 返回已发出的元素总数
func (s *Slab[T]) Len() int {
	n := 0
	for _, c := range s.chunks {
		n += len(c)
	}
	return n
}

// Reset 整体复用：所有 chunk 长度清零，容量保留。
// 之前 Get 返回的指针自此失效，不得再读。
func (s *Slab[T]) Reset() {
	for i := range s.chunks {
		s.chunks[i] = s.chunks[i][:0]
	}
	s.ci = 0
}
