package drip

import (
	"bufio"
	"io"
)

// reader 字节流游标：逐字节读取 + 单字节回退 + 偏移跟踪。
//
// 回退能力来自 bufio.Reader 的 UnreadByte，天然限定为一个字节，
// 与解析器的回退契约一致。出错时的回溯 seek 只用于诊断窗口，
// 底层源不支持 io.Seeker 时静默跳过。
type reader struct {
	br  *bufio.Reader
	src io.Reader
	off int64 // 下一个待读字节的偏移
}

func (r *reader) reset(src io.Reader) {
	if r.br == nil {
		r.br = bufio.NewReader(src)
	} else {
		r.br.Reset(src)
	}
	r.src = src
	r.off = 0
}

// readByte 读取一个字节。流结束返回 io.EOF。
func (r *reader) readByte() (byte, error) {
	c, err := r.br.ReadByte()
	if err != nil {
		return 0, err
	}
	r.off++
	return c, nil
}

// unread 把最近读出的字节退回流前端，下次 readByte 重新看到它
func (r *reader) unread() {
	if r.br.UnreadByte() == nil {
		r.off--
	}
}

// window 捕获 at 偏移周边的源码窗口（前后各 ErrContextLen/2 字节）。
// 尽力而为：底层源不可 seek 或 seek 失败时返回空。
// 解析在出错后即终止，不恢复流位置。
func (r *reader) window(at int64) ([]byte, int64) {
	s, ok := r.src.(io.Seeker)
	if !ok {
		return nil, 0
	}
	start := at - ErrContextLen/2
	if start < 0 {
		start = 0
	}
	if _, err := s.Seek(start, io.SeekStart); err != nil {
		return nil, 0
	}
	buf := make([]byte, ErrContextLen)
	n, _ := io.ReadFull(r.src, buf)
	if n == 0 {
		return nil, 0
	}
	return buf[:n], start
}
