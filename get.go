package drip

// Get 按路径获取嵌套值
//
//	v.Get("user", "name")  // 获取 {"user":{"name":"..."}} 中的 name
//	v.Get("items", "0")    // 获取数组第 0 个元素
//
// 对象一级走哈希表点查，数组一级把 key 当下标解析。
// 任一级不存在或类型不符时返回 nil。
func (v *Value) Get(keys ...string) *Value {
	for _, key := range keys {
		if v == nil {
			return nil
		}
		switch v.t {
		case TypeObject:
			v = v.o.At(key)
		case TypeArray:
			idx, ok := parseIdx(key)
			if !ok || idx < 0 || idx >= len(v.a) {
				return nil
			}
			v = v.a[idx]
		default:
			return nil
		}
	}
	return v
}

// GetString 获取字符串值，支持嵌套路径
func (v *Value) GetString(keys ...string) string {
	return v.Get(keys...).Str()
}

// GetFloat64 获取数字值
func (v *Value) GetFloat64(keys ...string) float64 {
	return v.Get(keys...).Float64()
}

// GetInt 获取数字值并截断为 int
func (v *Value) GetInt(keys ...string) int {
	return int(v.Get(keys...).Float64())
}

// GetBool 获取布尔值
func (v *Value) GetBool(keys ...string) bool {
	return v.Get(keys...).Bool()
}

// parseIdx 十进制数组下标解析
func parseIdx(s string) (int, bool) {
	if len(s) == 0 || len(s) > 10 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n < 0 {
			return 0, false // 溢出保护（32 位平台）
		}
	}
	return n, true
}
