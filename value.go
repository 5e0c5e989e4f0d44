package drip

import "unsafe"

// Type JSON 值类型
type Type uint8

const (
	TypeNull   Type = iota // null
	TypeBool               // true / false
	TypeNumber             // 64 位浮点数
	TypeString             // 字符串（转义原样保留）
	TypeArray              // 数组
	TypeObject             // 对象
)

// String 返回类型名称
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value 一个已解析的 JSON 值（带标签的联合体）。
//
// 同一时刻只有与标签 t 一致的载荷字段有意义；访问器在类型
// 不匹配时返回零值，调用方不会读到错误的联合体分支。
//
//   - o: 对象的成员哈希表
//   - a: 数组的子值（带长度的切片，不用终止哨兵）
//   - s: 字符串字节。反斜杠转义按字面保留为两个字节，
//     不做任何解码（"line1\nline2" 里是 '\' 和 'n' 两个字节）
//   - f: 数字（float64）
//   - b: 布尔值
//
// Value 由 Parser 的 arena 承载，生命周期与一次解析绑定。
type Value struct {
	o *Object  // TypeObject
	a []*Value // TypeArray
	s string   // TypeString
	f float64  // TypeNumber
	t Type
	b bool // TypeBool
}

// ─── 类型判断 ───

// Type 返回值类型
func (v *Value) Type() Type {
	if v == nil {
		return TypeNull
	}
	return v.t
}

// IsNull 是否为 null
func (v *Value) IsNull() bool { return v == nil || v.t == TypeNull }

// IsObject 是否为对象
func (v *Value) IsObject() bool { return v != nil && v.t == TypeObject }

// IsArray 是否为数组
func (v *Value) IsArray() bool { return v != nil && v.t == TypeArray }

// ─── 载荷访问（类型不匹配返回零值） ───

// Str 返回字符串载荷
func (v *Value) Str() string {
	if v == nil || v.t != TypeString {
		return ""
	}
	return v.s
}

// Float64 返回数字载荷
func (v *Value) Float64() float64 {
	if v == nil || v.t != TypeNumber {
		return 0
	}
	return v.f
}

// Bool 返回布尔载荷
func (v *Value) Bool() bool {
	if v == nil || v.t != TypeBool {
		return false
	}
	return v.b
}

// Array 返回数组载荷
func (v *Value) Array() []*Value {
	if v == nil || v.t != TypeArray {
		return nil
	}
	return v.a
}

// Object 返回对象载荷
func (v *Value) Object() *Object {
	if v == nil || v.t != TypeObject {
		return nil
	}
	return v.o
}

// Len 返回数组或对象的元素数量
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.t {
	case TypeArray:
		return len(v.a)
	case TypeObject:
		return v.o.Len()
	default:
		return 0
	}
}

// ArrayEach 遍历数组元素，返回 false 停止遍历
func (v *Value) ArrayEach(fn func(i int, val *Value) bool) {
	if v == nil || v.t != TypeArray {
		return
	}
	for i, elem := range v.a {
		if !fn(i, elem) {
			return
		}
	}
}

// ObjectEach 遍历对象成员（桶序，非插入序），返回 false 停止遍历
func (v *Value) ObjectEach(fn func(key string, val *Value) bool) {
	if v == nil || v.t != TypeObject {
		return
	}
	v.o.Each(fn)
}

// Equal 结构化相等:
// 标量按值比较；数组按长度和逐元素比较；
// 对象按键集合和逐键比较，忽略成员顺序。
func (v *Value) Equal(other *Value) bool {
	if v.Type() != other.Type() {
		return false
	}
	switch v.Type() {
	case TypeNull:
		return true
	case TypeBool:
		return v.b == other.b
	case TypeNumber:
		return v.f == other.f
	case TypeString:
		return v.s == other.s
	case TypeArray:
		if len(v.a) != len(other.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(other.a[i]) {
				return false
			}
		}
		return true
	case TypeObject:
		if v.o.Len() != other.o.Len() {
			return false
		}
		equal := true
		v.o.Each(func(key string, member *Value) bool {
			peer := other.o.At(key)
			if peer == nil || !member.Equal(peer) {
				equal = false
				return false
			}
			return true
		})
		return equal
	default:
		return false
	}
}

// ─── 辅助函数 ───

// b2s 零拷贝 []byte → string。
// 仅用于 arena 缓冲：Trim 之后该区间不会再被写入。
func b2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
