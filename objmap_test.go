package drip

import (
	"fmt"
	"testing"
)

// TestObjectInsertLookup 基本插入与点查
func TestObjectInsertLookup(t *testing.T) {
	o := &Object{}
	v1 := &Value{t: TypeNumber, f: 1}
	v2 := &Value{t: TypeNumber, f: 2}

	if !o.Insert("a", v1) {
		t.Fatal("first insert should succeed")
	}
	if !o.Insert("b", v2) {
		t.Fatal("insert of distinct key should succeed")
	}
	if o.Len() != 2 {
		t.Errorf("Len = %d, want 2", o.Len())
	}
	if got := o.At("a"); got != v1 {
		t.Errorf("At(a) = %v, want v1", got)
	}
	if got := o.At("b"); got != v2 {
		t.Errorf("At(b) = %v, want v2", got)
	}
	if got := o.At("missing"); got != nil {
		t.Errorf("At(missing) = %v, want nil", got)
	}
}

// TestObjectDuplicateInsert 重复键插入失败且不改动已有绑定
func TestObjectDuplicateInsert(t *testing.T) {
	o := &Object{}
	v1 := &Value{t: TypeNumber, f: 1}
	v2 := &Value{t: TypeNumber, f: 2}

	o.Insert("k", v1)
	if o.Insert("k", v2) {
		t.Fatal("duplicate insert should fail")
	}
	if o.Len() != 1 {
		t.Errorf("Len = %d, want 1", o.Len())
	}
	if got := o.At("k"); got != v1 {
		t.Error("first binding should win")
	}
}

// TestObjectCollisionChain 超过桶数的键全部可查（链式冲突处理）
func TestObjectCollisionChain(t *testing.T) {
	o := &Object{}
	const n = ObjBuckets * 4
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("key%d", i)
		if !o.Insert(key, &Value{t: TypeNumber, f: float64(i)}) {
			t.Fatalf("insert %s failed", key)
		}
	}
	if o.Len() != n {
		t.Fatalf("Len = %d, want %d", o.Len(), n)
	}
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("key%d", i)
		v := o.At(key)
		if v == nil || v.Float64() != float64(i) {
			t.Errorf("At(%s) = %v, want %d", key, v, i)
		}
	}
}

// TestObjectEach 遍历覆盖所有成员，返回 false 提前停止
func TestObjectEach(t *testing.T) {
	o := &Object{}
	for i := 0; i < 10; i++ {
		o.Insert(fmt.Sprintf("k%d", i), &Value{t: TypeNull})
	}

	seen := map[string]bool{}
	o.Each(func(key string, v *Value) bool {
		seen[key] = true
		return true
	})
	if len(seen) != 10 {
		t.Errorf("visited %d keys, want 10", len(seen))
	}

	count := 0
	o.Each(func(key string, v *Value) bool {
		count++
		return count < 3
	})
	if count != 3 {
		t.Errorf("early stop visited %d, want 3", count)
	}
}

// TestObjectNilSafe nil 对象的只读操作安全
func TestObjectNilSafe(t *testing.T) {
	var o *Object
	if o.At("x") != nil {
		t.Error("nil.At should return nil")
	}
	if o.Len() != 0 {
		t.Error("nil.Len should be 0")
	}
	o.Each(func(string, *Value) bool { t.Error("nil.Each should not call fn"); return true })
}

// TestHashKeyDJB2 djb2 已知值（种子 5381，乘 33 累加）
func TestHashKeyDJB2(t *testing.T) {
	if h := hashKey(""); h != 5381 {
		t.Errorf("hash(\"\") = %d, want 5381", h)
	}
	// 5381*33 + 'a' = 177670
	if h := hashKey("a"); h != 177670 {
		t.Errorf("hash(a) = %d, want 177670", h)
	}
}
