package drip

// Object JSON 对象的成员哈希表。
//
// 桶数固定（ObjBuckets），冲突走单链表，新表项插到链头，
// 因此同桶内的遍历顺序是插入的逆序。只需要插入和点查——
// 正常解析过程不存在删除；值树整体随 arena 失效，
// 也不需要逐表项的析构。
type Object struct {
	buckets [ObjBuckets]*entry
	n       int
}

// entry 一个成员：键 + 指向值的非拥有指针 + 链表后继。
// 值本身由 arena 拥有，表项只持有引用。
type entry struct {
	key  string
	val  *Value
	next *entry
}

// hashKey djb2 字符串哈希
//
// 种子 5381，逐字节 hash = hash*33 + c。33 与 2^64 互质
// （奇数都满足），乘 33 又可以写成移位加法，分布和速度都不错。
func hashKey(s string) uint64 {
	h := uint64(5381)
	for i := 0; i < len(s); i++ {
		h = (h << 5) + h + uint64(s[i])
	}
	return h
}

// At 点查：返回键对应的值，不存在时返回 nil。
// 平均 O(1)，哈希冲突时最坏退化为桶内链表长度。
func (o *Object) At(key string) *Value {
	if o == nil {
		return nil
	}
	for e := o.buckets[hashKey(key)%ObjBuckets]; e != nil; e = e.next {
		if e.key == key {
			return e.val
		}
	}
	return nil
}

// Insert 插入成员。键已存在时不做任何修改并返回 false
// （先插入者生效），否则把新表项链到桶头并返回 true。
func (o *Object) Insert(key string, v *Value) bool {
	return o.insertEntry(&entry{key: key, val: v})
}

// insertEntry 链入一个已构造的表项（解析器走 arena slab 分配表项）
func (o *Object) insertEntry(e *entry) bool {
	i := hashKey(e.key) % ObjBuckets
	for cur := o.buckets[i]; cur != nil; cur = cur.next {
		if cur.key == e.key {
			return false
		}
	}
	e.next = o.buckets[i]
	o.buckets[i] = e
	o.n++
	return true
}

// Len 返回成员数量
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return o.n
}

// Each 遍历所有成员（桶序 + 桶内逆插入序），返回 false 停止遍历
func (o *Object) Each(fn func(key string, v *Value) bool) {
	if o == nil {
		return
	}
	for i := range o.buckets {
		for e := o.buckets[i]; e != nil; e = e.next {
			if !fn(e.key, e.val) {
				return
			}
		}
	}
}
