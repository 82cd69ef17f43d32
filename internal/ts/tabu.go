package ts

// tabuList — кольцевой буфер фиксированного размера с map для быстрой проверки.
type tabuList struct {
	m   map[uint64]int // ключ → итерация истечения табу
	key []uint64
	exp []int
	i   int
}

func newTabuList(capacity int) *tabuList {
	if capacity < 8 {
		capacity = 8
	}
	return &tabuList{
		m:   make(map[uint64]int, capacity*2),
		key: make([]uint64, capacity),
		exp: make([]int, capacity),
	}
}

func (t *tabuList) IsTabu(k uint64, iter int) bool {
	exp, ok := t.m[k]
	return ok && exp > iter
}

// Add вытесняет самый старый элемент кольца, если его срок в map не обновлялся.
func (t *tabuList) Add(k uint64, expiry int) {
	if old := t.key[t.i]; old != 0 {
		if cur, ok := t.m[old]; ok && cur == t.exp[t.i] {
			delete(t.m, old)
		}
	}
	t.key[t.i] = k
	t.exp[t.i] = expiry
	t.m[k] = expiry

	t.i = (t.i + 1) % len(t.key)
}
