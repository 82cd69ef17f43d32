package ga

import "strings"

// Variant — вариант генетического алгоритма.
type Variant int

const (
	Standard Variant = iota
	Lamarckian
	Baldwinian
	// Regular — метка для нераспознанного варианта. Для него каждая особь
	// получает нулевую приспособленность.
	Regular
)

var variantNames = map[Variant]string{
	Standard:   "standard",
	Lamarckian: "lamarckian",
	Baldwinian: "baldwinian",
	Regular:    "regular",
}

func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return "regular"
}

// ParseVariant разбирает метку варианта без учёта регистра.
// Пустая строка означает Standard. Нераспознанная метка не является ошибкой:
// возвращается Regular и ok=false.
func ParseVariant(s string) (v Variant, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return Standard, true
	case "lamarckian":
		return Lamarckian, true
	case "baldwinian":
		return Baldwinian, true
	default:
		return Regular, false
	}
}
