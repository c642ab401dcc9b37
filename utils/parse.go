package utils

import (
	"strconv"
	"strings"
)

func ParseIntSafe(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}

// ParseIDSafe возвращает 0 для пустых, нечисловых и неположительных значений
func ParseIDSafe(s string) uint {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
