package util

import (
	"strconv"
)

// ParseID 解析路径中的数字 ID
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
