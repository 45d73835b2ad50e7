package service

import "strconv"

func uintToID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
