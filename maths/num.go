package maths

import (
	"math"

	"golang.org/x/exp/constraints"
)

// IsFinite 判断数值既不是 NaN 也不是 Inf
func IsFinite[T constraints.Float](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// AllFinite 判断切片中所有元素均为有限值
func AllFinite[T constraints.Float](vs []T) bool {
	for _, v := range vs {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// Abs 绝对值
func Abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
