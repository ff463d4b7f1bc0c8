package ast

import (
	"fmt"
	"strconv"
)

// siPrefix 数值后缀对应的倍率
var siPrefix = [256]float64{
	'T': 1e12,
	'G': 1e9,
	'M': 1e6,
	'k': 1e3,
	'K': 1e3,
	'm': 1e-3,
	'u': 1e-6,
	'n': 1e-9,
	'p': 1e-12,
	'f': 1e-15,
}

// Value 表示一个值，可以是数字或变量名
type Value struct {
	Value string // 原始值
	IsVar bool   // 是否为变量
	Line  int    // 行号
}

// String 原始文本，变量带 % 前缀
func (value Value) String() string {
	if value.IsVar {
		return "%" + value.Value
	}
	return value.Value
}

// Resolve 变量替换为 .value 定义的值
func (value Value) Resolve(vars map[string]string) (Value, error) {
	if !value.IsVar {
		return value, nil
	}
	v, ok := vars[value.Value]
	if !ok {
		return value, fmt.Errorf("第 %d 行: 未定义的变量 %q", value.Line, value.Value)
	}
	return Value{Value: v, Line: value.Line}, nil
}

// ParseFloat64 解析浮点数，支持单位前缀，如 4.7k、100n
func (value Value) ParseFloat64() (float64, error) {
	s := value.Value
	scale := 1.0
	if n := len(s); n > 1 && siPrefix[s[n-1]] != 0 {
		scale = siPrefix[s[n-1]]
		s = s[:n-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("第 %d 行: 无效的数值 %q", value.Line, value.Value)
	}
	return v * scale, nil
}

// ParseInt 解析整数
func (value Value) ParseInt() (int, error) {
	v, err := strconv.Atoi(value.Value)
	if err != nil {
		return 0, fmt.Errorf("第 %d 行: 无效的整数 %q", value.Line, value.Value)
	}
	return v, nil
}
