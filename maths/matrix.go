package maths

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dense 行优先存储的稠密方阵
// 实现 gonum 的 mat.Matrix 接口，可直接用于 mat.Formatted 输出或与 gonum 的求解结果对照
type Dense struct {
	n    int       // 矩阵维度
	data []float64 // 行优先数据
}

var _ mat.Matrix = (*Dense)(nil)

// NewDense 创建 n×n 零矩阵，n 可以为 0
func NewDense(n int) *Dense {
	if n < 0 {
		panic(fmt.Sprintf("invalid matrix dimension: %d", n))
	}
	return &Dense{n: n, data: make([]float64, n*n)}
}

// NewDenseFrom 从二维切片构建矩阵
func NewDenseFrom(rows [][]float64) *Dense {
	d := NewDense(len(rows))
	for i, row := range rows {
		if len(row) != d.n {
			panic(fmt.Sprintf("row %d length %d, want %d", i, len(row), d.n))
		}
		copy(d.Row(i), row)
	}
	return d
}

// Size 返回矩阵维度
func (d *Dense) Size() int { return d.n }

// Dims 返回行列数
func (d *Dense) Dims() (r, c int) { return d.n, d.n }

// At 获取元素
func (d *Dense) At(i, j int) float64 { return d.data[i*d.n+j] }

// T 返回转置视图
func (d *Dense) T() mat.Matrix { return mat.Transpose{Matrix: d} }

// Set 设置元素
func (d *Dense) Set(i, j int, v float64) { d.data[i*d.n+j] = v }

// Add 累加元素
func (d *Dense) Add(i, j int, v float64) { d.data[i*d.n+j] += v }

// Row 返回第 i 行的底层切片
func (d *Dense) Row(i int) []float64 { return d.data[i*d.n : (i+1)*d.n] }

// CopyFrom 从同维度矩阵复制数据
func (d *Dense) CopyFrom(src *Dense) {
	if src.n != d.n {
		panic(fmt.Sprintf("dimension mismatch: source %d, target %d", src.n, d.n))
	}
	copy(d.data, src.data)
}

// Clone 复制矩阵
func (d *Dense) Clone() *Dense {
	c := NewDense(d.n)
	copy(c.data, d.data)
	return c
}

// SwapRows 交换两行
func (d *Dense) SwapRows(i, j int) {
	if i == j {
		return
	}
	ri, rj := d.Row(i), d.Row(j)
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}

// FindNonFinite 查找第一个 NaN/Inf 元素
func (d *Dense) FindNonFinite() (row, col int, ok bool) {
	for idx, v := range d.data {
		if !IsFinite(v) {
			return idx / d.n, idx % d.n, true
		}
	}
	return -1, -1, false
}
