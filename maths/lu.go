package maths

import (
	"fmt"

	"circuitsim/types"
)

// LU Crout 法 LU 分解器（部分选主元，原地分解）
// 分解后矩阵的严格下三角部分存储 L（对角线隐含为1），上三角部分存储 U。
type LU struct {
	Nudge   float64 // 零主元替换值
	Nudged  int     // 最近一次分解中被替换的零主元数量
	permute []int   // 置换向量：permute[j] 为第 j 列选中的主元行
	a       *Dense  // 最近一次分解的矩阵
}

// NewLU 创建分解器
// 参数:
//
//	nudge - 零主元替换值，非正数时使用默认值 1e-18
func NewLU(nudge float64) *LU {
	if nudge <= 0 {
		nudge = types.DefaultPivotNudge
	}
	return &LU{Nudge: nudge}
}

// Factor 对矩阵 a 原地进行 LU 分解
// 参数:
//
//	a - 待分解方阵，分解结果覆盖原数据
//
// 返回:
//
//	存在全零行时返回 ErrSingularMatrix
func (lu *LU) Factor(a *Dense) error {
	n := a.Size()
	lu.a, lu.Nudged = a, 0
	if cap(lu.permute) < n {
		lu.permute = make([]int, n)
	}
	lu.permute = lu.permute[:n]
	// 扫描全零行，存在则矩阵奇异
	for i := 0; i < n; i++ {
		allZero := true
		for _, v := range a.Row(i) {
			if v != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			return fmt.Errorf("%w: 第 %d 行全为零", types.ErrSingularMatrix, i)
		}
	}
	// Crout 法，逐列处理
	for j := 0; j < n; j++ {
		// 上三角元素
		for i := 0; i < j; i++ {
			q := a.At(i, j)
			for k := 0; k < i; k++ {
				q -= a.At(i, k) * a.At(k, j)
			}
			a.Set(i, j, q)
		}
		// 下三角元素，同时寻找最大主元
		largest, largestRow := 0.0, -1
		for i := j; i < n; i++ {
			q := a.At(i, j)
			for k := 0; k < j; k++ {
				q -= a.At(i, k) * a.At(k, j)
			}
			a.Set(i, j, q)
			if x := Abs(q); x >= largest {
				largest, largestRow = x, i
			}
		}
		if largestRow < 0 {
			return fmt.Errorf("%w: 第 %d 列无有效主元", types.ErrNumeric, j)
		}
		// 选主元
		a.SwapRows(j, largestRow)
		lu.permute[j] = largestRow
		// 避免零主元
		if a.At(j, j) == 0 {
			a.Set(j, j, lu.Nudge)
			lu.Nudged++
		}
		if j != n-1 {
			mult := 1 / a.At(j, j)
			for i := j + 1; i < n; i++ {
				a.Set(i, j, a.At(i, j)*mult)
			}
		}
	}
	return nil
}

// Solve 使用最近一次分解结果原地求解 b
// 参数:
//
//	b - 右侧向量，返回时存储解
func (lu *LU) Solve(b []float64) error {
	a := lu.a
	if a == nil {
		return fmt.Errorf("%w: 尚未分解", types.ErrSingularMatrix)
	}
	n := a.Size()
	if len(b) != n {
		return fmt.Errorf("vector dimension mismatch: b=%d, matrix=%d", len(b), n)
	}
	// 按置换交换并寻找第一个非零元素
	i := 0
	for ; i < n; i++ {
		row := lu.permute[i]
		b[row], b[i] = b[i], b[row]
		if b[i] != 0 {
			break
		}
	}
	bi := i
	// 前向替换
	for i++; i < n; i++ {
		row := lu.permute[i]
		tot := b[row]
		b[row] = b[i]
		for j := bi; j < i; j++ {
			tot -= a.At(i, j) * b[j]
		}
		b[i] = tot
	}
	// 回代
	for i = n - 1; i >= 0; i-- {
		tot := b[i]
		for j := i + 1; j < n; j++ {
			tot -= a.At(i, j) * b[j]
		}
		b[i] = tot / a.At(i, i)
	}
	return nil
}

// Permute 返回置换向量
func (lu *LU) Permute() []int { return lu.permute }
