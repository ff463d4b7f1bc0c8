package maths

import (
	"errors"
	"math/rand"
	"testing"

	"circuitsim/types"

	"gonum.org/v1/gonum/mat"
)

// TestLUSolve 验证 Crout 分解和求解结果
func TestLUSolve(t *testing.T) {
	// A = [[2, 3, 1],
	//      [1, 2, 3],
	//      [3, 1, 2]]
	// b = [9, 6, 8]
	// 预期解 x = [35/18, 29/18, 5/18]
	a := NewDenseFrom([][]float64{
		{2, 3, 1},
		{1, 2, 3},
		{3, 1, 2},
	})
	b := []float64{9, 6, 8}
	lu := NewLU(0)
	if err := lu.Factor(a); err != nil {
		t.Fatalf("分解失败: %v", err)
	}
	if err := lu.Solve(b); err != nil {
		t.Fatalf("求解失败: %v", err)
	}
	expected := []float64{35.0 / 18.0, 29.0 / 18.0, 5.0 / 18.0}
	for i := range expected {
		if Abs(b[i]-expected[i]) > 1e-9 {
			t.Errorf("x[%d] 不正确: 期望 %v, 实际 %v", i, expected[i], b[i])
		}
	}
}

// TestLUAgainstGonum 与 gonum 的 LU 求解结果对照
func TestLUAgainstGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{1, 2, 5, 12, 30} {
		rows := make([][]float64, n)
		for i := range rows {
			rows[i] = make([]float64, n)
			for j := range rows[i] {
				rows[i][j] = rng.Float64()*2 - 1
			}
			// 对角占优保证可解
			rows[i][i] += float64(n)
		}
		a := NewDenseFrom(rows)
		ref := mat.DenseCopyOf(a)
		b := make([]float64, n)
		for i := range b {
			b[i] = rng.Float64()*10 - 5
		}
		var want mat.VecDense
		if err := want.SolveVec(ref, mat.NewVecDense(n, append([]float64(nil), b...))); err != nil {
			t.Fatalf("gonum 求解失败: %v", err)
		}
		lu := NewLU(0)
		if err := lu.Factor(a); err != nil {
			t.Fatalf("n=%d 分解失败: %v", n, err)
		}
		if err := lu.Solve(b); err != nil {
			t.Fatalf("n=%d 求解失败: %v", n, err)
		}
		for i := 0; i < n; i++ {
			if Abs(b[i]-want.AtVec(i)) > 1e-9 {
				t.Errorf("n=%d x[%d] 不一致: gonum %v, 实际 %v", n, i, want.AtVec(i), b[i])
			}
		}
	}
}

// TestLUPivot 第一列首元素为零时需要换行
func TestLUPivot(t *testing.T) {
	a := NewDenseFrom([][]float64{
		{0, 1},
		{1, 0},
	})
	b := []float64{3, 4}
	lu := NewLU(0)
	if err := lu.Factor(a); err != nil {
		t.Fatalf("分解失败: %v", err)
	}
	if err := lu.Solve(b); err != nil {
		t.Fatalf("求解失败: %v", err)
	}
	if b[0] != 4 || b[1] != 3 {
		t.Errorf("换行求解不正确: 期望 [4 3], 实际 %v", b)
	}
}

// TestLUSingularRow 全零行直接报告奇异
func TestLUSingularRow(t *testing.T) {
	a := NewDenseFrom([][]float64{
		{1, 2},
		{0, 0},
	})
	err := NewLU(0).Factor(a)
	if !errors.Is(err, types.ErrSingularMatrix) {
		t.Fatalf("期望奇异矩阵错误, 实际 %v", err)
	}
}

// TestLUNudge 零主元被替换而不是产生 NaN
func TestLUNudge(t *testing.T) {
	a := NewDenseFrom([][]float64{
		{1, 1},
		{1, 1},
	})
	lu := NewLU(0)
	if err := lu.Factor(a); err != nil {
		t.Fatalf("分解失败: %v", err)
	}
	if lu.Nudged != 1 {
		t.Fatalf("零主元替换次数不正确: 期望 1, 实际 %d", lu.Nudged)
	}
	if a.At(1, 1) != types.DefaultPivotNudge {
		t.Errorf("零主元替换值不正确: 期望 %v, 实际 %v", types.DefaultPivotNudge, a.At(1, 1))
	}
}

// TestLUEmpty 零维矩阵可以分解求解
func TestLUEmpty(t *testing.T) {
	lu := NewLU(0)
	if err := lu.Factor(NewDense(0)); err != nil {
		t.Fatalf("零维分解失败: %v", err)
	}
	if err := lu.Solve(nil); err != nil {
		t.Fatalf("零维求解失败: %v", err)
	}
}
