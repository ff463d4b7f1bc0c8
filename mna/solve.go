package mna

import (
	"fmt"

	"circuitsim/maths"
	"circuitsim/types"
)

// Solve 对当前矩阵进行 LU 分解并求解，结果按完整矩阵的行顺序写入 x。
// x[j] 对 j < NodeCount-1 为节点 j+1 的电压，其余为电压源电流。
// 结果中存在 NaN/Inf 时返回错误，x 保持不变。
func (m *MNA) Solve(x []float64) error {
	if len(x) != m.fullSize {
		return fmt.Errorf("solution dimension mismatch: x=%d, matrix=%d", len(x), m.fullSize)
	}
	if err := m.lu.Factor(m.Matrix); err != nil {
		return types.NewStopError(types.ErrSingularMatrix, types.MsgSingularMatrix+" "+err.Error(), types.NoElement)
	}
	if err := m.lu.Solve(m.RightSide); err != nil {
		return err
	}
	sol := m.scratch
	for j := range m.RowInfo {
		ri := &m.RowInfo[j]
		var res float64
		if ri.IsConst {
			res = ri.Value
		} else {
			res = m.RightSide[ri.MapCol]
		}
		if !maths.IsFinite(res) {
			return types.NewStopError(types.ErrNumeric,
				fmt.Sprintf("%s: x[%d]", types.MsgNaNSolution, j), types.NoElement)
		}
		sol[j] = res
	}
	copy(x, sol)
	return nil
}
