package mna

import (
	"circuitsim/maths"
	"circuitsim/types"
)

// Simplify 简化矩阵：只有一个非常量非零系数且不在迭代中变化的行，
// 其未知量可直接求出并替换为常量。重复整轮扫描直到没有新的常量，
// 然后构建缩小后的矩阵并缓存为线性基准。
func (m *MNA) Simplify() error {
	n := m.fullSize
	for changed := true; changed; {
		changed = false
		for row := 0; row < n; row++ {
			ri := &m.RowInfo[row]
			if ri.LeftChanges || ri.RightChanges || ri.DropRow {
				continue
			}
			qp, qv, rsadd, ok := m.scanRow(row)
			if !ok {
				continue
			}
			if qp < 0 {
				return types.NewStopError(types.ErrSingularMatrix, types.MsgMatrixError, types.NoElement)
			}
			m.RowInfo[qp].IsConst = true
			m.RowInfo[qp].Value = (m.RightSide[row] + rsadd) / qv
			ri.DropRow = true
			changed = true
		}
	}
	m.reduce()
	return nil
}

// scanRow 查找行中唯一的非常量非零系数
// 返回列索引（无则为-1）、系数、常量列移到右侧的累计值，以及该行是否可简化
func (m *MNA) scanRow(row int) (qp int, qv, rsadd float64, ok bool) {
	qp = -1
	for col, q := range m.Matrix.Row(row) {
		if m.RowInfo[col].IsConst {
			rsadd -= m.RowInfo[col].Value * q
			continue
		}
		if q == 0 {
			continue
		}
		if qp != -1 {
			return -1, 0, 0, false
		}
		qp, qv = col, q
	}
	return qp, qv, rsadd, true
}

// reduce 构建缩小后的矩阵，常量列移到右侧
func (m *MNA) reduce() {
	n := m.fullSize
	size := 0
	for i := range m.RowInfo {
		ri := &m.RowInfo[i]
		if ri.IsConst {
			ri.MapCol = -1
			continue
		}
		ri.MapCol = size
		size++
	}
	mat := maths.NewDense(size)
	rs := make([]float64, size)
	ii := 0
	for row := 0; row < n; row++ {
		rri := &m.RowInfo[row]
		if rri.DropRow {
			rri.MapRow = -1
			continue
		}
		rs[ii] = m.RightSide[row]
		rri.MapRow = ii
		for col, q := range m.Matrix.Row(row) {
			ri := m.RowInfo[col]
			if ri.IsConst {
				rs[ii] -= ri.Value * q
			} else {
				mat.Add(ii, ri.MapCol, q)
			}
		}
		ii++
	}
	m.Matrix, m.RightSide = mat, rs
	m.origMatrix = mat.Clone()
	m.origRightSide = append([]float64(nil), rs...)
	m.needsMap = true
}
