package mna

import (
	"fmt"

	"circuitsim/maths"
	"circuitsim/types"
)

var _ Stamper = (*MNA)(nil)

// ------------------------------ MNA矩阵操作 ------------------------------

// StampMatrix 将 x 加到矩阵 (r,c) 元素上，地节点将被忽略。
func (m *MNA) StampMatrix(r, c NodeID, x float64) {
	if r <= Gnd || c <= Gnd {
		return
	}
	row, col := int(r)-1, int(c)-1
	if m.needsMap {
		row = m.RowInfo[row].MapRow
		if row < 0 {
			return // 已移除的行
		}
		ri := &m.RowInfo[col]
		if ri.IsConst {
			m.RightSide[row] -= x * ri.Value
			return
		}
		col = ri.MapCol
	}
	m.Matrix.Add(row, col, x)
}

// StampRightSide 将 x 加到右侧向量第 i 行，地节点将被忽略。
func (m *MNA) StampRightSide(i NodeID, x float64) {
	if i <= Gnd {
		return
	}
	row := int(i) - 1
	if m.needsMap {
		row = m.RowInfo[row].MapRow
		if row < 0 {
			return
		}
	}
	m.RightSide[row] += x
}

// StampRightSideChanges 标记右侧变化的行
func (m *MNA) StampRightSideChanges(i NodeID) {
	if i > Gnd {
		m.RowInfo[i-1].RightChanges = true
	}
}

// StampNonLinear 标记系数变化的行
func (m *MNA) StampNonLinear(i NodeID) {
	if i > Gnd {
		m.RowInfo[i-1].LeftChanges = true
	}
}

// ------------------------------ 无源元件加盖 ------------------------------

// StampResistor 为电阻添加加盖
func (m *MNA) StampResistor(n1, n2 NodeID, r float64) {
	g := 1 / r
	if !maths.IsFinite(g) {
		m.setErr(types.NewStopError(types.ErrNumeric,
			fmt.Sprintf("%s %v %v", types.MsgBadResistance, r, g), types.NoElement))
		return
	}
	m.StampConductance(n1, n2, g)
}

// StampConductance 为电导添加加盖
func (m *MNA) StampConductance(n1, n2 NodeID, g float64) {
	m.StampMatrix(n1, n1, g)
	m.StampMatrix(n2, n2, g)
	m.StampMatrix(n1, n2, -g)
	m.StampMatrix(n2, n1, -g)
}

// ------------------------------ 独立源加盖 ------------------------------

// StampCurrentSource 为独立电流源加盖
func (m *MNA) StampCurrentSource(n1, n2 NodeID, i float64) {
	m.StampRightSide(n1, -i)
	m.StampRightSide(n2, i)
}

// StampVoltageSource 为独立电压源加盖
func (m *MNA) StampVoltageSource(n1, n2 NodeID, vs VoltageID, v float64) {
	vn := m.VoltageSourceRow(vs)
	m.StampMatrix(vn, n1, -1)
	m.StampMatrix(vn, n2, 1)
	m.StampRightSide(vn, v)
	m.StampMatrix(n1, vn, 1)
	m.StampMatrix(n2, vn, -1)
}

// StampVoltageSourceChanges 为动态电压源加盖，电压值由 UpdateVoltageSource 提供
func (m *MNA) StampVoltageSourceChanges(n1, n2 NodeID, vs VoltageID) {
	vn := m.VoltageSourceRow(vs)
	m.StampMatrix(vn, n1, -1)
	m.StampMatrix(vn, n2, 1)
	m.StampRightSideChanges(vn)
	m.StampMatrix(n1, vn, 1)
	m.StampMatrix(n2, vn, -1)
}

// UpdateVoltageSource 更新电压源的电压值
func (m *MNA) UpdateVoltageSource(vs VoltageID, v float64) {
	m.StampRightSide(m.VoltageSourceRow(vs), v)
}

// ------------------------------ 受控源加盖 ------------------------------

// StampVCCurrentSource 电压控制电流源
func (m *MNA) StampVCCurrentSource(cn1, cn2, vn1, vn2 NodeID, g float64) {
	m.StampMatrix(cn1, vn1, g)
	m.StampMatrix(cn2, vn2, g)
	m.StampMatrix(cn1, vn2, -g)
	m.StampMatrix(cn2, vn1, -g)
}

// StampCCCS 电流控制电流源
func (m *MNA) StampCCCS(n1, n2 NodeID, vs VoltageID, gain float64) {
	vn := m.VoltageSourceRow(vs)
	m.StampMatrix(n1, vn, gain)
	m.StampMatrix(n2, vn, -gain)
}

// StampVCVS 电压控制电压源
func (m *MNA) StampVCVS(n1, n2, cn1, cn2 NodeID, vs VoltageID, gain float64) {
	m.StampVoltageSource(n1, n2, vs, 0)
	vn := m.VoltageSourceRow(vs)
	m.StampMatrix(vn, cn1, -gain)
	m.StampMatrix(vn, cn2, gain)
}
