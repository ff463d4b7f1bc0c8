package mna

// NodeID 定义了电路节点的唯一标识符，0 为地节点。
type NodeID int

// VoltageID 定义了电压源的唯一标识符，
// 用于在MNA方程中定位其对应的电流未知量。
type VoltageID int

// Gnd 表示电路的接地节点，其电位为零，不参与矩阵。
const Gnd NodeID = 0

// Stamper 定义了元件构建电路方程所需的加盖操作。
// 节点编号从1开始映射到矩阵行，地节点相关的操作将被忽略。
type Stamper interface {
	// StampMatrix 将 x 加到矩阵 (r,c) 元素上。
	// 矩阵简化后，若列 c 已被替换为常量，则贡献移到右侧向量。
	StampMatrix(r, c NodeID, x float64)

	// StampRightSide 将 x 加到右侧向量第 i 行，表示流入节点 i 的独立电流。
	StampRightSide(i NodeID, x float64)

	// StampRightSideChanges 标记第 i 行的右侧在 DoStep 中会变化。
	StampRightSideChanges(i NodeID)

	// StampNonLinear 标记第 i 行的系数在 DoStep 中会变化。
	StampNonLinear(i NodeID)

	// StampResistor 为电阻添加加盖，电导 1/r 为 NaN/Inf 时记录数值错误。
	StampResistor(n1, n2 NodeID, r float64)

	// StampConductance 直接以电导值 g 加盖。
	StampConductance(n1, n2 NodeID, g float64)

	// StampCurrentSource 为独立电流源加盖，电流 i 从 n1 经电流源流向 n2。
	StampCurrentSource(n1, n2 NodeID, i float64)

	// StampVoltageSource 为独立电压源加盖，建立约束 V(n2)-V(n1)=v。
	StampVoltageSource(n1, n2 NodeID, vs VoltageID, v float64)

	// StampVoltageSourceChanges 为电压值在 DoStep 中通过 UpdateVoltageSource 更新的电压源加盖。
	StampVoltageSourceChanges(n1, n2 NodeID, vs VoltageID)

	// UpdateVoltageSource 在 DoStep 中更新电压源的电压值。
	UpdateVoltageSource(vs VoltageID, v float64)

	// StampVCCurrentSource 电压控制电流源，cn1 到 cn2 的电流等于 g×(V(vn1)-V(vn2))。
	StampVCCurrentSource(cn1, cn2, vn1, vn2 NodeID, g float64)

	// StampCCCS 电流控制电流源，n1 到 n2 的电流等于 gain×I(vs)。
	StampCCCS(n1, n2 NodeID, vs VoltageID, gain float64)

	// StampVCVS 电压控制电压源，建立约束 V(n2)-V(n1)=gain×(V(cn1)-V(cn2))。
	StampVCVS(n1, n2, cn1, cn2 NodeID, vs VoltageID, gain float64)

	// VoltageSourceRow 电压源约束方程所在的行，用于直接加盖该行系数。
	VoltageSourceRow(vs VoltageID) NodeID
}
