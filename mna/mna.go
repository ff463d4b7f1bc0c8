package mna

import (
	"fmt"
	"strings"

	"circuitsim/maths"
	"circuitsim/types"

	"gonum.org/v1/gonum/mat"
)

// RowInfo 矩阵行的简化信息
type RowInfo struct {
	IsConst      bool    // 该列未知量为常量
	RightChanges bool    // 右侧在迭代中变化
	LeftChanges  bool    // 系数在迭代中变化
	DropRow      bool    // 该行已从矩阵中移除
	MapCol       int     // 简化后对应的列，常量为 -1
	MapRow       int     // 简化后对应的行，移除为 -1
	Value        float64 // 常量值
}

// MNA 求解上下文，持有一次电路分析的全部矩阵数据。
// 拓扑变化时整体重建，不做增量更新。
type MNA struct {
	NodeCount          int          // 节点数量（含地节点）
	VoltageSourceCount int          // 电压源数量
	Matrix             *maths.Dense // 当前矩阵
	RightSide          []float64    // 当前右侧向量
	RowInfo            []RowInfo    // 完整矩阵每行的简化信息

	fullSize      int          // 简化前矩阵维度
	needsMap      bool         // 是否已简化，加盖需要映射
	origMatrix    *maths.Dense // 简化后的线性基准矩阵
	origRightSide []float64    // 简化后的线性基准右侧
	scratch       []float64    // 求解结果暂存
	lu            *maths.LU    // LU 分解器
	err           error        // 加盖过程中的第一个错误
}

// NewMNA 创建求解上下文。
//
//	nodeCount: 节点数量（含地节点）。
//	vsCount: 电压源数量。
//	nudge: LU 分解零主元替换值。
func NewMNA(nodeCount, vsCount int, nudge float64) *MNA {
	n := nodeCount - 1 + vsCount
	m := &MNA{
		NodeCount:          nodeCount,
		VoltageSourceCount: vsCount,
		Matrix:             maths.NewDense(n),
		RightSide:          make([]float64, n),
		RowInfo:            make([]RowInfo, n),
		fullSize:           n,
		scratch:            make([]float64, n),
		lu:                 maths.NewLU(nudge),
	}
	for i := range m.RowInfo {
		m.RowInfo[i].MapCol = i
		m.RowInfo[i].MapRow = i
	}
	return m
}

// ------------------------------ 系统信息查询 ------------------------------

// Size 当前（简化后）矩阵维度
func (m *MNA) Size() int { return m.Matrix.Size() }

// FullSize 简化前矩阵维度
func (m *MNA) FullSize() int { return m.fullSize }

// Err 返回加盖过程中记录的第一个错误
func (m *MNA) Err() error { return m.err }

// Nudged 最近一次分解中被替换的零主元数量
func (m *MNA) Nudged() int { return m.lu.Nudged }

// VoltageSourceRow 电压源在完整矩阵中对应的节点编号
func (m *MNA) VoltageSourceRow(vs VoltageID) NodeID {
	return NodeID(m.NodeCount + int(vs))
}

func (m *MNA) setErr(err error) {
	if m.err == nil {
		m.err = err
	}
}

// ------------------------------ 基准恢复与检查 ------------------------------

// Restore 将矩阵和右侧恢复为线性基准
func (m *MNA) Restore() {
	if m.origMatrix == nil {
		return
	}
	m.Matrix.CopyFrom(m.origMatrix)
	copy(m.RightSide, m.origRightSide)
}

// CheckFinite 检查矩阵和右侧中是否存在 NaN/Inf
func (m *MNA) CheckFinite() error {
	if r, c, ok := m.Matrix.FindNonFinite(); ok {
		return types.NewStopError(types.ErrNumeric,
			fmt.Sprintf("%s: Matrix[%d,%d]", types.MsgNaNMatrix, r, c), types.NoElement)
	}
	if !maths.AllFinite(m.RightSide) {
		return types.NewStopError(types.ErrNumeric, types.MsgNaNMatrix, types.NoElement)
	}
	return nil
}

// String 返回矩阵和右侧向量的调试输出
func (m *MNA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "矩阵维度: %d (简化前 %d)\n", m.Size(), m.fullSize)
	if m.Size() > 0 {
		fmt.Fprintf(&sb, "A = %v\n", mat.Formatted(m.Matrix, mat.Prefix("    "), mat.Squeeze()))
		fmt.Fprintf(&sb, "Z = %v\n", mat.Formatted(mat.NewVecDense(len(m.RightSide), append([]float64(nil), m.RightSide...)).T(), mat.Squeeze()))
	}
	for i, ri := range m.RowInfo {
		if ri.IsConst {
			fmt.Fprintf(&sb, "行 %d: 常量 %g\n", i, ri.Value)
		}
	}
	return sb.String()
}
