package base

import (
	"math"
	"testing"

	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// fakeTime 测试用仿真时间
type fakeTime struct {
	time      float64
	sub       int
	converged bool
	config    *types.Config
}

func newFakeTime() *fakeTime { return &fakeTime{config: types.DefaultConfig()} }

func (t *fakeTime) Time() float64         { return t.time }
func (t *fakeTime) TimeStep() float64     { return t.config.TimeStep }
func (t *fakeTime) SubIterations() int    { return t.sub }
func (t *fakeTime) NotConverged()         { t.converged = false }
func (t *fakeTime) Config() *types.Config { return t.config }

// bench 手工编号的小电路
// 每个元件按顺序给出所有连接节点编号，0 为地。
type bench struct {
	ele   []element.Device
	nodes int
	vs    []element.Device
	m     *mna.MNA
	x     []float64
	t     *fakeTime
}

func abs(x float64) float64 { return math.Abs(x) }

// newBench 分配节点和电压源，加盖线性部分并简化矩阵
func newBench(t *testing.T, ft *fakeTime, nodes int, ele []element.Device, conn [][]mna.NodeID) *bench {
	t.Helper()
	b := &bench{ele: ele, nodes: nodes, t: ft}
	for i, d := range ele {
		for j, n := range conn[i] {
			d.SetNode(j, n)
		}
		for j := range d.VoltageSourceCount() {
			d.SetVoltageSource(j, mna.VoltageID(len(b.vs)))
			b.vs = append(b.vs, d)
		}
	}
	b.m = mna.NewMNA(nodes, len(b.vs), types.DefaultPivotNudge)
	element.CallMark(element.MarkStamp, b.m, ft, ele)
	if err := b.m.Simplify(); err != nil {
		t.Fatalf("矩阵简化失败 %s", err)
	}
	b.x = make([]float64, b.m.FullSize())
	return b
}

// step 推进一个时间步
func (b *bench) step(t *testing.T) {
	t.Helper()
	element.CallMark(element.MarkStartIteration, b.m, b.t, b.ele)
	for b.t.sub = 0; b.t.sub < b.t.config.SubIterMax; b.t.sub++ {
		b.t.converged = true
		b.m.Restore()
		element.CallMark(element.MarkDoStep, b.m, b.t, b.ele)
		if b.t.converged && b.t.sub > 0 {
			break
		}
		if err := b.m.Solve(b.x); err != nil {
			t.Fatalf("求解失败 %s", err)
		}
		b.apply()
		element.CallMark(element.MarkCalculateCurrent, b.m, b.t, b.ele)
	}
	if b.t.sub == b.t.config.SubIterMax {
		t.Fatalf("子迭代不收敛")
	}
	element.CallMark(element.MarkStepFinished, b.m, b.t, b.ele)
	b.t.time += b.t.TimeStep()
}

func (b *bench) apply() {
	for _, d := range b.ele {
		for j := range d.ConnectionNodeCount() {
			d.SetNodeVoltage(j, b.voltage(d.GetConnectionNode(j)))
		}
	}
	for i, d := range b.vs {
		d.SetCurrent(mna.VoltageID(i), b.x[b.nodes-1+i])
	}
}

// voltage 节点电压
func (b *bench) voltage(n mna.NodeID) float64 {
	if n == mna.Gnd {
		return 0
	}
	return b.x[n-1]
}

// ptsOf n 个互不相同的引脚坐标
func ptsOf(n int) []types.Point {
	out := make([]types.Point, n)
	for i := range out {
		out[i] = types.Pt(i, 0)
	}
	return out
}
