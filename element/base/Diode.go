package base

import (
	"math"

	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// DiodeConfig 定义元件
var DiodeConfig = element.AddElement(&element.Config{
	Name:      "d",
	Pin:       []string{"anode", "cathode"},
	ValueName: []string{"is", "n", "vz", "rs"},
	ValueInit: []float64{
		1.7143528192808883e-7, // 反向饱和电流 Is (A)
		2,                     // 发射系数 N
		0,                     // 齐纳击穿电压 Vz (V)，0表示无齐纳击穿
		0,                     // 串联电阻 Rs (Ω)
	},
}, func(posts []types.Point, values []float64) element.Device {
	return NewDiode(posts, DiodeModel{Is: values[0], N: values[1], Vz: values[2], Rs: values[3]})
})

// 热电压 Vt = kT/q，27°C
const (
	vt     = 0.025865
	vzcoef = 1 / vt
)

// DiodeModel 二极管模型参数
type DiodeModel struct {
	Is float64 // 反向饱和电流 (A)
	N  float64 // 发射系数
	Vz float64 // 齐纳击穿电压 (V)
	Rs float64 // 串联电阻 (Ω)
}

// junction PN结模型，二极管与晶体管共用的限幅逻辑
type junction struct {
	leakage float64
	vscale  float64 // 电流增大e倍所需的电压
	vdcoef  float64
	vcrit   float64 // 正向临界电压
	vzcrit  float64 // 齐纳临界电压（平移后）
	zoffset float64 // 齐纳指数曲线的偏移
}

func newJunction(model DiodeModel) junction {
	j := junction{leakage: model.Is, vscale: model.N * vt}
	j.vdcoef = 1 / j.vscale
	// 电流为 vscale/√2 时的电压
	j.vcrit = j.vscale * math.Log(j.vscale/(math.Sqrt2*j.leakage))
	j.vzcrit = vt * math.Log(vt/(math.Sqrt2*j.leakage))
	if model.Vz != 0 {
		// 在击穿电压处电流为 5mA
		j.zoffset = model.Vz - math.Log(-(1+(-0.005)/j.leakage))/vzcoef
	}
	return j
}

// limitStep 限制每次迭代的电压变化，电流变化超过e²倍时按线性化模型回退
func (j *junction) limitStep(vnew, vold float64, t mna.Time) float64 {
	if vnew > j.vcrit && math.Abs(vnew-vold) > j.vscale+j.vscale {
		if vold > 0 {
			if arg := 1 + (vnew-vold)/j.vscale; arg > 0 {
				vnew = vold + j.vscale*math.Log(arg)
			} else {
				vnew = j.vcrit
			}
		} else {
			vnew = j.vscale * math.Log(vnew/j.vscale)
		}
		t.NotConverged()
	} else if vnew < 0 && j.zoffset != 0 {
		vnew = -vnew - j.zoffset
		vold = -vold - j.zoffset
		if vnew > j.vzcrit && math.Abs(vnew-vold) > vt+vt {
			if vold > 0 {
				if arg := 1 + (vnew-vold)/vt; arg > 0 {
					vnew = vold + vt*math.Log(arg)
				} else {
					vnew = j.vzcrit
				}
			} else {
				vnew = vt * math.Log(vnew/vt)
			}
			t.NotConverged()
		}
		vnew = -(vnew + j.zoffset)
	}
	return vnew
}

// gmin PN结并联的最小电导，收敛困难时逐步增大
func gmin(leakage float64, t mna.Time, ramp float64) float64 {
	g := leakage * 0.01
	if t.SubIterations() > t.Config().GminStartIter {
		g = math.Exp(-9 * math.Ln10 * (1 - float64(t.SubIterations())/ramp))
		g = min(g, 0.1)
	}
	return g
}

// Diode 二极管，支持齐纳击穿和串联电阻
// 有串联电阻时使用一个内部节点：二极管接在引脚0与内部节点之间，电阻接在内部节点与引脚1之间。
type Diode struct {
	*element.Base
	Model DiodeModel

	junction
	lastVoltDiff float64
	endNode      int
}

// NewDiode 创建二极管
func NewDiode(posts []types.Point, model DiodeModel) *Diode {
	internal, end := 0, 1
	if model.Rs > 0 {
		internal, end = 1, 2
	}
	return &Diode{
		Base:     element.NewBase(posts, internal, 0),
		Model:    model,
		junction: newJunction(model),
		endNode:  end,
	}
}

func (d *Diode) Reset() {
	d.Base.Reset()
	d.lastVoltDiff = 0
}

func (d *Diode) Stamp(m mna.Stamper, t mna.Time) {
	if d.Model.Rs > 0 {
		m.StampResistor(d.Nodes[1], d.Nodes[2], d.Model.Rs)
	}
	m.StampNonLinear(d.Nodes[0])
	m.StampNonLinear(d.Nodes[d.endNode])
}

func (d *Diode) DoStep(m mna.Stamper, t mna.Time) {
	n0, n1 := d.Nodes[0], d.Nodes[d.endNode]
	voltdiff := d.Volts[0] - d.Volts[d.endNode]
	if math.Abs(voltdiff-d.lastVoltDiff) > t.Config().ConvergeDelta {
		t.NotConverged()
	}
	voltdiff = d.limitStep(voltdiff, d.lastVoltDiff, t)
	d.lastVoltDiff = voltdiff

	g := gmin(d.leakage, t, 3000)
	if voltdiff >= 0 || d.Model.Vz == 0 {
		eval := math.Exp(voltdiff * d.vdcoef)
		geq := d.vdcoef*d.leakage*eval + g
		nc := (eval-1)*d.leakage - geq*voltdiff
		m.StampConductance(n0, n1, geq)
		m.StampCurrentSource(n0, n1, nc)
		return
	}
	// 反向击穿用一条翻转平移的指数曲线近似
	ez := math.Exp((-voltdiff - d.zoffset) * vzcoef)
	ed := math.Exp(voltdiff * d.vdcoef)
	geq := d.leakage*(d.vdcoef*ed+vzcoef*ez) + g
	nc := d.leakage*(ed-ez-1) + geq*(-voltdiff)
	m.StampConductance(n0, n1, geq)
	m.StampCurrentSource(n0, n1, nc)
}

func (d *Diode) CalculateCurrent() {
	voltdiff := d.Volts[0] - d.Volts[d.endNode]
	if voltdiff >= 0 || d.Model.Vz == 0 {
		d.Current = d.leakage * (math.Exp(voltdiff*d.vdcoef) - 1)
		return
	}
	d.Current = d.leakage * (math.Exp(voltdiff*d.vdcoef) - math.Exp((-voltdiff-d.zoffset)*vzcoef) - 1)
}
