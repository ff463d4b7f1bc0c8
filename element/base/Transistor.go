package base

import (
	"fmt"
	"math"

	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// TransistorConfig 定义元件
var TransistorConfig = element.AddElement(&element.Config{
	Name:      "q",
	Pin:       []string{"b", "c", "e"},
	ValueName: []string{"beta", "pnp"},
	ValueInit: []float64{100, 0}, // 电流放大倍数100，NPN
}, func(posts []types.Point, values []float64) element.Device {
	return NewTransistor(posts, values[0], values[1] != 0)
})

// 晶体管引脚
const (
	tB = 0 // 基极
	tC = 1 // 集电极
	tE = 2 // 发射极
)

const (
	tLeakage    = 1e-13
	tRGain      = 0.5
	tMaxCurrent = 1e12
)

// Transistor 双极型晶体管（Ebers-Moll 模型）
type Transistor struct {
	*element.Base
	Beta float64
	PNP  bool

	fgain   float64
	vcrit   float64
	lastVbc float64
	lastVbe float64
	ic      float64
	ie      float64
	ib      float64
}

// NewTransistor 创建晶体管
func NewTransistor(posts []types.Point, beta float64, pnp bool) *Transistor {
	q := &Transistor{Base: element.NewBase(posts, 0, 0), PNP: pnp}
	q.SetBeta(beta)
	return q
}

// SetBeta 设置电流放大倍数
func (q *Transistor) SetBeta(beta float64) {
	q.Beta = beta
	q.fgain = beta / (beta + 1)
	q.vcrit = vt * math.Log(vt/(math.Sqrt2*tLeakage))
}

func (q *Transistor) sign() float64 {
	if q.PNP {
		return -1
	}
	return 1
}

func (q *Transistor) Reset() {
	q.Base.Reset()
	q.lastVbc, q.lastVbe = 0, 0
	q.ic, q.ie, q.ib = 0, 0, 0
}

func (q *Transistor) limitStep(vnew, vold float64, t mna.Time) float64 {
	if vnew > q.vcrit && math.Abs(vnew-vold) > vt+vt {
		if vold > 0 {
			if arg := 1 + (vnew-vold)/vt; arg > 0 {
				vnew = vold + vt*math.Log(arg)
			} else {
				vnew = q.vcrit
			}
		} else {
			vnew = vt * math.Log(vnew/vt)
		}
		t.NotConverged()
	}
	return vnew
}

func (q *Transistor) Stamp(m mna.Stamper, t mna.Time) {
	m.StampNonLinear(q.Nodes[tB])
	m.StampNonLinear(q.Nodes[tC])
	m.StampNonLinear(q.Nodes[tE])
}

func (q *Transistor) DoStep(m mna.Stamper, t mna.Time) {
	vbc := q.Volts[tB] - q.Volts[tC]
	vbe := q.Volts[tB] - q.Volts[tE]
	delta := t.Config().ConvergeDelta
	if math.Abs(vbc-q.lastVbc) > delta || math.Abs(vbe-q.lastVbe) > delta {
		t.NotConverged()
	}
	g := gmin(tLeakage, t, 300)

	pnp := q.sign()
	vbc = pnp * q.limitStep(pnp*vbc, pnp*q.lastVbc, t)
	vbe = pnp * q.limitStep(pnp*vbe, pnp*q.lastVbe, t)
	q.lastVbc, q.lastVbe = vbc, vbe

	pcoef := pnp / vt
	expbc := math.Exp(vbc * pcoef)
	expbe := math.Exp(vbe * pcoef)
	q.ie = pnp * tLeakage * (-(expbe-1)/q.fgain + (expbc - 1))
	q.ic = pnp * tLeakage * ((expbe - 1) - (expbc-1)/tRGain)
	q.ib = -(q.ie + q.ic)

	gee := -tLeakage / vt * expbe / q.fgain
	gec := tLeakage / vt * expbc
	gce := -gee * q.fgain
	gcc := -gec / tRGain
	// b-e、b-c 之间并联最小电导
	gcc -= g
	gee -= g

	nb, nc, ne := q.Nodes[tB], q.Nodes[tC], q.Nodes[tE]
	m.StampMatrix(nb, nb, -gee-gec-gce-gcc)
	m.StampMatrix(nb, nc, gec+gcc)
	m.StampMatrix(nb, ne, gee+gce)
	m.StampMatrix(nc, nb, gce+gcc)
	m.StampMatrix(nc, nc, -gcc)
	m.StampMatrix(nc, ne, -gce)
	m.StampMatrix(ne, nb, gee+gec)
	m.StampMatrix(ne, nc, -gec)
	m.StampMatrix(ne, ne, -gee)

	// 求解的是 v(k+1) 而非增量，右侧乘以 v(k)
	m.StampRightSide(nb, -q.ib-(gec+gcc)*vbc-(gee+gce)*vbe)
	m.StampRightSide(nc, -q.ic+gce*vbe+gcc*vbc)
	m.StampRightSide(ne, -q.ie+gee*vbe+gec*vbc)
}

// GetCurrent 集电极电流
func (q *Transistor) GetCurrent() float64 { return q.ic }

// Currents 基极、集电极、发射极电流
func (q *Transistor) Currents() (ib, ic, ie float64) { return q.ib, q.ic, q.ie }

func (q *Transistor) CurrentIntoNode(p int) float64 {
	switch p {
	case tB:
		return -q.ib
	case tC:
		return -q.ic
	default:
		return -q.ie
	}
}

// Failure 电流过大时停止仿真
func (q *Transistor) Failure() string {
	if math.Abs(q.ic) > tMaxCurrent || math.Abs(q.ib) > tMaxCurrent {
		return fmt.Sprintf("max current exceeded: ic=%g ib=%g", q.ic, q.ib)
	}
	return ""
}
