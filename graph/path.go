package graph

import (
	"math"

	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// PathType 路径搜索类型，决定哪些元件可以作为通路
type PathType int

const (
	VoltagePath   PathType = iota // 只经过导线、电压源和地
	InductorPath                  // 不经过电流源，电感只能经过电流相同的电感
	CapacitorPath                 // 只经过导线、电容和电压源
	ShortPath                     // 只经过导线
)

func (t PathType) String() string {
	switch t {
	case VoltagePath:
		return "voltage"
	case InductorPath:
		return "inductor"
	case CapacitorPath:
		return "capacitor"
	case ShortPath:
		return "short"
	}
	return "unknown"
}

// Allow 元件能否作为该类型的通路
func (t PathType) Allow(d element.Device) bool {
	kind := d.Kind()
	switch t {
	case VoltagePath:
		return d.IsWire() || kind.Has(element.KindVoltage|element.KindGround)
	case InductorPath:
		return !kind.Has(element.KindCurrent)
	case CapacitorPath:
		return d.IsWire() || kind.Has(element.KindCapacitor|element.KindVoltage)
	case ShortPath:
		return d.IsWire()
	}
	return false
}

// inductorTolerance 电感电流相同的判断阈值
const inductorTolerance = 1e-10

// PathInfo 从起始元件一端出发寻找回到另一端的通路
type PathInfo struct {
	typ     PathType
	dest    mna.NodeID
	first   types.ElementID
	devices []element.Device
	visited []bool
}

// NewPathInfo 创建路径搜索
// 参数first: 起始元件，搜索时跳过
// 参数dest: 目标节点
func (g *Graph) NewPathInfo(typ PathType, first types.ElementID, dest mna.NodeID) *PathInfo {
	return &PathInfo{
		typ:     typ,
		dest:    dest,
		first:   first,
		devices: g.Devices,
		visited: make([]bool, len(g.Nodes)),
	}
}

// FindPath 深度优先搜索从 n1 到目标节点的通路，已访问的节点不再访问
func (p *PathInfo) FindPath(n1 mna.NodeID) bool {
	if n1 == p.dest {
		return true
	}
	if p.visited[n1] {
		return false
	}
	p.visited[n1] = true
	for i, ce := range p.devices {
		if ce == nil || types.ElementID(i) == p.first || !p.typ.Allow(ce) {
			continue
		}
		cnt := ce.ConnectionNodeCount()
		// 路径可以经过地
		if n1 == mna.Gnd {
			for j := range cnt {
				if ce.HasGroundConnection(j) && p.FindPath(ce.GetConnectionNode(j)) {
					return true
				}
			}
		}
		nodeA := -1
		for j := range cnt {
			if ce.GetConnectionNode(j) == n1 {
				nodeA = j
				break
			}
		}
		if nodeA < 0 {
			continue
		}
		if ce.HasGroundConnection(nodeA) && p.FindPath(mna.Gnd) {
			return true
		}
		if p.typ == InductorPath && ce.Kind().Has(element.KindInductor) {
			c := ce.GetCurrent()
			if nodeA == 0 {
				c = -c
			}
			if math.Abs(c-p.devices[p.first].GetCurrent()) > inductorTolerance {
				continue
			}
		}
		for nodeB := range cnt {
			if nodeA == nodeB {
				continue
			}
			if ce.GetConnection(nodeA, nodeB) && p.FindPath(ce.GetConnectionNode(nodeB)) {
				return true
			}
		}
	}
	return false
}
