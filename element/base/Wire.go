package base

import (
	"circuitsim/element"
	"circuitsim/types"
)

// WireConfig 定义元件
var WireConfig = element.AddElement(&element.Config{
	Name: "w",
	Pin:  []string{"w1", "w2"},
}, func(posts []types.Point, values []float64) element.Device {
	return NewWire(posts)
})

// Wire 理想导线，两端合并为同一节点，不参与矩阵
// 电流由拓扑分析后的导线电流重建得到。
type Wire struct{ *element.Base }

// NewWire 创建导线
func NewWire(posts []types.Point) *Wire {
	return &Wire{element.NewBase(posts, 0, 0)}
}

func (w *Wire) Kind() element.Kind { return element.KindWire }
func (w *Wire) IsWire() bool       { return true }
