package base

import (
	"circuitsim/element"
	"circuitsim/types"
)

// GroundConfig 定义元件
var GroundConfig = element.AddElement(&element.Config{
	Name: "g",
	Pin:  []string{"gnd"},
}, func(posts []types.Point, values []float64) element.Device {
	return NewGround(posts)
})

// Ground 接地，引脚所在节点即为节点0
type Ground struct{ *element.Base }

// NewGround 创建接地
func NewGround(posts []types.Point) *Ground {
	return &Ground{element.NewBase(posts, 0, 0)}
}

func (g *Ground) Kind() element.Kind             { return element.KindGround }
func (g *Ground) HasGroundConnection(n int) bool { return true }
