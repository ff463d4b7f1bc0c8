package types

import "fmt"

// Point 引脚坐标，节点编号分配之前作为节点的身份标识
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Pt 创建坐标
func Pt(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }
