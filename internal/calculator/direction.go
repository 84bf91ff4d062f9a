package calculator

// Axis 转塔轴
type Axis string

const (
	Elevation Axis = "elevation"
	Windage   Axis = "windage"
)

// Direction 转塔调整方向，None 表示无需调整
type Direction string

const (
	None  Direction = ""
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// forPositionChange 位置增大：高低轴向上，风偏轴向右
func forPositionChange(axis Axis, delta int) Direction {
	switch {
	case delta == 0:
		return None
	case axis == Windage && delta > 0:
		return Right
	case axis == Windage:
		return Left
	case delta > 0:
		return Up
	default:
		return Down
	}
}

// forMiss 修正方向与弹着偏差相反：偏右向左调，偏低向上调。
// miss > 0 表示弹着点在瞄准点右侧（风偏）或上方（高低）。
func forMiss(axis Axis, miss float64) Direction {
	switch {
	case miss == 0:
		return None
	case axis == Windage && miss > 0:
		return Left
	case axis == Windage:
		return Right
	case miss > 0:
		return Down
	default:
		return Up
	}
}

// sign 方向对应的位置变化符号
func (d Direction) sign() int {
	switch d {
	case Up, Right:
		return 1
	case Down, Left:
		return -1
	default:
		return 0
	}
}

// String 显示用，None 显示为 none
func (d Direction) String() string {
	if d == None {
		return "none"
	}
	return string(d)
}
