package world

// Line returns the cells of the straight line from one position to another,
// both ends included, ordered starting at from.
//
// Vertical and horizontal lines are walked directly. Anything else uses
// Bresenham over the canonical endpoint order (shallow axis transposed, left
// to right), then reversed when needed, so Line(a, b) and Line(b, a) cover
// the same cells.
func Line(from, to Position) []Position {
	if from.X == to.X {
		return straight(from.Y, to.Y, func(i int) Position { return Position{X: from.X, Y: i} })
	}
	if from.Y == to.Y {
		return straight(from.X, to.X, func(i int) Position { return Position{X: i, Y: from.Y} })
	}

	line := bresenham(from, to)
	if line[0] != from {
		for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
			line[i], line[j] = line[j], line[i]
		}
	}
	return line
}

func straight(a, b int, at func(int) Position) []Position {
	step := 1
	if b < a {
		step = -1
	}
	line := make([]Position, 0, abs(b-a)+1)
	for i := a; ; i += step {
		line = append(line, at(i))
		if i == b {
			break
		}
	}
	return line
}

func bresenham(from, to Position) []Position {
	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y

	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	deltaX := x1 - x0
	deltaY := abs(y1 - y0)
	yStep := 1
	if y0 > y1 {
		yStep = -1
	}

	line := make([]Position, 0, deltaX+1)
	errAcc := 0
	y := y0
	for x := x0; x <= x1; x++ {
		if steep {
			line = append(line, Position{X: y, Y: x})
		} else {
			line = append(line, Position{X: x, Y: y})
		}
		errAcc += deltaY
		if 2*errAcc >= deltaX {
			y += yStep
			errAcc -= deltaX
		}
	}
	return line
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
