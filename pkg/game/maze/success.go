package maze

// IncreaseAttempted counts a hero entering the maze
func (m *Maze) IncreaseAttempted() {
	m.attempted++
}

// DecreaseAttempted takes back an attempt, e.g. when a hero disconnects
// before the level concluded
func (m *Maze) DecreaseAttempted() {
	if m.attempted > 0 {
		m.attempted--
	}
}

// IncreasePassed counts a hero reaching the exit
func (m *Maze) IncreasePassed() {
	m.passed++
}

// DecreasePassed takes back a pass
func (m *Maze) DecreasePassed() {
	if m.passed > 0 {
		m.passed--
	}
}

// Attempts returns the (passed, attempted) counters
func (m *Maze) Attempts() (passed, attempted int) {
	return m.passed, m.attempted
}

// SuccessRate returns passed/attempted. With no attempts the result is NaN;
// callers check Attempts first.
func (m *Maze) SuccessRate() float64 {
	return float64(m.passed) / float64(m.attempted)
}
