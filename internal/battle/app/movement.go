package app

import "time"

// 每格基础行军耗时，被兵种速度整除后得到实际耗时。
const secondsPerTile = 30

// travelTime 按棋盘距离（横纵取大）和最慢兵种速度折算行军耗时。
func travelTime(x1, y1, x2, y2, slowestSpeed int) time.Duration {
	dx := x2 - x1
	if dx < 0 {
		dx = -dx
	}
	dy := y2 - y1
	if dy < 0 {
		dy = -dy
	}
	distance := dx
	if dy > distance {
		distance = dy
	}
	if slowestSpeed <= 0 {
		slowestSpeed = 1
	}
	seconds := distance * secondsPerTile / slowestSpeed
	return time.Duration(seconds) * time.Second
}
