package warp

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Vec is a point in continuous image space
type Vec struct {
	X, Y float64
}

// Homography returns the projective transform mapping each from[i] onto
// to[i]. The matrix is row-major with the bottom-right element fixed to 1.
func Homography(from, to [4]Vec) (f64.Mat3, error) {
	// Two equations per correspondence in the unknowns a..h of
	//   u = (a x + b y + c) / (g x + h y + 1)
	//   v = (d x + e y + f) / (g x + h y + 1)
	var m [8][9]float64
	for i := 0; i < 4; i++ {
		x, y := from[i].X, from[i].Y
		u, v := to[i].X, to[i].Y
		m[2*i] = [9]float64{x, y, 1, 0, 0, 0, -x * u, -y * u, u}
		m[2*i+1] = [9]float64{0, 0, 0, x, y, 1, -x * v, -y * v, v}
	}

	sol, err := solve(m)
	if err != nil {
		return f64.Mat3{}, err
	}
	return f64.Mat3{
		sol[0], sol[1], sol[2],
		sol[3], sol[4], sol[5],
		sol[6], sol[7], 1,
	}, nil
}

// Transform applies a homography to a point
func Transform(m f64.Mat3, x, y float64) (float64, float64) {
	w := m[6]*x + m[7]*y + m[8]
	if w == 0 {
		return math.Inf(1), math.Inf(1)
	}
	return (m[0]*x + m[1]*y + m[2]) / w, (m[3]*x + m[4]*y + m[5]) / w
}

// solve runs Gaussian elimination with partial pivoting on an augmented
// 8x9 system
func solve(m [8][9]float64) ([8]float64, error) {
	const eps = 1e-10
	var x [8]float64

	for col := 0; col < 8; col++ {
		pivot := col
		for r := col + 1; r < 8; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < eps {
			return x, ErrDegenerateQuad
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := col + 1; r < 8; r++ {
			f := m[r][col] / m[col][col]
			for c := col; c < 9; c++ {
				m[r][c] -= f * m[col][c]
			}
		}
	}

	for r := 7; r >= 0; r-- {
		s := m[r][8]
		for c := r + 1; c < 8; c++ {
			s -= m[r][c] * x[c]
		}
		x[r] = s / m[r][r]
	}
	return x, nil
}
