package kernel

import "math"

// Matrix2 is a dense row-major 2x2 unitary: [u00 u01; u10 u11].
type Matrix2 [4]complex128

// Matrix4 is a dense row-major 4x4 unitary over the canonical basis
// order (q1=0,q2=0), (q1=0,q2=1), (q1=1,q2=0), (q1=1,q2=1).
type Matrix4 [16]complex128

func dagger2(u Matrix2) Matrix2 {
	return Matrix2{
		cmplx(u[0]), cmplx(u[2]),
		cmplx(u[1]), cmplx(u[3]),
	}
}

func cmplx(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

func dagger4(u Matrix4) Matrix4 {
	var out Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[j*4+i] = cmplx(u[i*4+j])
		}
	}
	return out
}

// HadamardMatrix is the fixed Hadamard gate.
func HadamardMatrix() Matrix2 {
	s := 1 / math.Sqrt2
	return Matrix2{
		complex(s, 0), complex(s, 0),
		complex(s, 0), complex(-s, 0),
	}
}

// XMatrix is the Pauli X gate.
func XMatrix() Matrix2 {
	return Matrix2{0, 1, 1, 0}
}

// YMatrix is the Pauli Y gate.
func YMatrix() Matrix2 {
	return Matrix2{0, complex(0, -1), complex(0, 1), 0}
}

// ZMatrix is the Pauli Z gate.
func ZMatrix() Matrix2 {
	return Matrix2{1, 0, 0, -1}
}

// SXMatrix is sqrt(X).
func SXMatrix() Matrix2 {
	half := complex(0.5, 0.5)
	halfConj := complex(0.5, -0.5)
	return Matrix2{half, halfConj, halfConj, half}
}

// U22Matrix builds a Matrix2 from four arbitrary complex entries given
// row-major, matching the opcode's U22 parameter encoding
// (re0,im0,re1,im1,re2,im2,re3,im3).
func U22Matrix(params []float64) Matrix2 {
	return Matrix2{
		complex(params[0], params[1]),
		complex(params[2], params[3]),
		complex(params[4], params[5]),
		complex(params[6], params[7]),
	}
}

// RXMatrix is the rotation about X by theta.
func RXMatrix(theta float64) Matrix2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return Matrix2{c, s, s, c}
}

// RYMatrix is the rotation about Y by theta.
func RYMatrix(theta float64) Matrix2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Matrix2{c, -s, s, c}
}

// RZMatrix is the rotation about Z by theta.
func RZMatrix(theta float64) Matrix2 {
	return Matrix2{
		complex(math.Cos(-theta/2), math.Sin(-theta/2)), 0,
		0, complex(math.Cos(theta/2), math.Sin(theta/2)),
	}
}

// RPhi90Matrix is a pi/2 rotation about the axis cos(phi)X + sin(phi)Y.
func RPhi90Matrix(phi float64) Matrix2 {
	return rphiMatrix(phi, math.Pi/2)
}

// RPhi180Matrix is a pi rotation about the axis cos(phi)X + sin(phi)Y.
func RPhi180Matrix(phi float64) Matrix2 {
	return rphiMatrix(phi, math.Pi)
}

// RPhiMatrix is a theta rotation about the axis cos(phi)X + sin(phi)Y.
func RPhiMatrix(phi, theta float64) Matrix2 {
	return rphiMatrix(phi, theta)
}

func rphiMatrix(phi, theta float64) Matrix2 {
	c := complex(math.Cos(theta/2), 0)
	s := math.Sin(theta / 2)
	nx, ny := math.Cos(phi), math.Sin(phi)
	off := complex(0, -1) * complex(s*nx, 0)
	offConjTerm := complex(-s*ny, 0)
	return Matrix2{
		c, off + offConjTerm,
		off - offConjTerm, c,
	}
}

// CZMatrix is the controlled-Z gate over the canonical 2-qubit basis.
func CZMatrix() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, -1,
	}
}

// CNOTMatrix is the controlled-X gate: qn1 is control, qn2 is target.
func CNOTMatrix() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	}
}

// SWAPMatrix exchanges the two qubits' states.
func SWAPMatrix() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	}
}

// ISwapMatrix is the iSWAP gate.
func ISwapMatrix() Matrix4 {
	i := complex(0, 1)
	return Matrix4{
		1, 0, 0, 0,
		0, 0, i, 0,
		0, i, 0, 0,
		0, 0, 0, 1,
	}
}

// XYMatrix is the parametric XY(theta) gate.
func XYMatrix(theta float64) Matrix4 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, math.Sin(theta/2))
	return Matrix4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}
