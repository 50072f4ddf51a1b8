package r3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Mat4 is a 4x4 matrix stored row by row: element (row, col) lives at row*4+col.
// mgl32.Mat4 keeps the same matrix column by column, use FromMgl / Mgl to cross over.
type Mat4 [16]float32

func Ident4() Mat4 {
	return FromMgl(mgl32.Ident4())
}

// Mul returns a*b. Neither operand is touched.
func Mul(a, b Mat4) Mat4 {
	return FromMgl(a.Mgl().Mul4(b.Mgl()))
}

func (m Mat4) Mul4(b Mat4) Mat4 {
	return Mul(m, b)
}

func (m Mat4) At(row, col int) float32 {
	return m[row*4+col]
}

func (m *Mat4) Set(row, col int, v float32) {
	m[row*4+col] = v
}

func (m Mat4) Transpose() Mat4 {
	return Mat4(mgl32.Mat4(m).Transpose())
}

func FromMgl(m mgl32.Mat4) Mat4 {
	return Mat4(m.Transpose())
}

func (m Mat4) Mgl() mgl32.Mat4 {
	return mgl32.Mat4(m).Transpose()
}

// ColumnMajor returns components in the order expected by GL uniforms and glTF.
func (m Mat4) ColumnMajor() [16]float32 {
	return [16]float32(m.Mgl())
}

func Translate3D(x, y, z float32) Mat4 {
	return FromMgl(mgl32.Translate3D(x, y, z))
}

func Scale3D(x, y, z float32) Mat4 {
	return FromMgl(mgl32.Scale3D(x, y, z))
}

func (m Mat4) ApproxEqual(b Mat4) bool {
	return m.Mgl().ApproxEqual(b.Mgl())
}

func (m Mat4) ApproxEqualThreshold(b Mat4, eps float32) bool {
	return m.Mgl().ApproxEqualThreshold(b.Mgl(), eps)
}

// Rows groups components by row, handy for JSON and YAML output.
func (m Mat4) Rows() [4][4]float32 {
	var rows [4][4]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}

func (m Mat4) String() string {
	return fmt.Sprintf("[%v %v %v %v\n %v %v %v %v\n %v %v %v %v\n %v %v %v %v]",
		m[0], m[1], m[2], m[3],
		m[4], m[5], m[6], m[7],
		m[8], m[9], m[10], m[11],
		m[12], m[13], m[14], m[15])
}
