// Package debugdump writes a small on-disk debug matrix format: a
// five-int32 header {code, rows, cols, sizeof(T), 0} followed by
// rows*cols elements in column-major layout. Used only by the
// compression engine's validation-dump path.
package debugdump

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/aurelienfalco/hrank/dense"
	"github.com/aurelienfalco/hrank/scalar"
)

// elementSize returns sizeof(T) in bytes, for the header's fourth field.
func elementSize[T scalar.Number]() int32 {
	switch scalar.KindOf[T]() {
	case scalar.KindF32:
		return 4
	case scalar.KindF64, scalar.KindC64:
		return 8
	case scalar.KindC128:
		return 16
	default:
		panic("debugdump: unsupported scalar kind")
	}
}

// Write serializes m to w in the header-plus-column-major-payload format.
// code is written to the header as given; the validation dump sink in
// config passes the scalar.Kind of T. This package does not interpret it.
func Write[T scalar.Number](w io.Writer, code int32, m *dense.Matrix[T]) error {
	header := [5]int32{code, int32(m.Rows()), int32(m.Cols()), elementSize[T](), 0}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	for j := 0; j < m.Cols(); j++ {
		for i := 0; i < m.Rows(); i++ {
			if err := writeElement(w, m.At(i, j)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteFile is Write against a freshly created file at path.
func WriteFile[T scalar.Number](path string, code int32, m *dense.Matrix[T]) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, code, m)
}

// Read parses the header-plus-column-major-payload format Write produces,
// returning the dump code and the reconstructed matrix. It does not check
// the header's element-size field against sizeof(T); a mismatched T
// produces a matrix read back with garbage values rather than an error.
func Read[T scalar.Number](r io.Reader) (code int32, m *dense.Matrix[T], err error) {
	var header [5]int32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return 0, nil, err
	}
	rows, cols := int(header[1]), int(header[2])
	m = dense.NewMatrix[T](rows, cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			v, err := readElement[T](r)
			if err != nil {
				return 0, nil, err
			}
			m.Set(i, j, v)
		}
	}
	return header[0], m, nil
}

// ReadFile is Read against the file at path.
func ReadFile[T scalar.Number](path string) (code int32, m *dense.Matrix[T], err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()
	return Read[T](f)
}

func writeElement[T scalar.Number](w io.Writer, v T) error {
	switch x := any(v).(type) {
	case float32:
		return binary.Write(w, binary.LittleEndian, x)
	case float64:
		return binary.Write(w, binary.LittleEndian, x)
	case complex64:
		if err := binary.Write(w, binary.LittleEndian, real(x)); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, imag(x))
	case complex128:
		if err := binary.Write(w, binary.LittleEndian, real(x)); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, imag(x))
	default:
		panic("debugdump: unsupported scalar kind")
	}
}

func readElement[T scalar.Number](r io.Reader) (T, error) {
	var zero T
	switch any(zero).(type) {
	case float32:
		var v float32
		err := binary.Read(r, binary.LittleEndian, &v)
		return any(v).(T), err
	case float64:
		var v float64
		err := binary.Read(r, binary.LittleEndian, &v)
		return any(v).(T), err
	case complex64:
		var re, im float32
		if err := binary.Read(r, binary.LittleEndian, &re); err != nil {
			return zero, err
		}
		if err := binary.Read(r, binary.LittleEndian, &im); err != nil {
			return zero, err
		}
		return any(complex(re, im)).(T), nil
	case complex128:
		var re, im float64
		if err := binary.Read(r, binary.LittleEndian, &re); err != nil {
			return zero, err
		}
		if err := binary.Read(r, binary.LittleEndian, &im); err != nil {
			return zero, err
		}
		return any(complex(re, im)).(T), nil
	default:
		panic("debugdump: unsupported scalar kind")
	}
}
