package debugdump

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelienfalco/hrank/dense"
)

func decodeHeader(t *testing.T, r *bytes.Reader) [5]int32 {
	var header [5]int32
	require.NoError(t, binary.Read(r, binary.LittleEndian, &header))
	return header
}

func TestWriteFloat64HeaderAndPayload(t *testing.T) {
	m := dense.NewMatrix[float64](2, 3)
	for j := 0; j < 3; j++ {
		for i := 0; i < 2; i++ {
			m.Set(i, j, float64(10*j+i))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, 7, m))

	r := bytes.NewReader(buf.Bytes())
	header := decodeHeader(t, r)
	assert.Equal(t, [5]int32{7, 2, 3, 8, 0}, header)

	for j := 0; j < 3; j++ {
		for i := 0; i < 2; i++ {
			var v float64
			require.NoError(t, binary.Read(r, binary.LittleEndian, &v))
			assert.Equal(t, float64(10*j+i), v)
		}
	}
	assert.Equal(t, 0, r.Len())
}

func TestWriteComplex128HeaderAndPayload(t *testing.T) {
	m := dense.NewMatrix[complex128](2, 2)
	m.Set(0, 0, complex(1, 2))
	m.Set(1, 0, complex(3, -4))
	m.Set(0, 1, complex(-5, 6))
	m.Set(1, 1, complex(0, 0))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, 3, m))

	r := bytes.NewReader(buf.Bytes())
	header := decodeHeader(t, r)
	assert.Equal(t, [5]int32{3, 2, 2, 16, 0}, header)

	want := []complex128{complex(1, 2), complex(3, -4), complex(-5, 6), complex(0, 0)}
	for _, wv := range want {
		var re, im float64
		require.NoError(t, binary.Read(r, binary.LittleEndian, &re))
		require.NoError(t, binary.Read(r, binary.LittleEndian, &im))
		assert.Equal(t, real(wv), re)
		assert.Equal(t, imag(wv), im)
	}
	assert.Equal(t, 0, r.Len())
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	m := dense.NewMatrix[complex64](2, 3)
	for j := 0; j < 3; j++ {
		for i := 0; i < 2; i++ {
			m.Set(i, j, complex(float32(i), float32(j)))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, 42, m))

	code, got, err := Read[complex64](&buf)
	require.NoError(t, err)
	assert.Equal(t, int32(42), code)
	require.Equal(t, m.Rows(), got.Rows())
	require.Equal(t, m.Cols(), got.Cols())
	for j := 0; j < 3; j++ {
		for i := 0; i < 2; i++ {
			assert.Equal(t, m.At(i, j), got.At(i, j))
		}
	}
}

func TestElementSizeByKind(t *testing.T) {
	assert.Equal(t, int32(4), elementSize[float32]())
	assert.Equal(t, int32(8), elementSize[float64]())
	assert.Equal(t, int32(8), elementSize[complex64]())
	assert.Equal(t, int32(16), elementSize[complex128]())
}
