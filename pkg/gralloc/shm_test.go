package gralloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDesc() BufferDesc {
	return BufferDesc{
		Name:   "test buf",
		Width:  64,
		Height: 32,
		Format: FormatRGBA8888,
		Usage:  UsageHWRender,
	}
}

func TestShmAllocator_Allocate(t *testing.T) {
	alloc := NewShmAllocator()
	defer func() { require.NoError(t, alloc.Close()) }()

	buf, err := alloc.Allocate(testDesc())
	require.NoError(t, err)

	assert.NotZero(t, buf.ID)
	assert.Equal(t, uint32(64*4), buf.Stride)
	assert.Equal(t, 64*4*32, buf.Size)
	assert.Len(t, buf.Bytes(), buf.Size)
	assert.GreaterOrEqual(t, buf.FD(), 0)
	assert.Equal(t, 1, alloc.LiveCount())

	// mapped memory is writable
	buf.Bytes()[0] = 0xff
	buf.Bytes()[buf.Size-1] = 0xff
}

func TestShmAllocator_UniqueIDs(t *testing.T) {
	alloc := NewShmAllocator()
	defer func() { _ = alloc.Close() }()

	a, err := alloc.Allocate(testDesc())
	require.NoError(t, err)
	b, err := alloc.Allocate(testDesc())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestShmAllocator_FreeIdempotent(t *testing.T) {
	alloc := NewShmAllocator()

	buf, err := alloc.Allocate(testDesc())
	require.NoError(t, err)

	require.NoError(t, alloc.Free(buf))
	assert.Nil(t, buf.Bytes())
	assert.Equal(t, -1, buf.FD())
	assert.Equal(t, 0, alloc.LiveCount())

	// double free and nil free are no-ops
	require.NoError(t, alloc.Free(buf))
	require.NoError(t, alloc.Free(nil))
}

func TestShmAllocator_InvalidDescriptors(t *testing.T) {
	alloc := NewShmAllocator()

	_, err := alloc.Allocate(BufferDesc{Width: 0, Height: 32, Format: FormatRGBA8888})
	require.Error(t, err)

	_, err = alloc.Allocate(BufferDesc{Width: 64, Height: 32, Format: Format(77)})
	require.Error(t, err)
}

func TestShmAllocator_CloseFreesEverything(t *testing.T) {
	alloc := NewShmAllocator()
	for i := 0; i < 3; i++ {
		_, err := alloc.Allocate(testDesc())
		require.NoError(t, err)
	}
	require.NoError(t, alloc.Close())
	assert.Equal(t, 0, alloc.LiveCount())
}

func TestFormatBytesPerPixel(t *testing.T) {
	assert.Equal(t, uint32(4), FormatRGBA8888.BytesPerPixel())
	assert.Equal(t, uint32(3), FormatRGB888.BytesPerPixel())
	assert.Equal(t, uint32(2), FormatRGB565.BytesPerPixel())
	assert.Equal(t, uint32(0), Format(77).BytesPerPixel())
}
