package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteReadRoundTrip(t *testing.T) {
	b := &Bus{}
	b.Write(0x1234, 0xAB)
	assert.Equal(t, byte(0xAB), b.Read(0x1234))
}

func TestWritePersistsThroughPointer(t *testing.T) {
	// A value-receiver Write would silently mutate a copy of the 64 KiB
	// array; this guards against that regression.
	b := &Bus{}
	b.Write(0, 0x42)
	assert.Equal(t, byte(0x42), b.FakeRam[0])
}

func TestLoadRejectsOverflow(t *testing.T) {
	b := &Bus{}
	data := make([]byte, 10)
	assert.True(t, b.Load(data, 65530-4))
	assert.False(t, b.Load(data, 65530))
}

func TestLoadCopiesAtBase(t *testing.T) {
	b := &Bus{}
	ok := b.Load([]byte{0x01, 0x02, 0x03}, 0x0100)
	assert.True(t, ok)
	assert.Equal(t, byte(0x01), b.Read(0x0100))
	assert.Equal(t, byte(0x02), b.Read(0x0101))
	assert.Equal(t, byte(0x03), b.Read(0x0102))
}

func TestReset(t *testing.T) {
	b := &Bus{}
	b.Write(0x10, 0xFF)
	b.Reset()
	assert.Equal(t, byte(0), b.Read(0x10))
}

func TestRAMIsACopy(t *testing.T) {
	b := &Bus{}
	b.Write(5, 7)
	snap := b.RAM()
	snap[5] = 0
	assert.Equal(t, byte(7), b.Read(5), "mutating the snapshot must not affect the Bus")
}
