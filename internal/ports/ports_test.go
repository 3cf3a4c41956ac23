package ports

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPortInUseError(t *testing.T) {
	type scenario struct {
		message  string
		expected bool
	}

	scenarios := []scenario{
		{"bind: address already in use", true},
		{"listen tcp 127.0.0.1:5432: bind: EADDRINUSE", true},
		{"could not bind to port 5432", true},
		{"socket already in use", true},
		{"port 5432 is already in use by another process", true},
		{"permission denied", false},
		{"no such file or directory", false},
		{"connection refused", false},
	}

	for _, s := range scenarios {
		assert.Equal(t, s.expected, IsPortInUseError(errString(s.message)), s.message)
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestIsAvailable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	defer l.Close()

	port := l.Addr().(*net.TCPAddr).Port
	free, err := IsAvailable(port)
	assert.NoError(t, err)
	assert.False(t, free)
}

func TestFindNextFree(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	defer l.Close()
	occupied := l.Addr().(*net.TCPAddr).Port

	port, err := FindNextFree(occupied, MaxProbes)
	assert.NoError(t, err)
	assert.NotEqual(t, occupied, port)
}

func TestParsePort(t *testing.T) {
	port, err := ParsePort("5432")
	assert.NoError(t, err)
	assert.Equal(t, 5432, port)

	_, err = ParsePort("not-a-port")
	assert.Error(t, err)
}
