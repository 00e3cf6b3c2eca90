package leaf

import (
	"net"
	"testing"

	"github.com/joeycumines/asyncrt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func sockaddrFor(t *testing.T, addr *net.TCPAddr) unix.Sockaddr {
	t.Helper()
	var ip [4]byte
	copy(ip[:], addr.IP.To4())
	return &unix.SockaddrInet4{Port: addr.Port, Addr: ip}
}

func TestDialRead_ReadsServerResponse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = conn.Write([]byte("pong"))
	}()

	sa := sockaddrFor(t, ln.Addr().(*net.TCPAddr))

	ex, err := asyncrt.NewExecutor(asyncrt.DefaultConfig(), asyncrt.NewNoopLogger())
	require.NoError(t, err)
	defer func() { require.NoError(t, ex.Destroy()) }()

	fut := DialRead(sa, []byte("ping"), 4)
	require.NoError(t, ex.Spawn(fut))
	ex.Run()

	assert.Equal(t, asyncrt.FutureSuccess, fut.Errcode)
	assert.Equal(t, []byte("pong"), fut.Ok)
}

func TestDialRead_ConnectionRefusedFails(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	require.NoError(t, ln.Close()) // nothing listening anymore

	sa := sockaddrFor(t, addr)

	ex, err := asyncrt.NewExecutor(asyncrt.DefaultConfig(), asyncrt.NewNoopLogger())
	require.NoError(t, err)
	defer func() { require.NoError(t, ex.Destroy()) }()

	fut := DialRead(sa, nil, 16)
	require.NoError(t, ex.Spawn(fut))
	ex.Run()

	assert.Equal(t, ErrTCPConnect, fut.Errcode)
}
