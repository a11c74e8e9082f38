package wire

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.clipx.app/clipx/internal/entry"
	"go.clipx.app/clipx/internal/message"
)

func pipePair() (*Conn, *Conn) {
	a, b := net.Pipe()
	return New(a), New(b)
}

func TestRoundTrip(t *testing.T) {
	client, server := pipePair()
	defer client.Close()
	defer server.Close()

	go func() {
		_ = client.WriteMsg(&message.Message{Type: message.TypeDelete, Index: 3})
	}()

	msg, err := server.ReadMsg()
	require.NoError(t, err)
	assert.Equal(t, message.TypeDelete, msg.Type)
	assert.Equal(t, 3, msg.Index)
}

func TestRoundTripEntries(t *testing.T) {
	client, server := pipePair()
	defer client.Close()
	defer server.Close()

	png := []byte{0x89, 'P', 'N', 'G', '\n', 0x00}
	go func() {
		_ = server.WriteMsg(&message.Message{
			Type: message.TypeHistoryResponse,
			Entries: []entry.Entry{
				entry.NewMixed("caption", png, nil),
				entry.NewText("plain"),
			},
		})
	}()

	msg, err := client.ReadMsg()
	require.NoError(t, err)
	require.Len(t, msg.Entries, 2)
	assert.Equal(t, entry.TypeMixed, msg.Entries[0].ContentType)
	assert.Equal(t, "caption", msg.Entries[0].TextContent)
	assert.Equal(t, png, msg.Entries[0].ImageData)
	assert.Equal(t, "plain", msg.Entries[1].TextContent)
}

func TestReadDeadline(t *testing.T) {
	client, server := pipePair()
	defer client.Close()
	defer server.Close()

	server.SetReadDeadline(20 * time.Millisecond)
	_, err := server.ReadMsg()
	require.Error(t, err)
	ne, ok := err.(net.Error)
	require.True(t, ok)
	assert.True(t, ne.Timeout())
}
