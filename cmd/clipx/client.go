package main

import (
	"fmt"
	"time"

	"go.clipx.app/clipx/internal/ipc"
	"go.clipx.app/clipx/internal/message"
	"go.clipx.app/clipx/internal/wire"
)

// request performs one round trip against the running daemon's IPC socket.
// ERROR responses come back as Go errors.
func request(msg *message.Message) (*message.Message, error) {
	if !ipc.IsRunning() {
		return nil, fmt.Errorf("no clipx daemon running (socket %s); start one with \"clipx run\"", ipc.SocketPath())
	}

	conn, err := ipc.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}
	defer conn.Close()

	wc := wire.New(conn)
	if err := wc.WriteMsg(msg); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	wc.SetReadDeadline(5 * time.Second)
	resp, err := wc.ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.Type == message.TypeError {
		return nil, fmt.Errorf("daemon: %s", resp.Error)
	}
	return resp, nil
}

func fmtAge(t time.Time) string {
	age := time.Since(t).Round(time.Second)
	if age < time.Minute {
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	}
	if age < time.Hour {
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	}
	return t.Format("15:04:05")
}
