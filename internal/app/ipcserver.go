package app

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"go.clipx.app/clipx/internal/ipc"
	"go.clipx.app/clipx/internal/message"
	"go.clipx.app/clipx/internal/wire"
)

// serveIPC accepts CLI connections until the listener closes.
func (a *App) serveIPC(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go a.handleIPCConn(conn)
	}
}

func (a *App) handleIPCConn(conn net.Conn) {
	defer conn.Close()
	wc := wire.New(conn)

	msg, err := wc.ReadMsg()
	if err != nil {
		return
	}

	resp := a.handleRequest(msg)
	if err := wc.WriteMsg(resp); err != nil {
		slog.Debug("ipc: response write failed", "err", err)
	}
	// Quit only after the OK has gone out, so the new instance sees it.
	if msg.Type == message.TypeTakeover && resp.Type == message.TypeOK {
		a.Quit()
	}
}

// handleRequest maps one IPC request to its response.
func (a *App) handleRequest(msg *message.Message) *message.Message {
	switch msg.Type {
	case message.TypeHistory:
		entries := a.store.Snapshot()
		if msg.Limit > 0 && msg.Limit < len(entries) {
			entries = entries[:msg.Limit]
		}
		return &message.Message{Type: message.TypeHistoryResponse, Entries: entries}

	case message.TypeClear:
		a.store.Clear()
		slog.Info("history cleared via ipc")
		return message.OK()

	case message.TypeDelete:
		if !a.store.DeleteAt(msg.Index) {
			return message.Err(fmt.Errorf("no history entry at index %d", msg.Index))
		}
		slog.Info("history entry deleted via ipc", "index", msg.Index)
		return message.OK()

	case message.TypeStatus:
		return &message.Message{
			Type: message.TypeStatusResponse,
			Status: &message.Status{
				PID:         os.Getpid(),
				Version:     a.cfg.Version,
				StartedAt:   a.startedAt,
				HistoryLen:  a.store.Len(),
				Trusted:     a.axp.Trusted(),
				HotkeyReady: a.hotkeyReady.Load(),
			},
		}

	case message.TypeTakeover:
		slog.Info("takeover requested, exiting")
		return message.OK()

	default:
		return message.Err(fmt.Errorf("unknown request type %q", msg.Type))
	}
}

// requestTakeover asks the running daemon to exit on behalf of a new one.
func requestTakeover() error {
	conn, err := ipc.Dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	wc := wire.New(conn)
	if err := wc.WriteMsg(&message.Message{Type: message.TypeTakeover}); err != nil {
		return err
	}
	resp, err := wc.ReadMsg()
	if err != nil {
		return err
	}
	if resp.Type == message.TypeError {
		return fmt.Errorf("daemon refused: %s", resp.Error)
	}
	return nil
}
