package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chatrelaygo/internal/config"
	"chatrelaygo/internal/ws"
)

const (
	dialTimeout  = 5 * time.Second
	dialAttempts = 5
	dialBackoff  = 200 * time.Millisecond
)

// Shell is the interactive terminal client: it prompts for a username,
// creates or joins a room, and relays typed lines as room messages until
// the user sends /leave.
type Shell struct {
	url     string
	history *history
	in      *bufio.Scanner
	out     io.Writer
}

func NewShell(cfg *config.Config) *Shell {
	return &Shell{
		url:     cfg.ServerWsUrl,
		history: newHistory(cfg.ClientHistoryLimit),
		in:      bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
	}
}

// Run connects to the relay and drives the interactive session until the
// user leaves or the connection drops.
func (s *Shell) Run(ctx context.Context) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	fmt.Fprintf(s.out, "Connected to %s\n", s.url)

	go s.receiveLoop(conn)

	username, err := s.prompt("Enter your username: ")
	if err != nil {
		return err
	}
	username = strings.TrimSpace(username)

	room, err := s.chooseRoom(conn)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "You can now chat in room: %s\n", room)
	return s.chatLoop(conn, room, username)
}

// dial retries briefly so "both" mode does not race the server's bind.
func (s *Shell) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}

	var lastErr error
	for attempt := 0; attempt < dialAttempts; attempt++ {
		conn, resp, err := dialer.DialContext(ctx, s.url, nil)
		if resp != nil {
			_ = resp.Body.Close()
		}
		if err == nil {
			return conn, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dialBackoff):
		}
	}
	return nil, lastErr
}

// receiveLoop prints incoming frames. Room broadcasts arrive as plain
// "<user> : <text>" payloads; anything tagged ROOM_MSG is raw protocol
// traffic and is neither printed nor logged.
func (s *Shell) receiveLoop(conn *websocket.Conn) {
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			zap.L().Debug("client.read", zap.Error(err))
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		text := string(data)
		if !strings.HasPrefix(text, ws.CmdRoomMsg+":") {
			s.history.add(text)
			fmt.Fprintln(s.out, text)
		}
	}
}

func (s *Shell) chooseRoom(conn *websocket.Conn) (string, error) {
	fmt.Fprintln(s.out, "Do you want to create a room or join a room?")
	fmt.Fprintln(s.out, "Type 'CREATE <room_name>' to create a room")
	fmt.Fprintln(s.out, "Type 'JOIN <room_name>' to join a room")

	for {
		input, err := s.prompt("> ")
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)

		switch {
		case strings.HasPrefix(input, "CREATE "):
			room := strings.TrimSpace(strings.TrimPrefix(input, "CREATE "))
			if err := s.send(conn, ws.EncodeCommand(ws.CmdCreateRoom, room)); err != nil {
				return "", err
			}
			fmt.Fprintf(s.out, "You created and joined room: %s\n", room)
			return room, nil

		case strings.HasPrefix(input, "JOIN "):
			room := strings.TrimSpace(strings.TrimPrefix(input, "JOIN "))
			if err := s.send(conn, ws.EncodeCommand(ws.CmdJoinRoom, room)); err != nil {
				return "", err
			}
			fmt.Fprintf(s.out, "You joined room: %s\n", room)
			s.replayHistory()
			return room, nil

		default:
			fmt.Fprintln(s.out, "Invalid command. Please type 'CREATE <room_name>' or 'JOIN <room_name>'.")
		}
	}
}

func (s *Shell) chatLoop(conn *websocket.Conn, room, username string) error {
	for {
		line, err := s.prompt(username + " > ")
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "/leave" {
			if err := s.send(conn, ws.EncodeCommand(ws.CmdLeaveRoom, room)); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "You left room: %s\n", room)
			return nil
		}

		if err := s.send(conn, ws.EncodeRoomMsg(room, username, line)); err != nil {
			return err
		}
	}
}

func (s *Shell) replayHistory() {
	msgs := s.history.snapshot()
	fmt.Fprintln(s.out, "--- Previous messages ---")
	for _, msg := range msgs {
		fmt.Fprintln(s.out, msg)
	}
	fmt.Fprintln(s.out, "-------------------------")
}

func (s *Shell) send(conn *websocket.Conn, frame string) error {
	return conn.WriteMessage(websocket.TextMessage, []byte(frame))
}

func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}
