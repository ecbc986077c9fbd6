package ws

import "strings"

// Wire command tags. Each frame is one UTF-8 text message of the form
// "<CMD>:<rest>"; anything that does not match a known tag is dropped.
const (
	CmdCreateRoom = "CREATE_ROOM"
	CmdJoinRoom   = "JOIN_ROOM"
	CmdLeaveRoom  = "LEAVE_ROOM"
	CmdRoomMsg    = "ROOM_MSG"
)

// Frame is one parsed inbound command. Arg is everything after the first
// colon, untrimmed; command handlers decide how to split it further.
type Frame struct {
	Cmd string
	Arg string
}

// ParseFrame splits a raw text frame at the first colon. ok is false when
// the frame carries no colon at all.
func ParseFrame(raw string) (Frame, bool) {
	cmd, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return Frame{}, false
	}
	return Frame{Cmd: cmd, Arg: rest}, true
}

// EncodeCommand renders a single-argument command frame.
func EncodeCommand(cmd, arg string) string {
	return cmd + ":" + arg
}

// EncodeRoomMsg renders a room-message frame. text may contain colons; the
// server splits on the first two only.
func EncodeRoomMsg(room, username, text string) string {
	return CmdRoomMsg + ":" + room + ":" + username + ":" + text
}

// FormatChat renders the payload broadcast to room members.
func FormatChat(username, text string) string {
	return username + " : " + text
}
