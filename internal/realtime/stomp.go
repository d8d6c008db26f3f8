package realtime

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// STOMP 1.2 commands used by the channel.
const (
	cmdConnect     = "CONNECT"
	cmdConnected   = "CONNECTED"
	cmdSend        = "SEND"
	cmdSubscribe   = "SUBSCRIBE"
	cmdUnsubscribe = "UNSUBSCRIBE"
	cmdDisconnect  = "DISCONNECT"
	cmdMessage     = "MESSAGE"
	cmdReceipt     = "RECEIPT"
	cmdError       = "ERROR"
)

// ErrMalformedFrame is returned by [DecodeFrame] when the payload does not
// parse as a STOMP frame.
var ErrMalformedFrame = errors.New("malformed stomp frame")

// Frame is one STOMP frame. Header order is kept so encoded frames are
// stable; on repeated headers the first occurrence wins, as in STOMP 1.2.
type Frame struct {
	Command string
	Headers []Header
	Body    []byte
}

// Header is one "key:value" line of a frame. Key and Value hold the decoded
// text; escaping is applied by Encode and reversed by DecodeFrame.
type Header struct {
	Key   string
	Value string
}

// NewFrame builds a frame from alternating key/value header arguments. A
// trailing key without a value is dropped.
//
//	NewFrame("SUBSCRIBE", "id", "sub-0", "destination", "/room/notifications")
func NewFrame(command string, headers ...string) Frame {
	f := Frame{Command: command}
	for i := 0; i+1 < len(headers); i += 2 {
		f.Headers = append(f.Headers, Header{Key: headers[i], Value: headers[i+1]})
	}
	return f
}

// Header returns the first value of key.
func (f Frame) Header(key string) (string, bool) {
	for _, h := range f.Headers {
		if h.Key == key {
			return h.Value, true
		}
	}
	return "", false
}

// Heartbeat reports whether f is an empty keep-alive.
func (f Frame) Heartbeat() bool {
	return f.Command == ""
}

// Encode serialises f. content-length is added when a body is present.
func (f Frame) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteString(f.Command)
	buf.WriteByte('\n')

	escape := f.Command != cmdConnect && f.Command != cmdConnected
	hasLength := false
	for _, h := range f.Headers {
		if h.Key == "content-length" {
			hasLength = true
		}
		if escape {
			buf.WriteString(escapeHeader(h.Key))
			buf.WriteByte(':')
			buf.WriteString(escapeHeader(h.Value))
		} else {
			buf.WriteString(h.Key)
			buf.WriteByte(':')
			buf.WriteString(h.Value)
		}
		buf.WriteByte('\n')
	}
	if len(f.Body) > 0 && !hasLength {
		buf.WriteString("content-length:")
		buf.WriteString(strconv.Itoa(len(f.Body)))
		buf.WriteByte('\n')
	}

	buf.WriteByte('\n')
	buf.Write(f.Body)
	buf.WriteByte(0)
	return buf.Bytes()
}

// DecodeFrame parses a single frame from one websocket message. A message
// made only of end-of-line bytes is a heartbeat and yields a zero Frame.
func DecodeFrame(data []byte) (Frame, error) {
	data = bytes.TrimLeft(data, "\r\n")
	if len(data) == 0 {
		return Frame{}, nil
	}

	headerEnd := bytes.Index(data, []byte("\n\n"))
	sepLen := 2
	if crlf := bytes.Index(data, []byte("\r\n\r\n")); crlf >= 0 && (headerEnd < 0 || crlf < headerEnd) {
		headerEnd, sepLen = crlf, 4
	}
	if headerEnd < 0 {
		return Frame{}, fmt.Errorf("%w: no header terminator", ErrMalformedFrame)
	}

	lines := strings.Split(strings.ReplaceAll(string(data[:headerEnd]), "\r\n", "\n"), "\n")
	f := Frame{Command: lines[0]}
	if f.Command == "" {
		return Frame{}, fmt.Errorf("%w: empty command", ErrMalformedFrame)
	}

	unescape := f.Command != cmdConnect && f.Command != cmdConnected
	for _, line := range lines[1:] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return Frame{}, fmt.Errorf("%w: header %q", ErrMalformedFrame, line)
		}
		if unescape {
			key, value = unescapeHeader(key), unescapeHeader(value)
		}
		f.Headers = append(f.Headers, Header{Key: key, Value: value})
	}

	body := data[headerEnd+sepLen:]
	if raw, ok := f.Header("content-length"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > len(body) {
			return Frame{}, fmt.Errorf("%w: content-length %q", ErrMalformedFrame, raw)
		}
		body = body[:n]
	} else if i := bytes.IndexByte(body, 0); i >= 0 {
		body = body[:i]
	} else {
		return Frame{}, fmt.Errorf("%w: missing NUL terminator", ErrMalformedFrame)
	}
	f.Body = append([]byte(nil), body...)

	return f, nil
}

var (
	headerEscaper   = strings.NewReplacer("\\", `\\`, "\r", `\r`, "\n", `\n`, ":", `\c`)
	headerUnescaper = strings.NewReplacer(`\\`, "\\", `\r`, "\r", `\n`, "\n", `\c`, ":")
)

func escapeHeader(s string) string   { return headerEscaper.Replace(s) }
func unescapeHeader(s string) string { return headerUnescaper.Replace(s) }
