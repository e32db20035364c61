package store

import (
	"bufio"
	"encoding/json"
	"os"
)

// maxHeadLines bounds how far into a record we scan for the first user
// prompt. Sessions that open with long tool exchanges still get a summary;
// pathological files don't stall the listing.
const maxHeadLines = 100

// recordEntry is one line of a session record file. Only the fields the
// reader needs are decoded.
type recordEntry struct {
	Type    string          `json:"type"`
	CWD     string          `json:"cwd"`
	Message json.RawMessage `json:"message"`
}

// userMessage is the message payload of a "user" entry.
type userMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"` // string or []contentBlock
}

// contentBlock is a block within a structured user message.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// recordHead holds what the listing needs from the start of a record.
type recordHead struct {
	cwd         string
	firstPrompt string
}

// readRecordHead scans a record file in chronological order for the session
// cwd and the first user-authored prompt. Returns ok=false only when the
// file yields no parsable entry at all (malformed or partially written).
func readRecordHead(path string) (recordHead, bool) {
	f, err := os.Open(path)
	if err != nil {
		return recordHead{}, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Tool results can be large; give lines plenty of room.
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var head recordHead
	parsed := false

	for i := 0; i < maxHeadLines && scanner.Scan(); i++ {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry recordEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		parsed = true

		if head.cwd == "" && entry.CWD != "" {
			head.cwd = entry.CWD
		}
		if head.firstPrompt == "" && entry.Type == "user" {
			head.firstPrompt = promptText(entry.Message)
		}
		if head.cwd != "" && head.firstPrompt != "" {
			break
		}
	}

	return head, parsed
}

// promptText extracts user prompt text from a message payload. User content
// is either a plain string or an array of content blocks; entries that are
// purely tool results yield no text.
func promptText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var msg userMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ""
	}
	if len(msg.Content) == 0 {
		return ""
	}

	var str string
	if err := json.Unmarshal(msg.Content, &str); err == nil {
		return str
	}

	var blocks []contentBlock
	if err := json.Unmarshal(msg.Content, &blocks); err != nil {
		return ""
	}
	text := ""
	for _, b := range blocks {
		if b.Type != "text" || b.Text == "" {
			continue
		}
		if text != "" {
			text += "\n"
		}
		text += b.Text
	}
	return text
}
