// Package mail assembles outbound application emails into the single opaque
// payload the Gmail send endpoint accepts, and dispatches them under the
// user's linked credential.
package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// boundary separates MIME parts. A fixed token keeps assembly deterministic;
// Assemble rejects any content that would collide with it instead of trusting
// that attachments are always base64-armored first.
const boundary = "internship_apply_mime_boundary"

// Attachment is a named binary document attached to an outbound message.
type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// OutboundMessage is a fully-specified email before encoding.
type OutboundMessage struct {
	To          string
	Subject     string
	BodyText    string
	Attachments []Attachment
}

// unsafeFilenameChars matches everything outside the safe filename alphabet.
var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename reduces a filename to a safe token that cannot break the
// part headers it is quoted into.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" || strings.Trim(name, "._") == "" {
		return "attachment"
	}
	return name
}

// Assemble builds the multipart document for a message and encodes the whole
// thing with the URL-safe base64 alphabet, unpadded, as the send endpoint
// requires. Assembly is deterministic: identical input yields an identical
// payload.
func Assemble(msg *OutboundMessage) (string, error) {
	if strings.Contains(msg.BodyText, boundary) {
		return "", fmt.Errorf("message body contains the MIME boundary token")
	}
	for _, att := range msg.Attachments {
		if bytes.Contains(att.Content, []byte(boundary)) {
			return "", fmt.Errorf("attachment %q contains the MIME boundary token", att.Filename)
		}
	}

	var sb strings.Builder
	writeLine := func(line string) {
		sb.WriteString(line)
		sb.WriteString("\r\n")
	}

	writeLine("To: " + msg.To)
	writeLine("Subject: " + msg.Subject)
	writeLine("MIME-Version: 1.0")
	writeLine(fmt.Sprintf(`Content-Type: multipart/mixed; boundary=%q`, boundary))
	writeLine("")
	writeLine("--" + boundary)
	writeLine("Content-Type: text/plain; charset=utf-8")
	writeLine("MIME-Version: 1.0")
	writeLine("")
	writeLine(msg.BodyText)

	for _, att := range msg.Attachments {
		filename := SanitizeFilename(att.Filename)
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		writeLine("--" + boundary)
		writeLine(fmt.Sprintf("Content-Type: %s; name=%q", contentType, filename))
		writeLine(fmt.Sprintf("Content-Disposition: attachment; filename=%q", filename))
		writeLine("Content-Transfer-Encoding: base64")
		writeLine("")
		writeLine(base64.StdEncoding.EncodeToString(att.Content))
	}

	writeLine("--" + boundary + "--")

	return base64.RawURLEncoding.EncodeToString([]byte(sb.String())), nil
}
