package clerk

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// Consume incrementally decodes a server-sent-event byte stream from the
// model service. Chunk boundaries carry no meaning: bytes are appended to a
// pending buffer and complete lines are peeled off the front. A data line
// whose JSON fails to parse is NOT dropped — it is pushed back onto the
// buffer front with its newline, because the chunk boundary may have split
// the payload mid-token and the next read may complete it.
//
// onDelta is called with the accumulated assistant text after every
// extracted fragment. Consume returns the final accumulated text; it stops
// at the [DONE] sentinel or at end of stream.
func Consume(r io.Reader, onDelta func(soFar string)) (string, error) {
	var pending string
	var soFar strings.Builder
	buf := make([]byte, 4096)
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			pending += string(buf[:n])
			for {
				nl := strings.IndexByte(pending, '\n')
				if nl == -1 {
					break
				}
				line := pending[:nl]
				pending = pending[nl+1:]
				line = strings.TrimSuffix(line, "\r")
				if line == "" || strings.HasPrefix(line, ":") {
					continue
				}
				if !strings.HasPrefix(line, "data: ") {
					continue
				}
				payload := strings.TrimSpace(line[len("data: "):])
				if payload == "[DONE]" {
					return soFar.String(), nil
				}
				var evt struct {
					Choices []struct {
						Delta struct {
							Content string `json:"content"`
						} `json:"delta"`
					} `json:"choices"`
				}
				if err := json.Unmarshal([]byte(payload), &evt); err != nil {
					// split payload: re-queue and wait for more data
					pending = line + "\n" + pending
					break
				}
				if len(evt.Choices) > 0 && evt.Choices[0].Delta.Content != "" {
					soFar.WriteString(evt.Choices[0].Delta.Content)
					if onDelta != nil {
						onDelta(soFar.String())
					}
				}
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return soFar.String(), nil
			}
			return soFar.String(), readErr
		}
	}
}
