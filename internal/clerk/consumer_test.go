package clerk

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader yields each chunk from one Read call, regardless of buffer
// size, so tests control exactly where the stream splits.
type chunkReader struct {
	chunks []string
	i      int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if c.i >= len(c.chunks) {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[c.i])
	c.i++
	return n, nil
}

func sse(fragments ...string) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(`data: {"choices":[{"delta":{"content":"` + f + `"}}]}` + "\n")
	}
	b.WriteString("data: [DONE]\n")
	return b.String()
}

func TestConsumeWholeStream(t *testing.T) {
	var updates []string
	got, err := Consume(strings.NewReader(sse("Hello ", "world")), func(s string) {
		updates = append(updates, s)
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got)
	assert.Equal(t, []string{"Hello ", "Hello world"}, updates)
}

func TestConsumeSplitPayloadAcrossChunks(t *testing.T) {
	full := sse("héllo")
	// split inside the multi-byte é and inside the JSON payload
	cut := strings.Index(full, "é") + 1
	r := &chunkReader{chunks: []string{full[:cut], full[cut:]}}
	got, err := Consume(r, nil)
	require.NoError(t, err)
	assert.Equal(t, "héllo", got)
}

func TestConsumeIgnoresCommentsBlanksAndOtherFields(t *testing.T) {
	in := ": keep-alive\n\nevent: message\ndata: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\ndata: [DONE]\n"
	got, err := Consume(strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestConsumeStopsAtDone(t *testing.T) {
	in := sse("before") + `data: {"choices":[{"delta":{"content":"after"}}]}` + "\n"
	got, err := Consume(strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, "before", got)
}

func TestConsumeCRLFLines(t *testing.T) {
	in := "data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}\r\ndata: [DONE]\r\n"
	got, err := Consume(strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestConsumeEOFWithoutDone(t *testing.T) {
	in := `data: {"choices":[{"delta":{"content":"partial"}}]}` + "\n"
	got, err := Consume(strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}
