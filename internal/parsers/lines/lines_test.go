package lines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonBlank(t *testing.T) {
	content := "\uFEFFpreamble\r\n\r\nheader\rrow1\n   \nrow2\n"

	assert.Equal(t, []string{"preamble", "header", "row1", "row2"}, NonBlank(content, 0))
	assert.Equal(t, []string{"header", "row1", "row2"}, NonBlank(content, 1))
	assert.Empty(t, NonBlank(content, 100))
	assert.Empty(t, NonBlank("", 0))
}

func TestSample(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Sample("a\n\nb\nc\n", 2))
	assert.Equal(t, []string{"a"}, Sample("a", 10))
}

func TestHead(t *testing.T) {
	content := "title\nsku,price\n\nA,1\nB,2\nC,3\n"

	assert.Equal(t, "title\nsku,price\n\nA,1", Head(content, 1, 2))
	assert.Equal(t, content, Head(content, 0, 0))
	assert.Equal(t, "x", Head("x", 5, 3))
}
