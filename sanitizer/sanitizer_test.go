package sanitizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		policy   PolicyPreset
		expected string
	}{
		{
			name:     "raw passes through",
			input:    "hello\x00world\n",
			policy:   PolicyRaw,
			expected: "hello\x00world\n",
		},
		{
			name:     "txt hex encodes null byte",
			input:    "test\x00data",
			policy:   PolicyTxt,
			expected: "test<00>data",
		},
		{
			name:     "txt hex encodes control chars",
			input:    "bell\x07tab\x09form\x0c",
			policy:   PolicyTxt,
			expected: "bell<07>tab<09>form<0c>",
		},
		{
			name:     "txt keeps printable",
			input:    "Hello World 123!@#",
			policy:   PolicyTxt,
			expected: "Hello World 123!@#",
		},
		{
			name:     "txt multi-byte control",
			input:    "line1\u0085line2",
			policy:   PolicyTxt,
			expected: "line1<c285>line2",
		},
		{
			name:     "txt keeps UTF-8",
			input:    "Hello 世界 ✓",
			policy:   PolicyTxt,
			expected: "Hello 世界 ✓",
		},
		{
			name:     "txt invalid byte",
			input:    "bad\xffbyte",
			policy:   PolicyTxt,
			expected: "bad<ff>byte",
		},
		{
			name:     "strip removes control chars",
			input:    "clean\x00\x07\ntxt",
			policy:   PolicyStrip,
			expected: "cleantxt",
		},
		{
			name:     "strip keeps spaces",
			input:    "hello world",
			policy:   PolicyStrip,
			expected: "hello world",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New().Policy(tc.policy)
			assert.Equal(t, tc.expected, s.Sanitize(tc.input))
		})
	}
}

func TestCustomRule(t *testing.T) {
	s := New().Rule(FilterControl, TransformEscape)
	assert.Equal(t, `line1\nline2\ttab`, s.Sanitize("line1\nline2\ttab"))
	assert.Equal(t, `text\u0001`, s.Sanitize("text\x01"))
}

func TestAppend(t *testing.T) {
	s := New().Policy(PolicyTxt)
	dst := []byte("prefix:")
	dst = s.Append(dst, []byte("a\x00b"))
	assert.Equal(t, "prefix:a<00>b", string(dst))

	var nilSan *Sanitizer
	assert.True(t, nilSan.Passthrough())
	assert.Equal(t, "x\x00", string(nilSan.Append(nil, []byte("x\x00"))))
}

func TestValidPolicy(t *testing.T) {
	assert.True(t, ValidPolicy("raw"))
	assert.True(t, ValidPolicy("txt"))
	assert.True(t, ValidPolicy("strip"))
	assert.False(t, ValidPolicy("json"))
}

func BenchmarkSanitizer(b *testing.B) {
	input := strings.Repeat("normal text\x00\n\t", 100)

	for _, p := range []PolicyPreset{PolicyRaw, PolicyTxt, PolicyStrip} {
		b.Run(string(p), func(b *testing.B) {
			s := New().Policy(p)
			buf := make([]byte, 0, 4096)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				buf = s.Append(buf[:0], []byte(input))
			}
		})
	}
}
