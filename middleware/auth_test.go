package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTokenHeader(t *testing.T) {
	assert.Equal(t, "abc123", ParseTokenHeader("Token abc123"))
	assert.Equal(t, "abc123", ParseTokenHeader("Token  abc123"), "extra space around the key is trimmed")
}

func TestParseTokenHeaderRejectsOtherSchemes(t *testing.T) {
	assert.Empty(t, ParseTokenHeader("Bearer abc123"))
	assert.Empty(t, ParseTokenHeader("token abc123"), "scheme keyword is case-sensitive")
	assert.Empty(t, ParseTokenHeader("Basic dXNlcjpwYXNz"))
}

func TestParseTokenHeaderMalformed(t *testing.T) {
	assert.Empty(t, ParseTokenHeader(""))
	assert.Empty(t, ParseTokenHeader("Token"))
	assert.Empty(t, ParseTokenHeader("Token abc 123"), "keys cannot contain spaces")
}
