package validate

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApply_RequiredBlocksRemainingChecks(t *testing.T) {
	data := map[string]string{"name": "   "}
	res := Apply(data, Schema{
		"name": {Required: true, MinLength: 2, Pattern: NamePattern},
	})
	require.False(t, res.Valid)
	require.Equal(t, []string{"name is required"}, res.Errors)
}

func TestApply_OptionalBlankSkipped(t *testing.T) {
	res := Apply(map[string]string{}, Schema{
		"bio": {MaxLength: 5},
	})
	require.True(t, res.Valid)
	require.Empty(t, res.Errors)
}

func TestApply_CollectsAllErrors(t *testing.T) {
	data := map[string]string{
		"name":  "A1",
		"email": "not-an-email",
	}
	res := Apply(data, Schema{
		"name":  {Required: true, MinLength: 3, Pattern: NamePattern},
		"email": {Required: true, Pattern: EmailPattern},
	})
	require.False(t, res.Valid)
	require.Equal(t, []string{
		"email format is invalid",
		"name must be at least 3 characters long",
		"name format is invalid",
	}, res.Errors)
}

func TestApply_BothLengthBoundsFireIndependently(t *testing.T) {
	res := Apply(map[string]string{"x": "abc"}, Schema{
		"x": {MinLength: 5, MaxLength: 2},
	})
	require.Len(t, res.Errors, 2)
}

func TestApply_MaxLength(t *testing.T) {
	exact := strings.Repeat("a", 1000)
	res := Apply(map[string]string{"content": exact}, PostSchema)
	require.True(t, res.Valid)

	res = Apply(map[string]string{"content": exact + "a"}, PostSchema)
	require.False(t, res.Valid)
	require.Equal(t, []string{"content cannot exceed 1000 characters"}, res.Errors)
}

func TestApply_SanitizeRewritesInPlace(t *testing.T) {
	data := map[string]string{
		"content": `  <script>alert("x")</script><b>hello</b> world `,
	}
	res := Apply(data, PostSchema)
	require.True(t, res.Valid)
	require.Equal(t, "hello world", data["content"])
}

func TestApply_CustomPattern(t *testing.T) {
	hex := regexp.MustCompile(`^[0-9a-f]+$`)
	res := Apply(map[string]string{"id": "deadbeef"}, Schema{"id": {Pattern: hex}})
	require.True(t, res.Valid)

	res = Apply(map[string]string{"id": "nope!"}, Schema{"id": {Pattern: hex}})
	require.False(t, res.Valid)
}

func TestClean(t *testing.T) {
	cases := map[string]string{
		"plain text":                          "plain text",
		"<script>evil()</script>ok":           "ok",
		"<SCRIPT a=b>\nevil()\n</script> hi":  "hi",
		"<p>para</p>":                         "para",
		"click javascript:alert(1)":           "click alert(1)",
		"  padded  ":                          "padded",
		"a <b>bold</b> statement":             "a bold statement",
	}
	for in, want := range cases {
		require.Equal(t, want, Clean(in), "input %q", in)
	}
}

func TestEmailPattern(t *testing.T) {
	require.True(t, EmailPattern.MatchString("a.user@example.com"))
	require.True(t, EmailPattern.MatchString("user-name@sub.example.org"))
	require.False(t, EmailPattern.MatchString("user@"))
	require.False(t, EmailPattern.MatchString("@example.com"))
	require.False(t, EmailPattern.MatchString("user example.com"))
}
