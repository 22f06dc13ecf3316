package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostPreview(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short text kept whole", "короткий", "короткий"},
		{"long text cut to 15 characters", "тестовый текст поста для проверки", "тестовый текст "},
		{"ascii text", strings.Repeat("a", 40), strings.Repeat("a", 15)},
		{"exactly 15 characters", "123456789012345", "123456789012345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := &Post{Text: tt.text}
			assert.Equal(t, tt.want, post.Preview())
		})
	}
}

func TestCommentPreview(t *testing.T) {
	comment := &Comment{Text: "Оставьте комментарий здесь"}
	assert.Equal(t, 15, len([]rune(comment.Preview())))
}
