package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  просто текст  ", "просто текст"},
		{"<b>жирный</b> текст", "жирный текст"},
		{"строка<br>вторая", "строка\nвторая"},
		{"<p>один</p><p>два</p>", "один\nдва"},
		{"<script>alert(1)</script>безопасно", "безопасно"},
		{"соль &amp; перец", "соль & перец"},
		{"2 < 3", "2 < 3"},
		{"<ul><li>мука</li><li>яйца</li></ul>", "мука\nяйца"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StripHTML(tc.in), tc.in)
	}
}
