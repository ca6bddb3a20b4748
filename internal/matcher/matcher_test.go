package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var yojoRule = Rule{
	Strip:      "、。・",
	Suffix:     ".png",
	UseMarkers: true,
	Markers: map[string]string{
		"いちご": "イチゴ",
		"ぶどう": "ぶどう",
	},
	Normalize: true,
}

// grapeNFD spells ぶどう with combining voiced sound marks
const grapeNFD = "\u3075\u3099\u3068\u3099うのやよいちゃん.png"

func sweetRule() Rule {
	r := yojoRule
	r.UseMarkers = false
	return r
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "やよいちゃん", want: "やよいちゃん"},
		{in: "はな・ゆめ", want: "はなゆめ"},
		{in: "おはよう、せかい。", want: "おはようせかい"},
		{in: "・・・", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := yojoRule.Clean(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, yojoRule.Clean(got))
		})
	}
}

func TestMatch(t *testing.T) {
	files := []string{"イチゴのやよいちゃん.png", "ぶどうのやよいちゃん.png"}

	tests := []struct {
		name      string
		rule      Rule
		files     []string
		card      string
		attribute string
		want      string
		found     bool
	}{
		{
			name:      "strawberry marker",
			rule:      yojoRule,
			files:     files,
			card:      "やよいちゃん",
			attribute: "いちご",
			want:      "イチゴのやよいちゃん.png",
			found:     true,
		},
		{
			name:      "grape marker",
			rule:      yojoRule,
			files:     files,
			card:      "やよいちゃん",
			attribute: "ぶどう",
			want:      "ぶどうのやよいちゃん.png",
			found:     true,
		},
		{
			name:      "no match",
			rule:      yojoRule,
			files:     files,
			card:      "メロンちゃん",
			attribute: "メロン",
			found:     false,
		},
		{
			name:      "unlisted attribute needs no marker",
			rule:      yojoRule,
			files:     []string{"b_まりあ.png", "a_まりあ.png"},
			card:      "まりあ",
			attribute: "おれんじ",
			want:      "b_まりあ.png",
			found:     true,
		},
		{
			name:      "markers ignored without category flag",
			rule:      sweetRule(),
			files:     files,
			card:      "やよいちゃん",
			attribute: "ぶどう",
			want:      "イチゴのやよいちゃん.png",
			found:     true,
		},
		{
			name:      "marker must precede name",
			rule:      yojoRule,
			files:     []string{"やよいちゃん_イチゴ.png"},
			card:      "やよいちゃん",
			attribute: "いちご",
			found:     false,
		},
		{
			name:      "punctuation stripped",
			rule:      sweetRule(),
			files:     []string{"sweet_はなゆめ_01.png"},
			card:      "はな・ゆめ",
			found:     true,
			want:      "sweet_はなゆめ_01.png",
		},
		{
			name:      "suffix required",
			rule:      sweetRule(),
			files:     []string{"ケーキ.jpg", "ケーキ.png.bak"},
			card:      "ケーキ",
			found:     false,
		},
		{
			name:      "regexp characters are literal",
			rule:      sweetRule(),
			files:     []string{"ab.png", "a.b.png"},
			card:      "a.b",
			want:      "a.b.png",
			found:     true,
		},
		{
			name:      "decomposed filenames",
			rule:      yojoRule,
			files:     []string{grapeNFD},
			card:      "やよいちゃん",
			attribute: "ぶどう",
			want:      grapeNFD,
			found:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.rule.Match(tt.files, tt.card, tt.attribute)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchWithoutNormalization(t *testing.T) {
	r := yojoRule
	r.Normalize = false

	_, ok := r.Match([]string{grapeNFD}, "やよいちゃん", "ぶどう")
	assert.False(t, ok)
}

func TestMatchFirstInListingOrder(t *testing.T) {
	files := []string{"2_ショコラ.png", "1_ショコラ.png", "3_ショコラ.png"}
	got, ok := sweetRule().Match(files, "ショコラ", "")
	assert.True(t, ok)
	assert.Equal(t, "2_ショコラ.png", got)
}

func TestMarker(t *testing.T) {
	assert.Equal(t, "イチゴ", yojoRule.Marker("いちご"))
	assert.Empty(t, yojoRule.Marker("めろん"))
	assert.Empty(t, sweetRule().Marker("いちご"))
}
