package models

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World!", "hello-world"},
		{"Hello World", "hello-world"},
		{"Already-Slugged", "already-slugged"},
		{"  spaced  out  ", "--spaced--out--"},
		{"Café con Leche", "caf-con-leche"},
		{"100% Pure Go", "100-pure-go"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.title); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{"Hello World!", "Café con Leche", "a b c", "UPPER case"}
	for _, title := range titles {
		once := Slugify(title)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q -> %q", title, once, twice)
		}
	}
}
