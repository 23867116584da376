package library

import "testing"

func TestIsIDPath(t *testing.T) {
	cases := []struct {
		tail   string
		wantID string
		wantOK bool
	}{
		{"0/7", "7", true},
		{"0", "", false},
		{"0/", "", false},
		{"Music/0/7", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		id, ok := isIDPath(c.tail)
		if id != c.wantID || ok != c.wantOK {
			t.Errorf("isIDPath(%q) = (%q, %v), want (%q, %v)", c.tail, id, ok, c.wantID, c.wantOK)
		}
	}
}
