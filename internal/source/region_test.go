package source

import "testing"

func TestRegionString(t *testing.T) {
	cases := []struct {
		r    Region
		want string
	}{
		{Region{0, 0, 0, 1}, "1:1-2"},
		{Region{0, 0, 4, 5}, "1:5-6"},
		{Region{1, 3, 2, 9}, "2:3-4:10"},
	}
	for _, tc := range cases {
		if got := tc.r.String(); got != tc.want {
			t.Errorf("%v: got %q, want %q", tc.r.Tuple(), got, tc.want)
		}
	}
}

func TestRegionCover(t *testing.T) {
	a := Region{StartLine: 0, EndLine: 0, StartCol: 4, EndCol: 9}
	b := Region{StartLine: 2, EndLine: 2, StartCol: 0, EndCol: 3}
	got := a.Cover(b)
	want := Region{StartLine: 0, EndLine: 2, StartCol: 4, EndCol: 3}
	if got != want {
		t.Fatalf("cover: got %v, want %v", got.Tuple(), want.Tuple())
	}
	if b.Cover(a) != want {
		t.Fatalf("cover is not symmetric")
	}
	if a.Cover(Region{}) != a {
		t.Fatalf("cover with zero region changed the region")
	}
}

func TestRegionOrderAndContains(t *testing.T) {
	a := Region{StartLine: 0, EndLine: 0, StartCol: 0, EndCol: 1}
	b := Region{StartLine: 0, EndLine: 0, StartCol: 4, EndCol: 5}
	if !a.Before(b) || b.Before(a) {
		t.Fatalf("Before: unexpected order")
	}
	if !b.Contains(Position{Line: 0, Col: 4}) {
		t.Fatalf("region must contain its start")
	}
	if b.Contains(Position{Line: 0, Col: 5}) {
		t.Fatalf("region end is exclusive")
	}
}
