package movetree_test

import (
	"testing"

	"github.com/lgbarn/movetree-go/internal/errors"
	"github.com/lgbarn/movetree-go/internal/movetree"
	"github.com/lgbarn/movetree-go/internal/testutil"
)

func TestPathString(t *testing.T) {
	tests := []struct {
		path movetree.Path
		want string
	}{
		{movetree.Root(), "0"},
		{movetree.Root().Child(3, 1), "0/3:1"},
		{movetree.Root().Child(3, 1).Child(0, 2), "0/3:1/0:2"},
		{nil, ""},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, tt.path.String(), tt.want)
		if tt.path == nil {
			continue
		}
		parsed, err := movetree.ParsePath(tt.want)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, parsed.Equal(tt.path), "ParsePath(%q) = %v", tt.want, parsed)
	}
}

func TestParsePath_Errors(t *testing.T) {
	for _, s := range []string{"", "1", "0/", "0/3", "0/a:1", "0/3:0", "0/-1:1", "0/3:1/"} {
		_, err := movetree.ParsePath(s)
		testutil.AssertErrorIs(t, err, errors.ErrPathNotFound)
	}
}

func TestPathParentAndChild(t *testing.T) {
	base := movetree.Root().Child(2, 1)
	child := base.Child(0, 3)

	// Child never aliases its receiver.
	other := base.Child(1, 1)
	testutil.AssertEqual(t, child.String(), "0/2:1/0:3")
	testutil.AssertEqual(t, other.String(), "0/2:1/1:1")

	parent, sel, ok := child.Parent()
	testutil.AssertTrue(t, ok, "Parent() ok")
	testutil.AssertTrue(t, parent.Equal(base), "Parent() = %v", parent)
	testutil.AssertEqual(t, sel, movetree.Selector{Ply: 0, Variation: 3})
	testutil.AssertEqual(t, child.Depth(), 2)

	_, _, ok = movetree.Root().Parent()
	testutil.AssertFalse(t, ok, "root has no parent")
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		input string
		want  movetree.Glyph
		ok    bool
	}{
		{"", movetree.GlyphNone, true},
		{"!", movetree.GlyphGood, true},
		{"??", movetree.GlyphBlunder, true},
		{"!?", movetree.GlyphInteresting, true},
		{"$6", movetree.GlyphDubious, true},
		{"$3", movetree.GlyphBrilliant, true},
		{"$7", movetree.GlyphNone, false},
		{"!!!", movetree.GlyphNone, false},
	}
	for _, tt := range tests {
		got, ok := movetree.ParseGlyph(tt.input)
		testutil.AssertEqual(t, got, tt.want)
		testutil.AssertEqual(t, ok, tt.ok)
	}
	testutil.AssertEqual(t, movetree.GlyphMistake.String(), "?")
	testutil.AssertEqual(t, movetree.GlyphMistake.NAG(), 2)
	testutil.AssertEqual(t, movetree.Glyph(42).String(), "")
}
