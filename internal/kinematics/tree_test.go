package kinematics

import "testing"

func indices(ls []*Link) []int {
	out := make([]int, len(ls))
	for i, l := range ls {
		out[i] = l.Index
	}
	return out
}

func TestOutboardPartition(t *testing.T) {
	c := NewBiped()

	tests := []struct {
		joint int
		want  []int
	}{
		{0, []int{1, 2, 3, 4, 5}},
		{1, []int{2, 3, 4, 5}},
		{2, []int{3, 4, 5}},
		{3, []int{4, 5}},
		{4, []int{5}},
	}

	for _, tt := range tests {
		got := indices(c.Outboard(tt.joint))
		if len(got) != len(tt.want) {
			t.Fatalf("joint %d: expected %v, got %v", tt.joint, tt.want, got)
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("joint %d: expected %v, got %v", tt.joint, tt.want, got)
				break
			}
		}
	}
}

func TestHipBranchIsSiblingNotSerial(t *testing.T) {
	c := NewBiped()

	torso := c.Link(3)
	swingFemur := c.Link(4)

	if torso.Parent != c.Link(2) || swingFemur.Parent != c.Link(2) {
		t.Fatal("torso and swing femur must both attach to the stance femur")
	}

	// The swing femur's subtree must not contain the torso: they are
	// siblings at the hip, not serially ordered.
	for _, l := range c.Subtree(4) {
		if l.Index == 3 {
			t.Error("torso found in swing-femur subtree")
		}
	}
	if got := indices(c.Subtree(3)); len(got) != 1 || got[0] != 3 {
		t.Errorf("torso subtree: expected [3], got %v", got)
	}
}

func TestSwingConvention(t *testing.T) {
	c := NewBiped()
	for _, l := range c.Links() {
		want := l.Index >= 4
		if l.Swing != want {
			t.Errorf("link %d (%s): Swing = %v", l.Index, l.Name, l.Swing)
		}
	}
}
