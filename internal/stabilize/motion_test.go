package stabilize

import "testing"

func TestNewMotionDataChannelsEqualLength(t *testing.T) {
	for _, n := range []int{0, 1, 17} {
		m := NewMotionData(n)
		if len(m.DX) != n || len(m.DY) != n || len(m.Rotation) != n {
			t.Errorf("n=%d: channel lengths (%d,%d,%d) not equal",
				n, len(m.DX), len(m.DY), len(m.Rotation))
		}
		if m.Len() != n {
			t.Errorf("Len() = %d, want %d", m.Len(), n)
		}
		if m.IsEmpty() != (n == 0) {
			t.Errorf("IsEmpty() = %v for n=%d", m.IsEmpty(), n)
		}
	}
}

func TestMotionDataCloneIndependent(t *testing.T) {
	m := NewMotionData(3)
	m.DX[1] = 4

	c := m.Clone()
	c.DX[1] = 9
	c.Rotation[2] = 1

	if m.DX[1] != 4 {
		t.Errorf("clone write leaked into original: %v", m.DX[1])
	}
	if m.Rotation[2] != 0 {
		t.Errorf("clone rotation write leaked: %v", m.Rotation[2])
	}
}
