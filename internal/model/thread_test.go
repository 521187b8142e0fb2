package model

import "testing"

func TestNormalizePair(t *testing.T) {
	tests := []struct {
		a, b   int64
		u1, u2 int64
	}{
		{1, 2, 1, 2},
		{2, 1, 1, 2},
		{9, 3, 3, 9},
	}
	for _, tt := range tests {
		u1, u2 := NormalizePair(tt.a, tt.b)
		if u1 != tt.u1 || u2 != tt.u2 {
			t.Errorf("NormalizePair(%d, %d) = (%d, %d), want (%d, %d)", tt.a, tt.b, u1, u2, tt.u1, tt.u2)
		}
	}
}

func TestThreadParticipant(t *testing.T) {
	thread := &Thread{ID: 5, User1ID: 1, User2ID: 2}

	if !thread.Participant(1) || !thread.Participant(2) {
		t.Error("participants not recognized")
	}
	if thread.Participant(3) {
		t.Error("outsider recognized as participant")
	}

	if got := thread.OtherUserID(1); got != 2 {
		t.Errorf("OtherUserID(1) = %d, want 2", got)
	}
	if got := thread.OtherUserID(2); got != 1 {
		t.Errorf("OtherUserID(2) = %d, want 1", got)
	}
}
