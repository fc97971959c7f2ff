package model

import "testing"

func TestTaskStatusTransitionsForwardOnly(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{TaskStatusPending, TaskStatusInProgress, true},
		{TaskStatusPending, TaskStatusSubmitted, true},
		{TaskStatusPending, TaskStatusEvaluated, true},
		{TaskStatusInProgress, TaskStatusSubmitted, true},
		{TaskStatusSubmitted, TaskStatusEvaluated, true},
		// Backward moves are rejected
		{TaskStatusEvaluated, TaskStatusSubmitted, false},
		{TaskStatusEvaluated, TaskStatusPending, false},
		{TaskStatusSubmitted, TaskStatusInProgress, false},
		{TaskStatusInProgress, TaskStatusPending, false},
		// Same status is not a transition
		{TaskStatusSubmitted, TaskStatusSubmitted, false},
		// Unknown statuses never transition
		{"bogus", TaskStatusEvaluated, false},
		{TaskStatusPending, "bogus", false},
	}

	for _, tc := range cases {
		task := Task{Status: tc.from}
		if got := task.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("CanTransitionTo(%q -> %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestInternshipIsActive(t *testing.T) {
	track := InternshipTrack{Status: InternshipStatusActive}
	if !track.IsActive() {
		t.Error("active internship should report active")
	}

	track.Status = InternshipStatusCompleted
	if track.IsActive() {
		t.Error("completed internship should not report active")
	}

	track.Status = InternshipStatusAbandoned
	if track.IsActive() {
		t.Error("abandoned internship should not report active")
	}
}

func TestSubmissionIsEvaluated(t *testing.T) {
	var s Submission
	if s.IsEvaluated() {
		t.Error("fresh submission should not be evaluated")
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := User{Role: "admin"}
	if !admin.IsAdmin() {
		t.Error("admin role should report admin")
	}

	student := User{Role: "student"}
	if student.IsAdmin() {
		t.Error("student role should not report admin")
	}
}
