package services

import (
	"testing"

	"github.com/sahilchouksey/internship-simulator/model"
)

func TestStarterTasksShape(t *testing.T) {
	tasks := starterTasks("Finance", nil, nil)

	if len(tasks) != 3 {
		t.Fatalf("expected 3 starter tasks, got %d", len(tasks))
	}

	wantDifficulty := []string{"easy", "medium", "medium"}
	wantPoints := []int{100, 120, 150}

	for i, task := range tasks {
		if task.Difficulty != wantDifficulty[i] {
			t.Errorf("task %d: expected difficulty %q, got %q", i, wantDifficulty[i], task.Difficulty)
		}
		if task.Points != wantPoints[i] {
			t.Errorf("task %d: expected %d points, got %d", i, wantPoints[i], task.Points)
		}
		if task.Title == "" || task.Description == "" || task.Instructions == "" {
			t.Errorf("task %d: all text fields should be populated", i)
		}
	}

	if tasks[0].Title != "Week 1: Introduction to Finance" {
		t.Errorf("unexpected first task title: %q", tasks[0].Title)
	}
}

func TestStarterTasksUseRoleAndCompanyNames(t *testing.T) {
	role := &model.Role{Name: "Investment Analyst"}
	company := &model.Company{Name: "Apex Capital"}

	tasks := starterTasks("Finance", role, company)

	if tasks[1].Title != "Week 1: Investment Analyst Skills Assessment" {
		t.Errorf("unexpected skills task title: %q", tasks[1].Title)
	}
	if tasks[2].Title != "Week 1: Apex Capital Analysis" {
		t.Errorf("unexpected analysis task title: %q", tasks[2].Title)
	}
}

func TestStarterTasksDefaultNames(t *testing.T) {
	tasks := starterTasks("Technology", nil, nil)

	if tasks[1].Title != "Week 1: Professional Skills Assessment" {
		t.Errorf("missing role should fall back to Professional, got %q", tasks[1].Title)
	}
	if tasks[2].Title != "Week 1: Company Analysis" {
		t.Errorf("missing company should fall back to Company, got %q", tasks[2].Title)
	}
}
