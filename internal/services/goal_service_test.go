package services

import (
	"testing"
	"time"

	"budgetsmart/internal/models"
	"budgetsmart/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		goal, err := svc.CreateGoal(user.ID, "Emergency fund", "3 months of expenses", 3000, "savings", time.Now().AddDate(1, 0, 0), models.GoalPriorityHigh)
		testutil.AssertNoError(t, err)

		if goal.ID == "" {
			t.Fatal("expected non-empty goal ID")
		}
		if goal.Status != models.GoalStatusActive {
			t.Errorf("expected status active, got %s", goal.Status)
		}
		if goal.CurrentAmount != 0 {
			t.Errorf("expected zero progress, got %f", goal.CurrentAmount)
		}
	})

	t.Run("zero_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Broken", "", 0, "", time.Now(), models.GoalPriorityLow)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "", "", 100, "", time.Now(), models.GoalPriorityLow)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateGoalProgress(t *testing.T) {
	t.Run("partial_contribution", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 500)

		updated, err := svc.UpdateGoalProgress(user.ID, goal.ID, 200)
		testutil.AssertNoError(t, err)

		if updated.CurrentAmount != 200 {
			t.Errorf("expected progress 200, got %f", updated.CurrentAmount)
		}
		if updated.Status != models.GoalStatusActive {
			t.Errorf("expected status active, got %s", updated.Status)
		}
	})

	t.Run("clamps_and_completes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 500)

		_, err := svc.UpdateGoalProgress(user.ID, goal.ID, 450)
		testutil.AssertNoError(t, err)

		// Overshooting clamps progress to exactly the target.
		updated, err := svc.UpdateGoalProgress(user.ID, goal.ID, 100)
		testutil.AssertNoError(t, err)

		if updated.CurrentAmount != 500 {
			t.Errorf("expected progress clamped to 500, got %f", updated.CurrentAmount)
		}
		if updated.Status != models.GoalStatusCompleted {
			t.Errorf("expected status completed, got %s", updated.Status)
		}
	})

	t.Run("completed_is_terminal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100)

		_, err := svc.UpdateGoalProgress(user.ID, goal.ID, 100)
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateGoalProgress(user.ID, goal.ID, 10)
		testutil.AssertAppError(t, err, "GOAL_COMPLETED")
	})

	t.Run("zero_contribution", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100)

		_, err := svc.UpdateGoalProgress(user.ID, goal.ID, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user1.ID, 100)

		_, err := svc.UpdateGoalProgress(user2.ID, goal.ID, 10)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestSetGoalStatus(t *testing.T) {
	t.Run("pause_and_resume", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100)

		paused, err := svc.SetGoalStatus(user.ID, goal.ID, models.GoalStatusPaused)
		testutil.AssertNoError(t, err)
		if paused.Status != models.GoalStatusPaused {
			t.Errorf("expected status paused, got %s", paused.Status)
		}

		resumed, err := svc.SetGoalStatus(user.ID, goal.ID, models.GoalStatusActive)
		testutil.AssertNoError(t, err)
		if resumed.Status != models.GoalStatusActive {
			t.Errorf("expected status active, got %s", resumed.Status)
		}
	})

	t.Run("cannot_set_completed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100)

		_, err := svc.SetGoalStatus(user.ID, goal.ID, models.GoalStatusCompleted)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("completed_goal_unchangeable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 50)

		_, err := svc.UpdateGoalProgress(user.ID, goal.ID, 50)
		testutil.AssertNoError(t, err)

		_, err = svc.SetGoalStatus(user.ID, goal.ID, models.GoalStatusPaused)
		testutil.AssertAppError(t, err, "GOAL_COMPLETED")
	})
}

func TestUpdateGoal(t *testing.T) {
	t.Run("completed_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 50)

		_, err := svc.UpdateGoalProgress(user.ID, goal.ID, 50)
		testutil.AssertNoError(t, err)

		title := "New title"
		_, err = svc.UpdateGoal(user.ID, goal.ID, &title, nil, nil, nil, nil, nil)
		testutil.AssertAppError(t, err, "GOAL_COMPLETED")
	})

	t.Run("updates_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 500)

		title := "Vacation"
		target := 800.0
		priority := models.GoalPriorityHigh
		updated, err := svc.UpdateGoal(user.ID, goal.ID, &title, nil, &target, nil, nil, &priority)
		testutil.AssertNoError(t, err)

		if updated.Title != "Vacation" {
			t.Errorf("expected title Vacation, got %s", updated.Title)
		}
		if updated.TargetAmount != 800 {
			t.Errorf("expected target 800, got %f", updated.TargetAmount)
		}
		if updated.Priority != models.GoalPriorityHigh {
			t.Errorf("expected priority high, got %s", updated.Priority)
		}
	})
}

func TestDeleteGoal(t *testing.T) {
	t.Run("removes_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100)

		err := svc.DeleteGoal(user.ID, goal.ID)
		testutil.AssertNoError(t, err)

		goals, err := svc.GetUserGoals(user.ID)
		testutil.AssertNoError(t, err)
		if len(goals) != 0 {
			t.Errorf("expected 0 goals after delete, got %d", len(goals))
		}
	})

	t.Run("missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteGoal(user.ID, "nonexistent")
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}
