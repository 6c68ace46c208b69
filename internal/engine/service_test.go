package engine

import (
	"context"
	"path/filepath"
	"testing"

	"focusquest/internal/storage"
)

func newTestService(t *testing.T, backend string) *Service {
	t.Helper()
	dir := t.TempDir()

	var (
		st  storage.Store
		err error
	)
	switch backend {
	case "file":
		st, err = storage.NewFileStore(filepath.Join(dir, "store.json"))
	default:
		st, err = storage.OpenSQLiteStore(context.Background(), filepath.Join(dir, "test.db"))
	}
	if err != nil {
		t.Fatalf("open %s store: %v", backend, err)
	}
	t.Cleanup(func() { _ = st.Close() })

	return NewService(st)
}

// runBackends runs fn against both storage backends so every service-level
// behavior is checked on each.
func runBackends(t *testing.T, fn func(t *testing.T, svc *Service)) {
	for _, backend := range []string{"sqlite", "file"} {
		t.Run(backend, func(t *testing.T) {
			fn(t, newTestService(t, backend))
		})
	}
}

var testOwner = Owner{ID: "owner-1", Name: "Explorer"}

func mustCreate(t *testing.T, svc *Service, in CreateTaskInput) *storage.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), testOwner, in)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func boolPtr(v bool) *bool             { return &v }
func strPtr(v string) *string          { return &v }
func intPtr(v int) *int                { return &v }
func diffPtr(v Difficulty) *Difficulty { return &v }

func TestCreateTaskValidation(t *testing.T) {
	runBackends(t, func(t *testing.T, svc *Service) {
		ctx := context.Background()

		_, err := svc.CreateTask(ctx, testOwner, CreateTaskInput{
			Title:      "read a chapter",
			Difficulty: DifficultyEasy,
		})
		if !IsValidation(err) {
			t.Fatalf("missing category: got %v, want validation error", err)
		}

		_, err = svc.CreateTask(ctx, testOwner, CreateTaskInput{
			Title:      "read a chapter",
			Difficulty: Difficulty("brutal"),
			Category:   CategoryPersonal,
		})
		if !IsValidation(err) {
			t.Fatalf("bad difficulty: got %v, want validation error", err)
		}

		// Rejected input must leave nothing behind.
		tasks, err := svc.ListTasks(ctx, testOwner)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(tasks) != 0 {
			t.Fatalf("got %d tasks after rejected creates, want 0", len(tasks))
		}
	})
}

func TestCompleteTaskAwardsXP(t *testing.T) {
	runBackends(t, func(t *testing.T, svc *Service) {
		ctx := context.Background()
		task := mustCreate(t, svc, CreateTaskInput{
			Title:      "ship the report",
			Difficulty: DifficultyHard,
			Category:   CategoryWork,
		})

		res, err := svc.UpdateTask(ctx, testOwner, task.ID, TaskPatch{Completed: boolPtr(true)})
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if res.XPAwarded != 50 {
			t.Errorf("xpAwarded=%d, want 50", res.XPAwarded)
		}
		if !res.Task.Completed || res.Task.CompletedAt == nil {
			t.Errorf("task not stamped completed: %+v", res.Task)
		}
		if res.User == nil || res.User.XP != 50 {
			t.Fatalf("user after completion: %+v, want xp 50", res.User)
		}

		// Completing again is a no-op for progression.
		res, err = svc.UpdateTask(ctx, testOwner, task.ID, TaskPatch{Completed: boolPtr(true)})
		if err != nil {
			t.Fatalf("re-complete: %v", err)
		}
		if res.XPAwarded != 0 {
			t.Errorf("re-completion awarded %d XP, want 0", res.XPAwarded)
		}
		u, err := svc.Profile(ctx, testOwner)
		if err != nil {
			t.Fatalf("profile: %v", err)
		}
		if u.XP != 50 {
			t.Errorf("xp after re-completion=%d, want 50", u.XP)
		}
	})
}

func TestCompletionRewardUsesStoredDifficulty(t *testing.T) {
	runBackends(t, func(t *testing.T, svc *Service) {
		ctx := context.Background()
		task := mustCreate(t, svc, CreateTaskInput{
			Title:      "water the plants",
			Difficulty: DifficultyEasy,
			Category:   CategoryPersonal,
		})

		// Raising difficulty in the same request as completion must not
		// raise the reward.
		res, err := svc.UpdateTask(ctx, testOwner, task.ID, TaskPatch{
			Difficulty: diffPtr(DifficultyEpic),
			Completed:  boolPtr(true),
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if res.XPAwarded != 10 {
			t.Errorf("xpAwarded=%d, want 10 (easy at completion time)", res.XPAwarded)
		}
		if res.Task.Difficulty != string(DifficultyEpic) {
			t.Errorf("difficulty=%q, want epic", res.Task.Difficulty)
		}
	})
}

func TestUncompleteClearsStampKeepsXP(t *testing.T) {
	runBackends(t, func(t *testing.T, svc *Service) {
		ctx := context.Background()
		task := mustCreate(t, svc, CreateTaskInput{
			Title:      "stretch",
			Difficulty: DifficultyMedium,
			Category:   CategoryHealth,
		})

		if _, err := svc.UpdateTask(ctx, testOwner, task.ID, TaskPatch{Completed: boolPtr(true)}); err != nil {
			t.Fatalf("complete: %v", err)
		}
		res, err := svc.UpdateTask(ctx, testOwner, task.ID, TaskPatch{Completed: boolPtr(false)})
		if err != nil {
			t.Fatalf("un-complete: %v", err)
		}
		if res.Task.Completed || res.Task.CompletedAt != nil {
			t.Errorf("task still stamped after un-completion: %+v", res.Task)
		}

		u, err := svc.Profile(ctx, testOwner)
		if err != nil {
			t.Fatalf("profile: %v", err)
		}
		if u.XP != 25 {
			t.Errorf("xp after un-completion=%d, want 25 (never refunded)", u.XP)
		}
	})
}

func TestTaskOwnershipScoping(t *testing.T) {
	runBackends(t, func(t *testing.T, svc *Service) {
		ctx := context.Background()
		other := Owner{ID: "owner-2", Name: "Rival"}
		task := mustCreate(t, svc, CreateTaskInput{
			Title:      "private errand",
			Difficulty: DifficultyEasy,
			Category:   CategoryPersonal,
		})

		if _, err := svc.GetTask(ctx, other, task.ID); !IsNotFound(err) {
			t.Errorf("cross-owner get: got %v, want not found", err)
		}
		if _, err := svc.UpdateTask(ctx, other, task.ID, TaskPatch{Completed: boolPtr(true)}); !IsNotFound(err) {
			t.Errorf("cross-owner update: got %v, want not found", err)
		}
		if err := svc.DeleteTask(ctx, other, task.ID); !IsNotFound(err) {
			t.Errorf("cross-owner delete: got %v, want not found", err)
		}

		// The owner's view stayed intact.
		got, err := svc.GetTask(ctx, testOwner, task.ID)
		if err != nil {
			t.Fatalf("owner get: %v", err)
		}
		if got.Completed {
			t.Errorf("task mutated by cross-owner update")
		}
	})
}

func TestDeleteTask(t *testing.T) {
	runBackends(t, func(t *testing.T, svc *Service) {
		ctx := context.Background()
		task := mustCreate(t, svc, CreateTaskInput{
			Title:      "inbox zero",
			Difficulty: DifficultyMedium,
			Category:   CategoryWork,
		})

		if err := svc.DeleteTask(ctx, testOwner, task.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := svc.GetTask(ctx, testOwner, task.ID); !IsNotFound(err) {
			t.Errorf("get after delete: got %v, want not found", err)
		}
		if err := svc.DeleteTask(ctx, testOwner, task.ID); !IsNotFound(err) {
			t.Errorf("second delete: got %v, want not found", err)
		}
	})
}

func TestProfileDefaults(t *testing.T) {
	runBackends(t, func(t *testing.T, svc *Service) {
		u, err := svc.Profile(context.Background(), Owner{ID: "fresh", Name: ""})
		if err != nil {
			t.Fatalf("profile: %v", err)
		}
		if u.Name != DefaultName {
			t.Errorf("name=%q, want %q", u.Name, DefaultName)
		}
		if u.Level != 1 || u.XP != 0 || u.XPToNextLevel != BaseXPToNextLevel {
			t.Errorf("progression=%d/%d/%d, want 1/0/%d", u.Level, u.XP, u.XPToNextLevel, BaseXPToNextLevel)
		}
		if u.Energy != DefaultEnergy {
			t.Errorf("energy=%d, want %d", u.Energy, DefaultEnergy)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	runBackends(t, func(t *testing.T, svc *Service) {
		ctx := context.Background()

		u, err := svc.UpdateProfile(ctx, testOwner, ProfilePatch{
			Name:   strPtr("Nova"),
			Energy: intPtr(40),
			Streak: intPtr(3),
		})
		if err != nil {
			t.Fatalf("update profile: %v", err)
		}
		if u.Name != "Nova" || u.Energy != 40 || u.Streak != 3 {
			t.Errorf("profile after patch: %+v", u)
		}

		if _, err := svc.UpdateProfile(ctx, testOwner, ProfilePatch{Energy: intPtr(120)}); !IsValidation(err) {
			t.Errorf("energy 120: got %v, want validation error", err)
		}
		if _, err := svc.UpdateProfile(ctx, testOwner, ProfilePatch{Streak: intPtr(-1)}); !IsValidation(err) {
			t.Errorf("streak -1: got %v, want validation error", err)
		}
	})
}

func TestAddFocusMinutes(t *testing.T) {
	runBackends(t, func(t *testing.T, svc *Service) {
		ctx := context.Background()

		res, err := svc.AddFocusMinutes(ctx, testOwner, 25)
		if err != nil {
			t.Fatalf("add 25: %v", err)
		}
		if res.BonusXP != 10 {
			t.Errorf("bonus=%d, want 10", res.BonusXP)
		}
		if res.User.TotalFocusMinutes != 25 || res.User.XP != 10 {
			t.Errorf("after 25m: %+v", res.User)
		}

		// A short session still counts toward totals but earns nothing.
		res, err = svc.AddFocusMinutes(ctx, testOwner, 24)
		if err != nil {
			t.Fatalf("add 24: %v", err)
		}
		if res.BonusXP != 0 {
			t.Errorf("bonus for 24m=%d, want 0", res.BonusXP)
		}
		if res.User.TotalFocusMinutes != 49 || res.User.XP != 10 {
			t.Errorf("after 24m more: %+v", res.User)
		}

		if _, err := svc.AddFocusMinutes(ctx, testOwner, 0); !IsValidation(err) {
			t.Errorf("zero minutes: got %v, want validation error", err)
		}
	})
}

func TestCreateThenCompleteEndToEnd(t *testing.T) {
	runBackends(t, func(t *testing.T, svc *Service) {
		ctx := context.Background()
		task := mustCreate(t, svc, CreateTaskInput{
			Title:       "finish the proposal",
			Description: "final draft plus figures",
			Difficulty:  DifficultyHard,
			Category:    CategoryWork,
		})
		if task.Completed {
			t.Fatal("new task starts completed")
		}

		res, err := svc.UpdateTask(ctx, testOwner, task.ID, TaskPatch{Completed: boolPtr(true)})
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if res.XPAwarded != 50 || res.User.XP != 50 || res.User.Level != 1 {
			t.Errorf("result: awarded=%d user=%+v", res.XPAwarded, res.User)
		}

		tasks, err := svc.ListTasks(ctx, testOwner)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(tasks) != 1 || !tasks[0].Completed {
			t.Errorf("list after completion: %+v", tasks)
		}
	})
}
