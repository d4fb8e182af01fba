package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/senyabanana/farm-commons/internal/models"
	"github.com/senyabanana/farm-commons/internal/storage"
)

func TestLoadEmptyCollection(t *testing.T) {
	repos := New(storage.NewMemory())

	polls, err := repos.Polls.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if polls == nil || len(polls) != 0 {
		t.Fatalf("load = %#v, want empty non-nil slice", polls)
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	backend := storage.NewMemory()
	repos := New(backend)

	if err := repos.FarmingTips.Save(context.Background(), nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := backend.Read(context.Background(), FarmingTipsCollection)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("stored = %q, want %q", data, "[]")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	backend := storage.NewMemory()
	repos := New(backend)
	ctx := context.Background()

	updated := models.NewTimestamp(time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC))
	distance := 12.5
	communities := []models.Community{
		{
			ID:         "c1",
			Name:       "Asha's Community",
			VendorID:   "v1",
			VendorName: "Asha",
			Members: []models.Member{
				{ID: "v1", Name: "Asha", Type: models.Vendor},
				{ID: "f1", Name: "Ravi", Type: models.Farmer, Distance: &distance},
			},
			Messages:  []models.Message{},
			CreatedAt: models.NewTimestamp(time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)),
		},
	}
	polls := []models.Poll{
		{
			ID:          "p1",
			CommunityID: "c1",
			VendorID:    "v1",
			Product:     "Tomatoes",
			Quantity:    100,
			Unit:        "kg",
			Deadline:    "2026-03-10",
			Status:      models.OpenPoll,
			Responses: []models.Response{
				{FarmerID: "f1", Quantity: 40, ReferenceCode: "Pp1-Ff1-ABCDEF", UpdatedAt: &updated},
			},
		},
	}
	if err := repos.Communities.Save(ctx, communities); err != nil {
		t.Fatalf("save communities: %v", err)
	}
	if err := repos.Polls.Save(ctx, polls); err != nil {
		t.Fatalf("save polls: %v", err)
	}

	for _, name := range []string{CommunitiesCollection, PollsCollection} {
		before, err := backend.Read(ctx, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}

		switch name {
		case CommunitiesCollection:
			loaded, err := repos.Communities.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !reflect.DeepEqual(loaded, communities) {
				t.Fatalf("loaded communities = %#v, want %#v", loaded, communities)
			}
			if err := repos.Communities.Save(ctx, loaded); err != nil {
				t.Fatalf("save: %v", err)
			}
		case PollsCollection:
			loaded, err := repos.Polls.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !reflect.DeepEqual(loaded, polls) {
				t.Fatalf("loaded polls = %#v, want %#v", loaded, polls)
			}
			if err := repos.Polls.Save(ctx, loaded); err != nil {
				t.Fatalf("save: %v", err)
			}
		}

		after, err := backend.Read(ctx, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(before) != string(after) {
			t.Fatalf("save(load()) changed %s:\nbefore %s\nafter  %s", name, before, after)
		}
	}
}

func TestUpdateErrorDoesNotSave(t *testing.T) {
	repos := New(storage.NewMemory())
	ctx := context.Background()

	boom := errors.New("boom")
	err := repos.Vendors.Update(ctx, func(users []models.User) ([]models.User, error) {
		return append(users, models.User{ID: "v1"}), boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("update error = %v, want %v", err, boom)
	}

	users, err := repos.Vendors.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("len(users) = %d, want 0", len(users))
	}
}

func TestUpdateNoChange(t *testing.T) {
	backend := storage.NewMemory()
	repos := New(backend)
	ctx := context.Background()

	err := repos.Polls.Update(ctx, func(polls []models.Poll) ([]models.Poll, error) {
		return nil, ErrNoChange
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	data, err := backend.Read(ctx, PollsCollection)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if data != nil {
		t.Fatalf("stored = %q, want nothing written", data)
	}
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	repos := New(storage.NewMemory())
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repos.Farmers.Update(ctx, func(users []models.User) ([]models.User, error) {
				return append(users, models.User{ID: fmt.Sprintf("f%d", i)}), nil
			})
			if err != nil {
				t.Errorf("update %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	users, err := repos.Farmers.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(users) != writers {
		t.Fatalf("len(users) = %d, want %d", len(users), writers)
	}
}

func TestUnlockedLoadSaveLosesUpdates(t *testing.T) {
	repos := New(storage.NewMemory())
	ctx := context.Background()

	first, err := repos.Farmers.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second, err := repos.Farmers.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := repos.Farmers.Save(ctx, append(first, models.User{ID: "f1"})); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := repos.Farmers.Save(ctx, append(second, models.User{ID: "f2"})); err != nil {
		t.Fatalf("save second: %v", err)
	}

	users, err := repos.Farmers.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(users) != 1 || users[0].ID != "f2" {
		t.Fatalf("users = %#v, want only the last writer's record", users)
	}
}

func TestCounts(t *testing.T) {
	repos := New(storage.NewMemory())
	ctx := context.Background()

	if err := repos.Farmers.Save(ctx, []models.User{{ID: "f1"}, {ID: "f2"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	counts, err := repos.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[FarmersCollection] != 2 {
		t.Fatalf("farmers = %d, want 2", counts[FarmersCollection])
	}
	if counts[PollsCollection] != 0 {
		t.Fatalf("polls = %d, want 0", counts[PollsCollection])
	}
	if len(counts) != len(repos.Names()) {
		t.Fatalf("len(counts) = %d, want %d", len(counts), len(repos.Names()))
	}
}

func TestUsersByRole(t *testing.T) {
	repos := New(storage.NewMemory())

	if repos.Users(models.Farmer) != repos.Farmers {
		t.Fatal("farmer role should map to farmers collection")
	}
	if repos.Users(models.Vendor) != repos.Vendors {
		t.Fatal("vendor role should map to vendors collection")
	}
	if repos.Users("admin") != nil {
		t.Fatal("unknown role should map to nil")
	}
}

func TestLoadNaiveTimestampsFromFile(t *testing.T) {
	dir := t.TempDir()
	backend, err := storage.NewFile(dir)
	if err != nil {
		t.Fatalf("new file backend: %v", err)
	}
	ctx := context.Background()

	raw := `[{"id":"f1","name":"Ravi","latitude":12.9716,"longitude":77.5946,"created_at":"2025-03-01T10:15:30.123456"}]`
	if err := backend.Write(ctx, FarmersCollection, []byte(raw)); err != nil {
		t.Fatalf("write: %v", err)
	}

	repos := New(backend)
	users, err := repos.Farmers.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := time.Date(2025, time.March, 1, 10, 15, 30, 123456000, time.UTC)
	if len(users) != 1 || !users[0].CreatedAt.Equal(want) {
		t.Fatalf("users = %#v, want created_at %v", users, want)
	}

	if err := repos.Farmers.Save(ctx, users); err != nil {
		t.Fatalf("save: %v", err)
	}
	reloaded, err := repos.Farmers.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(reloaded, users) {
		t.Fatalf("save(load()) = %#v, want %#v", reloaded, users)
	}

	before, err := backend.Read(ctx, FarmersCollection)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := repos.Farmers.Save(ctx, reloaded); err != nil {
		t.Fatalf("save again: %v", err)
	}
	after, err := backend.Read(ctx, FarmersCollection)
	if err != nil {
		t.Fatalf("read again: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("second save changed bytes:\nbefore %s\nafter  %s", before, after)
	}
}
