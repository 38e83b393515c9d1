package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTodoEndToEnd(t *testing.T) {
	_, h := newTestServer()
	token, userHex := registerAndLogin(t, h, "Alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodPost, "/todos/"+userHex, token, map[string]string{
		"title": "Buy milk", "category": "Personal",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		Message string `json:"message"`
		Todo    Todo   `json:"todo"`
	}
	decodeBody(t, rec, &created)
	require.Equal(t, "Buy milk", created.Todo.Title)
	require.Equal(t, StatusPending, created.Todo.Status)

	rec = doJSON(t, h, http.MethodGet, "/users/"+userHex+"/todos", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Todos []Todo `json:"todos"`
	}
	decodeBody(t, rec, &listed)
	require.Len(t, listed.Todos, 1)
	require.Equal(t, "Buy milk", listed.Todos[0].Title)
	require.Equal(t, StatusPending, listed.Todos[0].Status)
}

func TestCreateTodoValidation(t *testing.T) {
	_, h := newTestServer()
	token, userHex := registerAndLogin(t, h, "Alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodPost, "/todos/"+userHex, token, map[string]string{
		"title": "No category",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body apiError
	decodeBody(t, rec, &body)
	require.Equal(t, CodeValidation, body.Code)

	rec = doJSON(t, h, http.MethodPost, "/todos/"+userHex, token, map[string]string{
		"title": "Bad date", "category": "Work", "dueDate": "someday",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTodoNormalizesDueDate(t *testing.T) {
	_, h := newTestServer()
	token, userHex := registerAndLogin(t, h, "Alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodPost, "/todos/"+userHex, token, map[string]string{
		"title": "Dentist", "category": "Personal", "dueDate": "2024-06-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		Todo Todo `json:"todo"`
	}
	decodeBody(t, rec, &created)
	require.NotNil(t, created.Todo.DueDate)
	require.Equal(t, "2024-06-01T00:00:00.000Z", *created.Todo.DueDate)
}

func TestCompleteTodoIdempotent(t *testing.T) {
	_, h := newTestServer()
	token, userHex := registerAndLogin(t, h, "Alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodPost, "/todos/"+userHex, token, map[string]string{
		"title": "Buy milk", "category": "Personal",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		Todo Todo `json:"todo"`
	}
	decodeBody(t, rec, &created)
	todoID := created.Todo.ID.Hex()

	for i := 0; i < 2; i++ {
		rec = doJSON(t, h, http.MethodPatch, "/todos/"+todoID+"/complete", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			Todo Todo `json:"todo"`
		}
		decodeBody(t, rec, &out)
		require.Equal(t, StatusCompleted, out.Todo.Status)
	}
}

func TestCompleteTodoNotFound(t *testing.T) {
	_, h := newTestServer()
	token, _ := registerAndLogin(t, h, "Alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodPatch, "/todos/"+primitive.NewObjectID().Hex()+"/complete", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPatch, "/todos/not-a-hex-id/complete", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTodo(t *testing.T) {
	_, h := newTestServer()
	token, userHex := registerAndLogin(t, h, "Alice", "alice@example.com")

	rec := doJSON(t, h, http.MethodPost, "/todos/"+userHex, token, map[string]string{
		"title": "Temp", "category": "Work",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		Todo Todo `json:"todo"`
	}
	decodeBody(t, rec, &created)
	todoID := created.Todo.ID.Hex()

	rec = doJSON(t, h, http.MethodDelete, "/todos/"+todoID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/todos/"+todoID, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/todos/garbage", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodoOwnershipIsolation(t *testing.T) {
	_, h := newTestServer()
	tokenA, userA := registerAndLogin(t, h, "Alice", "alice@example.com")
	tokenB, userB := registerAndLogin(t, h, "Bob", "bob@example.com")

	rec := doJSON(t, h, http.MethodPost, "/todos/"+userB, tokenB, map[string]string{
		"title": "Bob's todo", "category": "Work",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		Todo Todo `json:"todo"`
	}
	decodeBody(t, rec, &created)
	bobTodo := created.Todo.ID.Hex()

	// Alice never sees Bob's todos.
	rec = doJSON(t, h, http.MethodGet, "/users/"+userA+"/todos", tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Todos []Todo `json:"todos"`
	}
	decodeBody(t, rec, &listed)
	require.Empty(t, listed.Todos)

	// Alice cannot read Bob's list, nor mutate his todo.
	rec = doJSON(t, h, http.MethodGet, "/users/"+userB+"/todos", tokenA, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/todos/"+bobTodo, tokenA, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPatch, "/todos/"+bobTodo+"/complete", tokenA, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Bob's todo is untouched.
	rec = doJSON(t, h, http.MethodGet, "/users/"+userB+"/todos", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &listed)
	require.Len(t, listed.Todos, 1)
	require.Equal(t, StatusPending, listed.Todos[0].Status)
}

func TestCountTodosByStatus(t *testing.T) {
	_, h := newTestServer()
	token, userHex := registerAndLogin(t, h, "Alice", "alice@example.com")

	for _, title := range []string{"one", "two"} {
		rec := doJSON(t, h, http.MethodPost, "/todos/"+userHex, token, map[string]string{
			"title": title, "category": "Work",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/users/"+userHex+"/todos", token, nil)
	var listed struct {
		Todos []Todo `json:"todos"`
	}
	decodeBody(t, rec, &listed)
	require.Len(t, listed.Todos, 2)

	rec = doJSON(t, h, http.MethodPatch, "/todos/"+listed.Todos[0].ID.Hex()+"/complete", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/users/"+userHex+"/todos/count", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var counts struct {
		TotalCompletedTodos int64 `json:"totalCompletedTodos"`
		TotalPendingTodos   int64 `json:"totalPendingTodos"`
	}
	decodeBody(t, rec, &counts)
	require.Equal(t, int64(1), counts.TotalCompletedTodos)
	require.Equal(t, int64(1), counts.TotalPendingTodos)
}

func TestCompletedOnDateBoundary(t *testing.T) {
	srv, h := newTestServer()
	token, userHex := registerAndLogin(t, h, "Alice", "alice@example.com")
	userID, err := primitive.ObjectIDFromHex(userHex)
	require.NoError(t, err)

	ctx := context.Background()
	seed := func(title string, createdAt time.Time) {
		require.NoError(t, srv.store.InsertTodo(ctx, &Todo{
			ID:        primitive.NewObjectID(),
			Title:     title,
			Status:    StatusCompleted,
			Category:  "Work",
			CreatedAt: createdAt,
			UserID:    userID,
		}))
	}
	seed("last millisecond", time.Date(2024, 1, 1, 23, 59, 59, 999000000, time.UTC))
	seed("next midnight", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	fetch := func(date string) []Todo {
		rec := doJSON(t, h, http.MethodGet, "/users/"+userHex+"/todos/completed/"+date, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			CompletedTodos []Todo `json:"completedTodos"`
		}
		decodeBody(t, rec, &out)
		return out.CompletedTodos
	}

	day1 := fetch("2024-01-01")
	require.Len(t, day1, 1)
	require.Equal(t, "last millisecond", day1[0].Title)

	day2 := fetch("2024-01-02")
	require.Len(t, day2, 1)
	require.Equal(t, "next midnight", day2[0].Title)

	rec := doJSON(t, h, http.MethodGet, "/users/"+userHex+"/todos/completed/2024-1-1", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGlobalCompletedCalendar(t *testing.T) {
	srv, h := newTestServer()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	srv.now = func() time.Time { return now }

	tokenA, userA := registerAndLogin(t, h, "Alice", "alice@example.com")
	tokenB, userB := registerAndLogin(t, h, "Bob", "bob@example.com")

	for _, u := range []struct{ token, user string }{{tokenA, userA}, {tokenB, userB}} {
		rec := doJSON(t, h, http.MethodPost, "/todos/"+u.user, u.token, map[string]string{
			"title": "shared day", "category": "Work",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		var created struct {
			Todo Todo `json:"todo"`
		}
		decodeBody(t, rec, &created)
		rec = doJSON(t, h, http.MethodPatch, "/todos/"+created.Todo.ID.Hex()+"/complete", u.token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// The shared calendar view spans users.
	rec := doJSON(t, h, http.MethodGet, "/todos/completed/2024-03-10", tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		CompletedTodos []Todo `json:"completedTodos"`
	}
	decodeBody(t, rec, &out)
	require.Len(t, out.CompletedTodos, 2)
}
