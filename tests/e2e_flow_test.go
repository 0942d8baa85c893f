package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ABeGood/klim-fit/internal/config"
	"github.com/ABeGood/klim-fit/internal/server"
)

func TestGoldenPath(t *testing.T) {
	// 1. Setup Infrastructure
	// MongoDB (Container)
	db, cleanupDB := SetupTestDB(t)
	defer cleanupDB()

	// Redis (Miniredis for speed/simplicity)
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	// Config (Minimal)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-123"

	// 2. Initialize App
	app := server.NewApp(server.AppDependencies{
		Config:      cfg,
		MongoDB:     db,
		RedisClient: redisClient,
	})

	coachToken := MintCoachToken(t, cfg.JWT.Secret, "coach-1", "Klim")

	// Helper for requests
	request := func(method, path, token string, body interface{}) *http.Response {
		var bodyReader io.Reader
		if body != nil {
			jsonBytes, _ := json.Marshal(body)
			bodyReader = bytes.NewReader(jsonBytes)
		}
		req, _ := http.NewRequest(method, path, bodyReader)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	decode := func(resp *http.Response) map[string]interface{} {
		var data map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
		return data
	}

	// ==========================================
	// STEP 1: Seed the exercise library
	// ==========================================
	resp := request("POST", "/v1/exercises/", coachToken, map[string]interface{}{
		"name": "Bench Press", "has_reps": true, "has_weight_kg": true,
	})
	require.Equal(t, 201, resp.StatusCode)
	benchID := decode(resp)["id"].(string)

	resp = request("POST", "/v1/exercises/", coachToken, map[string]interface{}{
		"name": "Plank", "has_duration_s": true,
	})
	require.Equal(t, 201, resp.StatusCode)
	plankID := decode(resp)["id"].(string)

	// Unauthenticated write is rejected; public read works.
	resp = request("POST", "/v1/exercises/", "", map[string]interface{}{"name": "X", "has_reps": true})
	assert.Equal(t, 401, resp.StatusCode)
	resp = request("GET", "/v1/exercises/", "", nil)
	assert.Equal(t, 200, resp.StatusCode)

	// ==========================================
	// STEP 2: Create client and workout
	// ==========================================
	resp = request("POST", "/v1/users/", coachToken, map[string]interface{}{
		"name": "Anna", "surname": "Svoboda", "email": "anna@example.com", "age": 28,
	})
	require.Equal(t, 201, resp.StatusCode)
	userID := decode(resp)["id"].(string)

	resp = request("POST", "/v1/users/"+userID+"/workouts", coachToken, map[string]interface{}{
		"name": "Push Day",
	})
	require.Equal(t, 201, resp.StatusCode)
	workoutID := decode(resp)["id"].(string)

	// ==========================================
	// STEP 3: Editing session golden path
	// ==========================================
	resp = request("POST", "/v1/coach/session/select-user", coachToken, map[string]string{"user_id": userID})
	require.Equal(t, 200, resp.StatusCode)
	snap := decode(resp)
	assert.Equal(t, "user_selected", snap["state"])

	resp = request("POST", "/v1/coach/session/select-workout", coachToken, map[string]string{"workout_id": workoutID})
	require.Equal(t, 200, resp.StatusCode)
	snap = decode(resp)
	assert.Equal(t, "workout_selected", snap["state"])

	// Drop two sets
	resp = request("POST", "/v1/coach/session/drag", coachToken, map[string]string{"exercise_id": benchID})
	require.Equal(t, 200, resp.StatusCode)
	resp = request("POST", "/v1/coach/session/drop", coachToken, nil)
	require.Equal(t, 200, resp.StatusCode)

	resp = request("POST", "/v1/coach/session/drag", coachToken, map[string]string{"exercise_id": plankID})
	require.Equal(t, 200, resp.StatusCode)
	resp = request("POST", "/v1/coach/session/drop", coachToken, map[string]string{"client_id": "e2e-plank-drop"})
	require.Equal(t, 200, resp.StatusCode)
	snap = decode(resp)

	sets := snap["sets"].([]interface{})
	require.Len(t, sets, 2)
	benchSet := sets[0].(map[string]interface{})
	plankSet := sets[1].(map[string]interface{})
	assert.Equal(t, float64(1), benchSet["set_order"])
	assert.Equal(t, float64(2), plankSet["set_order"])

	// Retrying a drop with the same client id resolves to the stored set
	resp = request("POST", "/v1/coach/session/drag", coachToken, map[string]string{"exercise_id": plankID})
	require.Equal(t, 200, resp.StatusCode)
	resp = request("POST", "/v1/coach/session/drop", coachToken, map[string]string{"client_id": "e2e-plank-drop"})
	require.Equal(t, 200, resp.StatusCode)
	snap = decode(resp)
	require.Len(t, snap["sets"].([]interface{}), 2)

	// Drop without a drag is a precondition failure
	resp = request("POST", "/v1/coach/session/drop", coachToken, nil)
	assert.Equal(t, 409, resp.StatusCode)

	// ==========================================
	// STEP 4: Edit sets
	// ==========================================
	benchSetID := benchSet["id"].(string)
	plankSetID := plankSet["id"].(string)

	resp = request("POST", "/v1/coach/session/sets/"+benchSetID+"/open", coachToken, nil)
	require.Equal(t, 200, resp.StatusCode)

	resp = request("POST", "/v1/coach/session/sets/"+benchSetID, coachToken, map[string]interface{}{
		"fields": map[string]string{"reps": "10", "weight_kg": "62.5", "rest_s": "90"},
	})
	require.Equal(t, 200, resp.StatusCode)
	snap = decode(resp)
	edited := snap["sets"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(10), edited["reps"])
	assert.Equal(t, 62.5, edited["weight_kg"])

	// Reps on a duration-only exercise are rejected
	resp = request("POST", "/v1/coach/session/sets/"+plankSetID, coachToken, map[string]interface{}{
		"fields": map[string]string{"reps": "10"},
	})
	assert.Equal(t, 422, resp.StatusCode)

	resp = request("POST", "/v1/coach/session/sets/"+plankSetID, coachToken, map[string]interface{}{
		"fields": map[string]string{"duration_s": "60"},
	})
	require.Equal(t, 200, resp.StatusCode)

	// ==========================================
	// STEP 5: Confirmed removal keeps order gaps
	// ==========================================
	resp = request("POST", "/v1/coach/session/sets/"+benchSetID+"/delete", coachToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	resp = request("POST", "/v1/coach/session/sets/"+benchSetID+"/delete/confirm", coachToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	snap = decode(resp)

	sets = snap["sets"].([]interface{})
	require.Len(t, sets, 1)
	assert.Equal(t, float64(2), sets[0].(map[string]interface{})["set_order"])

	// ==========================================
	// STEP 6: Verify persisted state outside the session
	// ==========================================
	resp = request("GET", "/v1/workouts/"+workoutID+"/sets", coachToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	var persisted []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, float64(60), persisted[0]["duration_s"])
	assert.Equal(t, float64(2), persisted[0]["set_order"])

	// ==========================================
	// STEP 7: End session, cascade delete workout
	// ==========================================
	resp = request("DELETE", "/v1/coach/session/", coachToken, nil)
	assert.Equal(t, 200, resp.StatusCode)

	resp = request("DELETE", "/v1/workouts/"+workoutID, coachToken, nil)
	require.Equal(t, 200, resp.StatusCode)

	resp = request("GET", "/v1/workouts/"+workoutID+"/sets", coachToken, nil)
	assert.Equal(t, 404, resp.StatusCode)
}
