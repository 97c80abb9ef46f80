package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/selinak/habit-tracker-api/internal/middleware"
	"github.com/selinak/habit-tracker-api/internal/models"
	"github.com/selinak/habit-tracker-api/internal/repository"
	"github.com/selinak/habit-tracker-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// HabitHandlerTestSuite exercises the habit and analytics endpoints through
// the full router, bearer-token middleware included.
type HabitHandlerTestSuite struct {
	suite.Suite
	db           *gorm.DB
	tokenService *services.TokenService
	router       *gin.Engine
}

// SetupTest runs before each test
func (suite *HabitHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Habit{},
		&models.HabitCompletion{},
	)
	suite.Require().NoError(err)

	habitRepo := repository.NewHabitRepository(suite.db)
	completionRepo := repository.NewCompletionRepository(suite.db)

	suite.tokenService = services.NewTokenService("test-secret")
	habitService := services.NewHabitService(habitRepo, completionRepo)
	analyticsService := services.NewAnalyticsService(habitRepo, completionRepo)

	habitHandler := NewHabitHandler(habitService)
	analyticsHandler := NewAnalyticsHandler(habitService, analyticsService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	habits := suite.router.Group("/habits")
	habits.Use(middleware.RequireAuth(suite.tokenService))
	{
		habits.POST("", habitHandler.CreateHabit)
		habits.GET("", habitHandler.ListHabits)
		habits.PUT("/:id", middleware.RequireHabitAccess(habitRepo), habitHandler.UpdateHabit)
		habits.DELETE("/:id", middleware.RequireHabitAccess(habitRepo), habitHandler.DeleteHabit)
		habits.POST("/:id/completions", middleware.RequireHabitAccess(habitRepo), habitHandler.RecordCompletion)
		habits.GET("/completions", habitHandler.ListCompletions)

		analytics := habits.Group("/analytics")
		{
			analytics.GET("/all", analyticsHandler.ListAllHabits)
			analytics.GET("/periodicity/:periodicity", analyticsHandler.ListHabitsByPeriodicity)
			analytics.GET("/longest_streak", analyticsHandler.LongestStreak)
			analytics.GET("/longest_streak/:id", analyticsHandler.LongestStreakForHabit)
		}
	}
}

// TearDownTest runs after each test
func (suite *HabitHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *HabitHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *HabitHandlerTestSuite) createTestHabit(name string, userID uint64, frequency models.Frequency) *models.Habit {
	habit := &models.Habit{
		Name:        name,
		Description: "Test Description",
		Frequency:   frequency,
		UserID:      userID,
	}
	suite.db.Create(habit)
	return habit
}

func (suite *HabitHandlerTestSuite) createTestCompletion(habitID uint64, date string, completed bool) {
	completedOn, err := time.Parse("2006-01-02", date)
	suite.Require().NoError(err)
	suite.db.Create(&models.HabitCompletion{
		HabitID:     habitID,
		CompletedOn: completedOn,
		Completed:   completed,
	})
}

// request performs an authenticated request as the given user.
func (suite *HabitHandlerTestSuite) request(method, url string, body any, userID uint64) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")

	token, err := suite.tokenService.Generate(userID)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HabitHandlerTestSuite) TestCreateHabit_Success() {
	user := suite.createTestUser("creator")

	w := suite.request("POST", "/habits", map[string]string{
		"name":        "Read a book",
		"description": "Read for 30 minutes",
		"frequency":   "Daily",
	}, user.ID)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]any
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotZero(suite.T(), response["id"])

	var habit models.Habit
	assert.NoError(suite.T(), suite.db.First(&habit).Error)
	assert.Equal(suite.T(), "Read a book", habit.Name)
	assert.Equal(suite.T(), user.ID, habit.UserID)
}

func (suite *HabitHandlerTestSuite) TestCreateHabit_MissingFields() {
	user := suite.createTestUser("creator")

	w := suite.request("POST", "/habits", map[string]string{
		"description": "No name or frequency",
	}, user.ID)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request("POST", "/habits", map[string]string{
		"name":      "Bad frequency",
		"frequency": "Hourly",
	}, user.ID)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HabitHandlerTestSuite) TestCreateHabit_Unauthenticated() {
	req := httptest.NewRequest("POST", "/habits", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *HabitHandlerTestSuite) TestListHabits() {
	user := suite.createTestUser("lister")
	other := suite.createTestUser("other")
	suite.createTestHabit("Mine", user.ID, models.FrequencyDaily)
	suite.createTestHabit("Not mine", other.ID, models.FrequencyDaily)

	w := suite.request("GET", "/habits", nil, user.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var habits []map[string]any
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &habits))
	assert.Len(suite.T(), habits, 1)
	assert.Equal(suite.T(), "Mine", habits[0]["name"])
	assert.Contains(suite.T(), habits[0], "creation_date")
}

func (suite *HabitHandlerTestSuite) TestUpdateHabit_PartialFields() {
	user := suite.createTestUser("updater")
	habit := suite.createTestHabit("Old name", user.ID, models.FrequencyDaily)

	w := suite.request("PUT", fmt.Sprintf("/habits/%d", habit.ID), map[string]string{
		"name": "New name",
	}, user.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var reloaded models.Habit
	assert.NoError(suite.T(), suite.db.First(&reloaded, habit.ID).Error)
	assert.Equal(suite.T(), "New name", reloaded.Name)
	assert.Equal(suite.T(), models.FrequencyDaily, reloaded.Frequency)
	assert.Equal(suite.T(), "Test Description", reloaded.Description)
}

func (suite *HabitHandlerTestSuite) TestUpdateHabit_OtherOwner() {
	owner := suite.createTestUser("owner")
	intruder := suite.createTestUser("intruder")
	habit := suite.createTestHabit("Private", owner.ID, models.FrequencyDaily)

	w := suite.request("PUT", fmt.Sprintf("/habits/%d", habit.ID), map[string]string{
		"name": "Hijacked",
	}, intruder.ID)

	// 404, not 403: habit existence must not leak across owners.
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HabitHandlerTestSuite) TestDeleteHabit_CascadesToCompletions() {
	user := suite.createTestUser("deleter")
	habit := suite.createTestHabit("Doomed", user.ID, models.FrequencyDaily)
	suite.createTestCompletion(habit.ID, "2024-10-01", true)
	suite.createTestCompletion(habit.ID, "2024-10-02", true)

	w := suite.request("DELETE", fmt.Sprintf("/habits/%d", habit.ID), nil, user.ID)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count)
	assert.Zero(suite.T(), count)

	w = suite.request("GET", fmt.Sprintf("/habits/analytics/longest_streak/%d", habit.ID), nil, user.ID)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HabitHandlerTestSuite) TestRecordCompletion_Success() {
	user := suite.createTestUser("recorder")
	habit := suite.createTestHabit("Exercise", user.ID, models.FrequencyDaily)

	w := suite.request("POST", fmt.Sprintf("/habits/%d/completions", habit.ID), map[string]any{
		"completed_on": "2024-10-01",
		"completed":    true,
	}, user.ID)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var completion models.HabitCompletion
	assert.NoError(suite.T(), suite.db.First(&completion).Error)
	assert.Equal(suite.T(), habit.ID, completion.HabitID)
	assert.True(suite.T(), completion.Completed)
}

func (suite *HabitHandlerTestSuite) TestRecordCompletion_FalseStatus() {
	user := suite.createTestUser("recorder")
	habit := suite.createTestHabit("Exercise", user.ID, models.FrequencyDaily)

	w := suite.request("POST", fmt.Sprintf("/habits/%d/completions", habit.ID), map[string]any{
		"completed_on": "2024-10-01",
		"completed":    false,
	}, user.ID)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var completion models.HabitCompletion
	assert.NoError(suite.T(), suite.db.First(&completion).Error)
	assert.False(suite.T(), completion.Completed)
}

func (suite *HabitHandlerTestSuite) TestRecordCompletion_MalformedDate() {
	user := suite.createTestUser("recorder")
	habit := suite.createTestHabit("Exercise", user.ID, models.FrequencyDaily)

	w := suite.request("POST", fmt.Sprintf("/habits/%d/completions", habit.ID), map[string]any{
		"completed_on": "01/10/2024",
		"completed":    true,
	}, user.ID)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request("POST", fmt.Sprintf("/habits/%d/completions", habit.ID), map[string]any{
		"completed_on": "2024-10-01",
	}, user.ID)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HabitHandlerTestSuite) TestRecordCompletion_OtherOwner() {
	owner := suite.createTestUser("owner")
	intruder := suite.createTestUser("intruder")
	habit := suite.createTestHabit("Private", owner.ID, models.FrequencyDaily)

	w := suite.request("POST", fmt.Sprintf("/habits/%d/completions", habit.ID), map[string]any{
		"completed_on": "2024-10-01",
		"completed":    true,
	}, intruder.ID)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HabitHandlerTestSuite) TestListCompletions() {
	user := suite.createTestUser("lister")
	habit := suite.createTestHabit("Exercise", user.ID, models.FrequencyDaily)
	suite.createTestCompletion(habit.ID, "2024-10-01", true)
	suite.createTestCompletion(habit.ID, "2024-10-02", false)

	w := suite.request("GET", "/habits/completions", nil, user.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var completions []map[string]any
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &completions))
	assert.Len(suite.T(), completions, 2)

	dates := []string{completions[0]["completed_on"].(string), completions[1]["completed_on"].(string)}
	assert.ElementsMatch(suite.T(), []string{"2024-10-01", "2024-10-02"}, dates)
}

func (suite *HabitHandlerTestSuite) TestAnalyticsAll() {
	user := suite.createTestUser("analyst")
	suite.createTestHabit("Daily habit", user.ID, models.FrequencyDaily)
	suite.createTestHabit("Weekly habit", user.ID, models.FrequencyWeekly)

	w := suite.request("GET", "/habits/analytics/all", nil, user.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var habits []map[string]any
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &habits))
	assert.Len(suite.T(), habits, 2)
}

func (suite *HabitHandlerTestSuite) TestAnalyticsPeriodicity() {
	user := suite.createTestUser("analyst")
	suite.createTestHabit("Daily habit", user.ID, models.FrequencyDaily)
	suite.createTestHabit("Weekly habit", user.ID, models.FrequencyWeekly)

	w := suite.request("GET", "/habits/analytics/periodicity/Weekly", nil, user.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var habits []map[string]any
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &habits))
	assert.Len(suite.T(), habits, 1)
	assert.Equal(suite.T(), "Weekly habit", habits[0]["name"])
}

func (suite *HabitHandlerTestSuite) TestAnalyticsPeriodicity_Unknown() {
	user := suite.createTestUser("analyst")

	w := suite.request("GET", "/habits/analytics/periodicity/Hourly", nil, user.ID)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HabitHandlerTestSuite) TestAnalyticsLongestStreakForHabit() {
	user := suite.createTestUser("analyst")
	habit := suite.createTestHabit("Exercise", user.ID, models.FrequencyDaily)
	suite.createTestCompletion(habit.ID, "2024-10-01", true)
	suite.createTestCompletion(habit.ID, "2024-10-02", true)
	suite.createTestCompletion(habit.ID, "2024-10-03", true)
	suite.createTestCompletion(habit.ID, "2024-10-04", false)
	suite.createTestCompletion(habit.ID, "2024-10-06", true)

	w := suite.request("GET", fmt.Sprintf("/habits/analytics/longest_streak/%d", habit.ID), nil, user.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]int
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), 3, response["longest_streak"])
}

func (suite *HabitHandlerTestSuite) TestAnalyticsLongestStreakForHabit_OtherOwner() {
	owner := suite.createTestUser("owner")
	intruder := suite.createTestUser("intruder")
	habit := suite.createTestHabit("Private", owner.ID, models.FrequencyDaily)
	suite.createTestCompletion(habit.ID, "2024-10-01", true)

	w := suite.request("GET", fmt.Sprintf("/habits/analytics/longest_streak/%d", habit.ID), nil, intruder.ID)

	// 404, never the computed value, for habits owned by someone else.
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HabitHandlerTestSuite) TestAnalyticsLongestStreakForHabit_InvalidID() {
	user := suite.createTestUser("analyst")

	w := suite.request("GET", "/habits/analytics/longest_streak/not-a-number", nil, user.ID)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HabitHandlerTestSuite) TestAnalyticsLongestStreakAcrossHabits() {
	user := suite.createTestUser("analyst")

	habitA := suite.createTestHabit("Habit A", user.ID, models.FrequencyDaily)
	suite.createTestCompletion(habitA.ID, "2024-10-01", true)
	suite.createTestCompletion(habitA.ID, "2024-10-02", true)

	habitB := suite.createTestHabit("Habit B", user.ID, models.FrequencyDaily)
	for _, d := range []string{"2024-10-01", "2024-10-02", "2024-10-03", "2024-10-04", "2024-10-05"} {
		suite.createTestCompletion(habitB.ID, d, true)
	}

	w := suite.request("GET", "/habits/analytics/longest_streak", nil, user.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]int
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), 5, response["longest_streak"])
}

func (suite *HabitHandlerTestSuite) TestAnalyticsLongestStreak_NoHabits() {
	user := suite.createTestUser("analyst")

	w := suite.request("GET", "/habits/analytics/longest_streak", nil, user.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]int
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), 0, response["longest_streak"])
}

func TestHabitHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HabitHandlerTestSuite))
}
