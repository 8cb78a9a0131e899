package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Candratama/Floo/db"
	"github.com/Candratama/Floo/ledger"
	"github.com/Candratama/Floo/models"
)

const testJWTSecret = "handler-test-secret"

// setupTestAPI builds a full engine against the database named by
// POSTGRES_TEST_URL, truncating all tables first. Tests are skipped when the
// variable is not set.
func setupTestAPI(t *testing.T) (*gin.Engine, *db.Storage) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}

	storage, err := db.NewStorage(connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = storage.DB.Exec("TRUNCATE TABLE transactions, banks, categories, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	gin.SetMode(gin.TestMode)
	handler := NewHandler(storage, ledger.NewMaintainer(storage), testJWTSecret, time.Hour)
	r := gin.New()
	handler.RegisterRoutes(r)

	return r, storage
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

// signup registers a user and returns a valid token for it.
func signup(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/v1/register", "", models.CreateUser{
		Fullname: "Test User",
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	w = doJSON(t, r, "POST", "/api/v1/login", "", models.Credentials{
		Username: username,
		Password: "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp models.LoginResponse
	decodeJSON(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("Expected token, got empty")
	}
	return resp.Token
}

func createBank(t *testing.T, r *gin.Engine, token, name string, start int64) models.Bank {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/v1/banks", token, models.CreateBank{Name: name, Color: "#3355ff", StartBalance: start})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var bank models.Bank
	decodeJSON(t, w, &bank)
	return bank
}

func createCategory(t *testing.T, r *gin.Engine, token, name string, isIncome bool) models.Category {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/v1/categories", token, models.CreateCategory{Name: name, IsIncome: isIncome})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var category models.Category
	decodeJSON(t, w, &category)
	return category
}

func fetchBank(t *testing.T, r *gin.Engine, token string, id int) models.Bank {
	t.Helper()
	w := doJSON(t, r, "GET", fmt.Sprintf("/api/v1/banks/%d", id), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var bank models.Bank
	decodeJSON(t, w, &bank)
	return bank
}

func TestRoot(t *testing.T) {
	r, storage := setupTestAPI(t)
	defer storage.Close()

	w := doJSON(t, r, "GET", "/", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp models.RootResponse
	decodeJSON(t, w, &resp)
	if resp.AppName != "FLOO API" || resp.Status != "running" {
		t.Errorf("Unexpected banner: %+v", resp)
	}
}

func TestRegister(t *testing.T) {
	r, storage := setupTestAPI(t)
	defer storage.Close()

	w := doJSON(t, r, "POST", "/api/v1/register", "", models.CreateUser{
		Fullname: "Test User",
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var resp models.RegisterResponse
	decodeJSON(t, w, &resp)
	if resp.Username != "testuser" || resp.ID == 0 {
		t.Errorf("Unexpected register response: %+v", resp)
	}

	fetched, err := storage.GetUserByUsername("testuser")
	if err != nil || fetched == nil {
		t.Errorf("Expected stored user, got %+v, %v", fetched, err)
	}

	// short password
	w = doJSON(t, r, "POST", "/api/v1/register", "", models.CreateUser{
		Username: "testuser2", Email: "two@example.com", Password: "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	// duplicate username
	w = doJSON(t, r, "POST", "/api/v1/register", "", models.CreateUser{
		Username: "testuser", Email: "other@example.com", Password: "password123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestLogin(t *testing.T) {
	r, storage := setupTestAPI(t)
	defer storage.Close()

	user, err := storage.CreateUser("Test User", "testuser", "test@example.com", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	w := doJSON(t, r, "POST", "/api/v1/login", "", models.Credentials{Username: "testuser", Password: "password123"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp models.LoginResponse
	decodeJSON(t, w, &resp)
	if resp.Token == "" {
		t.Error("Expected token, got empty")
	}

	w = doJSON(t, r, "POST", "/api/v1/login", "", models.Credentials{Username: "testuser", Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	w = doJSON(t, r, "POST", "/api/v1/login", "", models.Credentials{Username: "nonexistent", Password: "password123"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	// deactivated users cannot log in
	inactive := false
	if _, err := storage.UpdateUser(user.ID, models.UpdateUser{IsActive: &inactive}); err != nil {
		t.Fatalf("Failed to deactivate user: %v", err)
	}
	w = doJSON(t, r, "POST", "/api/v1/login", "", models.Credentials{Username: "testuser", Password: "password123"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d for inactive user, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	r, storage := setupTestAPI(t)
	defer storage.Close()

	w := doJSON(t, r, "GET", "/api/v1/banks", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d without token, got %d", http.StatusUnauthorized, w.Code)
	}

	w = doJSON(t, r, "GET", "/api/v1/banks", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d with bad token, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestCurrentUser(t *testing.T) {
	r, storage := setupTestAPI(t)
	defer storage.Close()

	token := signup(t, r, "testuser")

	w := doJSON(t, r, "GET", "/api/v1/users/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var me models.User
	decodeJSON(t, w, &me)
	if me.Username != "testuser" {
		t.Errorf("Expected username 'testuser', got %s", me.Username)
	}

	fullname := "Renamed User"
	w = doJSON(t, r, "PATCH", "/api/v1/users/me", token, models.UpdateUser{Fullname: &fullname})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	decodeJSON(t, w, &me)
	if me.Fullname != "Renamed User" {
		t.Errorf("Expected fullname 'Renamed User', got %s", me.Fullname)
	}
}

func TestBankCRUD(t *testing.T) {
	r, storage := setupTestAPI(t)
	defer storage.Close()

	token := signup(t, r, "testuser")

	bank := createBank(t, r, token, "checking", 1000)
	if bank.EndBalance != 1000 {
		t.Errorf("Expected end balance 1000, got %d", bank.EndBalance)
	}

	// duplicate name
	w := doJSON(t, r, "POST", "/api/v1/banks", token, models.CreateBank{Name: "checking"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d for duplicate, got %d", http.StatusBadRequest, w.Code)
	}

	w = doJSON(t, r, "GET", "/api/v1/banks", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var banks []models.Bank
	decodeJSON(t, w, &banks)
	if len(banks) != 1 {
		t.Errorf("Expected 1 bank, got %d", len(banks))
	}

	name := "main checking"
	w = doJSON(t, r, "PATCH", fmt.Sprintf("/api/v1/banks/%d", bank.ID), token, models.UpdateBank{Name: &name})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var updated models.Bank
	decodeJSON(t, w, &updated)
	if updated.Name != "main checking" {
		t.Errorf("Expected renamed bank, got %+v", updated)
	}

	w = doJSON(t, r, "GET", "/api/v1/banks/999", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/v1/banks/%d", bank.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	w = doJSON(t, r, "GET", fmt.Sprintf("/api/v1/banks/%d", bank.ID), token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d after delete, got %d", http.StatusNotFound, w.Code)
	}
}

func TestCategoryCRUD(t *testing.T) {
	r, storage := setupTestAPI(t)
	defer storage.Close()

	token := signup(t, r, "testuser")

	category := createCategory(t, r, token, "salary", true)
	if !category.IsIncome {
		t.Error("Expected income category")
	}

	name := "wages"
	w := doJSON(t, r, "PATCH", fmt.Sprintf("/api/v1/categories/%d", category.ID), token, models.UpdateCategory{Name: &name})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var updated models.Category
	decodeJSON(t, w, &updated)
	if updated.Name != "wages" || !updated.IsIncome {
		t.Errorf("Expected renamed income category, got %+v", updated)
	}

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/v1/categories/%d", category.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
}

// A limit of 0 means the default page on every list endpoint, never an
// empty result.
func TestListLimitZeroMeansDefault(t *testing.T) {
	r, storage := setupTestAPI(t)
	defer storage.Close()

	token := signup(t, r, "testuser")
	bank := createBank(t, r, token, "checking", 1000)
	category := createCategory(t, r, token, "salary", true)

	w := doJSON(t, r, "POST", "/api/v1/transactions", token, models.CreateTransaction{
		Amount: 500, CategoryID: category.ID, BankID: bank.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	w = doJSON(t, r, "GET", "/api/v1/banks?limit=0", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var banks []models.Bank
	decodeJSON(t, w, &banks)
	if len(banks) != 1 {
		t.Errorf("Expected 1 bank with limit=0, got %d", len(banks))
	}

	w = doJSON(t, r, "GET", "/api/v1/categories?limit=0", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var categories []models.Category
	decodeJSON(t, w, &categories)
	if len(categories) != 1 {
		t.Errorf("Expected 1 category with limit=0, got %d", len(categories))
	}

	w = doJSON(t, r, "GET", "/api/v1/transactions?limit=0", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var list models.GetTransactionsResponse
	decodeJSON(t, w, &list)
	if list.Total != 1 || len(list.Transactions) != 1 {
		t.Errorf("Expected 1 transaction with limit=0, got total %d, %d rows", list.Total, len(list.Transactions))
	}
}

// TestTransactionFlow walks a full ledger lifecycle through the API and
// checks the bank balances after every step.
func TestTransactionFlow(t *testing.T) {
	r, storage := setupTestAPI(t)
	defer storage.Close()

	token := signup(t, r, "testuser")
	checking := createBank(t, r, token, "checking", 1000)
	savings := createBank(t, r, token, "savings", 800)
	salary := createCategory(t, r, token, "salary", true)
	food := createCategory(t, r, token, "food", false)

	// income 500 on checking: 1000 -> 1500
	w := doJSON(t, r, "POST", "/api/v1/transactions", token, models.CreateTransaction{
		Amount: 500, Description: "paycheck", CategoryID: salary.ID, BankID: checking.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var created models.CreateTransactionResponse
	decodeJSON(t, w, &created)
	if created.Bank.EndBalance != 1500 {
		t.Errorf("Expected balance 1500, got %d", created.Bank.EndBalance)
	}

	// expense 200 on checking: 1500 -> 1300
	w = doJSON(t, r, "POST", "/api/v1/transactions", token, models.CreateTransaction{
		Amount: 200, Description: "groceries", CategoryID: food.ID, BankID: checking.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var expense models.CreateTransactionResponse
	decodeJSON(t, w, &expense)
	if expense.Bank.EndBalance != 1300 {
		t.Errorf("Expected balance 1300, got %d", expense.Bank.EndBalance)
	}

	w = doJSON(t, r, "GET", "/api/v1/transactions", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var list models.GetTransactionsResponse
	decodeJSON(t, w, &list)
	if list.Total != 2 || len(list.Transactions) != 2 {
		t.Errorf("Expected 2 transactions, got total %d, %d rows", list.Total, len(list.Transactions))
	}

	// shrink the expense to 50: 1300 -> 1450
	amount := int64(50)
	w = doJSON(t, r, "PATCH", fmt.Sprintf("/api/v1/transactions/%d", expense.Transaction.ID), token, models.UpdateTransaction{Amount: &amount})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var amended models.UpdateTransactionResponse
	decodeJSON(t, w, &amended)
	if len(amended.Banks) != 1 || amended.Banks[0].EndBalance != 1450 {
		t.Errorf("Expected one bank at 1450, got %+v", amended.Banks)
	}

	// move the expense to savings: checking 1450 -> 1500, savings 800 -> 750
	w = doJSON(t, r, "PATCH", fmt.Sprintf("/api/v1/transactions/%d", expense.Transaction.ID), token, models.UpdateTransaction{BankID: &savings.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	decodeJSON(t, w, &amended)
	if len(amended.Banks) != 2 {
		t.Fatalf("Expected two banks, got %+v", amended.Banks)
	}
	if got := fetchBank(t, r, token, checking.ID).EndBalance; got != 1500 {
		t.Errorf("Expected checking at 1500, got %d", got)
	}
	if got := fetchBank(t, r, token, savings.ID).EndBalance; got != 750 {
		t.Errorf("Expected savings at 750, got %d", got)
	}

	// banks with posted transactions cannot be deleted
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/v1/banks/%d", savings.ID), token, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
	}

	// removing the expense reverses it: savings 750 -> 800
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/v1/transactions/%d", expense.Transaction.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if got := fetchBank(t, r, token, savings.ID).EndBalance; got != 800 {
		t.Errorf("Expected savings back at 800, got %d", got)
	}
	w = doJSON(t, r, "GET", fmt.Sprintf("/api/v1/transactions/%d", expense.Transaction.ID), token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d after delete, got %d", http.StatusNotFound, w.Code)
	}
}

// Re-categorizing a transaction leaves the balance alone and must not block
// later postings on the same bank.
func TestCreateAfterCategoryOnlyAmend(t *testing.T) {
	r, storage := setupTestAPI(t)
	defer storage.Close()

	token := signup(t, r, "testuser")
	bank := createBank(t, r, token, "checking", 1000)
	salary := createCategory(t, r, token, "salary", true)
	food := createCategory(t, r, token, "food", false)

	w := doJSON(t, r, "POST", "/api/v1/transactions", token, models.CreateTransaction{
		Amount: 200, Description: "groceries", CategoryID: food.ID, BankID: bank.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var created models.CreateTransactionResponse
	decodeJSON(t, w, &created)
	if created.Bank.EndBalance != 800 {
		t.Fatalf("Expected balance 800, got %d", created.Bank.EndBalance)
	}

	w = doJSON(t, r, "PATCH", fmt.Sprintf("/api/v1/transactions/%d", created.Transaction.ID), token, models.UpdateTransaction{CategoryID: &salary.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var amended models.UpdateTransactionResponse
	decodeJSON(t, w, &amended)
	if len(amended.Banks) != 0 {
		t.Errorf("Expected no bank movement, got %+v", amended.Banks)
	}
	if got := fetchBank(t, r, token, bank.ID).EndBalance; got != 800 {
		t.Errorf("Expected balance still 800, got %d", got)
	}

	// an ordinary posting on the same bank still succeeds
	w = doJSON(t, r, "POST", "/api/v1/transactions", token, models.CreateTransaction{
		Amount: 100, CategoryID: salary.ID, BankID: bank.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	decodeJSON(t, w, &created)
	if created.Bank.EndBalance != 900 {
		t.Errorf("Expected balance 900, got %d", created.Bank.EndBalance)
	}

	// and removing the re-categorized transaction reverses what was posted
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/v1/transactions/%d", amended.Transaction.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if got := fetchBank(t, r, token, bank.ID).EndBalance; got != 1100 {
		t.Errorf("Expected balance 1100, got %d", got)
	}
}

func TestTransactionValidation(t *testing.T) {
	r, storage := setupTestAPI(t)
	defer storage.Close()

	token := signup(t, r, "testuser")
	bank := createBank(t, r, token, "checking", 1000)
	category := createCategory(t, r, token, "food", false)

	w := doJSON(t, r, "POST", "/api/v1/transactions", token, models.CreateTransaction{
		Amount: -5, CategoryID: category.ID, BankID: bank.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d for negative amount, got %d", http.StatusBadRequest, w.Code)
	}

	w = doJSON(t, r, "POST", "/api/v1/transactions", token, models.CreateTransaction{Amount: 100})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d for missing references, got %d", http.StatusBadRequest, w.Code)
	}

	// unknown category rolls the whole operation back
	w = doJSON(t, r, "POST", "/api/v1/transactions", token, models.CreateTransaction{
		Amount: 100, CategoryID: 999, BankID: bank.ID,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d for unknown category, got %d", http.StatusNotFound, w.Code)
	}
	if got := fetchBank(t, r, token, bank.ID).EndBalance; got != 1000 {
		t.Errorf("Expected balance unchanged at 1000, got %d", got)
	}

	w = doJSON(t, r, "GET", "/api/v1/transactions?start_date=junk", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d for bad start_date, got %d", http.StatusBadRequest, w.Code)
	}
}

// Users never see or touch each other's data.
func TestUserIsolation(t *testing.T) {
	r, storage := setupTestAPI(t)
	defer storage.Close()

	aliceToken := signup(t, r, "alice")
	bobToken := signup(t, r, "bob")

	bank := createBank(t, r, aliceToken, "checking", 1000)
	category := createCategory(t, r, aliceToken, "salary", true)

	w := doJSON(t, r, "POST", "/api/v1/transactions", aliceToken, models.CreateTransaction{
		Amount: 500, CategoryID: category.ID, BankID: bank.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var created models.CreateTransactionResponse
	decodeJSON(t, w, &created)

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/v1/banks/%d", bank.ID), bobToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d for foreign bank, got %d", http.StatusNotFound, w.Code)
	}

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/v1/transactions/%d", created.Transaction.ID), bobToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d for foreign transaction, got %d", http.StatusNotFound, w.Code)
	}

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/v1/transactions/%d", created.Transaction.ID), bobToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d deleting foreign transaction, got %d", http.StatusNotFound, w.Code)
	}

	// posting against a foreign bank fails and moves nothing
	ownCategory := createCategory(t, r, bobToken, "salary", true)
	w = doJSON(t, r, "POST", "/api/v1/transactions", bobToken, models.CreateTransaction{
		Amount: 100, CategoryID: ownCategory.ID, BankID: bank.ID,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d posting to foreign bank, got %d", http.StatusNotFound, w.Code)
	}
	if got := fetchBank(t, r, aliceToken, bank.ID).EndBalance; got != 1500 {
		t.Errorf("Expected balance 1500, got %d", got)
	}

	w = doJSON(t, r, "GET", "/api/v1/transactions", bobToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var list models.GetTransactionsResponse
	decodeJSON(t, w, &list)
	if list.Total != 0 {
		t.Errorf("Expected empty list for other user, got total %d", list.Total)
	}
}
