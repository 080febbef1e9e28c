package steps

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/household-ledger/backend/internal/integration/persistence/model"
)

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	userID := uuid.New()
	t.storePlaceholder("user_id", userID)

	user := &model.UserModel{
		ID:                 userID,
		Email:              email,
		Name:               "Test User",
		PasswordHash:       hashPassword(password),
		EmailNotifications: true,
		RecurringReminders: true,
		CreatedAt:          time.Now().UTC(),
		UpdatedAt:          time.Now().UTC(),
	}

	return t.db.DbConn.Create(user).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) iAmLoggedInAsWithPassword(email, password string) error {
	if err := t.theAPIServerIsRunning(); err != nil {
		return err
	}

	body := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)
	if err := t.executeRequest("POST", "/api/v1/auth/login", []byte(body)); err != nil {
		return err
	}

	if t.response.status != 200 {
		return fmt.Errorf("login failed with status %d: %v", t.response.status, t.response.body)
	}

	responseBody, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("login response is not a JSON object: %v", t.response.body)
	}

	accessToken, _ := responseBody["access_token"].(string)
	refreshToken, _ := responseBody["refresh_token"].(string)
	if accessToken == "" || refreshToken == "" {
		return fmt.Errorf("login response is missing tokens: %v", responseBody)
	}

	t.accessToken = accessToken
	t.refreshToken = refreshToken
	return nil
}

func (t *testContext) anAccountOfKindExists(name, kind string) error {
	userIDStr, ok := t.placeholders["user_id"]
	if !ok {
		return fmt.Errorf("no user has been created yet")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return err
	}

	accountID := uuid.New()
	t.storePlaceholder("account_id", accountID)

	account := &model.AccountModel{
		ID:        accountID,
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	return t.db.DbConn.Create(account).Error
}

func (t *testContext) aCategoryOfKindExistsInTheAccount(name, kind string) error {
	accountIDStr, ok := t.placeholders["account_id"]
	if !ok {
		return fmt.Errorf("no account has been created yet")
	}
	accountID, err := uuid.Parse(accountIDStr)
	if err != nil {
		return err
	}

	categoryID := uuid.New()
	t.storePlaceholder("category_id", categoryID)

	category := &model.CategoryModel{
		ID:        categoryID,
		AccountID: accountID,
		Name:      name,
		Kind:      kind,
		Color:     "#4A90D9",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	return t.db.DbConn.Create(category).Error
}
