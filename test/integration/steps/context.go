// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/household-ledger/backend/config"
	"github.com/household-ledger/backend/internal/infra/dependency"
	"github.com/household-ledger/backend/internal/integration/persistence/model"
	"github.com/household-ledger/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var serverOnce sync.Once
var testServer *httptest.Server
var testDB *mock.Db

// testContext holds per-scenario state: the HTTP client, captured tokens,
// and named placeholders captured from earlier responses.
type testContext struct {
	client       *http.Client
	headers      map[string]string
	accessToken  string
	refreshToken string
	placeholders map[string]string
	response     *response
	db           *mock.Db
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"users":               &model.UserModel{},
			"refresh_tokens":      &model.RefreshTokenModel{},
			"accounts":            &model.AccountModel{},
			"categories":          &model.CategoryModel{},
			"ledger_entries":      &model.LedgerEntryModel{},
			"recurring_templates": &model.RecurringTemplateModel{},
			"occurrences":         &model.OccurrenceModel{},
			"budgets":             &model.BudgetModel{},
			"invoices":            &model.InvoiceModel{},
			"email_queue":         &model.EmailQueueModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Seeding steps
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, test.iAmLoggedInAsWithPassword)
	ctx.Given(`^an account "([^"]*)" of kind "([^"]*)" exists$`, test.anAccountOfKindExists)
	ctx.Given(`^a category "([^"]*)" of kind "([^"]*)" exists in the account$`, test.aCategoryOfKindExistsInTheAccount)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Capture steps
	ctx.Then(`^I store the response field "([^"]*)" as "([^"]*)"$`, test.iStoreTheResponseFieldAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.placeholders = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.response = nil

	if t.db != nil {
		if err := t.db.ClearDB(); err != nil {
			panic(fmt.Sprintf("failed to clear database: %v", err))
		}
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) theAPIServerIsRunning() error {
	serverOnce.Do(func() {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret

		injector, err := dependency.NewInjector(cfg, testDB.DbConn, mock.NewRedis())
		if err != nil {
			panic(fmt.Sprintf("failed to wire test dependencies: %v", err))
		}

		testServer = httptest.NewServer(injector.Router.Setup("test"))
	})

	if testServer == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

// replacePlaceholders substitutes {{name}} markers with captured values and
// relative month markers with concrete YYYY-MM values.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)

	now := time.Now().UTC()
	content = strings.ReplaceAll(content, "{{current_month}}", now.Format("2006-01"))
	content = strings.ReplaceAll(content, "{{next_month}}", now.AddDate(0, 1, 0).Format("2006-01"))
	content = strings.ReplaceAll(content, "{{previous_month}}", now.AddDate(0, -1, 0).Format("2006-01"))

	for name, value := range t.placeholders {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}

	return content
}

func (t *testContext) storePlaceholder(name string, value any) {
	switch v := value.(type) {
	case string:
		t.placeholders[name] = v
	case uuid.UUID:
		t.placeholders[name] = v.String()
	default:
		t.placeholders[name] = fmt.Sprintf("%v", v)
	}
}
