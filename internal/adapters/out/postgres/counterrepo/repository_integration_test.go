package counterrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/counterrepo"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CounterRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *counterrepo.GormCounterRepository
}

func (suite *CounterRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&counterrepo.CounterDTO{}))
}

func (suite *CounterRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE counters").Error)
	suite.repository = counterrepo.NewGormCounterRepository(suite.db)
}

func (suite *CounterRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CounterRepositoryIntegrationTestSuite) TestNext_StartsAtOneAndIncrements() {
	ctx := context.Background()

	for expected := int64(1); expected <= 3; expected++ {
		value, err := suite.repository.Next(ctx, "order-number-2026")
		suite.Require().NoError(err)
		suite.Equal(expected, value)
	}
}

func (suite *CounterRepositoryIntegrationTestSuite) TestNext_KeysAreIndependent() {
	ctx := context.Background()

	value, err := suite.repository.Next(ctx, "order-number-2026")
	suite.Require().NoError(err)
	suite.Equal(int64(1), value)

	value, err = suite.repository.Next(ctx, "order-number-2027")
	suite.Require().NoError(err)
	suite.Equal(int64(1), value)
}

func (suite *CounterRepositoryIntegrationTestSuite) TestNext_EmptyKey() {
	_, err := suite.repository.Next(context.Background(), "")

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func (suite *CounterRepositoryIntegrationTestSuite) TestNext_ConcurrentCallersGetDistinctValues() {
	ctx := context.Background()
	const callers = 10

	values := make([]int64, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := suite.repository.Next(ctx, "order-number-2026")
			suite.Require().NoError(err)
			values[i] = value
		}()
	}
	wg.Wait()

	seen := make(map[int64]bool, callers)
	for _, value := range values {
		suite.False(seen[value], "value %d handed out twice", value)
		seen[value] = true
	}
	suite.Len(seen, callers)
}

func TestCounterRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CounterRepositoryIntegrationTestSuite))
}
