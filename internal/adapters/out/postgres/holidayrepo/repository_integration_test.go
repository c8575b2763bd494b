package holidayrepo_test

import (
	"context"
	"testing"
	"time"

	"paperround/internal/adapters/out/postgres/holidayrepo"
	"paperround/internal/adapters/out/postgres/pgtest"
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type HolidayRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *holidayrepo.GormHolidayRepository
}

func (suite *HolidayRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.repository = holidayrepo.NewGormHolidayRepository(pg.DB)
}

func (suite *HolidayRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *HolidayRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *HolidayRepositoryIntegrationTestSuite) date(year int, month time.Month, day int) kernel.Date {
	d, err := kernel.NewDate(year, month, day)
	suite.Require().NoError(err)
	return d
}

func (suite *HolidayRepositoryIntegrationTestSuite) TestListHolidayDates_InDateOrder() {
	ctx := context.Background()
	christmas := suite.date(2025, 12, 25)
	epiphany := suite.date(2025, 1, 6)

	suite.Require().NoError(suite.repository.Put(ctx, christmas, "Navidad"))
	suite.Require().NoError(suite.repository.Put(ctx, epiphany, "Reyes"))

	got, err := suite.repository.ListHolidayDates(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.True(got[0].Equal(epiphany))
	suite.True(got[1].Equal(christmas))
}

func (suite *HolidayRepositoryIntegrationTestSuite) TestPut_SameDateRenames() {
	ctx := context.Background()
	epiphany := suite.date(2025, 1, 6)

	suite.Require().NoError(suite.repository.Put(ctx, epiphany, "Reyes"))
	suite.Require().NoError(suite.repository.Put(ctx, epiphany, "Epifanía"))

	var rows []holidayrepo.HolidayDTO
	suite.Require().NoError(suite.pg.DB.WithContext(ctx).Find(&rows).Error)
	suite.Require().Len(rows, 1)
	suite.Equal("Epifanía", rows[0].Name)
}

func (suite *HolidayRepositoryIntegrationTestSuite) TestListHolidayDates_StorageFailure() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.repository.ListHolidayDates(ctx)

	suite.Require().ErrorIs(err, errs.ErrPersistence)
}

func TestHolidayRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(HolidayRepositoryIntegrationTestSuite))
}
